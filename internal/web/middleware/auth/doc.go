// Package auth provides the session middleware of the web application.
//
// The middleware resolves the session cookie of every request outside the
// public paths and stores the session data in fiber.Locals, where the
// permission guards and handlers read it. Requests without a valid session
// are answered with 401 and a JSON body.
//
// Usage:
//
//	app.Use(authmiddleware.Middleware)
package auth
