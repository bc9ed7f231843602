// Package auth provides authentication and authorization for the HTTP API.
//
// # Authorization Gate
//
// Access is decided per request from the permission set of the caller's role:
//   - Granted: the required key is held, or the set holds "*" or "*:*"
//   - GrantedAny: at least one of several keys is granted
//   - GrantedAll: every one of several keys is granted
//
// Only the two literal wildcard spellings grant everything. A key such as
// "staff:*" is an ordinary key.
//
// # Permission Resolution
//
// Service.UserPermissions reads the allow rows of the user's role. Inactive
// users hold no permissions.
//
// # Middleware
//
// Fiber middleware functions are provided for route protection:
//   - RequirePermission: Protect routes requiring a specific permission
//   - RequireAnyPermission: Protect routes requiring any of several permissions
//   - RequireAllPermissions: Protect routes requiring all of several permissions
//   - RequireAuthenticated: Protect routes that only need a session
//
// Required keys are checked against the catalog when the route is
// registered. An unknown key panics at startup.
//
// Responses: no session is 401, a missing permission is 403, and a failure
// to resolve permissions is 500.
//
// # Local Accounts
//
// LocalProvider authenticates username/password logins against Argon2id
// hashes and manages accounts and their role assignment.
//
// Example usage:
//
//	authService := auth.NewService(db, permission.Default())
//
//	app.Post("/role-management",
//	    auth.RequirePermission(authService, permission.RolesCreate),
//	    handler,
//	)
package auth
