package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/peopledesk/peopledesk/internal/web/response"
	"github.com/peopledesk/peopledesk/internal/web/session"
)

const permissionsLocalsKey = "permissions"

type decider func(granted, required []string) bool

// RequirePermission creates Fiber middleware that requires a specific permission.
// It panics when the permission is not in the catalog.
func RequirePermission(authService *Service, permission string) fiber.Handler {
	authService.mustKnow(permission)

	return guard(authService, []string{permission}, GrantedAll)
}

// RequireAnyPermission creates Fiber middleware that requires at least one of the given permissions.
func RequireAnyPermission(authService *Service, permissions ...string) fiber.Handler {
	authService.mustKnow(permissions...)

	return guard(authService, permissions, GrantedAny)
}

// RequireAllPermissions creates Fiber middleware that requires all the given permissions.
func RequireAllPermissions(authService *Service, permissions ...string) fiber.Handler {
	authService.mustKnow(permissions...)

	return guard(authService, permissions, GrantedAll)
}

// RequireAuthenticated only requires a valid session.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := currentSession(c); !ok {
			return response.Unauthorized(c)
		}

		return c.Next()
	}
}

// PermissionsFromLocals returns the permissions resolved by a previous guard, if any.
func PermissionsFromLocals(c *fiber.Ctx) ([]string, bool) {
	granted, ok := c.Locals(permissionsLocalsKey).([]string)

	return granted, ok
}

func guard(authService *Service, required []string, decide decider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := currentSession(c)
		if !ok {
			return response.Unauthorized(c)
		}

		granted, err := authService.UserPermissions(c.UserContext(), sess.UserID)
		if err != nil {
			log.Error().Err(err).Uint64("user_id", sess.UserID).Strs("permissions", required).
				Msg("Failed to check permissions")

			return response.Internal(c)
		}

		allowed := decide(granted, required)
		recordDecision(required, allowed)

		if !allowed {
			log.Warn().Uint64("user_id", sess.UserID).Strs("permissions", required).
				Str("path", c.Path()).
				Msg("User lacks required permissions")

			return response.Forbidden(c)
		}

		c.Locals(permissionsLocalsKey, granted)

		return c.Next()
	}
}

// currentSession returns the session placed in locals by the web session
// middleware, falling back to the session cookie.
func currentSession(c *fiber.Ctx) (*session.Data, bool) {
	if data, ok := session.FromLocals(c); ok {
		return data, true
	}

	sessionID := c.Cookies(session.CookieName)
	if sessionID == "" {
		return nil, false
	}

	data := new(session.Data)
	if err := data.Read(sessionID); err != nil || data.UserID == 0 {
		return nil, false
	}

	session.SetLocals(c, data)

	return data, true
}
