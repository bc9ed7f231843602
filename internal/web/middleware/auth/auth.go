package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/peopledesk/peopledesk/internal/web/response"
	"github.com/peopledesk/peopledesk/internal/web/session"
)

// PublicPaths are reachable without a session.
var PublicPaths = []string{ //nolint:gochecknoglobals
	"/login",
	"/logout",
	"/checkalive",
	"/metrics",
}

// Middleware is a Fiber middleware that checks for user authentication.
func Middleware(c *fiber.Ctx) error {
	if IsPublic(c) {
		return c.Next()
	}

	sessionID := c.Cookies(session.CookieName)
	if sessionID == "" {
		return response.Unauthorized(c)
	}

	sessData := new(session.Data)
	if err := sessData.Read(sessionID); err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			log.Error().Err(err).Msg("failed to read session")
		}

		return response.Unauthorized(c)
	}

	if sessData.UserID == 0 {
		return response.Unauthorized(c)
	}

	session.SetLocals(c, sessData)

	return c.Next()
}

// IsPublic reports whether the request targets a path that needs no session.
func IsPublic(c *fiber.Ctx) bool {
	path := strings.ToLower(c.Path())

	for _, p := range PublicPaths {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}

	return false
}
