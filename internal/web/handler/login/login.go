package login

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/peopledesk/peopledesk/internal/auth"
	"github.com/peopledesk/peopledesk/internal/config"
	"github.com/peopledesk/peopledesk/internal/web/handler"
	"github.com/peopledesk/peopledesk/internal/web/response"
	"github.com/peopledesk/peopledesk/internal/web/session"
)

const (
	// Path is the path of the login endpoint.
	Path = "/login"

	// MePath returns the logged-in user and their permissions.
	MePath = "/me"
)

// Request is the body of a login.
type Request struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=128"`
}

// Me describes the logged-in user.
type Me struct {
	ID          uint64   `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	RoleID      uint     `json:"role_id"`
	Permissions []string `json:"permissions"`
}

// Service is the login handler service.
type Service struct {
	cfg       *config.Config
	auth      *auth.Service
	local     *auth.LocalProvider
	validator *validator.Validate
}

// Handler is the login handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, deps handler.Dependencies) error {
	if app == nil {
		return handler.ErrMissingDependency
	}

	if err := deps.Validate(); err != nil {
		return err
	}

	s.cfg = deps.Config
	s.auth = deps.Auth
	s.local = deps.Local
	s.validator = validator.New(validator.WithRequiredStructEnabled())

	app.Post(Path, s.Post)
	app.Get(MePath, auth.RequireAuthenticated(), s.Me)

	return nil
}

// Post checks the credentials and opens a session.
func (s *Service) Post(c *fiber.Ctx) error {
	req := new(Request)

	if err := c.BodyParser(req); err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "validation_error", handler.MsgInvalidBody)
	}

	if err := s.validator.Struct(req); err != nil {
		log.Debug().Err(err).Msg(ErrInvalidFormData.Error())

		return response.Fail(c, fiber.StatusBadRequest, "validation_error", "Username and password are required")
	}

	user, err := s.local.Authenticate(c.UserContext(), req.Username, req.Password)

	switch {
	case err == nil:
	case errors.Is(err, auth.ErrUserNotFound),
		errors.Is(err, auth.ErrInvalidPassword),
		errors.Is(err, auth.ErrUserAccountDisabled):
		log.Info().Str("username", req.Username).Err(err).Msg("login rejected")

		return response.Fail(c, fiber.StatusUnauthorized, "unauthorized", "Invalid username or password")
	default:
		log.Error().Err(err).Str("username", req.Username).Msg("failed to authenticate user")

		return response.Internal(c)
	}

	sessionID, err := session.GenerateSessionID()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate session ID")
		return response.Internal(c)
	}

	userSession := &session.Data{
		UserID:   user.ID,
		Username: user.Username,
	}

	if err = userSession.Write(sessionID, s.cfg.Webserver.Session.ExpiryTime); err != nil {
		log.Error().Err(err).Msg("failed to write session")
		return response.Internal(c)
	}

	// set login cookie
	cookieSettings := &fiber.Cookie{
		Name:     session.CookieName,
		Value:    sessionID,
		MaxAge:   int(s.cfg.Webserver.Session.ExpiryTime.Seconds()),
		Secure:   true,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}

	if s.cfg.DevMode {
		cookieSettings.Secure = false
	}

	c.Cookie(cookieSettings)

	log.Info().Uint64("user_id", user.ID).Str("username", user.Username).Msg("user logged in")

	return response.OK(c, fiber.StatusOK, "Logged in", fiber.Map{
		"id":       user.ID,
		"username": user.Username,
	})
}

// Me returns the logged-in user and their effective permissions.
func (s *Service) Me(c *fiber.Ctx) error {
	sess, ok := session.FromLocals(c)
	if !ok {
		return response.Unauthorized(c)
	}

	user, err := s.local.GetUserByID(c.UserContext(), sess.UserID)
	if errors.Is(err, auth.ErrUserNotFound) {
		return response.Unauthorized(c)
	}

	if err != nil {
		log.Error().Err(err).Uint64("user_id", sess.UserID).Msg("failed to load current user")
		return response.Internal(c)
	}

	granted, err := s.auth.UserPermissions(c.UserContext(), user.ID)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("failed to load permissions")
		return response.Internal(c)
	}

	return response.OK(c, fiber.StatusOK, "", Me{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		RoleID:      user.RoleID,
		Permissions: granted,
	})
}
