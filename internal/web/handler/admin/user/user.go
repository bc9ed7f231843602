// Package user provides the user account endpoints used to assign roles.
package user

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/peopledesk/peopledesk/internal/auth"
	"github.com/peopledesk/peopledesk/internal/db/models"
	"github.com/peopledesk/peopledesk/internal/permission"
	"github.com/peopledesk/peopledesk/internal/web/handler"
	"github.com/peopledesk/peopledesk/internal/web/response"
)

const (
	// Path is the base path for user management.
	Path = handler.RootPath + "users"

	// DefaultPageSize for pagination.
	DefaultPageSize = 25

	maxPageSize = 100

	kindValidation = "validation_error"
)

// CreateRequest is the body of a user creation.
type CreateRequest struct {
	Username  string `json:"username"   validate:"required,min=3,max=100"`
	Email     string `json:"email"      validate:"required,email,max=255"`
	Password  string `json:"password"   validate:"required,min=8,max=128"`
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name"  validate:"max=100"`
	RoleID    uint   `json:"role_id"    validate:"required"`
}

// AssignRoleRequest is the body of a role assignment.
type AssignRoleRequest struct {
	RoleID uint `json:"role_id" validate:"required"`
}

// View is the representation of a user returned to callers.
type View struct {
	ID        uint64 `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Active    bool   `json:"active"`
	RoleID    uint   `json:"role_id"`
}

// Page is one page of users.
type Page struct {
	Users    []View `json:"users"`
	Total    int64  `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

// Service provides the user endpoints.
type Service struct {
	local     *auth.LocalProvider
	validator *validator.Validate
}

// Handler is the exported instance.
var Handler = Service{} //nolint:gochecknoglobals

// Init registers routes.
func (s *Service) Init(app *fiber.App, deps handler.Dependencies) error {
	if app == nil {
		return handler.ErrMissingDependency
	}

	if err := deps.Validate(); err != nil {
		return err
	}

	s.local = deps.Local
	s.validator = validator.New(validator.WithRequiredStructEnabled())

	app.Get(Path, auth.RequirePermission(deps.Auth, permission.UsersRead), s.List)
	app.Post(Path, auth.RequirePermission(deps.Auth, permission.UsersCreate), s.Create)
	app.Put(Path+"/:id/role", auth.RequirePermission(deps.Auth, permission.UsersUpdate), s.AssignRole)

	return nil
}

// NewView converts a user model.
func NewView(u *models.User) View {
	return View{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Active:    u.Active,
		RoleID:    u.RoleID,
	}
}

// List returns users with simple pagination.
func (s *Service) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	pageSize := c.QueryInt("pageSize", DefaultPageSize)
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = DefaultPageSize
	}

	users, total, err := s.local.ListUsers(c.UserContext(), pageSize, (page-1)*pageSize)
	if err != nil {
		log.Error().Err(err).Msg("failed to list users")
		return response.Internal(c)
	}

	views := make([]View, 0, len(users))
	for i := range users {
		views = append(views, NewView(&users[i]))
	}

	return response.OK(c, fiber.StatusOK, "", Page{
		Users:    views,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// Create creates a local user holding an existing role.
func (s *Service) Create(c *fiber.Ctx) error {
	var req CreateRequest

	if err := c.BodyParser(&req); err != nil {
		return response.Fail(c, fiber.StatusBadRequest, kindValidation, handler.MsgInvalidBody)
	}

	if err := s.validator.Struct(req); err != nil {
		return response.Fail(c, fiber.StatusBadRequest, kindValidation, describe(err))
	}

	user, err := s.local.CreateUser(c.UserContext(), auth.NewUser{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		RoleID:    req.RoleID,
	})
	if err != nil {
		return fail(c, err)
	}

	log.Info().Uint64("user_id", user.ID).Uint("role_id", user.RoleID).Msg("user created")

	return response.OK(c, fiber.StatusCreated, "User created successfully", NewView(user))
}

// AssignRole replaces the role of a user.
func (s *Service) AssignRole(c *fiber.Ctx) error {
	id, ok := handler.ParseID(c)
	if !ok {
		return response.Fail(c, fiber.StatusBadRequest, kindValidation, "Invalid user ID")
	}

	var req AssignRoleRequest

	if err := c.BodyParser(&req); err != nil {
		return response.Fail(c, fiber.StatusBadRequest, kindValidation, handler.MsgInvalidBody)
	}

	if err := s.validator.Struct(req); err != nil {
		return response.Fail(c, fiber.StatusBadRequest, kindValidation, describe(err))
	}

	if err := s.local.AssignRole(c.UserContext(), id, req.RoleID); err != nil {
		return fail(c, err)
	}

	log.Info().Uint64("user_id", id).Uint("role_id", req.RoleID).Msg("role assigned")

	return response.OK(c, fiber.StatusOK, "Role assigned successfully", nil)
}

func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, auth.ErrRoleNotFound):
		return response.Fail(c, fiber.StatusBadRequest, kindValidation, "Role not found")
	case errors.Is(err, auth.ErrUserNotFound):
		return response.Fail(c, fiber.StatusNotFound, "not_found", "User not found")
	case errors.Is(err, auth.ErrUserNameOrEmailExists):
		return response.Fail(c, fiber.StatusConflict, "conflict", "A user with this username or email already exists")
	}

	log.Error().Err(err).Msg("user management failed")

	return response.Internal(c)
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request"
	}

	fe := verrs[0]

	return "Invalid value for " + fe.Field() + " (" + fe.Tag() + ")"
}
