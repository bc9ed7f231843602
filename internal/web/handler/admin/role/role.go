// Package role registers the role management endpoints.
package role

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/peopledesk/peopledesk/internal/auth"
	rolestore "github.com/peopledesk/peopledesk/internal/db/controller/role"
	"github.com/peopledesk/peopledesk/internal/permission"
	"github.com/peopledesk/peopledesk/internal/rolemanagement"
	"github.com/peopledesk/peopledesk/internal/web/handler"
	"github.com/peopledesk/peopledesk/internal/web/response"
)

// Path is the base path of the role management endpoints.
const Path = "/role-management"

// Service is the role management handler service.
type Service struct {
	roles *rolemanagement.Service
}

// Handler is the role management handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init initializes the role management handler.
func (s *Service) Init(app *fiber.App, deps handler.Dependencies) error {
	if app == nil {
		return handler.ErrMissingDependency
	}

	if err := deps.Validate(); err != nil {
		return err
	}

	s.roles = rolemanagement.New(rolestore.New(deps.DB, deps.Catalog), deps.Catalog)

	app.Route(Path, func(router fiber.Router) {
		// registered before /:id so "permissions" is never parsed as an id
		router.Get("/permissions", auth.RequireAuthenticated(), s.ListPermissions)
		router.Get(handler.RootPath, auth.RequireAuthenticated(), s.List)
		router.Post(handler.RootPath, auth.RequirePermission(deps.Auth, permission.RolesCreate), s.Create)
		router.Get("/:id", auth.RequirePermission(deps.Auth, permission.RolesRead), s.Get)
		router.Put("/:id", auth.RequirePermission(deps.Auth, permission.RolesUpdate), s.Update)
		router.Delete("/:id", auth.RequirePermission(deps.Auth, permission.RolesDelete), s.Delete)
	})

	return nil
}

// ListPermissions returns the permission catalog.
func (s *Service) ListPermissions(c *fiber.Ctx) error {
	return response.OK(c, fiber.StatusOK, "", s.roles.ListAvailablePermissions())
}

// List returns all roles.
func (s *Service) List(c *fiber.Ctx) error {
	roles, err := s.roles.ListRoles(c.UserContext())
	if err != nil {
		return fail(c, err)
	}

	return response.OK(c, fiber.StatusOK, "", roles)
}

// Get returns one role.
func (s *Service) Get(c *fiber.Ctx) error {
	id, ok := roleID(c)
	if !ok {
		return invalidID(c)
	}

	view, err := s.roles.GetRole(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}

	return response.OK(c, fiber.StatusOK, "", view)
}

// Create creates a role.
func (s *Service) Create(c *fiber.Ctx) error {
	var req rolemanagement.CreateRequest

	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	view, err := s.roles.CreateRole(c.UserContext(), req)
	if err != nil {
		return fail(c, err)
	}

	return response.OK(c, fiber.StatusCreated, "Role created successfully", view)
}

// Update applies a partial update to a role.
func (s *Service) Update(c *fiber.Ctx) error {
	id, ok := roleID(c)
	if !ok {
		return invalidID(c)
	}

	var req rolemanagement.UpdateRequest

	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return invalidBody(c)
		}
	}

	view, err := s.roles.UpdateRole(c.UserContext(), id, req)
	if err != nil {
		return fail(c, err)
	}

	return response.OK(c, fiber.StatusOK, "Role updated successfully", view)
}

// Delete deletes a role.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, ok := roleID(c)
	if !ok {
		return invalidID(c)
	}

	if err := s.roles.DeleteRole(c.UserContext(), id); err != nil {
		var e *rolemanagement.Error
		// a protected or still assigned role is a bad delete request
		if errors.As(err, &e) && (e.Kind == rolemanagement.KindForbidden || e.Kind == rolemanagement.KindConflict) {
			return response.Fail(c, fiber.StatusBadRequest, string(e.Kind), e.Message)
		}

		return fail(c, err)
	}

	return response.OK(c, fiber.StatusOK, "Role deleted successfully", nil)
}

func roleID(c *fiber.Ctx) (uint, bool) {
	id, ok := handler.ParseID(c)
	if !ok || uint64(uint(id)) != id {
		return 0, false
	}

	return uint(id), true
}

func invalidID(c *fiber.Ctx) error {
	return response.Fail(c, fiber.StatusBadRequest, string(rolemanagement.KindValidation), "Invalid role ID")
}

func invalidBody(c *fiber.Ctx) error {
	return response.Fail(c, fiber.StatusBadRequest, string(rolemanagement.KindValidation), handler.MsgInvalidBody)
}

// fail writes the response of a failed role management operation.
func fail(c *fiber.Ctx, err error) error {
	var e *rolemanagement.Error
	if !errors.As(err, &e) {
		return err
	}

	return response.Fail(c, statusOf(e.Kind), string(e.Kind), e.Message)
}

func statusOf(kind rolemanagement.Kind) int {
	switch kind {
	case rolemanagement.KindValidation:
		return fiber.StatusBadRequest
	case rolemanagement.KindNotFound:
		return fiber.StatusNotFound
	case rolemanagement.KindConflict:
		return fiber.StatusConflict
	case rolemanagement.KindForbidden:
		return fiber.StatusForbidden
	case rolemanagement.KindInternal:
		return fiber.StatusInternalServerError
	}

	return fiber.StatusInternalServerError
}
