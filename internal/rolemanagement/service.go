// Package rolemanagement implements the role CRUD use cases exposed to API callers.
//
// It validates request bodies, checks permission keys against the injected
// catalog, delegates persistence to the role store and converts every failure
// into an *Error with a Kind and a message that is safe to show.
package rolemanagement

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/peopledesk/peopledesk/internal/db/controller/role"
	"github.com/peopledesk/peopledesk/internal/db/models"
	"github.com/peopledesk/peopledesk/internal/permission"
)

// RoleStore is the persistence used by Service. *role.Store implements it.
type RoleStore interface {
	Create(ctx context.Context, in role.Input) (*models.Role, error)
	Get(ctx context.Context, id uint) (*models.Role, error)
	List(ctx context.Context) ([]models.Role, error)
	Update(ctx context.Context, id uint, patch role.Patch) (*models.Role, error)
	Delete(ctx context.Context, id uint) error
}

// Service orchestrates role management.
type Service struct {
	store    RoleStore
	catalog  *permission.Catalog
	validate *validator.Validate
}

// New creates a role management service.
func New(store RoleStore, catalog *permission.Catalog) *Service {
	return &Service{
		store:    store,
		catalog:  catalog,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// ListAvailablePermissions returns the whole catalog and its categories.
func (s *Service) ListAvailablePermissions() CatalogView {
	return CatalogView{
		Permissions: s.catalog.ListAll(),
		Categories:  s.catalog.Categories(),
	}
}

// ListRoles returns all roles ordered by name.
func (s *Service) ListRoles(ctx context.Context) ([]RoleView, error) {
	roles, err := s.store.List(ctx)
	if err != nil {
		return nil, fromStore("list", err)
	}

	views := make([]RoleView, 0, len(roles))
	for i := range roles {
		views = append(views, newRoleView(&roles[i]))
	}

	return views, nil
}

// GetRole returns a single role.
func (s *Service) GetRole(ctx context.Context, id uint) (*RoleView, error) {
	r, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fromStore("get", err)
	}

	view := newRoleView(r)

	return &view, nil
}

// CreateRole creates a role. The name is trimmed and must not be empty.
func (s *Service) CreateRole(ctx context.Context, req CreateRequest) (*RoleView, error) {
	req.Name = strings.TrimSpace(req.Name)

	if err := s.validate.Struct(req); err != nil {
		return nil, describe(err)
	}

	if err := s.checkPermissions(req.Permissions); err != nil {
		return nil, err
	}

	r, err := s.store.Create(ctx, role.Input{
		Name:        req.Name,
		Description: req.Description,
		Permissions: req.Permissions,
	})
	if err != nil {
		return nil, fromStore("create", err)
	}

	view := newRoleView(r)

	return &view, nil
}

// UpdateRole applies a partial update. A request without fields returns the role unchanged.
func (s *Service) UpdateRole(ctx context.Context, id uint, req UpdateRequest) (*RoleView, error) {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}

	if err := s.validate.Struct(req); err != nil {
		return nil, describe(err)
	}

	r, err := s.store.Update(ctx, id, role.Patch{
		Name:        req.Name,
		Description: req.Description,
		Permissions: req.Permissions,
	})
	if err != nil {
		e := fromStore("update", err)
		if e.Kind == KindValidation && req.Permissions != nil {
			if key, found := permission.FirstInvalid(s.catalog, *req.Permissions); found {
				e.Message = invalidPermission(key)
			}
		}

		return nil, e
	}

	view := newRoleView(r)

	return &view, nil
}

// DeleteRole deletes a role that is neither protected nor assigned to users.
func (s *Service) DeleteRole(ctx context.Context, id uint) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fromStore("delete", err)
	}

	return nil
}

func (s *Service) checkPermissions(keys []string) error {
	if key, found := permission.FirstInvalid(s.catalog, keys); found {
		return validationError(invalidPermission(key))
	}

	return nil
}

func invalidPermission(key string) string {
	return "Invalid permission: " + key
}

// describe turns the first validator failure into a readable message.
func describe(err error) *Error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return validationError("Invalid request")
	}

	fe := verrs[0]
	field := strings.ToLower(fe.Field())

	switch fe.Tag() {
	case "required":
		return validationError("Role " + field + " is required")
	case "min":
		return validationError("Role " + field + " must not be empty")
	case "max":
		return validationError("Role " + field + " must be at most " + fe.Param() + " characters")
	}

	return validationError("Invalid role " + field)
}
