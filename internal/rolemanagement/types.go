package rolemanagement

import (
	"time"

	"github.com/peopledesk/peopledesk/internal/db/models"
	"github.com/peopledesk/peopledesk/internal/permission"
)

// CreateRequest is the body of a role creation.
type CreateRequest struct {
	Name        string   `json:"name"        validate:"required,max=100"`
	Description string   `json:"description" validate:"max=255"`
	Permissions []string `json:"permissions"`
}

// UpdateRequest is the body of a partial role update. Absent fields are left unchanged.
// An empty permissions array removes every permission from the role.
type UpdateRequest struct {
	Name        *string   `json:"name,omitempty"        validate:"omitnil,min=1,max=100"`
	Description *string   `json:"description,omitempty" validate:"omitnil,max=255"`
	Permissions *[]string `json:"permissions,omitempty"`
}

// RoleView is the representation of a role returned to callers.
type RoleView struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CatalogView lists the permissions a role may hold.
type CatalogView struct {
	Permissions []permission.Permission `json:"permissions"`
	Categories  []string                `json:"categories"`
}

func newRoleView(r *models.Role) RoleView {
	return RoleView{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Permissions: r.PermissionKeys(),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
