package models

import (
	"sort"
	"time"
)

// SuperAdminRoleName is the name of the distinguished role that can never be deleted.
// Protection is by exact name match.
const SuperAdminRoleName = "Super Admin"

// Role represents a named bundle of permissions that can be assigned to users.
// Its permission set lives only in the roles_permissions table.
type Role struct {
	// ID is the unique identifier for the role.
	ID uint `gorm:"primaryKey"`
	// Name is the unique, case-sensitive name of the role (e.g., "HR Manager").
	Name string `gorm:"uniqueIndex;size:100;not null"`
	// Description provides a human-readable description of the role's purpose.
	Description string `gorm:"size:255;not null;default:''"`
	// Version is incremented on every change and used for compare-and-swap updates.
	Version uint `gorm:"not null;default:1"`
	// Permissions are the normalized permission rows of this role.
	Permissions []RolePermission `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE"`
	// CreatedAt is the timestamp when the role was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the role was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Role model.
func (Role) TableName() string {
	return "roles"
}

// PermissionKeys returns the allowed permission keys of the role, sorted.
// Permissions must have been preloaded.
func (r *Role) PermissionKeys() []string {
	keys := make([]string, 0, len(r.Permissions))

	for _, p := range r.Permissions {
		if p.AllowDeny == Allow {
			keys = append(keys, p.Permission)
		}
	}

	sort.Strings(keys)

	return keys
}

// IsProtected reports whether the role is the undeletable super admin role.
func (r *Role) IsProtected() bool {
	return r.Name == SuperAdminRoleName
}
