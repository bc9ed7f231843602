package models

import "time"

// AllowDeny marks a role permission row as a grant or a (reserved) negative grant.
type AllowDeny string

const (
	// Allow grants the permission. It is the only value written today.
	Allow AllowDeny = "allow"
	// Deny is reserved for negative grants and never written.
	Deny AllowDeny = "deny"
)

// RolePermission is one (role, permission key) pairing.
// The permission key is validated against the in-process catalog only; it is
// not a foreign key into the permissions table.
type RolePermission struct {
	// ID is the unique identifier for the row.
	ID uint `gorm:"primaryKey"`
	// RoleID is the ID of the role owning this row.
	RoleID uint `gorm:"column:role_id;not null;uniqueIndex:idx_role_permission"`
	// Permission is the permission key, e.g. "staff:read".
	Permission string `gorm:"column:permission;size:100;not null;uniqueIndex:idx_role_permission"`
	// AllowDeny is the grant type of this row.
	AllowDeny AllowDeny `gorm:"column:allow_deny;type:varchar(10);not null;default:'allow'"`
	// CreatedAt is the timestamp when the row was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the row was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the RolePermission model.
func (RolePermission) TableName() string {
	return "roles_permissions"
}
