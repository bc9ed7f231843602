package models

import "time"

// CatalogEntry mirrors one entry of the in-process permission catalog.
// The table is rewritten at startup for SQL reporting; it is never used for validation.
type CatalogEntry struct {
	// ID is the unique identifier for the row.
	ID uint `gorm:"primaryKey"`
	// Key is the permission key, e.g. "staff:read".
	Key string `gorm:"column:permission_key;uniqueIndex;size:100;not null"`
	// Category is the human-readable grouping label.
	Category string `gorm:"size:100;not null"`
	// Description explains what the permission grants.
	Description string `gorm:"size:255"`
	// CreatedAt is the timestamp when the row was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the row was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the CatalogEntry model.
func (CatalogEntry) TableName() string {
	return "permissions"
}
