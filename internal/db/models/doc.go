// Package models contains the gorm model definitions of PeopleDesk.
package models

// All returns every model that has to be migrated.
func All() []any {
	return []any{
		&Role{},
		&RolePermission{},
		&User{},
		&CatalogEntry{},
	}
}
