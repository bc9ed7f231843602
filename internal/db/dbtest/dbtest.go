// Package dbtest opens migrated in-memory databases for tests.
package dbtest

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/peopledesk/peopledesk/internal/db/models"
)

// Open creates an in-memory SQLite database with every model migrated.
// The pool is limited to one connection so all queries see the same database.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Discard,
		TranslateError: true,
	})
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(models.All()...)
	require.NoError(t, err, "failed to migrate test database")

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

// CreateUser inserts an active user holding roleID.
func CreateUser(t *testing.T, db *gorm.DB, username string, roleID uint) *models.User {
	t.Helper()

	user := &models.User{
		Active:   true,
		Username: username,
		Email:    username + "@example.com",
		RoleID:   roleID,
	}
	require.NoError(t, db.Create(user).Error, "failed to seed user")

	return user
}

// EnableForeignKeys turns on foreign key enforcement, which SQLite leaves off
// by default. The single pooled connection keeps the setting for the test.
func EnableForeignKeys(t *testing.T, db *gorm.DB) {
	t.Helper()

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error, "failed to enable foreign keys")
}
