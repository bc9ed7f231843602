package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopledesk/peopledesk/internal/config"
	"github.com/peopledesk/peopledesk/internal/db/models"
)

func TestDialector(t *testing.T) {
	_, err := Dialector(nil)
	require.ErrorIs(t, err, ErrConfigNil)

	for _, engine := range []string{config.EngineMySQL, config.EnginePostgres, config.EngineSQLite} {
		d, errD := Dialector(&config.Config{DB: config.DB{Engine: engine, Name: "x"}})
		require.NoError(t, errD, engine)
		assert.Equal(t, engine, d.Name())
	}

	_, err = Dialector(&config.Config{DB: config.DB{Engine: "oracle"}})
	require.ErrorIs(t, err, config.ErrUnsupportedEngine)
}

func TestOpenAndMigrateSQLite(t *testing.T) {
	cfg := &config.Config{
		DB: config.DB{
			Engine:       config.EngineSQLite,
			Name:         filepath.Join(t.TempDir(), "test.db"),
			MaxOpenConns: 1,
		},
	}

	gdb, err := Open(cfg)
	require.NoError(t, err)

	require.NoError(t, Migrate(gdb))

	for _, model := range models.All() {
		assert.True(t, gdb.Migrator().HasTable(model))
	}

	var foreignKeys int
	require.NoError(t, gdb.Raw("PRAGMA foreign_keys").Scan(&foreignKeys).Error)
	assert.Equal(t, 1, foreignKeys)

	var ddl string
	require.NoError(t, gdb.Raw("SELECT sql FROM sqlite_master WHERE type = 'table' AND name = 'users'").Scan(&ddl).Error)
	assert.Contains(t, ddl, "REFERENCES `roles`(`id`)")
	assert.Contains(t, ddl, "ON DELETE RESTRICT")

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}
