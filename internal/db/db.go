// Package db opens the gorm connection for the configured engine.
package db

import (
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/peopledesk/peopledesk/internal/config"
	"github.com/peopledesk/peopledesk/internal/db/dsn"
	"github.com/peopledesk/peopledesk/internal/db/models"
	"github.com/peopledesk/peopledesk/internal/logger/adapter/gormlog"
)

// ErrConfigNil is returned when no config is given.
var ErrConfigNil = errors.New("config is nil")

// Dialector returns the gorm dialector of the configured engine.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	source := dsn.Create(cfg)

	switch cfg.DB.Engine {
	case config.EngineMySQL:
		return mysql.Open(source), nil
	case config.EnginePostgres:
		return postgres.Open(source), nil
	case config.EngineSQLite:
		return sqlite.Open(source), nil
	}

	return nil, errors.Wrapf(config.ErrUnsupportedEngine, "%q", cfg.DB.Engine)
}

// Open connects to the database and applies the pool settings.
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	slow := time.Duration(cfg.Log.SlowQueryThreshold) * time.Millisecond

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlog.New(slow),
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get database handle")
	}

	if cfg.DB.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	}

	if cfg.DB.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	}

	if cfg.DB.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)
	}

	return db, nil
}

// Migrate creates or updates the tables of all models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return errors.Wrap(err, "failed to migrate database")
	}

	return nil
}
