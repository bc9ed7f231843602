// Package daemon wires configuration, logging, database, seeding and the web
// service into the running application.
package daemon

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/peopledesk/peopledesk/internal/config"
	"github.com/peopledesk/peopledesk/internal/db"
	"github.com/peopledesk/peopledesk/internal/logger"
	"github.com/peopledesk/peopledesk/internal/permission"
	"github.com/peopledesk/peopledesk/internal/web"
)

// ErrConfigNil is returned by New without a config.
var ErrConfigNil = errors.New("config is nil")

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	db         *gorm.DB
	webService *web.Service
}

// Start starts the web service and blocks until it is shut down.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	addr := fmt.Sprintf(":%d", d.cfg.Webserver.Port)
	log.Info().Str("addr", addr).Msg("starting web service")

	return d.webService.Start(addr)
}

// Close releases the database connection.
func (d *Daemon) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// New creates a new Daemon: it initializes logging, opens and migrates the
// database, seeds the catalog and the initial administrator and builds the web service.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	zerolog.ErrorHandler = logger.ErrorHandler

	if err := logger.Init(cfg.Log); err != nil {
		return nil, errors.Wrap(err, "failed to init logger")
	}

	conn, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(conn); err != nil {
		return nil, err
	}

	catalog := permission.Default()

	if err = Seed(context.Background(), cfg, conn, catalog); err != nil {
		return nil, err
	}

	webService, err := web.New(cfg, conn, catalog, sessionStorage(cfg))
	if err != nil {
		return nil, err
	}

	return &Daemon{
		cfg:        cfg,
		db:         conn,
		webService: webService,
	}, nil
}

// sessionStorage returns the session storage for the configured engine.
// sqlite keeps sessions in memory.
func sessionStorage(cfg *config.Config) fiber.Storage {
	switch cfg.DB.Engine {
	case config.EngineMySQL:
		log.Info().Str("table", cfg.Webserver.Session.Table).Msg("using mysql session storage")

		return sessionmysql.New(sessionmysql.Config{
			Host:     cfg.DB.Host,
			Port:     cfg.DB.Port,
			Username: cfg.DB.User,
			Password: cfg.DB.Password,
			Database: cfg.DB.Name,
			Table:    cfg.Webserver.Session.Table,
		})
	case config.EnginePostgres:
		log.Info().Str("table", cfg.Webserver.Session.Table).Msg("using postgres session storage")

		return sessionpostgres.New(sessionpostgres.Config{
			Host:     cfg.DB.Host,
			Port:     cfg.DB.Port,
			Username: cfg.DB.User,
			Password: cfg.DB.Password,
			Database: cfg.DB.Name,
			Table:    cfg.Webserver.Session.Table,
		})
	}

	log.Warn().Msg("sessions are kept in memory and are lost on restart")

	return nil
}
