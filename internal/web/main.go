// Package web assembles the fiber application: middleware, session store,
// health and metrics endpoints, and the API handlers.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/peopledesk/peopledesk/internal/auth"
	"github.com/peopledesk/peopledesk/internal/config"
	accesslog "github.com/peopledesk/peopledesk/internal/logger/adapter/fiber"
	"github.com/peopledesk/peopledesk/internal/permission"
	"github.com/peopledesk/peopledesk/internal/web/handler"
	"github.com/peopledesk/peopledesk/internal/web/handler/admin/role"
	"github.com/peopledesk/peopledesk/internal/web/handler/admin/user"
	"github.com/peopledesk/peopledesk/internal/web/handler/login"
	"github.com/peopledesk/peopledesk/internal/web/handler/logout"
	authmiddleware "github.com/peopledesk/peopledesk/internal/web/middleware/auth"
	"github.com/peopledesk/peopledesk/internal/web/response"
	"github.com/peopledesk/peopledesk/internal/web/session"
)

const (
	// CheckAlivePath answers load balancer health checks.
	CheckAlivePath = "/checkalive"
	// MetricsPath exposes prometheus metrics.
	MetricsPath = "/metrics"
)

// ErrNilDependency is returned by New if the config, db or catalog is nil.
var ErrNilDependency = errors.New("config, db and catalog must not be nil")

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for a termination signal and shuts the server down gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	s.Shutdown()
}

// Shutdown marks the service as draining, waits the configured time and stops the server.
func (s *Service) Shutdown() {
	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// Alive reports whether the service accepts traffic.
func (s *Service) Alive() bool {
	return s.alive.Load()
}

// New creates a new web service. A nil storage keeps sessions in memory.
func New(cfg *config.Config, db *gorm.DB, catalog *permission.Catalog, storage fiber.Storage) (*Service, error) {
	if cfg == nil || db == nil || catalog == nil {
		return nil, ErrNilDependency
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			ErrorHandler:   errorHandler,
		},
	)

	service := &Service{
		cfg: cfg,
		App: app,
	}
	service.alive.Store(true)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Use(accesslog.New(accesslog.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
		Fields: func(c *fiber.Ctx, e *zerolog.Event) {
			if data, ok := session.FromLocals(c); ok {
				e.Uint64("user_id", data.UserID)
			}
		},
	}))

	session.Init(storage, cfg.Webserver.Session.ExpiryTime)

	app.Get(CheckAlivePath, service.checkAlive)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	app.Use(authmiddleware.Middleware)

	deps := handler.Dependencies{
		Config:  cfg,
		DB:      db,
		Catalog: catalog,
		Auth:    auth.NewService(db, catalog),
		Local:   auth.NewLocalProvider(db),
	}

	handlers := []handler.Service{
		&login.Handler,
		&logout.Handler,
		&role.Handler,
		&user.Handler,
	}

	for _, h := range handlers {
		if err := h.Init(app, deps); err != nil {
			return nil, err
		}
	}

	return service, nil
}

func (s *Service) checkAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.Status(fiber.StatusServiceUnavailable).SendString("shutting down")
	}

	return c.SendString("OK")
}

// errorHandler answers errors returned by handlers with the JSON envelope.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		if fe.Code >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
			return response.Internal(c)
		}

		return response.Fail(c, fe.Code, "http_error", fe.Message)
	}

	log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")

	return response.Internal(c)
}
