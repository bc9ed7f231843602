// Package fiber provides a zerolog based access log middleware for fiber.
package fiber

import (
	"io"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/peopledesk/peopledesk/internal/logger"
)

// HeaderResponseTime carries the handling time in seconds.
const HeaderResponseTime = "X-Response-Time"

// Config implements fiber middleware struct.
type Config struct {
	// Next defines a function to skip this middleware when returned true.
	//
	// Optional. Default: nil
	Next func(c *fiber.Ctx) bool

	// Config of the logger.
	Config logger.Log

	// CacheControlError is sent with responses whose error could not be handled.
	//
	// Optional. Default: "max-age=0"
	CacheControlError string

	// CheckAliveURI is not logged when Config.DisableCheckAlive is set.
	CheckAliveURI string

	// Fields adds request specific fields, e.g. the authenticated user, to the access log line.
	//
	// Optional. Default: nil
	Fields func(c *fiber.Ctx, e *zerolog.Event)
}

// ConfigDefault is the default config for fiber.
var ConfigDefault = Config{ //nolint:gochecknoglobals
	CacheControlError: "max-age=0",
}

func configDefault(config ...Config) Config {
	if len(config) < 1 {
		return ConfigDefault
	}

	cfg := config[0]

	if cfg.CacheControlError == "" {
		cfg.CacheControlError = ConfigDefault.CacheControlError
	}

	return cfg
}

// New creates a fiber middleware writing one JSON line per request.
// Without an enabled output it only passes requests on.
func New(config ...Config) fiber.Handler {
	cfg := configDefault(config...)

	writers := accessWriters(cfg.Config)
	if len(writers) == 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	access := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().
		Timestamp().
		Logger().
		Level(zerolog.NoLevel)

	return func(c *fiber.Ctx) error {
		if cfg.Next != nil && cfg.Next(c) {
			return c.Next()
		}

		start := time.Now()

		// handle the error here so the logged status is the one sent
		chainErr := c.Next()
		if chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError) //nolint:errcheck
				c.Response().Header.Set(fiber.HeaderCacheControl, cfg.CacheControlError)
			}
		}

		elapsed := time.Since(start).Seconds()
		c.Response().Header.Set(HeaderResponseTime, strconv.FormatFloat(elapsed, 'f', 6, 64)) //nolint:mnd

		if cfg.Config.DisableCheckAlive && cfg.CheckAliveURI != "" && c.Path() == cfg.CheckAliveURI {
			return nil
		}

		e := access.Log().
			Str("ip", c.IP()).
			Int("status", c.Response().StatusCode()).
			Float64("elapsed", elapsed).
			Str("method", c.Method()).
			Str("uri", requestURI(c)).
			Bytes("host", c.Request().Host()).
			Str("forwarded_for", c.Get(fiber.HeaderXForwardedFor)).
			Str("user_agent", c.Get(fiber.HeaderUserAgent)).
			Str("referer", c.Get(fiber.HeaderReferer))

		if cfg.Fields != nil {
			cfg.Fields(c, e)
		}

		if chainErr != nil {
			e.Err(chainErr)
		}

		e.Send()

		return nil
	}
}

// requestURI returns the path as sent by the client. fasthttp normalizes
// c.Path(), e.g. /a//b becomes /a/b.
func requestURI(c *fiber.Ctx) string {
	return string(c.Request().RequestURI())
}

func accessWriters(cfg logger.Log) []io.Writer {
	var writers []io.Writer

	if cfg.File.Enabled {
		if err := os.MkdirAll(cfg.File.Path, 0o750); err != nil { //nolint:mnd
			log.Error().Err(err).Str("path", cfg.File.Path).Msg("can't create access log directory")
		} else {
			writers = append(writers, logger.NewRollingFile(cfg.File.Path, cfg.File.Access))
		}
	}

	if cfg.Console.Enabled && cfg.EnableAccessLogToConsole {
		var out io.Writer = os.Stdout
		if cfg.Console.UseConsoleWriter {
			out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: zerolog.TimeFieldFormat}
		}

		writers = append(writers, out)
	}

	return writers
}
