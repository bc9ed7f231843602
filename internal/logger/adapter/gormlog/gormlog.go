// Package gormlog routes gorm SQL logging into zerolog.
package gormlog

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	gormlogger "gorm.io/gorm/logger"
)

// DefaultSlowThreshold is used when no threshold is configured.
const DefaultSlowThreshold = 200 * time.Millisecond

// Logger implements gorm's logger.Interface on top of a zerolog logger.
// Statements are logged at debug level, slow statements are warnings and
// failed statements are errors. Record-not-found is not an error.
type Logger struct {
	logger        zerolog.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

// New returns a gorm logger writing to the global zerolog logger.
// A zero slowThreshold uses DefaultSlowThreshold.
func New(slowThreshold time.Duration) *Logger {
	if slowThreshold <= 0 {
		slowThreshold = DefaultSlowThreshold
	}

	return &Logger{
		logger:        log.Logger.With().Str("component", "gorm").Logger(),
		level:         gormlogger.Info,
		slowThreshold: slowThreshold,
	}
}

// WithLogger returns a copy writing to l.
func (g *Logger) WithLogger(l zerolog.Logger) *Logger {
	c := *g
	c.logger = l

	return &c
}

// LogMode implements logger.Interface.
func (g *Logger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	c := *g
	c.level = level

	return &c
}

// Info implements logger.Interface.
func (g *Logger) Info(_ context.Context, msg string, args ...any) {
	if g.level >= gormlogger.Info {
		g.logger.Info().Msgf(msg, args...)
	}
}

// Warn implements logger.Interface.
func (g *Logger) Warn(_ context.Context, msg string, args ...any) {
	if g.level >= gormlogger.Warn {
		g.logger.Warn().Msgf(msg, args...)
	}
}

// Error implements logger.Interface.
func (g *Logger) Error(_ context.Context, msg string, args ...any) {
	if g.level >= gormlogger.Error {
		g.logger.Error().Msgf(msg, args...)
	}
}

// Trace implements logger.Interface.
func (g *Logger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)

	var event *zerolog.Event

	switch {
	case err != nil && !errors.Is(err, gormlogger.ErrRecordNotFound) && g.level >= gormlogger.Error:
		event = g.logger.Error().Err(err)
	case elapsed > g.slowThreshold && g.level >= gormlogger.Warn:
		event = g.logger.Warn().Bool("slow", true)
	case g.level >= gormlogger.Info:
		event = g.logger.Debug()
	default:
		return
	}

	sql, rows := fc()

	event.Dur("elapsed", elapsed).
		Str("sql", sql).
		Int64("rows", rows).
		Msg("sql")
}
