// Package logger configures the global zerolog logger and its outputs.
package logger

import (
	"io"
	"os"
	"path"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Outputs routes log events to one writer per severity band:
// trace, debug and info, warn, error and above.
type Outputs struct {
	Trace io.Writer
	Info  io.Writer
	Warn  io.Writer
	Error io.Writer
}

// Write implements io.Writer for events without a level.
func (o Outputs) Write(p []byte) (int, error) {
	return o.Info.Write(p) //nolint:wrapcheck
}

// WriteLevel implements zerolog.LevelWriter.
func (o Outputs) WriteLevel(l zerolog.Level, p []byte) (int, error) {
	if l == zerolog.Disabled {
		return len(p), nil
	}

	return o.For(l).Write(p) //nolint:wrapcheck
}

// For returns the writer of level l.
func (o Outputs) For(l zerolog.Level) io.Writer {
	switch l {
	case zerolog.TraceLevel:
		return o.Trace
	case zerolog.WarnLevel:
		return o.Warn
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		return o.Error
	default:
		return o.Info
	}
}

// Init replaces the global logger according to cfg.
// With neither console nor file output enabled every event is dropped.
func Init(cfg Log) error {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return errors.Wrapf(err, "loglevel %s is not supported", cfg.LogLevel)
	}

	if cfg.ServiceName == "" {
		return ErrServiceNameIsEmpty
	}

	if cfg.AppName == "" {
		return ErrAppNameIsEmpty
	}

	var writers []io.Writer

	if cfg.Console.Enabled {
		writers = append(writers, NewConsoleWriter(cfg))
	}

	if cfg.File.Enabled {
		files, errFiles := newFileOutputs(cfg.File)
		if errFiles != nil {
			return errFiles
		}

		writers = append(writers, files)
	}

	zerolog.SetGlobalLevel(level)

	ctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Hook(NewPrometheusHook(cfg.ServiceName)).
		With().
		Timestamp().
		Str("app", cfg.AppName).
		Str("service", cfg.ServiceName)

	if cfg.ReportCaller {
		ctx = ctx.Caller()

		// stack traces of pkg/errors are only rendered at trace level
		if level == zerolog.TraceLevel {
			zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack //nolint:reassign
			ctx = ctx.Stack()
		}
	}

	log.Logger = ctx.Logger()

	return nil
}

func newFileOutputs(cfg LogFile) (Outputs, error) {
	if err := os.MkdirAll(cfg.Path, 0o750); err != nil { //nolint:mnd
		return Outputs{}, errors.Wrapf(err, "can't create log directory %s", cfg.Path)
	}

	return Outputs{
		Trace: NewRollingFile(cfg.Path, cfg.Trace),
		Info:  NewRollingFile(cfg.Path, cfg.Info),
		Warn:  NewRollingFile(cfg.Path, cfg.Warn),
		Error: NewRollingFile(cfg.Path, cfg.Error),
	}, nil
}

// NewRollingFile returns a lumberjack writer for file inside dir.
func NewRollingFile(dir string, file RollingFile) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path.Join(dir, file.Name),
		MaxSize:    file.MaxSize,
		MaxAge:     file.MaxAge,
		MaxBackups: file.MaxBackups,
	}
}

// NewConsoleWriter writes info and debug to stdout and everything else to stderr,
// as JSON or, with UseConsoleWriter, human readable.
func NewConsoleWriter(cfg Log) io.Writer {
	wrap := func(f *os.File) io.Writer {
		if !cfg.Console.UseConsoleWriter {
			return f
		}

		return zerolog.ConsoleWriter{Out: f, TimeFormat: zerolog.TimeFieldFormat}
	}

	stderr := wrap(os.Stderr)

	return Outputs{
		Trace: stderr,
		Info:  wrap(os.Stdout),
		Warn:  stderr,
		Error: stderr,
	}
}
