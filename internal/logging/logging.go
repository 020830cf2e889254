// Package logging provides zerolog construction and context plumbing.
//
// Loggers are attached to a context.Context at the command or request
// boundary and retrieved with FromContext inside the engine packages, so
// calculators stay pure while still emitting data-quality warnings.
package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config controls logger construction.
type Config struct {
	// Level is a zerolog level string (trace, debug, info, warn, error).
	Level string `yaml:"level"`

	// Format selects "console" (human-readable) or "json" output.
	Format string `yaml:"format"`

	// File, when non-empty, duplicates output to the given path.
	File string `yaml:"file"`

	// Caller enables caller annotation on every event.
	Caller bool `yaml:"caller"`
}

// ctxKey is the private context key for logger storage.
type ctxKey struct{}

// New builds a zerolog.Logger from cfg. An unparseable level falls back to
// info rather than failing, so a typo in config never silences the process.
func New(cfg Config) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer = os.Stderr
	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}

	writers := []io.Writer{out}
	if cfg.File != "" {
		f, ferr := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if ferr != nil {
			return zerolog.Nop(), ferr
		}
		writers = append(writers, f)
	}

	ctxLogger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lvl).
		With().
		Timestamp()
	if cfg.Caller {
		ctxLogger = ctxLogger.Caller()
	}

	return ctxLogger.Logger(), nil
}

// WithContext returns a child context carrying logger.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger stored in ctx, or a no-op logger when none
// was attached. Engine code must never assume a logger is present.
func FromContext(ctx context.Context) zerolog.Logger {
	if logger, ok := ctx.Value(ctxKey{}).(zerolog.Logger); ok {
		return logger
	}
	return zerolog.Nop()
}
