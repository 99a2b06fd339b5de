// Package logger builds the application's zerolog logger.
package logger

import (
	"io"
	"time"

	"github.com/rs/zerolog"

	"projectmgr/internal/config"
)

// New returns a logger writing to w at the configured level and format.
// Production always logs JSON.
func New(cfg *config.Config, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	if cfg.Logging.Format == "console" && !cfg.IsProduction() {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	return zerolog.New(w).Level(level).With().
		Timestamp().
		Str("env", cfg.Env).
		Logger()
}
