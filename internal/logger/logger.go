// Package logger configures the process-wide zerolog logger.
package logger

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup initializes the global logger. Level comes from LOG_LEVEL; an
// unset or invalid value falls back to info.
func Setup() {
	level, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	logger := log.With().Str("service", "gallery-gateway").Logger().Level(level)

	log.Logger = logger
	zerolog.DefaultContextLogger = &logger
}
