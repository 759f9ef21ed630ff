package shared

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/lox/handreplay/internal/config"
)

// SetupLogger configures zerolog with pretty console output
func SetupLogger(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// SetupStructuredLogger configures zerolog for structured (JSON) output
func SetupStructuredLogger(level zerolog.Level) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	return zerolog.New(os.Stderr).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// LoggerFromConfig builds the logger described by the server block. Debug
// overrides the configured level.
func LoggerFromConfig(s *config.ServerSettings, debug bool) zerolog.Logger {
	level, err := zerolog.ParseLevel(s.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	if debug {
		level = zerolog.DebugLevel
	}
	if s.LogFormat == "json" {
		return SetupStructuredLogger(level)
	}
	return SetupLogger(level)
}
