// Package logging builds the process loggers. Engine packages stay log-free;
// logging happens at the command and API rim.
package logging

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New creates a component-tagged logger. The APP_ENV environment variable
// selects the output format: "dev" gets a human console writer, everything
// else gets JSON lines for log shipping.
func New(component string) zerolog.Logger {
	env := strings.ToLower(os.Getenv("APP_ENV"))
	if env == "dev" {
		writer := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		return zerolog.New(writer).With().Timestamp().Str("component", component).Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Str("component", component).Logger()
}

// Level parses LOG_LEVEL, defaulting to info.
func Level() zerolog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
