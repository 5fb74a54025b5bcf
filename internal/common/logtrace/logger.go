// Package logtrace provides logging and tracing utilities for the application.
// It integrates with zerolog for structured logging and carries request ids
// through contexts.
package logtrace

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultLevel keeps the command line output free of routine logs.
const DefaultLevel = zerolog.WarnLevel

// InitLogger initializes the global logger with Unix timestamp format.
// Configures zerolog to output to stderr at the given level. An empty or
// unknown level falls back to DefaultLevel.
func InitLogger(level string) {
	InitLoggerWithWriter(os.Stderr, level)
}

// InitLoggerWithWriter is InitLogger with an explicit destination.
func InitLoggerWithWriter(w io.Writer, level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(ParseLevel(level))
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}

// ParseLevel parses a zerolog level name, ignoring case.
func ParseLevel(level string) zerolog.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		return DefaultLevel
	}
	l, err := zerolog.ParseLevel(level)
	if err != nil {
		return DefaultLevel
	}
	return l
}
