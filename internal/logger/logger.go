// Package logger builds the zerolog logger shared by the scraper, the
// reporter and the CLI.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"go-linkedin-doppelganger/internal/config"
)

// New creates a logger writing to stderr.
func New(cfg config.LoggingConfig) (zerolog.Logger, error) {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter creates a logger writing to w. Pretty output uses the
// zerolog console writer, otherwise one JSON object per line.
func NewWithWriter(cfg config.LoggingConfig, w io.Writer) (zerolog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level: %w", err)
	}

	zerolog.TimeFieldFormat = time.RFC3339

	out := w
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: "15:04:05",
			FormatMessage: func(i interface{}) string {
				if i == nil {
					return ""
				}
				return fmt.Sprintf("| %s", i)
			},
		}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("app", "doppelganger").
		Logger(), nil
}

// ParseLevel converts a level name to a zerolog.Level.
func ParseLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "", "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	case "fatal":
		return zerolog.FatalLevel, nil
	case "disabled", "off":
		return zerolog.Disabled, nil
	default:
		return zerolog.InfoLevel, fmt.Errorf("unknown log level: %s", level)
	}
}
