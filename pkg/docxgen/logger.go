package docxgen

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// ParseLogLevel maps a configuration log level to a zerolog level
func ParseLogLevel(level string) (zerolog.Level, error) {
	switch level {
	case "debug":
		return zerolog.DebugLevel, nil
	case "info", "":
		return zerolog.InfoLevel, nil
	case "warn":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	case "off":
		return zerolog.Disabled, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("invalid log level: %s", level)
	}
}

// NewLogger builds a logger for the given configuration. Console output is
// human readable; color enables ANSI colouring of it.
func NewLogger(w io.Writer, config *Config, color bool) zerolog.Logger {
	if w == nil {
		w = io.Discard
	}
	level, err := ParseLogLevel(config.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	if config.LogFormat == "console" {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
			NoColor:    !color,
		}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Str("app", "docxgen").Logger()
}
