package ui

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// NewLogger creates the application logger.
func NewLogger(w io.Writer, level, format string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:     ParseLogLevel(level),
		Formatter: ParseLogFormatter(format),
		Prefix:    "taskpilot",
	})
}

// ParseLogLevel parses a level name, defaulting to info.
func ParseLogLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// ParseLogFormatter parses a formatter name, defaulting to text.
func ParseLogFormatter(format string) log.Formatter {
	switch strings.ToLower(format) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
