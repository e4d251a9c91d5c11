// Package logger configures log/slog for the application: JSON output with
// source locations, suitable for log aggregation.
package logger

import (
	"log/slog"
	"os"
)

// Setup initializes the global slog logger.
func Setup(level slog.Level) {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
		Level:     level,
	})
	slog.SetDefault(slog.New(handler))
}

// ParseLevel converts a string log level ("debug", "info", "warn", "error")
// to slog.Level. Unrecognized values default to info.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
