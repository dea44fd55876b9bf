// Package logging configures the process-wide logger from the LOG_LEVEL
// setting.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup installs a text slog handler at the given level as the default
// logger and returns it. An unknown level falls back to info.
func Setup(level string, out io.Writer) *slog.Logger {
	if out == nil {
		out = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: ParseLevel(level),
	}))
	slog.SetDefault(logger)
	return logger
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
