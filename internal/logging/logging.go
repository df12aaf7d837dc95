package logging

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// ParseLevel maps "debug", "info", "warn" and "error" (case-insensitive) to
// a slog level. Anything else is info.
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

// Setup creates a logger writing to w, sets it as the default and returns
// it. pretty selects a colorized handler for terminals; otherwise output is
// logfmt text.
func Setup(w io.Writer, level string, pretty bool) *slog.Logger {
	lvl := ParseLevel(level)

	var handler slog.Handler
	if pretty {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      lvl,
			TimeFormat: time.Kitchen,
		})
	} else {
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: lvl,
		})
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
