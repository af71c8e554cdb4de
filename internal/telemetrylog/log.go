// Package telemetrylog configures the structured logger used by the
// pocketplus CLI and benchmark harness. The core codec package never logs
// anything itself (it returns plain errors per its own taxonomy); this is
// strictly an operator-facing concern.
package telemetrylog

import (
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

// New builds a *slog.Logger at the given level. When json is true, or w
// is an *os.File that is not a terminal, it emits line-delimited JSON via
// slog.NewJSONHandler so logs remain machine-parseable when piped or
// redirected to a file; otherwise (including any writer that is not an
// *os.File) it uses tint's colorized handler.
func New(level slog.Level, json bool, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	if f, ok := w.(*os.File); ok && !json {
		if fi, err := f.Stat(); err == nil && fi.Mode()&os.ModeCharDevice == 0 {
			json = true
		}
	}
	if json {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
	}))
}

// ParseLevel maps a CLI-friendly string ("debug", "info", "warn", "error")
// to a slog.Level, defaulting to Info on an unrecognized value.
func ParseLevel(s string) slog.Level {
	switch s {
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
