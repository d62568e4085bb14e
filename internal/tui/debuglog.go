package tui

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// newDebugLogger writes debug logs to $TASKDECK_DEBUG_LOG when set. The TUI owns
// the terminal, so there is no stderr fallback. The returned closer is never nil.
func newDebugLogger() (*slog.Logger, io.Closer) {
	path := strings.TrimSpace(os.Getenv("TASKDECK_DEBUG_LOG"))
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), io.NopCloser(nil)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), io.NopCloser(nil)
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})), f
}
