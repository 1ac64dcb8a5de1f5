// Package logging builds the process logger.
// Logs go to the given writer (stderr in practice); stdout carries command results only.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// LevelOff disables logging entirely.
const LevelOff = "off"

// New returns a text logger writing to w at the named level.
func New(w io.Writer, level string) *slog.Logger {
	if strings.EqualFold(strings.TrimSpace(level), LevelOff) {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	}))
}

// ParseLevel maps a level name to a slog level. Unknown names fall back to warn.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
