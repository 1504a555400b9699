// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the structured diagnostic logger. User-facing
// progress and summary lines go to stdout; the logger writes to stderr.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// BuildLogger creates a structured logger writing to stderr at the given level.
func BuildLogger(level string) *slog.Logger {
	return New(os.Stderr, level)
}

// New creates a text logger writing to w. Unknown levels fall back to warn.
func New(w io.Writer, level string) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	return slog.New(handler)
}

// ParseLevel maps debug, info, warn, and error to slog levels.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
