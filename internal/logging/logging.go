// Package logging configures the slog logger of the command line tool.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// LevelFromFlags returns the [slog.Level] for the verbosity flags:
//   - vv: [slog.LevelDebug]
//   - v: [slog.LevelInfo]
//   - q: [slog.LevelError]
//   - (default: [slog.LevelWarn])
//
// The flags are evaluated in that order, so vv wins over q.
func LevelFromFlags(vv, v, q bool) slog.Level {
	switch {
	case vv:
		return slog.LevelDebug
	case v:
		return slog.LevelInfo
	case q:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// ParseLevel parses debug, info, warn or error. The empty string is warn.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("unknown log level %q", name)
	}
}

// Resolve picks the level from the verbosity flags when any is set and
// from the configured level name otherwise.
func Resolve(vv, v, q bool, configured string) (slog.Level, error) {
	if vv || v || q {
		return LevelFromFlags(vv, v, q), nil
	}
	return ParseLevel(configured)
}

// New returns a text logger writing records at or above level to w
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
