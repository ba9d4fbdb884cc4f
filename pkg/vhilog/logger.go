// Package vhilog wraps log/slog with a package-level default logger, in the
// same spirit as the teacher's pkg/common/logger: callers get a scoped
// *slog.Logger by tagging a component name, without wiring a logger through
// every constructor by hand.
package vhilog

import (
	"log/slog"
	"os"
)

// level is shared by every logger derived from base, so SetLevel also
// reaches loggers that were created before it was called.
var level = new(slog.LevelVar) // zero value is slog.LevelInfo

var base = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
	Level: level,
}))

// With returns a logger scoped with the given structured attributes, e.g.
//
//	logger := vhilog.With("component", "compare")
func With(args ...any) *slog.Logger {
	return base.With(args...)
}

// SetLevel adjusts the default handler's minimum level. Intended for the CLI
// to wire up a --verbose flag.
func SetLevel(l slog.Level) {
	level.Set(l)
}
