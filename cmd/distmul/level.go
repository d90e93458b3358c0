// SPDX-License-Identifier: MIT

package main

import (
	"io"
	"log/slog"
)

// LevelFromFlags returns the log level for the -vv, -v and -q flags, in
// that order of precedence. The default is Warn.
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

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
