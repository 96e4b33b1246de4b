// Package logx holds the logger shared by all stagefit packages.
//
// By default nothing is logged: the adapter runs inside a page it does not
// own, and a frame skipped because the host is mid-update is normal.
package logx

import (
	"log/slog"
	"sync/atomic"
)

// silent drops every record before any attribute is formatted.
var silent = slog.New(slog.DiscardHandler)

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(silent)
}

// Set replaces the logger. A nil logger restores the silent default.
func Set(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	current.Store(l)
}

// L returns the current logger.
func L() *slog.Logger {
	return current.Load()
}
