// Package stagefit adapts an embedded 2D stage to the size of its
// container.
//
// Once started, a frame loop keeps the stage's backing canvas at a 16:9
// size matched to the CSS layout and display density, keeps text crisp,
// keeps the floating input field in proportion, and rebinds pointer
// handlers on entities and variable watchers so dragging stays correct at
// any scale.
//
// The page itself is reached through the capability interfaces in package
// host. Assemble a driver with New:
//
//	cfg, err := stagefit.LoadConfig("stagefit.toml")
//	...
//	d := stagefit.New(env, scheduler, sentinel, cfg)
//	if err := d.Start(); err != nil { ... }
package stagefit

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/agiangrant/stagefit/host"
	"github.com/agiangrant/stagefit/internal/logx"
	"github.com/agiangrant/stagefit/loop"
)

// Version is the release version.
const Version = "0.3.0"

// New assembles a frame driver from the configuration. The driver is not
// started.
func New(env host.Environment, sched loop.Scheduler, sentinel loop.Sentinel, cfg Config, opts ...loop.Option) *loop.Driver {
	return loop.NewDriver(env, sched, sentinel, cfg.Loop(), opts...)
}

// ============================================================================
// Logging
// ============================================================================

// SetLogger sets the logger used by every stagefit package. Nothing is
// logged until it is called; nil restores the silent default.
func SetLogger(l *slog.Logger) {
	logx.Set(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return logx.L()
}

// LevelOff disables logging.
const LevelOff = slog.Level(100)

// ParseLevel maps a level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	case "off", "none":
		return LevelOff, nil
	}
	return 0, fmt.Errorf("unknown log level %q", name)
}

// NewLogger creates a text logger writing to w at the configured level.
func NewLogger(w io.Writer, cfg LogConfig) (*slog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}
