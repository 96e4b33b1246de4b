// Package loop drives the per-frame adaptation of the embedded stage.
//
// A Driver runs once per display frame. It always schedules the next frame
// before doing any work, so a frame that fails (the host is missing, or one
// of its members has an unexpected shape mid-update) costs only that frame.
// The Driver is the only component that remembers anything across frames.
package loop

import (
	"errors"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/agiangrant/stagefit/host"
	"github.com/agiangrant/stagefit/interaction"
	"github.com/agiangrant/stagefit/internal/logx"
	"github.com/agiangrant/stagefit/overlay"
	"github.com/agiangrant/stagefit/viewport"
)

// Config configures a Driver.
type Config struct {
	// PatchInterval is the longest a frame may go without a patch pass.
	PatchInterval time.Duration
	Viewport      viewport.Config
	Interaction   interaction.Config
}

// DefaultConfig returns a 300ms patch interval with default sizing and
// interaction settings.
func DefaultConfig() Config {
	return Config{
		PatchInterval: 300 * time.Millisecond,
		Viewport:      viewport.DefaultConfig(),
		Interaction:   interaction.DefaultConfig(),
	}
}

// RuntimeState is what the Driver remembers between frames. The mode and
// counts are those observed at the most recent successful patch pass.
type RuntimeState struct {
	LastMode          host.RenderMode
	LastPatchAt       time.Time
	LastObjectCount   int
	LastVariableCount int
	LastResolution    float64
}

// FrameReport describes what one frame did.
type FrameReport struct {
	Mode                 host.RenderMode
	Size                 viewport.Size
	Resolution           float64
	Resized              bool
	ResolutionPropagated bool
	ResolutionNodes      int
	OverlayAdjusted      bool
	Patched              bool
	PatchStats           interaction.Stats
	// Released counts handlers freed for objects the patch pass no longer
	// found on the host.
	Released int
}

// Option configures a Driver.
type Option func(*Driver)

// WithClock replaces time.Now as the Driver's frame clock.
func WithClock(now func() time.Time) Option {
	return func(d *Driver) {
		d.now = now
	}
}

// WithLogger sets a logger for this Driver instead of the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) {
		d.log = l
	}
}

// Driver is the frame loop.
type Driver struct {
	id       ulid.ULID
	env      host.Environment
	sched    Scheduler
	sentinel Sentinel
	cfg      Config
	patcher  *interaction.Patcher
	now      func() time.Time
	log      *slog.Logger

	state RuntimeState
}

// NewDriver creates a Driver. It does not start it.
func NewDriver(env host.Environment, sched Scheduler, sentinel Sentinel, cfg Config, opts ...Option) *Driver {
	d := &Driver{
		id:       ulid.Make(),
		env:      env,
		sched:    sched,
		sentinel: sentinel,
		cfg:      cfg,
		patcher:  interaction.NewPatcher(cfg.Interaction),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ID returns the Driver's instance id.
func (d *Driver) ID() string { return d.id.String() }

// State returns a copy of the runtime state.
func (d *Driver) State() RuntimeState { return d.state }

func (d *Driver) logger() *slog.Logger {
	if d.log != nil {
		return d.log
	}
	return logx.L()
}

// Start requests the first frame. It returns host.ErrAlreadyRunning if the
// sentinel shows a loop is already registered.
func (d *Driver) Start() error {
	if d.sentinel.Load() != 0 {
		return host.ErrAlreadyRunning
	}
	d.sentinel.Store(d.sched.RequestFrame(d.Frame))
	d.logger().Info("frame loop started", "driver", d.ID())
	return nil
}

// Frame is the scheduled callback: it requests the next frame, then runs
// one step. Errors are logged and never escape.
func (d *Driver) Frame() {
	d.sentinel.Store(d.sched.RequestFrame(d.Frame))

	report, err := d.Step(d.now())
	switch {
	case err == nil:
		if report.Resized || report.Patched {
			d.logger().Debug("frame",
				"driver", d.ID(),
				"mode", report.Mode,
				"width", report.Size.Width,
				"height", report.Size.Height,
				"resized", report.Resized,
				"resolution_nodes", report.ResolutionNodes,
				"patched", report.Patched,
				"bound", report.PatchStats.Bound,
				"skipped", report.PatchStats.Skipped,
				"released", report.Released,
			)
		}
	case errors.Is(err, host.ErrHostNotReady):
		d.logger().Debug("frame skipped", "driver", d.ID(), "err", err)
	default:
		d.logger().Warn("frame aborted", "driver", d.ID(), "err", err)
	}
}

// Step runs one frame body at time now. A host that cannot be located
// yields host.ErrHostNotReady; a panic from a host adapter is recovered as a
// *host.ShapeError. Either way the rest of the frame is abandoned.
func (d *Driver) Step(now time.Time) (report FrameReport, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = host.Recovered(r)
		}
	}()

	h, err := d.env.Locate()
	if err != nil {
		return report, err
	}
	if h == nil {
		return report, host.ErrHostNotReady
	}
	stage := h.Stage()
	if stage == nil {
		return report, host.ErrHostNotReady
	}

	vcfg := d.cfg.Viewport
	mode := host.ModeFor(h.UseWebGL())
	backend := interaction.BackendFor(mode)
	canvas := stage.Canvas()

	size := viewport.ComputeRenderSize(canvas.Element(), d.env.DevicePixelRatio(), vcfg)
	resolution := size.Resolution(vcfg)
	report.Mode = mode
	report.Size = size
	report.Resolution = resolution

	report.Resized = viewport.Resize(stage, size, vcfg)
	if backend.ScreenSpace && (report.Resized || d.state.LastResolution != resolution) {
		report.ResolutionNodes = viewport.PropagateResolution(canvas.Children(), resolution)
		report.ResolutionPropagated = true
	}
	d.state.LastResolution = resolution

	report.OverlayAdjusted = overlay.Adjust(h, stage, size, backend.ScreenSpace, vcfg)
	viewport.InstallCoordinateBridge(stage)

	objects := len(h.Objects())
	variables := len(stage.Variables())
	if !d.shouldPatch(now, mode, objects, variables) {
		return report, nil
	}

	report.PatchStats = d.patcher.Patch(h, stage, mode)
	report.Patched = true
	if sw, ok := h.(host.ListenerSweeper); ok {
		report.Released = sw.SweepListeners()
	}
	d.state.LastMode = mode
	d.state.LastPatchAt = now
	d.state.LastObjectCount = objects
	d.state.LastVariableCount = variables
	return report, nil
}

func (d *Driver) shouldPatch(now time.Time, mode host.RenderMode, objects, variables int) bool {
	s := d.state
	return s.LastMode != mode ||
		s.LastObjectCount != objects ||
		s.LastVariableCount != variables ||
		now.Sub(s.LastPatchAt) >= d.cfg.PatchInterval
}
