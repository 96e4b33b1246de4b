package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/agiangrant/stagefit"
	"github.com/agiangrant/stagefit/host"
	"github.com/agiangrant/stagefit/interaction"
	"github.com/agiangrant/stagefit/loop"
	"github.com/agiangrant/stagefit/scene"
	"github.com/agiangrant/stagefit/viewport"
)

type simulateOptions struct {
	configPath  string
	entities    int
	variables   int
	mode        string
	cssWidth    float64
	dpr         float64
	frames      int
	frameTime   time.Duration
	relayoutAt  int
	relayoutCSS float64
	realtime    bool
	snapshot    string
	logLevel    string
}

// Simulate implements the 'stagefit simulate' command
func Simulate(args []string) error {
	return runSimulate(os.Stdout, args)
}

func runSimulate(w io.Writer, args []string) error {
	var opts simulateOptions
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "", "Path to stagefit.toml")
	fs.IntVar(&opts.entities, "entities", 3, "Number of entities on the stage")
	fs.IntVar(&opts.variables, "variables", 1, "Number of variable watchers")
	fs.StringVar(&opts.mode, "mode", "canvas", "Render backend: webgl or canvas")
	fs.Float64Var(&opts.cssWidth, "css-width", 800, "Laid-out CSS width of the stage canvas")
	fs.Float64Var(&opts.dpr, "dpr", 1, "Device pixel ratio")
	fs.IntVar(&opts.frames, "frames", 30, "Number of frames to run")
	fs.DurationVar(&opts.frameTime, "frame-time", 16*time.Millisecond, "Simulated time between frames")
	fs.IntVar(&opts.relayoutAt, "relayout-at", 0, "Frame at which the CSS width changes (0 = never)")
	fs.Float64Var(&opts.relayoutCSS, "relayout-width", 1280, "CSS width applied at --relayout-at")
	fs.BoolVar(&opts.realtime, "realtime", false, "Drive frames from a wall-clock ticker instead of stepping")
	fs.StringVar(&opts.snapshot, "snapshot", "", "Write a PNG of the final stage to this path")
	fs.StringVar(&opts.logLevel, "log", "", "Log level override (debug, info, warn, error, off)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var useWebGL bool
	switch opts.mode {
	case "webgl":
		useWebGL = true
	case "canvas":
	default:
		return fmt.Errorf("unknown mode %q (want webgl or canvas)", opts.mode)
	}
	if opts.frames <= 0 {
		return fmt.Errorf("--frames must be positive")
	}

	cfg, _, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	logger, err := stagefit.NewLogger(os.Stderr, cfg.Log)
	if err != nil {
		return err
	}
	stagefit.SetLogger(logger)
	defer stagefit.SetLogger(nil)

	h := scene.NewDefaultHost(opts.cssWidth)
	h.SetUseWebGL(useWebGL)
	h.Populate(opts.entities, opts.variables)
	env := &scene.Environment{Host: h, PixelRatio: opts.dpr}

	if opts.realtime {
		err = simulateRealtime(w, env, cfg, opts)
	} else {
		err = simulateSteps(w, env, cfg, opts)
	}
	if err != nil {
		return err
	}

	if len(h.Sprites()) > 0 {
		dragEntity(w, h, host.ModeFor(useWebGL))
	}

	if opts.snapshot != "" {
		if err := scene.WriteSnapshot(h, opts.snapshot); err != nil {
			return err
		}
		fmt.Fprintf(w, "  ✓ Wrote %s\n", opts.snapshot)
	}
	return nil
}

// simulateSteps runs frames one by one on a simulated clock and prints
// each frame's decisions.
func simulateSteps(w io.Writer, env *scene.Environment, cfg stagefit.Config, opts simulateOptions) error {
	now := time.Unix(0, 0)
	sched := &loop.ManualScheduler{}
	d := stagefit.New(env, sched, &loop.MemorySentinel{}, cfg, loop.WithClock(func() time.Time { return now }))
	fmt.Fprintf(w, "driver %s\n", d.ID())

	for i := 1; i <= opts.frames; i++ {
		if i == opts.relayoutAt {
			env.Host.StageRef().CanvasRef().ElementRef().SetCSSWidth(opts.relayoutCSS)
		}
		report, err := d.Step(now)
		if err != nil {
			fmt.Fprintf(w, "frame %3d  error: %v\n", i, err)
		} else {
			printReport(w, i, report)
		}
		now = now.Add(opts.frameTime)
	}
	return nil
}

// simulateRealtime runs the driver on a ticker scheduler; frame decisions
// go to the debug log.
func simulateRealtime(w io.Writer, env *scene.Environment, cfg stagefit.Config, opts simulateOptions) error {
	sched := loop.NewTickerScheduler(opts.frameTime)
	d := stagefit.New(env, sched, &loop.MemorySentinel{}, cfg)
	if err := d.Start(); err != nil {
		return err
	}
	fmt.Fprintf(w, "driver %s\n", d.ID())

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(opts.frames)*opts.frameTime)
	defer cancel()
	if err := sched.Run(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	s := d.State()
	fmt.Fprintf(w, "state mode=%s objects=%d variables=%d resolution=%.3f\n",
		s.LastMode, s.LastObjectCount, s.LastVariableCount, s.LastResolution)
	return nil
}

func printReport(w io.Writer, frame int, r loop.FrameReport) {
	fmt.Fprintf(w, "frame %3d  %-6s %4dx%-4d res=%.3f resized=%-5t text=%-5t input=%-5t patched=%-5t bound=%d skipped=%d\n",
		frame, r.Mode, r.Size.Width, r.Size.Height, r.Resolution,
		r.Resized, r.ResolutionPropagated, r.OverlayAdjusted, r.Patched,
		r.PatchStats.Bound, r.PatchStats.Skipped)
}

// dragEntity presses on the first entity and drags it 40 canvas pixels
// right and down through the patched handlers.
func dragEntity(w io.Writer, h *scene.Host, mode host.RenderMode) {
	sprite := h.Sprites()[0]
	entity := sprite.EntityRef()
	b := interaction.BackendFor(mode)
	t := viewport.FromCanvas(h.StageRef().Canvas())

	x, y := t.FromSceneYUp(host.Point{X: entity.X(), Y: entity.Y()})
	fmt.Fprintf(w, "drag %s from (%.2f, %.2f)", entity.OwnerRef().ID(), entity.X(), entity.Y())
	sprite.Emit(b.Press, host.PointerEvent{StageX: x, StageY: y})
	sprite.Emit(b.Drag, host.PointerEvent{StageX: x + 40, StageY: y + 40})
	fmt.Fprintf(w, " to (%.2f, %.2f)\n", entity.X(), entity.Y())
}
