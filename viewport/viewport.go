// Package viewport sizes the stage's backing canvas and keeps the viewport
// transform, text resolution and the host's coordinate conversion in step
// with it.
package viewport

import (
	"math"

	"github.com/agiangrant/stagefit/host"
)

// Config holds the sizing constants.
type Config struct {
	// BaseWidth and BaseHeight are the smallest backing size.
	BaseWidth  int
	BaseHeight int
	// MaxRenderWidth caps the backing width.
	MaxRenderWidth int
	// QualityBoost oversamples above the CSS size.
	QualityBoost float64
	// DesignWidth and DesignHeight are the fixed logical scene resolution.
	DesignWidth  float64
	DesignHeight float64
}

// DefaultConfig returns the 640x360 base, 1920 cap, 1.5x boost and 480x270
// design resolution.
func DefaultConfig() Config {
	return Config{
		BaseWidth:      640,
		BaseHeight:     360,
		MaxRenderWidth: 1920,
		QualityBoost:   1.5,
		DesignWidth:    480,
		DesignHeight:   270,
	}
}

// Size is a backing size in device pixels.
type Size struct {
	Width  int
	Height int
}

// Matches reports whether the element already has this backing size.
func (s Size) Matches(el host.Element) bool {
	return el.Width() == s.Width && el.Height() == s.Height
}

// Resolution is the effective pixel density relative to the base width.
func (s Size) Resolution(cfg Config) float64 {
	return float64(s.Width) / float64(cfg.BaseWidth)
}

// ComputeRenderSize maps the element's CSS width and the display pixel ratio
// to a 16:9 backing size. Before layout (CSS width <= 0) it keeps the current
// backing size, floored at the base size.
func ComputeRenderSize(el host.Element, pixelRatio float64, cfg Config) Size {
	cssWidth := math.Round(el.OffsetWidth())
	if !(cssWidth > 0) {
		return Size{
			Width:  max(cfg.BaseWidth, orDefault(el.Width(), cfg.BaseWidth)),
			Height: max(cfg.BaseHeight, orDefault(el.Height(), cfg.BaseHeight)),
		}
	}

	dpr := 1.0
	if pixelRatio > 1 {
		dpr = pixelRatio
	}
	// Clamp before converting: int of an infinite float is undefined.
	scaled := math.Round(cssWidth * dpr * cfg.QualityBoost)
	width := int(math.Max(float64(cfg.BaseWidth), math.Min(float64(cfg.MaxRenderWidth), scaled)))
	return Size{Width: width, Height: int(math.Round(float64(width) * 9 / 16))}
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

// Resize applies size to the stage: backing pixels, origin at the centre,
// scale to the design resolution, and the renderer when one is present. It
// returns false without touching anything if the element already has this
// size.
func Resize(stage host.Stage, size Size, cfg Config) bool {
	canvas := stage.Canvas()
	el := canvas.Element()
	if size.Matches(el) {
		return false
	}

	w, h := float64(size.Width), float64(size.Height)
	el.SetSize(size.Width, size.Height)
	canvas.SetPosition(w/2, h/2)
	canvas.SetScale(w/cfg.DesignWidth, h/cfg.DesignHeight)

	if app := stage.App(); app != nil {
		resizeApp(app, size)
	}
	if u, ok := canvas.(host.Updater); ok {
		u.Update()
	}
	return true
}

// resizeApp resizes the renderer when both screen and renderer exist, then
// runs the render hook.
func resizeApp(app host.App, size Size) {
	var (
		screen   host.Screen
		renderer host.Renderer
	)
	if sp, ok := app.(host.ScreenProvider); ok {
		screen = sp.Screen()
	}
	if rp, ok := app.(host.RendererProvider); ok {
		renderer = rp.Renderer()
	}
	if screen != nil && renderer != nil {
		screen.SetSize(size.Width, size.Height)
		renderer.Resize(size.Width, size.Height)
		renderer.SetOptionsSize(size.Width, size.Height)
	}
	if r, ok := app.(host.Renderable); ok {
		r.Render()
	}
}

// PropagateResolution walks the forest rooted at roots and sets resolution
// on every node that has one in use. Children are visited whether or not the
// parent had a resolution. It returns the number of nodes updated.
func PropagateResolution(roots []host.Node, resolution float64) int {
	updated := 0
	stack := make([]host.Node, 0, len(roots))
	stack = append(stack, roots...)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == nil {
			continue
		}
		if tn, ok := n.(host.TextNode); ok && tn.Resolution() != 0 {
			tn.SetResolution(resolution)
			updated++
		}
		stack = append(stack, n.Children()...)
	}
	return updated
}
