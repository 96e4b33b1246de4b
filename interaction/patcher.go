package interaction

import (
	"math"

	"github.com/agiangrant/stagefit/host"
	"github.com/agiangrant/stagefit/viewport"
)

// Config holds the interaction tunables and the host's state vocabulary.
type Config struct {
	// ValueSetterNudge is added to the slider value while dragging the
	// value box.
	ValueSetterNudge float64
	// ScrollMin is the topmost scroll thumb position.
	ScrollMin float64
	// ScrollBottomMargin keeps the thumb this far above the watcher bottom.
	ScrollBottomMargin float64

	RunState      string
	WorkspaceType string
	MinimizeType  string
}

// DefaultConfig returns the stock tunables.
func DefaultConfig() Config {
	return Config{
		ValueSetterNudge:   5,
		ScrollMin:          25,
		ScrollBottomMargin: 30,
		RunState:           "run",
		WorkspaceType:      "workspace",
		MinimizeType:       "minimize",
	}
}

// Stats counts the objects a patch pass bound and the ones it found already
// bound for the current mode.
type Stats struct {
	Bound   int
	Skipped int
}

func (s *Stats) add(bound bool) {
	if bound {
		s.Bound++
	} else {
		s.Skipped++
	}
}

// Patcher binds replacement pointer handlers. It holds no per-object state:
// everything a handler needs is kept on the host objects themselves.
type Patcher struct {
	cfg Config
}

// NewPatcher creates a patcher.
func NewPatcher(cfg Config) *Patcher {
	return &Patcher{cfg: cfg}
}

// Patch binds handlers on every entity sprite and variable watcher of h for
// mode. Objects already marked for mode are skipped, so repeated passes do
// not stack handlers.
func (p *Patcher) Patch(h host.Host, stage host.Stage, mode host.RenderMode) Stats {
	var stats Stats
	b := BackendFor(mode)
	for _, sprite := range h.Objects() {
		if sprite == nil {
			continue
		}
		stats.add(p.PatchEntity(h, stage, sprite, b))
	}
	for _, view := range stage.Variables() {
		if view == nil {
			continue
		}
		s := p.PatchVariable(h, stage, view, b)
		stats.Bound += s.Bound
		stats.Skipped += s.Skipped
	}
	return stats
}

// bind replaces every press and drag listener on obj unless it already
// carries mark.
func bind(obj host.SceneObject, mark string, names func(Backend) []string, attach func()) bool {
	if obj.PatchMark() == mark {
		return false
	}
	obj.SetPatchMark(mark)
	detach(obj, names)
	attach()
	return true
}

// ============================================================================
// Entities
// ============================================================================

// PatchEntity binds the entity press and drag handlers. It reports whether
// the sprite was bound.
func (p *Patcher) PatchEntity(h host.Host, stage host.Stage, sprite host.EntitySprite, b Backend) bool {
	canvas := stage.Canvas()
	return bind(sprite, Mark(RoleEntity, b.Mode), pressAndDrag, func() {
		sprite.On(b.Press, func(e host.PointerEvent) {
			entity := sprite.Entity()
			h.DispatchEvent("entityClick", entity)
			stage.SetObjectClick(true)
			if h.Type() == p.cfg.MinimizeType || !stage.IsEntitySelectable() {
				return
			}
			pt := viewport.FromCanvas(canvas).ToScene(e.StageX, e.StageY)
			parent := sprite.ParentPosition()
			sprite.SetOffset(host.Point{
				X: -parent.X + entity.X() - pt.X,
				Y: -parent.Y - entity.Y() - pt.Y,
			})
			sprite.SetCursor("move")
			entity.InitCommand()
			h.SelectObject(entity.Owner().ID())
		})

		sprite.On(b.Drag, func(e host.PointerEvent) {
			if !stage.IsEntitySelectable() {
				return
			}
			entity := sprite.Entity()
			if entity.Owner().Locked() {
				return
			}
			pt := viewport.FromCanvas(canvas).ToSceneYUp(e.StageX, e.StageY)
			off := sprite.Offset()
			entity.SetX(pt.X + off.X)
			entity.SetY(pt.Y - off.Y)
			stage.UpdateObject()
		})
	})
}

// ============================================================================
// Variable watchers
// ============================================================================

// PatchVariable binds the watcher's sub-controls, then the watcher
// container itself.
func (p *Patcher) PatchVariable(h host.Host, stage host.Stage, view host.VariableView, b Backend) Stats {
	var stats Stats
	v := view.Variable()
	if v == nil {
		return stats
	}
	canvas := stage.Canvas()

	if c := v.SlideBar(); c != nil {
		stats.add(p.patchSlideBar(h, canvas, v, c, b))
	}
	if c := v.ValueSetter(); c != nil {
		stats.add(p.patchValueSetter(h, canvas, v, c, b))
	}
	if c := v.ResizeHandle(); c != nil {
		stats.add(p.patchResizeHandle(canvas, v, c, b))
	}
	if c := v.ScrollButton(); c != nil {
		stats.add(p.patchScrollButton(canvas, v, c, b))
	}
	stats.add(p.patchContainer(h, canvas, view, v, b))
	return stats
}

// patchSlideBar binds only a press handler and leaves the host's drag
// wiring on the bar in place.
func (p *Patcher) patchSlideBar(h host.Host, canvas host.Canvas, v host.Variable, c host.Control, b Backend) bool {
	return bind(c, Mark(RoleSlide, b.Mode), pressOnly, func() {
		c.On(b.Press, func(e host.PointerEvent) {
			if !h.IsState(p.cfg.RunState) {
				return
			}
			t := viewport.FromCanvas(canvas)
			v.SetSlideCommandX(e.StageX/t.ScaleX - v.X() - t.OriginX/t.ScaleX)
		})
	})
}

func (p *Patcher) patchValueSetter(h host.Host, canvas host.Canvas, v host.Variable, c host.Control, b Backend) bool {
	return bind(c, Mark(RoleValueSetter, b.Mode), pressAndDrag, func() {
		c.On(b.Press, func(e host.PointerEvent) {
			if !h.IsState(p.cfg.RunState) {
				return
			}
			v.SetAdjusting(true)
			sx := canvas.ScaleX()
			c.SetOffset(host.Point{X: e.StageX/sx - c.X(), Y: c.Offset().Y})
		})
		c.On(b.Drag, func(e host.PointerEvent) {
			if !h.IsState(p.cfg.RunState) {
				return
			}
			sx := canvas.ScaleX()
			v.SetSlideCommandX(e.StageX/sx - c.Offset().X + p.cfg.ValueSetterNudge)
		})
	})
}

func (p *Patcher) patchResizeHandle(canvas host.Canvas, v host.Variable, c host.Control, b Backend) bool {
	return bind(c, Mark(RoleResizeHandle, b.Mode), pressAndDrag, func() {
		c.On(b.Press, func(e host.PointerEvent) {
			v.SetResizing(true)
			c.SetOffset(host.Point{
				X: e.StageX/canvas.ScaleX() - v.Width(),
				Y: e.StageY/canvas.ScaleY() - v.Height(),
			})
			c.SetParentCursor("nwse-resize")
		})
		c.On(b.Drag, func(e host.PointerEvent) {
			off := c.Offset()
			v.SetWidth(e.StageX/canvas.ScaleX() - off.X)
			v.SetHeight(e.StageY/canvas.ScaleY() - off.Y)
			v.UpdateView()
		})
	})
}

func (p *Patcher) patchScrollButton(canvas host.Canvas, v host.Variable, c host.Control, b Backend) bool {
	return bind(c, Mark(RoleScrollButton, b.Mode), pressAndDrag, func() {
		c.On(b.Press, func(e host.PointerEvent) {
			v.SetResizing(true)
			c.SetOffset(host.Point{X: c.Offset().X, Y: e.StageY - c.Y()*canvas.ScaleY()})
		})
		c.On(b.Drag, func(e host.PointerEvent) {
			y := (e.StageY - c.Offset().Y) / canvas.ScaleY()
			y = math.Max(p.cfg.ScrollMin, math.Min(v.Height()-p.cfg.ScrollBottomMargin, y))
			c.SetY(y)
			v.UpdateView()
		})
	})
}

// patchContainer makes the watcher draggable in the workspace. The editing
// mode is read when the event fires, not when the handler is bound.
func (p *Patcher) patchContainer(h host.Host, canvas host.Canvas, view host.VariableView, v host.Variable, b Backend) bool {
	return bind(view, Mark(RoleVariable, b.Mode), pressAndDrag, func() {
		view.On(b.Press, func(e host.PointerEvent) {
			if h.Type() != p.cfg.WorkspaceType {
				return
			}
			pt := viewport.FromCanvas(canvas).ToScene(e.StageX, e.StageY)
			view.SetOffset(host.Point{X: view.X() - pt.X, Y: view.Y() - pt.Y})
		})
		view.On(b.Drag, func(e host.PointerEvent) {
			if h.Type() != p.cfg.WorkspaceType || v.Resizing() || v.Adjusting() {
				return
			}
			pt := viewport.FromCanvas(canvas).ToScene(e.StageX, e.StageY)
			off := view.Offset()
			v.SetX(pt.X + off.X)
			v.SetY(pt.Y + off.Y)
			v.UpdateView()
		})
	})
}
