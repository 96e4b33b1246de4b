package interaction

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agiangrant/stagefit/host"
	"github.com/agiangrant/stagefit/scene"
)

// newScene returns a host whose canvas origin is (240, 135) at scale 2.
func newScene(t *testing.T) (*scene.Host, *scene.Stage) {
	t.Helper()
	stage := scene.NewStage(scene.NewElement(480, 480, 270))
	stage.CanvasRef().SetPosition(240, 135)
	stage.CanvasRef().SetScale(2, 2)
	return scene.NewHost(stage), stage
}

func TestBackendTable(t *testing.T) {
	webgl := BackendFor(host.ModeWebGL)
	require.Equal(t, "__pointermove", webgl.Press)
	require.Equal(t, "__pointerup", webgl.Drag)
	require.True(t, webgl.ScreenSpace)

	canvas := BackendFor(host.ModeCanvas)
	require.Equal(t, "mousedown", canvas.Press)
	require.Equal(t, "pressmove", canvas.Drag)
	require.False(t, canvas.ScreenSpace)

	require.Equal(t, canvas, BackendFor(host.ModeUnset))
	require.Len(t, Backends(), 2)
	require.Equal(t, "entity:webgl", Mark(RoleEntity, host.ModeWebGL))
	require.Equal(t, "scrollButton:canvas", Mark(RoleScrollButton, host.ModeCanvas))
}

func TestPatchIsIdempotent(t *testing.T) {
	h, stage := newScene(t)
	h.Populate(2, 1)
	p := NewPatcher(DefaultConfig())

	// Host-installed handlers are replaced.
	h.Sprites()[0].On("mousedown", func(host.PointerEvent) {})
	h.Sprites()[0].On("mousedown", func(host.PointerEvent) {})

	stats := p.Patch(h, stage, host.ModeCanvas)
	require.Equal(t, Stats{Bound: 7}, stats)

	stats = p.Patch(h, stage, host.ModeCanvas)
	require.Equal(t, Stats{Skipped: 7}, stats)

	for _, s := range h.Sprites() {
		require.Equal(t, 1, s.ListenerCount("mousedown"))
		require.Equal(t, 1, s.ListenerCount("pressmove"))
		require.Equal(t, "entity:canvas", s.PatchMark())
	}
	view := stage.VariableRefs()[0]
	require.Equal(t, 1, view.ListenerCount("mousedown"))
	require.Equal(t, "variable:canvas", view.PatchMark())
	require.Equal(t, "slide:canvas", view.VariableRef().SlideBarRef().PatchMark())
}

func TestPatchModeSwitch(t *testing.T) {
	h, stage := newScene(t)
	h.Populate(1, 1)
	p := NewPatcher(DefaultConfig())

	p.Patch(h, stage, host.ModeCanvas)
	stats := p.Patch(h, stage, host.ModeWebGL)
	require.Equal(t, Stats{Bound: 6}, stats)

	s := h.Sprites()[0]
	require.Zero(t, s.ListenerCount("mousedown"))
	require.Zero(t, s.ListenerCount("pressmove"))
	require.Equal(t, 1, s.ListenerCount("__pointermove"))
	require.Equal(t, 1, s.ListenerCount("__pointerup"))
	require.Equal(t, "entity:webgl", s.PatchMark())
}

func TestEntityDrag(t *testing.T) {
	h, stage := newScene(t)
	sprite := h.AddEntity("cat", 100, -50)
	NewPatcher(DefaultConfig()).Patch(h, stage, host.ModeCanvas)

	sprite.Emit("mousedown", host.PointerEvent{StageX: 440, StageY: 235})
	require.True(t, stage.ObjectClick())
	require.Equal(t, []string{"cat"}, h.Selected())
	require.Equal(t, "move", sprite.Cursor())
	require.Equal(t, 1, sprite.EntityRef().CommandInits())
	require.Len(t, h.Dispatched(), 1)
	require.Equal(t, "entityClick", h.Dispatched()[0].Name)

	sprite.Emit("pressmove", host.PointerEvent{StageX: 460, StageY: 245})
	require.Equal(t, 110.0, sprite.EntityRef().X())
	require.Equal(t, -55.0, sprite.EntityRef().Y())
	require.Equal(t, 1, stage.ObjectUpdates)
}

func TestEntityDragUnderParent(t *testing.T) {
	h, stage := newScene(t)
	entity := scene.NewEntity(scene.NewOwner("dog"), 0, 0)
	sprite := scene.NewSprite(entity, host.Point{X: 10, Y: 20})
	NewPatcher(DefaultConfig()).PatchEntity(h, stage, sprite, BackendFor(host.ModeWebGL))

	sprite.Emit("__pointermove", host.PointerEvent{StageX: 240, StageY: 135})
	require.Equal(t, host.Point{X: -10, Y: -20}, sprite.Offset())

	sprite.Emit("__pointerup", host.PointerEvent{StageX: 260, StageY: 135})
	require.Equal(t, 0.0, entity.X())
	require.Equal(t, 20.0, entity.Y())
}

func TestEntityMinimizeAndLocked(t *testing.T) {
	h, stage := newScene(t)
	sprite := h.AddEntity("cat", 0, 0)
	NewPatcher(DefaultConfig()).Patch(h, stage, host.ModeCanvas)

	h.SetType("minimize")
	sprite.Emit("mousedown", host.PointerEvent{StageX: 300, StageY: 100})
	require.True(t, stage.ObjectClick())
	require.Len(t, h.Dispatched(), 1)
	require.Empty(t, h.Selected())
	require.Zero(t, sprite.EntityRef().CommandInits())

	h.SetType("workspace")
	sprite.EntityRef().OwnerRef().SetLocked(true)
	sprite.Emit("pressmove", host.PointerEvent{StageX: 300, StageY: 100})
	require.Zero(t, sprite.EntityRef().X())
	require.Zero(t, stage.ObjectUpdates)

	sprite.EntityRef().OwnerRef().SetLocked(false)
	stage.SetEntitySelectable(false)
	sprite.Emit("pressmove", host.PointerEvent{StageX: 300, StageY: 100})
	require.Zero(t, sprite.EntityRef().X())
}

func TestSlideBar(t *testing.T) {
	h, stage := newScene(t)
	view := scene.NewVariableView(10, 10, 120, 30).WithSlideBar()
	stage.AddVariable(view)
	bar := view.VariableRef().SlideBarRef()
	bar.On("pressmove", func(host.PointerEvent) {})

	NewPatcher(DefaultConfig()).Patch(h, stage, host.ModeCanvas)
	require.Equal(t, 1, bar.ListenerCount("pressmove"), "host drag wiring is kept")
	require.Equal(t, 1, bar.ListenerCount("mousedown"))

	bar.Emit("mousedown", host.PointerEvent{StageX: 300})
	_, calls := view.VariableRef().SlideCommandX()
	require.Zero(t, calls, "ignored while stopped")

	h.SetState("run")
	bar.Emit("mousedown", host.PointerEvent{StageX: 300})
	x, calls := view.VariableRef().SlideCommandX()
	require.Equal(t, 1, calls)
	require.Equal(t, 20.0, x)
}

func TestValueSetter(t *testing.T) {
	h, stage := newScene(t)
	view := scene.NewVariableView(10, 10, 120, 30).WithValueSetter(4)
	stage.AddVariable(view)
	vs := view.VariableRef().ValueSetterRef()
	NewPatcher(DefaultConfig()).Patch(h, stage, host.ModeCanvas)

	vs.Emit("mousedown", host.PointerEvent{StageX: 100})
	require.False(t, view.VariableRef().Adjusting())

	h.SetState("run")
	vs.Emit("mousedown", host.PointerEvent{StageX: 100})
	require.True(t, view.VariableRef().Adjusting())
	require.Equal(t, 46.0, vs.Offset().X)

	vs.Emit("pressmove", host.PointerEvent{StageX: 120})
	x, _ := view.VariableRef().SlideCommandX()
	require.Equal(t, 19.0, x)
}

func TestResizeHandle(t *testing.T) {
	h, stage := newScene(t)
	view := scene.NewVariableView(10, 10, 120, 30).WithResizeHandle()
	stage.AddVariable(view)
	rh := view.VariableRef().ResizeHandleRef()
	NewPatcher(DefaultConfig()).Patch(h, stage, host.ModeWebGL)

	rh.Emit("__pointermove", host.PointerEvent{StageX: 260, StageY: 80})
	require.True(t, view.VariableRef().Resizing())
	require.Equal(t, host.Point{X: 10, Y: 10}, rh.Offset())
	require.Equal(t, "nwse-resize", view.Cursor())

	rh.Emit("__pointerup", host.PointerEvent{StageX: 300, StageY: 100})
	require.Equal(t, 140.0, view.VariableRef().Width())
	require.Equal(t, 40.0, view.VariableRef().Height())
	require.Equal(t, 1, view.VariableRef().ViewUpdates())
}

func TestScrollButtonClamps(t *testing.T) {
	h, stage := newScene(t)
	view := scene.NewVariableView(10, 10, 120, 200).WithScrollButton(25)
	stage.AddVariable(view)
	sb := view.VariableRef().ScrollButtonRef()
	NewPatcher(DefaultConfig()).Patch(h, stage, host.ModeCanvas)

	sb.Emit("mousedown", host.PointerEvent{StageY: 100})
	require.True(t, view.VariableRef().Resizing())
	require.Equal(t, 50.0, sb.Offset().Y)

	sb.Emit("pressmove", host.PointerEvent{StageY: 300})
	require.Equal(t, 125.0, sb.Y())

	sb.Emit("pressmove", host.PointerEvent{StageY: 1000})
	require.Equal(t, 170.0, sb.Y())

	sb.Emit("pressmove", host.PointerEvent{StageY: 0})
	require.Equal(t, 25.0, sb.Y())
	require.Equal(t, 3, view.VariableRef().ViewUpdates())
}

func TestVariableContainerDrag(t *testing.T) {
	h, stage := newScene(t)
	view := scene.NewVariableView(10, 10, 120, 30)
	stage.AddVariable(view)
	NewPatcher(DefaultConfig()).Patch(h, stage, host.ModeCanvas)

	view.Emit("mousedown", host.PointerEvent{StageX: 262, StageY: 157})
	require.Equal(t, host.Point{X: -1, Y: -1}, view.Offset())

	view.Emit("pressmove", host.PointerEvent{StageX: 282, StageY: 177})
	require.Equal(t, 20.0, view.VariableRef().X())
	require.Equal(t, 20.0, view.X())
	require.Equal(t, 20.0, view.Y())

	view.VariableRef().SetResizing(true)
	view.Emit("pressmove", host.PointerEvent{StageX: 400, StageY: 200})
	require.Equal(t, 20.0, view.VariableRef().X())
	view.VariableRef().SetResizing(false)

	// The editing mode is read when the event fires.
	h.SetType("play")
	view.Emit("mousedown", host.PointerEvent{StageX: 0, StageY: 0})
	require.Equal(t, host.Point{X: -1, Y: -1}, view.Offset())
	view.Emit("pressmove", host.PointerEvent{StageX: 400, StageY: 200})
	require.Equal(t, 20.0, view.VariableRef().X())
}

// bareSprite has no listener removal methods.
type bareSprite struct {
	mark      string
	listeners map[string]int
	entity    *scene.Entity
}

func (b *bareSprite) On(event string, _ host.Handler) { b.listeners[event]++ }
func (b *bareSprite) PatchMark() string               { return b.mark }
func (b *bareSprite) SetPatchMark(mark string)        { b.mark = mark }
func (b *bareSprite) Entity() host.Entity             { return b.entity }
func (b *bareSprite) ParentPosition() host.Point      { return host.Point{} }
func (b *bareSprite) Offset() host.Point              { return host.Point{} }
func (b *bareSprite) SetOffset(host.Point)            {}
func (b *bareSprite) SetCursor(string)                {}

func TestPatchWithoutRemovers(t *testing.T) {
	h, stage := newScene(t)
	sprite := &bareSprite{
		listeners: map[string]int{"mousedown": 1},
		entity:    scene.NewEntity(scene.NewOwner("x"), 0, 0),
	}

	p := NewPatcher(DefaultConfig())
	require.True(t, p.PatchEntity(h, stage, sprite, BackendFor(host.ModeCanvas)))
	require.Equal(t, "entity:canvas", sprite.mark)
	require.Equal(t, 2, sprite.listeners["mousedown"])
	require.Equal(t, 1, sprite.listeners["pressmove"])

	require.False(t, p.PatchEntity(h, stage, sprite, BackendFor(host.ModeCanvas)))
}
