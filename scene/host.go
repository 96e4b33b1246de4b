package scene

import (
	"fmt"

	"github.com/agiangrant/stagefit/host"
)

// Dispatched is an event the host was notified of.
type Dispatched struct {
	Name   string
	Entity host.Entity
}

// Host is the in-memory application runtime.
type Host struct {
	state    string
	kind     string
	useWebGL bool

	requestUpdate  bool
	requestUpdates []bool

	objects  []*Sprite
	stage    *Stage
	events   []Dispatched
	selected []string
}

// NewHost creates a host in the "workspace" editing mode, stopped, using
// the canvas backend. stage may be nil.
func NewHost(stage *Stage) *Host {
	return &Host{state: "stop", kind: "workspace", stage: stage}
}

// NewDefaultHost builds a host over a 640x360 stage laid out at cssWidth,
// with a renderer app and a hidden input field.
func NewDefaultHost(cssWidth float64) *Host {
	element := NewElement(cssWidth, 640, 360)
	stage := NewStage(element).
		WithApp(NewApp(&Renderer{}, &Screen{})).
		WithInputField(&InputField{hidden: true, view: &InputView{}})
	return NewHost(stage)
}

func (h *Host) IsState(state string) bool { return h.state == state }

// SetState sets the execution state ("run", "stop", ...).
func (h *Host) SetState(state string) { h.state = state }

func (h *Host) DispatchEvent(name string, entity host.Entity) {
	h.events = append(h.events, Dispatched{Name: name, Entity: entity})
}

// Dispatched returns the events the host was notified of.
func (h *Host) Dispatched() []Dispatched { return h.events }

func (h *Host) Type() string { return h.kind }

// SetType sets the editing mode ("workspace", "minimize", ...).
func (h *Host) SetType(kind string) { h.kind = kind }

func (h *Host) UseWebGL() bool { return h.useWebGL }

// SetUseWebGL switches the backend flag.
func (h *Host) SetUseWebGL(on bool) { h.useWebGL = on }

func (h *Host) SetRequestUpdate(on bool) {
	h.requestUpdate = on
	h.requestUpdates = append(h.requestUpdates, on)
}

// RequestUpdate returns the current echo flag and its full history.
func (h *Host) RequestUpdate() (bool, []bool) { return h.requestUpdate, h.requestUpdates }

func (h *Host) Objects() []host.EntitySprite {
	out := make([]host.EntitySprite, len(h.objects))
	for i, o := range h.objects {
		out[i] = o
	}
	return out
}

// Sprites returns the concrete entity sprites.
func (h *Host) Sprites() []*Sprite { return h.objects }

func (h *Host) SelectObject(id string) { h.selected = append(h.selected, id) }

// Selected returns the ids passed to SelectObject.
func (h *Host) Selected() []string { return h.selected }

func (h *Host) Stage() host.Stage {
	if h.stage == nil {
		return nil
	}
	return h.stage
}

// StageRef returns the concrete stage.
func (h *Host) StageRef() *Stage { return h.stage }

// SetStage replaces the stage; nil removes it.
func (h *Host) SetStage(s *Stage) { h.stage = s }

// AddEntity creates an entity owned by a new object id and returns its
// sprite.
func (h *Host) AddEntity(id string, x, y float64) *Sprite {
	sprite := NewSprite(NewEntity(NewOwner(id), x, y), host.Point{})
	h.objects = append(h.objects, sprite)
	if h.stage != nil {
		h.stage.canvas.AddChild(sprite)
	}
	return sprite
}

// RemoveEntity drops the sprite at index i.
func (h *Host) RemoveEntity(i int) {
	h.objects = append(h.objects[:i], h.objects[i+1:]...)
}

// Populate adds n entities and m variable watchers with every sub-control.
func (h *Host) Populate(n, m int) {
	for i := 0; i < n; i++ {
		h.AddEntity(fmt.Sprintf("obj-%d", i), float64(i*40-200), float64(100-i*20))
	}
	if h.stage == nil {
		return
	}
	for i := 0; i < m; i++ {
		h.stage.AddVariable(NewVariableView(10, float64(10+i*40), 120, 30).WithAllControls())
	}
}

// ============================================================================
// Locator
// ============================================================================

// Environment locates a fixed in-memory host. A nil Host, or a host without
// a stage, reports host.ErrHostNotReady.
type Environment struct {
	Host       *Host
	PixelRatio float64
}

func (e *Environment) Locate() (host.Host, error) {
	if e.Host == nil || e.Host.stage == nil {
		return nil, host.ErrHostNotReady
	}
	return e.Host, nil
}

func (e *Environment) DevicePixelRatio() float64 { return e.PixelRatio }

var (
	_ host.Host         = (*Host)(nil)
	_ host.Stage        = (*Stage)(nil)
	_ host.Canvas       = (*Canvas)(nil)
	_ host.Updater      = (*Canvas)(nil)
	_ host.EntitySprite = (*Sprite)(nil)
	_ host.VariableView = (*VariableView)(nil)
	_ host.Control      = (*Control)(nil)
	_ host.InputField   = (*InputField)(nil)
	_ host.TextNode     = (*Object)(nil)
	_ host.Environment  = (*Environment)(nil)

	_ host.PointerListenerRemover = (*Object)(nil)
	_ host.LegacyListenerRemover  = (*Object)(nil)
	_ host.RendererProvider       = (*App)(nil)
	_ host.ScreenProvider         = (*App)(nil)
	_ host.Renderable             = (*App)(nil)
)
