// Package host declares the capabilities stagefit needs from the embedded
// stage application.
//
// The application (its scene graph, command system, variable watchers and
// text input) is owned elsewhere. stagefit only reads geometry, writes the
// viewport transform and attaches its own pointer listeners. Every member it
// touches is listed here; optional members are separate single-method
// interfaces checked with a type assertion.
package host

// RenderMode selects which event names mean "press" and "drag" and whether
// screen-space widget transforms are needed.
type RenderMode string

const (
	// ModeUnset is the zero value, used before the first patch pass.
	ModeUnset  RenderMode = ""
	ModeWebGL  RenderMode = "webgl"
	ModeCanvas RenderMode = "canvas"
)

// ModeFor maps the host's backend flag to a RenderMode.
func ModeFor(useWebGL bool) RenderMode {
	if useWebGL {
		return ModeWebGL
	}
	return ModeCanvas
}

// Point is a position in either canvas or scene space.
type Point struct {
	X float64
	Y float64
}

// PointerEvent carries the canvas-space pointer position of a raw event.
type PointerEvent struct {
	StageX float64
	StageY float64
}

// Handler receives pointer events from a scene object.
type Handler func(PointerEvent)

// ============================================================================
// Host and Stage
// ============================================================================

// Host is the embedded application's runtime object.
type Host interface {
	// IsState reports whether the execution engine is in the named state ("run").
	IsState(state string) bool
	// DispatchEvent notifies the host of an entity-level event ("entityClick").
	DispatchEvent(name string, entity Entity)
	// Type returns the current editing mode ("workspace", "minimize", ...).
	Type() string
	// UseWebGL is the backend selection flag.
	UseWebGL() bool
	// SetRequestUpdate toggles the host's "suppress update echo" flag.
	SetRequestUpdate(on bool)
	// Objects returns the sprites of all live entities.
	Objects() []EntitySprite
	// SelectObject selects the object with the given id in the editor.
	SelectObject(id string)
	// Stage returns the stage, or nil when it does not exist yet.
	Stage() Stage
}

// ListenerSweeper is implemented by hosts whose bound handlers hold
// resources the host's own garbage collection cannot reach. After a patch
// pass, SweepListeners frees the handlers of every object the pass did not
// visit and returns how many it freed.
type ListenerSweeper interface {
	SweepListeners() int
}

// Stage is the host's rendering stage.
type Stage interface {
	Canvas() Canvas
	Update()
	UpdateObject()
	IsEntitySelectable() bool
	SetObjectClick(on bool)
	// SetEventCoordinate replaces the conversion used by the host's own
	// input handling.
	SetEventCoordinate(fn func(PointerEvent) Point)
	Variables() []VariableView
	// InputField returns the floating text input, or nil.
	InputField() InputField
	// App returns the renderer application, or nil.
	App() App
}

// Canvas is the stage's display root. Its position is the canvas-space
// origin and its scale maps scene units to canvas pixels.
type Canvas interface {
	Element() Element
	X() float64
	Y() float64
	ScaleX() float64
	ScaleY() float64
	SetPosition(x, y float64)
	SetScale(x, y float64)
	Children() []Node
}

// Updater is implemented by canvases that expose an update hook.
type Updater interface {
	Update()
}

// Element is the backing canvas element.
type Element interface {
	// OffsetWidth is the laid-out CSS width; zero before layout.
	OffsetWidth() float64
	Width() int
	Height() int
	SetSize(width, height int)
}

// App is the renderer application behind the stage. All of its members are
// optional: see RendererProvider, ScreenProvider and Renderable.
type App interface{}

// RendererProvider is implemented by apps with a resizable renderer.
type RendererProvider interface {
	// Renderer returns the renderer, or nil.
	Renderer() Renderer
}

// ScreenProvider is implemented by apps with a screen rectangle.
type ScreenProvider interface {
	// Screen returns the screen, or nil.
	Screen() Screen
}

// Renderable is implemented by apps with an explicit render hook.
type Renderable interface {
	Render()
}

// Renderer is the WebGL or canvas renderer.
type Renderer interface {
	Resize(width, height int)
	// SetOptionsSize records the size on the renderer's options.
	SetOptionsSize(width, height int)
}

// Screen is the renderer's screen rectangle.
type Screen interface {
	SetSize(width, height int)
}

// Node is any display object in the stage tree.
type Node interface {
	Children() []Node
}

// TextNode is a node with a text or shape resolution. A zero resolution
// means the attribute is not in use.
type TextNode interface {
	Resolution() float64
	SetResolution(resolution float64)
}

// ============================================================================
// Scene objects
// ============================================================================

// SceneObject is a display object stagefit can bind listeners to.
type SceneObject interface {
	On(event string, handler Handler)
	// PatchMark returns the "role:mode" tag of the last bind, or "".
	PatchMark() string
	SetPatchMark(mark string)
}

// PointerListenerRemover detaches listeners under the pointer-event naming
// scheme.
type PointerListenerRemover interface {
	RemoveAllListeners(event string)
}

// LegacyListenerRemover detaches listeners under the legacy mouse-event
// naming scheme.
type LegacyListenerRemover interface {
	RemoveAllEventListeners(event string)
}

// EntitySprite is the display object of an entity.
type EntitySprite interface {
	SceneObject
	Entity() Entity
	// ParentPosition is the position of the sprite's display parent.
	ParentPosition() Point
	Offset() Point
	SetOffset(p Point)
	SetCursor(cursor string)
}

// Entity is a placed instance of an object in the scene. Its Y axis points up.
type Entity interface {
	X() float64
	Y() float64
	SetX(x float64)
	SetY(y float64)
	// InitCommand primes the undo system before a move.
	InitCommand()
	Owner() Owner
}

// Owner is the object an entity belongs to.
type Owner interface {
	ID() string
	Locked() bool
}

// VariableView is the display container of a variable watcher.
type VariableView interface {
	SceneObject
	X() float64
	Y() float64
	Offset() Point
	SetOffset(p Point)
	Variable() Variable
}

// Variable is the model behind a variable watcher.
type Variable interface {
	X() float64
	Width() float64
	Height() float64
	SetX(x float64)
	SetY(y float64)
	SetWidth(w float64)
	SetHeight(h float64)
	SetSlideCommandX(x float64)
	Resizing() bool
	SetResizing(on bool)
	Adjusting() bool
	SetAdjusting(on bool)
	UpdateView()

	// Sub-controls; each returns nil when the watcher has none.
	SlideBar() Control
	ValueSetter() Control
	ResizeHandle() Control
	ScrollButton() Control
}

// Control is a sub-control of a variable watcher.
type Control interface {
	SceneObject
	X() float64
	Y() float64
	SetY(y float64)
	Offset() Point
	SetOffset(p Point)
	SetParentCursor(cursor string)
}

// InputField is the floating text input shown by "ask" blocks.
type InputField interface {
	Hidden() bool
	X() float64
	Y() float64
	Padding() float64
	SetX(x float64)
	SetY(y float64)
	SetWidth(w float64)
	SetHeight(h float64)
	SetPadding(p float64)
	SetBorderWidth(w float64)
	SetBorderRadius(r float64)
	SetFontSize(size float64)
	// View returns the WebGL display object of the field.
	View() InputView
}

// InputView is the screen-space display object of the input field.
type InputView interface {
	SetScale(x, y float64)
	SetPosition(x, y float64)
}

// ============================================================================
// Location
// ============================================================================

// Locator resolves the host each frame. It returns ErrHostNotReady when the
// host or its required members are absent.
type Locator interface {
	Locate() (Host, error)
}

// LocatorFunc adapts a function to Locator.
type LocatorFunc func() (Host, error)

// Locate calls f.
func (f LocatorFunc) Locate() (Host, error) { return f() }

// Environment is everything the frame driver reads from the page.
type Environment interface {
	Locator
	DevicePixelRatio() float64
}
