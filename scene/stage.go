package scene

import "github.com/agiangrant/stagefit/host"

// ============================================================================
// Backing element and renderer
// ============================================================================

// Element is the backing canvas element.
type Element struct {
	offsetWidth   float64
	width, height int
	resizes       int
}

// NewElement creates an element with the given laid-out CSS width and
// backing size.
func NewElement(cssWidth float64, width, height int) *Element {
	return &Element{offsetWidth: cssWidth, width: width, height: height}
}

func (e *Element) OffsetWidth() float64 { return e.offsetWidth }
func (e *Element) Width() int           { return e.width }
func (e *Element) Height() int          { return e.height }

// SetSize sets the backing pixel size.
func (e *Element) SetSize(width, height int) {
	e.width, e.height = width, height
	e.resizes++
}

// SetCSSWidth simulates a page layout change.
func (e *Element) SetCSSWidth(w float64) { e.offsetWidth = w }

// Resizes returns how many times SetSize was called.
func (e *Element) Resizes() int { return e.resizes }

// Renderer records resize calls.
type Renderer struct {
	Width, Height               int
	OptionsWidth, OptionsHeight int
	Resizes                     int
}

func (r *Renderer) Resize(width, height int) {
	r.Width, r.Height = width, height
	r.Resizes++
}

func (r *Renderer) SetOptionsSize(width, height int) {
	r.OptionsWidth, r.OptionsHeight = width, height
}

// Screen is the renderer's screen rectangle.
type Screen struct {
	Width, Height int
}

func (s *Screen) SetSize(width, height int) { s.Width, s.Height = width, height }

// App is the renderer application. A nil renderer or screen is reported as
// absent.
type App struct {
	renderer *Renderer
	screen   *Screen
	Renders  int
}

// NewApp creates an app. Either argument may be nil.
func NewApp(renderer *Renderer, screen *Screen) *App {
	return &App{renderer: renderer, screen: screen}
}

func (a *App) Renderer() host.Renderer {
	if a.renderer == nil {
		return nil
	}
	return a.renderer
}

func (a *App) Screen() host.Screen {
	if a.screen == nil {
		return nil
	}
	return a.screen
}

func (a *App) Render() { a.Renders++ }

// ============================================================================
// Canvas
// ============================================================================

// Canvas is the display root carrying the viewport transform.
type Canvas struct {
	*Object
	element        *Element
	scaleX, scaleY float64
	Updates        int
}

// NewCanvas creates a canvas over element with an identity transform
// centred on the element.
func NewCanvas(element *Element) *Canvas {
	return &Canvas{
		Object:  NewObject(float64(element.width)/2, float64(element.height)/2),
		element: element,
		scaleX:  1,
		scaleY:  1,
	}
}

func (c *Canvas) Element() host.Element { return c.element }
func (c *Canvas) ElementRef() *Element  { return c.element }
func (c *Canvas) ScaleX() float64       { return c.scaleX }
func (c *Canvas) ScaleY() float64       { return c.scaleY }

func (c *Canvas) SetScale(x, y float64) { c.scaleX, c.scaleY = x, y }

// Update is the canvas update hook.
func (c *Canvas) Update() { c.Updates++ }

// ============================================================================
// Input field
// ============================================================================

// InputView is the WebGL display object of the input field.
type InputView struct {
	Scale    host.Point
	Position host.Point
}

func (v *InputView) SetScale(x, y float64)    { v.Scale = host.Point{X: x, Y: y} }
func (v *InputView) SetPosition(x, y float64) { v.Position = host.Point{X: x, Y: y} }

// InputField is the floating text input.
type InputField struct {
	hidden bool

	x, y, width, height float64
	padding             float64
	borderWidth         float64
	borderRadius        float64
	fontSize            float64

	view *InputView
}

// NewInputField creates a visible input field.
func NewInputField() *InputField {
	return &InputField{view: &InputView{}}
}

func (f *InputField) Hidden() bool              { return f.hidden }
func (f *InputField) SetHidden(on bool)         { f.hidden = on }
func (f *InputField) X() float64                { return f.x }
func (f *InputField) Y() float64                { return f.y }
func (f *InputField) Padding() float64          { return f.padding }
func (f *InputField) SetX(x float64)            { f.x = x }
func (f *InputField) SetY(y float64)            { f.y = y }
func (f *InputField) SetWidth(w float64)        { f.width = w }
func (f *InputField) SetHeight(h float64)       { f.height = h }
func (f *InputField) SetPadding(p float64)      { f.padding = p }
func (f *InputField) SetBorderWidth(w float64)  { f.borderWidth = w }
func (f *InputField) SetBorderRadius(r float64) { f.borderRadius = r }
func (f *InputField) SetFontSize(size float64)  { f.fontSize = size }
func (f *InputField) View() host.InputView      { return f.view }

// Geometry returns width, height, border width, border radius and font size.
func (f *InputField) Geometry() (width, height, borderWidth, borderRadius, fontSize float64) {
	return f.width, f.height, f.borderWidth, f.borderRadius, f.fontSize
}

// ViewRef returns the concrete view.
func (f *InputField) ViewRef() *InputView { return f.view }

// ============================================================================
// Stage
// ============================================================================

// Stage is the in-memory stage.
type Stage struct {
	canvas      *Canvas
	app         *App
	inputField  *InputField
	variables   []*VariableView
	selectable  bool
	objectClick bool

	eventCoordinate func(host.PointerEvent) host.Point

	Updates       int
	ObjectUpdates int
}

// NewStage creates a selectable stage over element with no app, no
// variables and no input field.
func NewStage(element *Element) *Stage {
	return &Stage{
		canvas:     NewCanvas(element),
		selectable: true,
	}
}

// WithApp attaches a renderer application.
func (s *Stage) WithApp(app *App) *Stage {
	s.app = app
	return s
}

// WithInputField attaches the floating input field.
func (s *Stage) WithInputField(f *InputField) *Stage {
	s.inputField = f
	return s
}

// AddVariable appends a variable watcher.
func (s *Stage) AddVariable(v *VariableView) *Stage {
	s.variables = append(s.variables, v)
	return s
}

// RemoveVariable drops the watcher at index i.
func (s *Stage) RemoveVariable(i int) {
	s.variables = append(s.variables[:i], s.variables[i+1:]...)
}

func (s *Stage) Canvas() host.Canvas { return s.canvas }
func (s *Stage) CanvasRef() *Canvas  { return s.canvas }

func (s *Stage) Update()       { s.Updates++ }
func (s *Stage) UpdateObject() { s.ObjectUpdates++ }

func (s *Stage) IsEntitySelectable() bool    { return s.selectable }
func (s *Stage) SetEntitySelectable(on bool) { s.selectable = on }
func (s *Stage) SetObjectClick(on bool)      { s.objectClick = on }
func (s *Stage) ObjectClick() bool           { return s.objectClick }

func (s *Stage) SetEventCoordinate(fn func(host.PointerEvent) host.Point) {
	s.eventCoordinate = fn
}

// EventCoordinate runs the installed conversion. ok is false when none is
// installed.
func (s *Stage) EventCoordinate(e host.PointerEvent) (p host.Point, ok bool) {
	if s.eventCoordinate == nil {
		return host.Point{}, false
	}
	return s.eventCoordinate(e), true
}

func (s *Stage) Variables() []host.VariableView {
	out := make([]host.VariableView, len(s.variables))
	for i, v := range s.variables {
		out[i] = v
	}
	return out
}

// VariableRefs returns the concrete watchers.
func (s *Stage) VariableRefs() []*VariableView { return s.variables }

func (s *Stage) InputField() host.InputField {
	if s.inputField == nil {
		return nil
	}
	return s.inputField
}

func (s *Stage) App() host.App {
	if s.app == nil {
		return nil
	}
	return s.app
}
