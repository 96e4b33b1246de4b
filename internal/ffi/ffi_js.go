//go:build js && wasm

package ffi

import (
	"errors"
	"math"
	"sync"
	"syscall/js"

	"github.com/agiangrant/stagefit/host"
	"github.com/agiangrant/stagefit/internal/logx"
	"github.com/agiangrant/stagefit/loop"
)

// ============================================================================
// Browser
// ============================================================================

// registration is the set of funcs bound to one page object.
type registration struct {
	obj    js.Value
	events map[string][]js.Func
}

// Browser is the syscall/js binding of the page.
type Browser struct {
	cfg    Config
	global js.Value

	mu      sync.Mutex
	nextID  int
	funcs   map[int]*registration
	visited map[int]struct{}

	coord     func(host.PointerEvent) host.Point
	coordFunc js.Func
	coordOnce sync.Once

	scheduler *FrameScheduler
	sentinel  *GlobalSentinel
}

// Open binds to the current page.
func Open(cfg Config) (*Browser, error) {
	if cfg.Global == "" || cfg.Sentinel == "" {
		return nil, errors.New("ffi: global and sentinel names are required")
	}
	global := js.Global()
	return &Browser{
		cfg:       cfg,
		global:    global,
		funcs:     make(map[int]*registration),
		visited:   make(map[int]struct{}),
		scheduler: NewFrameScheduler(global),
		sentinel:  &GlobalSentinel{global: global, name: cfg.Sentinel},
	}, nil
}

func (b *Browser) Environment() host.Environment { return b }
func (b *Browser) Scheduler() loop.Scheduler     { return b.scheduler }
func (b *Browser) Sentinel() loop.Sentinel       { return b.sentinel }

// Locate finds the application runtime object in the hosting iframe, or in
// the page itself when the iframe is absent.
func (b *Browser) Locate() (host.Host, error) {
	win := b.global
	if b.cfg.FrameSelector != "" {
		if doc := b.global.Get("document"); doc.Truthy() {
			if frame := doc.Call("querySelector", b.cfg.FrameSelector); frame.Truthy() {
				if cw := frame.Get("contentWindow"); cw.Truthy() {
					win = cw
				}
			}
		}
	}

	entry := win.Get(b.cfg.Global)
	if !entry.Truthy() || !entry.Get("stage").Truthy() {
		return nil, host.ErrHostNotReady
	}
	return &entryHost{b: b, v: entry}, nil
}

// DevicePixelRatio reads window.devicePixelRatio, 1 when unavailable.
func (b *Browser) DevicePixelRatio() float64 {
	if dpr := b.global.Get("devicePixelRatio"); dpr.Type() == js.TypeNumber {
		return dpr.Float()
	}
	return 1
}

// objectID returns the id stored on v, assigning one on first use.
// Callers hold b.mu.
func (b *Browser) objectID(v js.Value) int {
	if id := v.Get(idProp); id.Type() == js.TypeNumber {
		return id.Int()
	}
	b.nextID++
	v.Set(idProp, b.nextID)
	return b.nextID
}

// visit records that v is still reachable from the host.
func (b *Browser) visit(v js.Value) {
	id := v.Get(idProp)
	if id.Type() != js.TypeNumber {
		return
	}
	b.mu.Lock()
	b.visited[id.Int()] = struct{}{}
	b.mu.Unlock()
}

// listen wraps h in a js.Func registered against v and event. A panic in
// the handler is logged and swallowed; it must not reach the JS caller.
func (b *Browser) listen(v js.Value, event string, h host.Handler) js.Func {
	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		defer func() {
			if r := recover(); r != nil {
				logx.L().Warn("pointer handler failed", "event", event, "err", host.Recovered(r))
			}
		}()
		h(pointerEvent(args))
		return nil
	})

	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.objectID(v)
	reg := b.funcs[id]
	if reg == nil {
		reg = &registration{obj: v, events: make(map[string][]js.Func)}
		b.funcs[id] = reg
	}
	reg.events[event] = append(reg.events[event], fn)
	b.visited[id] = struct{}{}
	return fn
}

// release frees the funcs registered against v and event.
func (b *Browser) release(v js.Value, event string) {
	id := v.Get(idProp)
	if id.Type() != js.TypeNumber {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	reg := b.funcs[id.Int()]
	if reg == nil {
		return
	}
	for _, fn := range reg.events[event] {
		fn.Release()
	}
	delete(reg.events, event)
	if len(reg.events) == 0 {
		delete(b.funcs, id.Int())
	}
}

// sweep frees the funcs of every object not visited since the previous
// sweep and clears their patch marks, so an object that comes back is bound
// afresh. It returns the number of funcs freed.
func (b *Browser) sweep() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	freed := 0
	for id, reg := range b.funcs {
		if _, ok := b.visited[id]; ok {
			continue
		}
		for _, fns := range reg.events {
			for _, fn := range fns {
				fn.Release()
				freed++
			}
		}
		reg.obj.Delete(markProp)
		delete(b.funcs, id)
	}
	clear(b.visited)
	return freed
}

func pointerEvent(args []js.Value) host.PointerEvent {
	var e host.PointerEvent
	if len(args) > 0 && args[0].Truthy() {
		e.StageX = optFloat(args[0], "stageX")
		e.StageY = optFloat(args[0], "stageY")
	}
	return e
}

// ============================================================================
// Scheduler and sentinel
// ============================================================================

// FrameScheduler schedules frames with requestAnimationFrame.
type FrameScheduler struct {
	window  js.Value
	tick    js.Func
	pending []func()
}

// NewFrameScheduler creates a scheduler on window.
func NewFrameScheduler(window js.Value) *FrameScheduler {
	s := &FrameScheduler{window: window}
	s.tick = js.FuncOf(func(this js.Value, args []js.Value) any {
		batch := s.pending
		s.pending = nil
		for _, fn := range batch {
			fn()
		}
		return nil
	})
	return s
}

// RequestFrame queues fn for the next animation frame and returns the
// browser's handle.
func (s *FrameScheduler) RequestFrame(fn func()) int {
	s.pending = append(s.pending, fn)
	return s.window.Call("requestAnimationFrame", s.tick).Int()
}

// GlobalSentinel keeps the frame handle on the global object, so a second
// injection of the script sees the first one's loop.
type GlobalSentinel struct {
	global js.Value
	name   string
}

func (s *GlobalSentinel) Load() int {
	if v := s.global.Get(s.name); v.Type() == js.TypeNumber {
		return v.Int()
	}
	return 0
}

func (s *GlobalSentinel) Store(handle int) { s.global.Set(s.name, handle) }

// ============================================================================
// Value helpers
// ============================================================================

// must returns member name of v, panicking with a shape error when absent.
func must(v js.Value, name string) js.Value {
	m := v.Get(name)
	if m.IsUndefined() || m.IsNull() {
		panic(&host.ShapeError{Value: "missing member " + name})
	}
	return m
}

func optFloat(v js.Value, name string) float64 {
	if m := v.Get(name); m.Type() == js.TypeNumber {
		return m.Float()
	}
	return 0
}

func callOpt(v js.Value, name string, args ...any) {
	if f := v.Get(name); f.Type() == js.TypeFunction {
		v.Call(name, args...)
	}
}

func point(v js.Value) host.Point {
	if !v.Truthy() {
		return host.Point{}
	}
	return host.Point{X: optFloat(v, "x"), Y: optFloat(v, "y")}
}

func pointValue(p host.Point) map[string]any {
	return map[string]any{"x": p.X, "y": p.Y}
}

// ============================================================================
// Host
// ============================================================================

type entryHost struct {
	b *Browser
	v js.Value
}

func (h *entryHost) IsState(state string) bool {
	return must(h.v, "engine").Call("isState", state).Truthy()
}

func (h *entryHost) DispatchEvent(name string, e host.Entity) {
	arg := js.Null()
	if ent, ok := e.(entity); ok {
		arg = ent.v
	}
	h.v.Call("dispatchEvent", name, arg)
}

func (h *entryHost) Type() string {
	if t := h.v.Get("type"); t.Type() == js.TypeString {
		return t.String()
	}
	return ""
}

func (h *entryHost) UseWebGL() bool {
	opts := h.v.Get("options")
	return opts.Truthy() && opts.Get("useWebGL").Truthy()
}

func (h *entryHost) SetRequestUpdate(on bool) { h.v.Set("requestUpdate", on) }

func (h *entryHost) Objects() []host.EntitySprite {
	list := must(must(h.v, "container"), "objects_")
	n := list.Length()
	out := make([]host.EntitySprite, 0, n)
	for i := 0; i < n; i++ {
		obj := must(must(list.Index(i), "entity"), "object")
		h.b.visit(obj)
		out = append(out, sprite{object{b: h.b, v: obj}})
	}
	return out
}

func (h *entryHost) SelectObject(id string) {
	must(h.v, "container").Call("selectObject", id)
}

// SweepListeners frees the funcs of sprites and watchers the host has
// dropped since the previous sweep.
func (h *entryHost) SweepListeners() int { return h.b.sweep() }

func (h *entryHost) Stage() host.Stage {
	s := h.v.Get("stage")
	if !s.Truthy() {
		return nil
	}
	return &stage{b: h.b, v: s}
}

// ============================================================================
// Stage
// ============================================================================

type stage struct {
	b *Browser
	v js.Value
}

func (s *stage) Canvas() host.Canvas      { return canvas{b: s.b, v: must(s.v, "canvas")} }
func (s *stage) Update()                  { s.v.Call("update") }
func (s *stage) UpdateObject()            { s.v.Call("updateObject") }
func (s *stage) IsEntitySelectable() bool { return s.v.Call("isEntitySelectable").Truthy() }
func (s *stage) SetObjectClick(on bool)   { s.v.Set("isObjectClick", on) }

// SetEventCoordinate installs one js.Func on the stage handle for the
// lifetime of the binding; later calls only swap the Go conversion behind it.
func (s *stage) SetEventCoordinate(fn func(host.PointerEvent) host.Point) {
	b := s.b
	b.coord = fn
	b.coordOnce.Do(func() {
		b.coordFunc = js.FuncOf(func(this js.Value, args []js.Value) (ret any) {
			defer func() {
				if r := recover(); r != nil {
					logx.L().Warn("event coordinate failed", "err", host.Recovered(r))
					ret = pointValue(host.Point{X: math.NaN(), Y: math.NaN()})
				}
			}()
			return pointValue(b.coord(pointerEvent(args)))
		})
	})

	handle := must(s.v, "handle")
	if !handle.Get("getEventCoordinate").Equal(b.coordFunc.Value) {
		handle.Set("getEventCoordinate", b.coordFunc)
	}
}

func (s *stage) Variables() []host.VariableView {
	children := must(must(s.v, "variableContainer"), "children")
	n := children.Length()
	out := make([]host.VariableView, 0, n)
	for i := 0; i < n; i++ {
		child := children.Index(i)
		s.b.visit(child)
		out = append(out, varView{object{b: s.b, v: child}})
	}
	return out
}

func (s *stage) InputField() host.InputField {
	f := s.v.Get("inputField")
	if !f.Truthy() {
		return nil
	}
	return inputField{v: f}
}

func (s *stage) App() host.App {
	a := s.v.Get("_app")
	if !a.Truthy() {
		return nil
	}
	return app{v: a}
}

type canvas struct {
	b *Browser
	v js.Value
}

func (c canvas) Element() host.Element { return element{v: must(c.v, "canvas")} }
func (c canvas) X() float64            { return must(c.v, "x").Float() }
func (c canvas) Y() float64            { return must(c.v, "y").Float() }
func (c canvas) ScaleX() float64       { return must(c.v, "scaleX").Float() }
func (c canvas) ScaleY() float64       { return must(c.v, "scaleY").Float() }
func (c canvas) Update()               { callOpt(c.v, "update") }
func (c canvas) Children() []host.Node { return nodes(c.v.Get("children")) }

func (c canvas) SetPosition(x, y float64) {
	c.v.Set("x", x)
	c.v.Set("y", y)
}

func (c canvas) SetScale(x, y float64) {
	c.v.Set("scaleX", x)
	c.v.Set("scaleY", y)
}

type element struct{ v js.Value }

func (e element) OffsetWidth() float64 { return optFloat(e.v, "offsetWidth") }
func (e element) Width() int           { return int(optFloat(e.v, "width")) }
func (e element) Height() int          { return int(optFloat(e.v, "height")) }

func (e element) SetSize(width, height int) {
	e.v.Set("width", width)
	e.v.Set("height", height)
}

type node struct{ v js.Value }

func (n node) Children() []host.Node   { return nodes(n.v.Get("children")) }
func (n node) Resolution() float64     { return optFloat(n.v, "resolution") }
func (n node) SetResolution(r float64) { n.v.Set("resolution", r) }

func nodes(list js.Value) []host.Node {
	if !list.Truthy() {
		return nil
	}
	n := list.Length()
	out := make([]host.Node, 0, n)
	for i := 0; i < n; i++ {
		item := list.Index(i)
		if !item.Truthy() {
			out = append(out, nil)
			continue
		}
		out = append(out, node{v: item})
	}
	return out
}

type app struct{ v js.Value }

func (a app) Renderer() host.Renderer {
	r := a.v.Get("renderer")
	if !r.Truthy() {
		return nil
	}
	return renderer{v: r}
}

func (a app) Screen() host.Screen {
	s := a.v.Get("screen")
	if !s.Truthy() {
		return nil
	}
	return screen{v: s}
}

func (a app) Render() { callOpt(a.v, "render") }

type renderer struct{ v js.Value }

func (r renderer) Resize(width, height int) { r.v.Call("resize", width, height) }

func (r renderer) SetOptionsSize(width, height int) {
	opts := must(r.v, "options")
	opts.Set("width", width)
	opts.Set("height", height)
}

type screen struct{ v js.Value }

func (s screen) SetSize(width, height int) {
	s.v.Set("width", width)
	s.v.Set("height", height)
}

// ============================================================================
// Scene objects
// ============================================================================

type object struct {
	b *Browser
	v js.Value
}

func (o object) On(event string, h host.Handler) {
	o.v.Call("on", event, o.b.listen(o.v, event, h))
}

func (o object) PatchMark() string {
	if m := o.v.Get(markProp); m.Type() == js.TypeString {
		return m.String()
	}
	return ""
}

func (o object) SetPatchMark(mark string) { o.v.Set(markProp, mark) }

// The removal methods are optional on the page side; funcs are only
// released once the page has let go of them.

func (o object) RemoveAllListeners(event string) {
	if o.v.Get("removeAllListeners").Type() == js.TypeFunction {
		o.v.Call("removeAllListeners", event)
		o.b.release(o.v, event)
	}
}

func (o object) RemoveAllEventListeners(event string) {
	if o.v.Get("removeAllEventListeners").Type() == js.TypeFunction {
		o.v.Call("removeAllEventListeners", event)
		o.b.release(o.v, event)
	}
}

type sprite struct{ object }

func (s sprite) Entity() host.Entity        { return entity{v: must(s.v, "entity")} }
func (s sprite) ParentPosition() host.Point { return point(s.v.Get("parent")) }
func (s sprite) Offset() host.Point         { return point(s.v.Get("offset")) }
func (s sprite) SetOffset(p host.Point)     { s.v.Set("offset", pointValue(p)) }
func (s sprite) SetCursor(cursor string)    { s.v.Set("cursor", cursor) }

type entity struct{ v js.Value }

func (e entity) X() float64     { return must(e.v, "x").Float() }
func (e entity) Y() float64     { return must(e.v, "y").Float() }
func (e entity) SetX(x float64) { e.v.Call("setX", x) }
func (e entity) SetY(y float64) { e.v.Call("setY", y) }
func (e entity) InitCommand()   { e.v.Call("initCommand") }
func (e entity) Owner() host.Owner {
	return owner{v: must(e.v, "parent")}
}

type owner struct{ v js.Value }

func (o owner) ID() string   { return must(o.v, "id").String() }
func (o owner) Locked() bool { return o.v.Call("getLock").Truthy() }

type varView struct{ object }

func (vv varView) X() float64             { return must(vv.v, "x").Float() }
func (vv varView) Y() float64             { return must(vv.v, "y").Float() }
func (vv varView) Offset() host.Point     { return point(vv.v.Get("offset")) }
func (vv varView) SetOffset(p host.Point) { vv.v.Set("offset", pointValue(p)) }

func (vv varView) Variable() host.Variable {
	v := vv.v.Get("variable")
	if !v.Truthy() {
		return nil
	}
	return variable{b: vv.b, v: v}
}

type variable struct {
	b *Browser
	v js.Value
}

func (v variable) X() float64                 { return v.v.Call("getX").Float() }
func (v variable) Width() float64             { return v.v.Call("getWidth").Float() }
func (v variable) Height() float64            { return v.v.Call("getHeight").Float() }
func (v variable) SetX(x float64)             { v.v.Call("setX", x) }
func (v variable) SetY(y float64)             { v.v.Call("setY", y) }
func (v variable) SetWidth(w float64)         { v.v.Call("setWidth", w) }
func (v variable) SetHeight(h float64)        { v.v.Call("setHeight", h) }
func (v variable) SetSlideCommandX(x float64) { v.v.Call("setSlideCommandX", x) }
func (v variable) Resizing() bool             { return v.v.Get("isResizing").Truthy() }
func (v variable) SetResizing(on bool)        { v.v.Set("isResizing", on) }
func (v variable) Adjusting() bool            { return v.v.Get("isAdjusting").Truthy() }
func (v variable) SetAdjusting(on bool)       { v.v.Set("isAdjusting", on) }
func (v variable) UpdateView()                { v.v.Call("updateView") }

func (v variable) SlideBar() host.Control     { return v.control("slideBar_") }
func (v variable) ValueSetter() host.Control  { return v.control("valueSetter_") }
func (v variable) ResizeHandle() host.Control { return v.control("resizeHandle_") }
func (v variable) ScrollButton() host.Control { return v.control("scrollButton_") }

func (v variable) control(name string) host.Control {
	c := v.v.Get(name)
	if !c.Truthy() {
		return nil
	}
	v.b.visit(c)
	return control{object{b: v.b, v: c}}
}

// control keeps its drag offset in offsetX/offsetY.
type control struct{ object }

func (c control) X() float64     { return must(c.v, "x").Float() }
func (c control) Y() float64     { return must(c.v, "y").Float() }
func (c control) SetY(y float64) { c.v.Set("y", y) }
func (c control) Offset() host.Point {
	return host.Point{X: optFloat(c.v, "offsetX"), Y: optFloat(c.v, "offsetY")}
}

func (c control) SetOffset(p host.Point) {
	c.v.Set("offsetX", p.X)
	c.v.Set("offsetY", p.Y)
}

func (c control) SetParentCursor(cursor string) {
	if p := c.v.Get("parent"); p.Truthy() {
		p.Set("cursor", cursor)
	}
}

// ============================================================================
// Input field
// ============================================================================

type inputField struct{ v js.Value }

func (f inputField) Hidden() bool              { return f.v.Get("_isHidden").Truthy() }
func (f inputField) X() float64                { return optFloat(f.v, "_x") }
func (f inputField) Y() float64                { return optFloat(f.v, "_y") }
func (f inputField) Padding() float64          { return optFloat(f.v, "_padding") }
func (f inputField) SetX(x float64)            { f.v.Call("x", x) }
func (f inputField) SetY(y float64)            { f.v.Call("y", y) }
func (f inputField) SetWidth(w float64)        { f.v.Call("width", w) }
func (f inputField) SetHeight(h float64)       { f.v.Call("height", h) }
func (f inputField) SetPadding(p float64)      { f.v.Call("padding", p) }
func (f inputField) SetBorderWidth(w float64)  { f.v.Call("borderWidth", w) }
func (f inputField) SetBorderRadius(r float64) { f.v.Call("borderRadius", r) }
func (f inputField) SetFontSize(size float64)  { f.v.Call("fontSize", size) }
func (f inputField) View() host.InputView      { return inputView{v: f.v.Call("getPixiView")} }

type inputView struct{ v js.Value }

func (iv inputView) SetScale(x, y float64)    { must(iv.v, "scale").Call("set", x, y) }
func (iv inputView) SetPosition(x, y float64) { must(iv.v, "position").Call("set", x, y) }

var (
	_ host.Environment            = (*Browser)(nil)
	_ host.Host                   = (*entryHost)(nil)
	_ host.ListenerSweeper        = (*entryHost)(nil)
	_ host.Stage                  = (*stage)(nil)
	_ host.Updater                = canvas{}
	_ host.TextNode               = node{}
	_ host.EntitySprite           = sprite{}
	_ host.VariableView           = varView{}
	_ host.Control                = control{}
	_ host.InputField             = inputField{}
	_ host.PointerListenerRemover = object{}
	_ host.LegacyListenerRemover  = object{}
	_ host.RendererProvider       = app{}
	_ host.ScreenProvider         = app{}
	_ host.Renderable             = app{}
	_ loop.Scheduler              = (*FrameScheduler)(nil)
	_ loop.Sentinel               = (*GlobalSentinel)(nil)
)
