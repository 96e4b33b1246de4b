// Package scene is an in-memory retained stage that implements the host
// capabilities.
//
// It stands in for the embedded application wherever the real page is not
// available: in tests, and in the headless simulator. Objects keep their own
// listener lists under both naming schemes, so the patcher's detach/attach
// behaviour is observable. Apart from Object's listener table, values are not
// safe for concurrent use; drive a stage from a single scheduler goroutine.
package scene

import (
	"sync"

	"github.com/agiangrant/stagefit/host"
)

// Object is the base display object: position, offset, cursor, children,
// an optional text resolution and a listener table.
type Object struct {
	mu sync.RWMutex

	x, y       float64
	offset     host.Point
	cursor     string
	mark       string
	resolution float64
	children   []host.Node

	listeners map[string][]host.Handler
}

// NewObject creates an object at the given position.
func NewObject(x, y float64) *Object {
	return &Object{
		x:         x,
		y:         y,
		listeners: make(map[string][]host.Handler),
	}
}

// ============================================================================
// Listeners
// ============================================================================

// On appends a listener for the named event.
func (o *Object) On(event string, handler host.Handler) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.listeners[event] = append(o.listeners[event], handler)
}

// RemoveAllListeners detaches every listener for a pointer-scheme event.
func (o *Object) RemoveAllListeners(event string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.listeners, event)
}

// RemoveAllEventListeners detaches every listener for a legacy-scheme event.
func (o *Object) RemoveAllEventListeners(event string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.listeners, event)
}

// ListenerCount returns how many listeners are attached for event.
func (o *Object) ListenerCount(event string) int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.listeners[event])
}

// Emit invokes the listeners for event in attach order and returns how many ran.
func (o *Object) Emit(event string, e host.PointerEvent) int {
	o.mu.RLock()
	handlers := make([]host.Handler, len(o.listeners[event]))
	copy(handlers, o.listeners[event])
	o.mu.RUnlock()

	for _, h := range handlers {
		h(e)
	}
	return len(handlers)
}

// PatchMark returns the tag of the last bind.
func (o *Object) PatchMark() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.mark
}

// SetPatchMark records the tag of a bind.
func (o *Object) SetPatchMark(mark string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.mark = mark
}

// ============================================================================
// Geometry
// ============================================================================

func (o *Object) X() float64 {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.x
}

func (o *Object) Y() float64 {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.y
}

// SetPosition moves the object.
func (o *Object) SetPosition(x, y float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.x, o.y = x, y
}

func (o *Object) SetY(y float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.y = y
}

func (o *Object) Offset() host.Point {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.offset
}

func (o *Object) SetOffset(p host.Point) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.offset = p
}

func (o *Object) Cursor() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.cursor
}

func (o *Object) SetCursor(cursor string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.cursor = cursor
}

// ============================================================================
// Tree
// ============================================================================

// Children returns a copy of the child list.
func (o *Object) Children() []host.Node {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]host.Node, len(o.children))
	copy(out, o.children)
	return out
}

// AddChild appends a child and returns o for chaining.
func (o *Object) AddChild(child host.Node) *Object {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.children = append(o.children, child)
	return o
}

// Resolution returns the text resolution; zero when unused.
func (o *Object) Resolution() float64 {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.resolution
}

func (o *Object) SetResolution(resolution float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.resolution = resolution
}

// WithResolution sets the initial text resolution.
func (o *Object) WithResolution(resolution float64) *Object {
	o.SetResolution(resolution)
	return o
}
