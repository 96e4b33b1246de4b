// Package interaction replaces the host's pointer handlers on entity
// sprites and variable watchers with ones that convert coordinates through
// the live viewport transform.
package interaction

import "github.com/agiangrant/stagefit/host"

// Scheme is the listener naming scheme a backend uses. Each scheme has its
// own removal method on scene objects.
type Scheme int

const (
	// SchemePointer is the WebGL renderer's pointer-event scheme.
	SchemePointer Scheme = iota
	// SchemeLegacy is the canvas renderer's mouse-event scheme.
	SchemeLegacy
)

// Backend is the event vocabulary of one render mode.
type Backend struct {
	Mode   host.RenderMode
	Press  string
	Drag   string
	Scheme Scheme
	// ScreenSpace is set when overlay widgets live in screen space and need
	// the inverse viewport transform.
	ScreenSpace bool
}

// backends is ordered: listener detach walks it front to back.
var backends = []Backend{
	{Mode: host.ModeWebGL, Press: "__pointermove", Drag: "__pointerup", Scheme: SchemePointer, ScreenSpace: true},
	{Mode: host.ModeCanvas, Press: "mousedown", Drag: "pressmove", Scheme: SchemeLegacy},
}

// BackendFor returns the backend for mode. Any mode other than WebGL maps to
// the canvas backend.
func BackendFor(mode host.RenderMode) Backend {
	if mode == host.ModeWebGL {
		return backends[0]
	}
	return backends[1]
}

// Backends returns every backend in detach order.
func Backends() []Backend {
	out := make([]Backend, len(backends))
	copy(out, backends)
	return out
}

// Role names what a patched object is to the patcher.
type Role string

const (
	RoleEntity       Role = "entity"
	RoleVariable     Role = "variable"
	RoleSlide        Role = "slide"
	RoleValueSetter  Role = "valueSetter"
	RoleResizeHandle Role = "resizeHandle"
	RoleScrollButton Role = "scrollButton"
)

// Mark is the patch mark for role under mode, e.g. "entity:webgl".
func Mark(role Role, mode host.RenderMode) string {
	return string(role) + ":" + string(mode)
}

// detach removes listeners for the given event selector of every backend,
// pointer scheme first. Objects without the matching removal method are
// left as they are.
func detach(obj host.SceneObject, names func(Backend) []string) {
	for _, b := range backends {
		for _, name := range names(b) {
			switch b.Scheme {
			case SchemePointer:
				if r, ok := obj.(host.PointerListenerRemover); ok {
					r.RemoveAllListeners(name)
				}
			case SchemeLegacy:
				if r, ok := obj.(host.LegacyListenerRemover); ok {
					r.RemoveAllEventListeners(name)
				}
			}
		}
	}
}

func pressAndDrag(b Backend) []string { return []string{b.Press, b.Drag} }
func pressOnly(b Backend) []string    { return []string{b.Press} }
