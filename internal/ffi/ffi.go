// Package ffi binds the host capabilities to the live page.
//
// In a js/wasm build the binding reads the application runtime object from
// the hosting iframe (or the page itself) through syscall/js, drives frames
// with requestAnimationFrame and keeps the loop sentinel on the global
// object. Other builds get a stub whose Open reports
// host.ErrUnsupportedPlatform.
package ffi

// Config names the page objects the binding looks for.
type Config struct {
	// FrameSelector selects the iframe hosting the application. When it
	// matches nothing the page's own window is used.
	FrameSelector string
	// Global is the name of the application runtime object.
	Global string
	// Sentinel is the global name holding the current frame handle.
	Sentinel string
}

// Property names stagefit writes on scene objects.
const (
	markProp = "_viewportPatchedMode"
	idProp   = "__stagefitId"
)
