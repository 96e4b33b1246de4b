package host

import (
	"errors"
	"fmt"
)

var (
	// ErrHostNotReady means the host or its stage is not available; the
	// frame is skipped.
	ErrHostNotReady = errors.New("host not ready")

	// ErrShapeMismatch means a host member was missing or had an unexpected
	// shape partway through a frame.
	ErrShapeMismatch = errors.New("host shape mismatch")

	// ErrAlreadyRunning is returned when a loop is already registered in
	// the process-wide sentinel.
	ErrAlreadyRunning = errors.New("frame loop already running")

	// ErrUnsupportedPlatform is returned by the browser binding outside js/wasm.
	ErrUnsupportedPlatform = errors.New("unsupported platform")
)

// ShapeError wraps a value recovered while talking to the host.
type ShapeError struct {
	Value any
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%v: %v", ErrShapeMismatch, e.Value)
}

// Unwrap makes errors.Is(err, ErrShapeMismatch) hold.
func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}

// Recovered converts a recovered panic value into an error. It returns nil
// for a nil value.
func Recovered(v any) error {
	if v == nil {
		return nil
	}
	if err, ok := v.(error); ok && errors.Is(err, ErrShapeMismatch) {
		return err
	}
	return &ShapeError{Value: v}
}
