//go:build !js || !wasm

package ffi

import (
	"github.com/agiangrant/stagefit/host"
	"github.com/agiangrant/stagefit/loop"
)

// Browser is unavailable outside js/wasm.
type Browser struct{}

// Open always fails outside js/wasm.
func Open(cfg Config) (*Browser, error) {
	return nil, host.ErrUnsupportedPlatform
}

func (b *Browser) Environment() host.Environment { return nil }
func (b *Browser) Scheduler() loop.Scheduler     { return nil }
func (b *Browser) Sentinel() loop.Sentinel       { return nil }
