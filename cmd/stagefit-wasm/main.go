//go:build js && wasm

// Command stagefit-wasm is the browser entry point. Load it into the page
// hosting the stage application; injecting it a second time is harmless.
package main

import (
	"errors"
	"os"

	"github.com/agiangrant/stagefit"
	"github.com/agiangrant/stagefit/host"
	"github.com/agiangrant/stagefit/internal/ffi"
	"github.com/agiangrant/stagefit/loop"
)

func main() {
	cfg := stagefit.DefaultConfig()
	base, err := stagefit.NewLogger(os.Stderr, cfg.Log)
	if err != nil {
		base = stagefit.Logger()
	}
	base = base.With("component", "stagefit")
	stagefit.SetLogger(base)

	browser, err := ffi.Open(ffi.Config{
		FrameSelector: cfg.Host.FrameSelector,
		Global:        cfg.Host.Global,
		Sentinel:      cfg.Host.Sentinel,
	})
	if err != nil {
		stagefit.Logger().Error("failed to bind page", "err", err)
		return
	}

	// The driver tags its own records; the package logger carries its id too.
	d := stagefit.New(browser.Environment(), browser.Scheduler(), browser.Sentinel(), cfg, loop.WithLogger(base))
	stagefit.SetLogger(base.With("driver", d.ID()))
	if err := d.Start(); err != nil {
		if errors.Is(err, host.ErrAlreadyRunning) {
			stagefit.Logger().Debug("frame loop already running")
			return
		}
		stagefit.Logger().Error("failed to start", "err", err)
		return
	}

	// Block forever (Go WASM programs run until explicitly stopped)
	select {}
}
