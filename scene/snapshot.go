package scene

import (
	"fmt"

	"github.com/gogpu/gg"
)

// Snapshot draws the stage at its current backing size the way the canvas
// backend would: entities as discs (Y up) and variable watchers as rounded
// boxes (Y down), both placed through the viewport transform. The caller
// closes the returned context.
func Snapshot(h *Host) (*gg.Context, error) {
	if h == nil || h.stage == nil {
		return nil, fmt.Errorf("snapshot: no stage")
	}
	canvas := h.stage.canvas
	width, height := canvas.element.width, canvas.element.height
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("snapshot: empty backing size %dx%d", width, height)
	}

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.DrawRectangle(0, 0, float64(width), float64(height))
	if err := dc.Fill(); err != nil {
		dc.Close()
		return nil, fmt.Errorf("snapshot: background: %w", err)
	}

	ox, oy := canvas.X(), canvas.Y()
	sx, sy := canvas.scaleX, canvas.scaleY

	dc.SetRGB(0.2, 0.4, 0.9)
	for _, sprite := range h.objects {
		e := sprite.entity
		dc.DrawCircle(ox+e.x*sx, oy-e.y*sy, 10*sx)
		if err := dc.Fill(); err != nil {
			dc.Close()
			return nil, fmt.Errorf("snapshot: entity %s: %w", e.owner.id, err)
		}
	}

	dc.SetRGB(0.95, 0.55, 0.1)
	for _, vv := range h.stage.variables {
		v := vv.variable
		dc.DrawRoundedRectangle(ox+v.x*sx, oy+v.y*sy, v.width*sx, v.height*sy, 4*sx)
		if err := dc.Fill(); err != nil {
			dc.Close()
			return nil, fmt.Errorf("snapshot: variable: %w", err)
		}
	}
	return dc, nil
}

// WriteSnapshot renders the stage to a PNG file.
func WriteSnapshot(h *Host, path string) error {
	dc, err := Snapshot(h)
	if err != nil {
		return err
	}
	defer dc.Close()
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("snapshot: write %s: %w", path, err)
	}
	return nil
}
