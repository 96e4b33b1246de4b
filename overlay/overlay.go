// Package overlay keeps the floating text input in proportion with the
// stage backing size.
package overlay

import (
	"math"

	"github.com/agiangrant/stagefit/host"
	"github.com/agiangrant/stagefit/viewport"
)

// Geometry is the input field layout for a backing size.
type Geometry struct {
	X, Y          float64
	Width, Height float64
	Padding       float64
	BorderWidth   float64
	BorderRadius  float64
	FontSize      float64
}

// Layout computes the input field geometry as fixed proportions of the
// backing size.
func Layout(size viewport.Size) Geometry {
	w, h := float64(size.Width), float64(size.Height)
	return Geometry{
		X:            math.Round(w * 3 / 128),
		Y:            math.Round(h * 55 / 72),
		Width:        math.Max(1, w*13/16),
		Height:       math.Max(1, h/15),
		Padding:      w * 13 / 640,
		BorderWidth:  w / 320,
		BorderRadius: w / 64,
		FontSize:     w / 32,
	}
}

// Adjust lays out the input field for size. It does nothing when there is no
// field, when it is hidden, or when its padding already equals the padding
// for this width: padding doubles as the "already sized" marker. When
// screenSpace is set (WebGL backend) the field's screen-space view is
// rescaled and moved through the inverse viewport transform. It returns
// whether the field was adjusted.
func Adjust(h host.Host, stage host.Stage, size viewport.Size, screenSpace bool, cfg viewport.Config) bool {
	field := stage.InputField()
	if field == nil || field.Hidden() {
		return false
	}
	g := Layout(size)
	if field.Padding() == g.Padding {
		return false
	}

	field.SetX(g.X)
	field.SetY(g.Y)
	field.SetWidth(g.Width)
	field.SetHeight(g.Height)
	field.SetPadding(g.Padding)
	field.SetBorderWidth(g.BorderWidth)
	field.SetBorderRadius(g.BorderRadius)
	field.SetFontSize(g.FontSize)

	if screenSpace {
		t := viewport.FromCanvas(stage.Canvas())
		p := t.ToScene(field.X(), field.Y())
		view := field.View()
		view.SetScale(cfg.DesignWidth/float64(size.Width), cfg.DesignHeight/float64(size.Height))
		view.SetPosition(p.X, p.Y)
	}

	// The forced update must not be taken for a user-driven one.
	h.SetRequestUpdate(true)
	stage.Update()
	h.SetRequestUpdate(false)
	return true
}
