package viewport

import "github.com/agiangrant/stagefit/host"

// Transform is the viewport transform read from the stage canvas: the
// canvas-space origin and the scene-to-canvas scale.
type Transform struct {
	OriginX, OriginY float64
	ScaleX, ScaleY   float64
}

// FromCanvas reads the current transform.
func FromCanvas(c host.Canvas) Transform {
	return Transform{
		OriginX: c.X(),
		OriginY: c.Y(),
		ScaleX:  c.ScaleX(),
		ScaleY:  c.ScaleY(),
	}
}

// ToScene converts a canvas-space point to scene space with Y pointing down.
func (t Transform) ToScene(x, y float64) host.Point {
	return host.Point{
		X: (x - t.OriginX) / t.ScaleX,
		Y: (y - t.OriginY) / t.ScaleY,
	}
}

// ToCanvas is the inverse of ToScene.
func (t Transform) ToCanvas(p host.Point) (x, y float64) {
	return p.X*t.ScaleX + t.OriginX, p.Y*t.ScaleY + t.OriginY
}

// ToSceneYUp converts a canvas-space point to the entity convention, where
// the scene Y axis points up.
func (t Transform) ToSceneYUp(x, y float64) host.Point {
	return host.Point{
		X: (x - t.OriginX) / t.ScaleX,
		Y: (t.OriginY - y) / t.ScaleY,
	}
}

// FromSceneYUp is the inverse of ToSceneYUp.
func (t Transform) FromSceneYUp(p host.Point) (x, y float64) {
	return p.X*t.ScaleX + t.OriginX, t.OriginY - p.Y*t.ScaleY
}

// InstallCoordinateBridge replaces the host's event coordinate conversion
// with one that reads the live canvas transform on every call.
func InstallCoordinateBridge(stage host.Stage) {
	canvas := stage.Canvas()
	stage.SetEventCoordinate(func(e host.PointerEvent) host.Point {
		return FromCanvas(canvas).ToScene(e.StageX, e.StageY)
	})
}
