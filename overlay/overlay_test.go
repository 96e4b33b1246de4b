package overlay

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agiangrant/stagefit/host"
	"github.com/agiangrant/stagefit/scene"
	"github.com/agiangrant/stagefit/viewport"
)

func newStage(t *testing.T, field *scene.InputField) (*scene.Host, *scene.Stage) {
	t.Helper()
	stage := scene.NewStage(scene.NewElement(800, 1280, 720)).WithInputField(field)
	stage.CanvasRef().SetPosition(640, 360)
	stage.CanvasRef().SetScale(1280.0/480, 720.0/270)
	return scene.NewHost(stage), stage
}

func TestLayout(t *testing.T) {
	g := Layout(viewport.Size{Width: 1280, Height: 720})
	require.Equal(t, Geometry{
		X:            30,
		Y:            550,
		Width:        1040,
		Height:       48,
		Padding:      26,
		BorderWidth:  4,
		BorderRadius: 20,
		FontSize:     40,
	}, g)
}

func TestAdjustCanvas(t *testing.T) {
	field := scene.NewInputField()
	h, stage := newStage(t, field)
	size := viewport.Size{Width: 1280, Height: 720}

	require.True(t, Adjust(h, stage, size, false, viewport.DefaultConfig()))
	require.Equal(t, 30.0, field.X())
	require.Equal(t, 550.0, field.Y())
	require.Equal(t, 26.0, field.Padding())
	w, hh, bw, br, fs := field.Geometry()
	require.Equal(t, []float64{1040, 48, 4, 20, 40}, []float64{w, hh, bw, br, fs})

	// Canvas mode leaves the WebGL view alone.
	require.Equal(t, host.Point{}, field.ViewRef().Scale)

	on, history := h.RequestUpdate()
	require.False(t, on)
	require.Equal(t, []bool{true, false}, history)
	require.Equal(t, 1, stage.Updates)

	// Padding already matches: nothing happens.
	require.False(t, Adjust(h, stage, size, false, viewport.DefaultConfig()))
	require.Equal(t, 1, stage.Updates)
}

func TestAdjustWebGL(t *testing.T) {
	field := scene.NewInputField()
	h, stage := newStage(t, field)
	size := viewport.Size{Width: 1280, Height: 720}

	require.True(t, Adjust(h, stage, size, true, viewport.DefaultConfig()))
	view := field.ViewRef()
	require.InDelta(t, 480.0/1280, view.Scale.X, 1e-12)
	require.InDelta(t, 270.0/720, view.Scale.Y, 1e-12)
	require.InDelta(t, (30-640)/(1280.0/480), view.Position.X, 1e-9)
	require.InDelta(t, (550-360)/(720.0/270), view.Position.Y, 1e-9)
}

func TestAdjustSkips(t *testing.T) {
	size := viewport.Size{Width: 1280, Height: 720}

	h, stage := newStage(t, nil)
	require.False(t, Adjust(h, stage, size, false, viewport.DefaultConfig()))

	hidden := scene.NewInputField()
	hidden.SetHidden(true)
	h, stage = newStage(t, hidden)
	require.False(t, Adjust(h, stage, size, true, viewport.DefaultConfig()))
	require.Zero(t, stage.Updates)

	// A padding set elsewhere to the same value is taken as "already sized".
	marked := scene.NewInputField()
	marked.SetPadding(26)
	h, stage = newStage(t, marked)
	require.False(t, Adjust(h, stage, size, false, viewport.DefaultConfig()))
	require.Zero(t, marked.X())
}
