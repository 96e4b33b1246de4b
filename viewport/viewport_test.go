package viewport

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agiangrant/stagefit/host"
	"github.com/agiangrant/stagefit/scene"
)

func TestComputeRenderSize(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name       string
		cssWidth   float64
		backingW   int
		backingH   int
		pixelRatio float64
		want       Size
	}{
		{name: "800 css at dpr 1", cssWidth: 800, backingW: 640, backingH: 360, pixelRatio: 1, want: Size{1200, 675}},
		{name: "small element floors at base", cssWidth: 100, backingW: 640, backingH: 360, pixelRatio: 1, want: Size{640, 360}},
		{name: "retina caps at max", cssWidth: 1000, backingW: 640, backingH: 360, pixelRatio: 2, want: Size{1920, 1080}},
		{name: "dpr below one treated as one", cssWidth: 600, backingW: 640, backingH: 360, pixelRatio: 0.5, want: Size{900, 506}},
		{name: "not laid out keeps larger backing", cssWidth: 0, backingW: 1280, backingH: 720, pixelRatio: 1, want: Size{1280, 720}},
		{name: "not laid out floors at base", cssWidth: 0, backingW: 300, backingH: 0, pixelRatio: 1, want: Size{640, 360}},
		{name: "unreadable width", cssWidth: math.NaN(), backingW: 0, backingH: 0, pixelRatio: 1, want: Size{640, 360}},
		{name: "infinite width caps at max", cssWidth: math.Inf(1), backingW: 640, backingH: 360, pixelRatio: 1, want: Size{1920, 1080}},
		{name: "infinite dpr caps at max", cssWidth: 800, backingW: 640, backingH: 360, pixelRatio: math.Inf(1), want: Size{1920, 1080}},
		{name: "unreadable dpr treated as one", cssWidth: 800, backingW: 640, backingH: 360, pixelRatio: math.NaN(), want: Size{1200, 675}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := scene.NewElement(tt.cssWidth, tt.backingW, tt.backingH)
			require.Equal(t, tt.want, ComputeRenderSize(el, tt.pixelRatio, cfg))
		})
	}
}

func TestComputeRenderSizeBounds(t *testing.T) {
	cfg := DefaultConfig()
	for css := 1.0; css <= 4000; css += 7.3 {
		for _, dpr := range []float64{0, 1, 1.25, 2, 3} {
			got := ComputeRenderSize(scene.NewElement(css, 640, 360), dpr, cfg)
			require.GreaterOrEqual(t, got.Width, 640)
			require.LessOrEqual(t, got.Width, 1920)
			require.Equal(t, int(math.Round(float64(got.Width)*9/16)), got.Height)
		}
	}
}

func TestResize(t *testing.T) {
	cfg := DefaultConfig()
	h := scene.NewDefaultHost(800)
	stage := h.StageRef()
	app := stage.App().(*scene.App)
	renderer := app.Renderer().(*scene.Renderer)
	screen := app.Screen().(*scene.Screen)
	canvas := stage.CanvasRef()

	require.True(t, Resize(stage, Size{1200, 675}, cfg))
	require.Equal(t, 1200, canvas.ElementRef().Width())
	require.Equal(t, 675, canvas.ElementRef().Height())
	require.Equal(t, 600.0, canvas.X())
	require.Equal(t, 337.5, canvas.Y())
	require.Equal(t, 2.5, canvas.ScaleX())
	require.Equal(t, 2.5, canvas.ScaleY())
	require.Equal(t, 1, renderer.Resizes)
	require.Equal(t, 1200, renderer.OptionsWidth)
	require.Equal(t, 675, renderer.OptionsHeight)
	require.Equal(t, 1200, screen.Width)
	require.Equal(t, 1, app.Renders)
	require.Equal(t, 1, canvas.Updates)

	// Same size again is a no-op.
	canvas.SetScale(9, 9)
	require.False(t, Resize(stage, Size{1200, 675}, cfg))
	require.Equal(t, 9.0, canvas.ScaleX())
	require.Equal(t, 1, renderer.Resizes)
	require.Equal(t, 1, canvas.ElementRef().Resizes())
}

func TestResizeWithoutRenderer(t *testing.T) {
	cfg := DefaultConfig()
	screen := &scene.Screen{}
	stage := scene.NewStage(scene.NewElement(800, 640, 360)).WithApp(scene.NewApp(nil, screen))

	require.True(t, Resize(stage, Size{960, 540}, cfg))
	require.Equal(t, 0, screen.Width)
	require.Equal(t, 2.0, stage.CanvasRef().ScaleX())

	bare := scene.NewStage(scene.NewElement(800, 640, 360))
	require.True(t, Resize(bare, Size{960, 540}, cfg))
	require.Equal(t, 1, bare.CanvasRef().Updates)
}

func TestPropagateResolution(t *testing.T) {
	leaf := scene.NewObject(0, 0).WithResolution(1)
	plain := scene.NewObject(0, 0).AddChild(leaf)
	text := scene.NewObject(0, 0).WithResolution(1).AddChild(plain)
	other := scene.NewObject(0, 0)

	n := PropagateResolution([]host.Node{text, other, nil}, 1.875)
	require.Equal(t, 2, n)
	require.Equal(t, 1.875, text.Resolution())
	require.Equal(t, 1.875, leaf.Resolution())
	require.Zero(t, plain.Resolution())
	require.Zero(t, other.Resolution())
}

func TestTransformRoundTrip(t *testing.T) {
	tr := Transform{OriginX: 240, OriginY: 135, ScaleX: 2, ScaleY: 1.75}
	points := [][2]float64{{0, 0}, {440, 235}, {-13.5, 1000.25}, {1919, 1079}}
	for _, p := range points {
		x, y := tr.ToCanvas(tr.ToScene(p[0], p[1]))
		require.InDelta(t, p[0], x, 1e-9)
		require.InDelta(t, p[1], y, 1e-9)

		x, y = tr.FromSceneYUp(tr.ToSceneYUp(p[0], p[1]))
		require.InDelta(t, p[0], x, 1e-9)
		require.InDelta(t, p[1], y, 1e-9)
	}

	require.Equal(t, host.Point{X: 100, Y: 50}, tr.ToScene(440, 222.5))
	require.Equal(t, host.Point{X: 100, Y: -50}, tr.ToSceneYUp(440, 222.5))
}

func TestCoordinateBridgeReadsLiveTransform(t *testing.T) {
	h := scene.NewDefaultHost(800)
	stage := h.StageRef()
	InstallCoordinateBridge(stage)

	stage.CanvasRef().SetPosition(240, 135)
	stage.CanvasRef().SetScale(2, 2)
	p, ok := stage.EventCoordinate(host.PointerEvent{StageX: 440, StageY: 235})
	require.True(t, ok)
	require.Equal(t, host.Point{X: 100, Y: 50}, p)

	require.True(t, Resize(stage, Size{1200, 675}, DefaultConfig()))
	p, _ = stage.EventCoordinate(host.PointerEvent{StageX: 600, StageY: 337.5})
	require.Equal(t, host.Point{}, p)
}
