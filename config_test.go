package stagefit

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/agiangrant/stagefit/host"
	"github.com/agiangrant/stagefit/loop"
	"github.com/agiangrant/stagefit/scene"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	lc := cfg.Loop()
	require.Equal(t, 300*time.Millisecond, lc.PatchInterval)
	require.Equal(t, 640, lc.Viewport.BaseWidth)
	require.Equal(t, 1920, lc.Viewport.MaxRenderWidth)
	require.Equal(t, 1.5, lc.Viewport.QualityBoost)
	require.Equal(t, 480.0, lc.Viewport.DesignWidth)
	require.Equal(t, 5.0, lc.Interaction.ValueSetterNudge)
	require.Equal(t, "run", lc.Interaction.RunState)
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
[render]
max_render_width = 2560

[patch]
interval_ms = 500
value_setter_nudge = 3.5

[log]
level = "debug"
`))
	require.NoError(t, err)
	require.Equal(t, 2560, cfg.Render.MaxRenderWidth)
	require.Equal(t, 640, cfg.Render.BaseWidth)
	require.Equal(t, 500*time.Millisecond, cfg.Loop().PatchInterval)
	require.Equal(t, 3.5, cfg.Interaction().ValueSetterNudge)
	require.Equal(t, 25.0, cfg.Interaction().ScrollMin)
	require.Equal(t, "Entry", cfg.Host.Global)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{name: "syntax", toml: `[render`},
		{name: "zero base", toml: "[render]\nbase_width = 0"},
		{name: "cap below base", toml: "[render]\nmax_render_width = 320"},
		{name: "negative boost", toml: "[render]\nquality_boost = -1.0"},
		{name: "zero interval", toml: "[patch]\ninterval_ms = 0"},
		{name: "no sentinel", toml: "[host]\nsentinel = \"\""},
		{name: "bad level", toml: "[log]\nlevel = \"loud\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.toml))
			require.Error(t, err)
		})
	}
}

func TestSaveLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFile)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)

	cfg.Patch.IntervalMS = 120
	cfg.Host.FrameSelector = "iframe#stage"
	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)

	require.NoError(t, os.WriteFile(path, []byte("[patch]\ninterval_ms = -1\n"), 0644))
	_, err = LoadConfig(path)
	require.ErrorContains(t, err, path)
}

func TestFindConfig(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	require.Empty(t, FindConfig(nested))

	path := filepath.Join(root, ConfigFile)
	require.NoError(t, SaveConfig(path, DefaultConfig()))
	require.Equal(t, path, FindConfig(nested))
}

func TestParseLevel(t *testing.T) {
	for name, want := range map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"off":     LevelOff,
	} {
		got, err := ParseLevel(name)
		require.NoError(t, err, name)
		require.Equal(t, want, got, name)
	}
}

func TestNewDriverLogs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, LogConfig{Level: "info"})
	require.NoError(t, err)
	SetLogger(logger)
	t.Cleanup(func() { SetLogger(nil) })

	h := scene.NewDefaultHost(800)
	sched := &loop.ManualScheduler{}
	d := New(&scene.Environment{Host: h, PixelRatio: 1}, sched, &loop.MemorySentinel{}, DefaultConfig())
	require.NoError(t, d.Start())
	require.Equal(t, 1, sched.Run(1))

	require.Contains(t, buf.String(), "frame loop started")
	require.NotContains(t, buf.String(), "level=DEBUG")
	require.Equal(t, host.ModeCanvas, d.State().LastMode)
	require.False(t, Logger().Enabled(context.Background(), slog.LevelDebug))
}
