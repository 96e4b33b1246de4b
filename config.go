package stagefit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/agiangrant/stagefit/interaction"
	"github.com/agiangrant/stagefit/loop"
	"github.com/agiangrant/stagefit/viewport"
)

// ConfigFile is the configuration file name looked up by FindConfig.
const ConfigFile = "stagefit.toml"

// Config represents the stagefit.toml configuration file
type Config struct {
	Render RenderConfig `toml:"render"`
	Patch  PatchConfig  `toml:"patch"`
	Host   HostConfig   `toml:"host"`
	Log    LogConfig    `toml:"log"`
}

// RenderConfig sizes the backing canvas.
type RenderConfig struct {
	// Smallest backing size, also the size assumed before layout
	BaseWidth  int `toml:"base_width"`
	BaseHeight int `toml:"base_height"`
	// Cap on the backing width
	MaxRenderWidth int `toml:"max_render_width"`
	// Oversampling above the CSS size
	QualityBoost float64 `toml:"quality_boost"`
	// Fixed logical scene resolution
	DesignWidth  float64 `toml:"design_width"`
	DesignHeight float64 `toml:"design_height"`
}

// PatchConfig controls listener re-binding and widget drag limits.
type PatchConfig struct {
	// Longest gap between patch passes, in milliseconds
	IntervalMS int `toml:"interval_ms"`
	// Added to the slider value while dragging the value box
	ValueSetterNudge float64 `toml:"value_setter_nudge"`
	// Scroll thumb limits
	ScrollMin          float64 `toml:"scroll_min"`
	ScrollBottomMargin float64 `toml:"scroll_bottom_margin"`
}

// HostConfig names the page objects the browser binding looks for.
type HostConfig struct {
	// CSS selector of the iframe hosting the application
	FrameSelector string `toml:"frame_selector"`
	// Global name of the application runtime object
	Global string `toml:"global"`
	// Global name of the frame handle sentinel
	Sentinel string `toml:"sentinel"`
}

type LogConfig struct {
	// debug, info, warn, error or off
	Level string `toml:"level"`
}

// DefaultConfig returns the stock configuration
func DefaultConfig() Config {
	vp := viewport.DefaultConfig()
	ic := interaction.DefaultConfig()
	return Config{
		Render: RenderConfig{
			BaseWidth:      vp.BaseWidth,
			BaseHeight:     vp.BaseHeight,
			MaxRenderWidth: vp.MaxRenderWidth,
			QualityBoost:   vp.QualityBoost,
			DesignWidth:    vp.DesignWidth,
			DesignHeight:   vp.DesignHeight,
		},
		Patch: PatchConfig{
			IntervalMS:         300,
			ValueSetterNudge:   ic.ValueSetterNudge,
			ScrollMin:          ic.ScrollMin,
			ScrollBottomMargin: ic.ScrollBottomMargin,
		},
		Host: HostConfig{
			FrameSelector: "iframe.eaizycc0",
			Global:        "Entry",
			Sentinel:      "__REQUEST_ANIMATION_FRAME_ID",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Parse decodes TOML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	config := DefaultConfig()
	if err := toml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

// LoadConfig loads the configuration at path.
// If the file doesn't exist, returns default config
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return DefaultConfig(), fmt.Errorf("failed to read %s: %w", path, err)
	}

	config, err := Parse(data)
	if err != nil {
		return config, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// SaveConfig writes the configuration to path
func SaveConfig(path string, config Config) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// FindConfig walks up from dir looking for stagefit.toml and returns its
// path, or "" when there is none.
func FindConfig(dir string) string {
	for {
		path := filepath.Join(dir, ConfigFile)
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Validate rejects sizes and intervals that cannot drive a frame loop.
func (c Config) Validate() error {
	r := c.Render
	switch {
	case r.BaseWidth <= 0 || r.BaseHeight <= 0:
		return fmt.Errorf("render: base size must be positive, got %dx%d", r.BaseWidth, r.BaseHeight)
	case r.MaxRenderWidth < r.BaseWidth:
		return fmt.Errorf("render: max_render_width %d is below base_width %d", r.MaxRenderWidth, r.BaseWidth)
	case r.QualityBoost <= 0:
		return fmt.Errorf("render: quality_boost must be positive, got %v", r.QualityBoost)
	case r.DesignWidth <= 0 || r.DesignHeight <= 0:
		return fmt.Errorf("render: design size must be positive, got %vx%v", r.DesignWidth, r.DesignHeight)
	case c.Patch.IntervalMS <= 0:
		return fmt.Errorf("patch: interval_ms must be positive, got %d", c.Patch.IntervalMS)
	case c.Host.Global == "" || c.Host.Sentinel == "":
		return errors.New("host: global and sentinel names are required")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

// Viewport projects the render section.
func (c Config) Viewport() viewport.Config {
	return viewport.Config{
		BaseWidth:      c.Render.BaseWidth,
		BaseHeight:     c.Render.BaseHeight,
		MaxRenderWidth: c.Render.MaxRenderWidth,
		QualityBoost:   c.Render.QualityBoost,
		DesignWidth:    c.Render.DesignWidth,
		DesignHeight:   c.Render.DesignHeight,
	}
}

// Interaction projects the patch section.
func (c Config) Interaction() interaction.Config {
	ic := interaction.DefaultConfig()
	ic.ValueSetterNudge = c.Patch.ValueSetterNudge
	ic.ScrollMin = c.Patch.ScrollMin
	ic.ScrollBottomMargin = c.Patch.ScrollBottomMargin
	return ic
}

// Loop assembles the frame driver configuration.
func (c Config) Loop() loop.Config {
	return loop.Config{
		PatchInterval: time.Duration(c.Patch.IntervalMS) * time.Millisecond,
		Viewport:      c.Viewport(),
		Interaction:   c.Interaction(),
	}
}
