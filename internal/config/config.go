package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	WindowWidth  = 1024
	WindowHeight = 600
	WindowTitle  = "Circular slide rule - drag rings, wheel/pinch to zoom, 1/2/3 edit, M mode, Esc quit"

	// Rule geometry and limits
	MaxZoom      = 1.213e12
	MaxTickDepth = 18

	// Input
	WheelLineDelta = 100.0

	// Spin easing
	SpinDelay = 10 * time.Millisecond

	// Click sound
	ClickSampleRate = 44100
	ClickVolume     = -1.0
)

// Config holds the startup parameters of the rule. None of it is rule state:
// values, zoom and mode always start fresh.
type Config struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`

	MaxZoom      float64 `toml:"max_zoom"`
	MaxTickDepth int     `toml:"max_tick_depth"`

	WheelLineDelta float64       `toml:"wheel_line_delta"`
	SpinDelay      time.Duration `toml:"spin_delay"`

	Mute        bool    `toml:"mute"`
	ClickSound  string  `toml:"click_sound"`
	ClickVolume float64 `toml:"click_volume"`
}

func Default() Config {
	return Config{
		Width:          WindowWidth,
		Height:         WindowHeight,
		Title:          WindowTitle,
		MaxZoom:        MaxZoom,
		MaxTickDepth:   MaxTickDepth,
		WheelLineDelta: WheelLineDelta,
		SpinDelay:      SpinDelay,
		ClickVolume:    ClickVolume,
	}
}

// Load reads a TOML file on top of the defaults. Unknown keys are an error so
// that typos do not silently fall back to a default.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("config file %s not found: %w", path, err)
		}
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return cfg, fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Width, c.Height))
	}
	if !(c.MaxZoom >= 1) {
		errs = append(errs, fmt.Errorf("max_zoom must be >= 1, got %g", c.MaxZoom))
	}
	if c.MaxTickDepth < 1 {
		errs = append(errs, fmt.Errorf("max_tick_depth must be >= 1, got %d", c.MaxTickDepth))
	}
	if c.WheelLineDelta <= 0 {
		errs = append(errs, fmt.Errorf("wheel_line_delta must be positive, got %g", c.WheelLineDelta))
	}
	if c.SpinDelay <= 0 {
		errs = append(errs, fmt.Errorf("spin_delay must be positive, got %v", c.SpinDelay))
	}
	return errors.Join(errs...)
}
