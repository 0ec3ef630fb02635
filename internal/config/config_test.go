package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rule.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, WindowWidth, cfg.Width)
	assert.Equal(t, MaxZoom, cfg.MaxZoom)
	assert.Equal(t, SpinDelay, cfg.SpinDelay)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
width = 800
height = 480
spin_delay = "15ms"
mute = true
click_sound = "tick.wav"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 480, cfg.Height)
	assert.Equal(t, 15*time.Millisecond, cfg.SpinDelay)
	assert.True(t, cfg.Mute)
	assert.Equal(t, "tick.wav", cfg.ClickSound)
	// untouched keys keep their defaults
	assert.Equal(t, MaxTickDepth, cfg.MaxTickDepth)
	assert.Equal(t, WheelLineDelta, cfg.WheelLineDelta)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "widht = 800\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "widht")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"zoom below one", func(c *Config) { c.MaxZoom = 0.5 }},
		{"zero depth", func(c *Config) { c.MaxTickDepth = 0 }},
		{"negative wheel", func(c *Config) { c.WheelLineDelta = -1 }},
		{"zero delay", func(c *Config) { c.SpinDelay = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
