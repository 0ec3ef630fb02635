package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/ncruces/zenity"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/circular-rule/internal/config"
	"github.com/iburimskiy/circular-rule/internal/game"
)

type flags struct {
	configPath string
	width      int
	height     int
	mute       bool
	clickSound string
	debug      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "circular-rule [flags]",
		Short: "A zoomable circular slide rule",
		Long: `A circular slide rule with two logarithmic rings.

Drag the outer ring to set the first operand and the inner ring to set the
second; the product (or quotient) is read under the hairline. Scroll or pinch
to zoom, click a ring to snap it to a round value.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(f.debug)
			slog.SetDefault(log)

			cfg, err := resolveConfig(cmd, f)
			if err == nil {
				err = game.Run(cfg, log)
			}
			if err != nil {
				log.Error("circular-rule stopped", "err", err)
				_ = zenity.Error(err.Error(), zenity.Title("Circular slide rule"), zenity.ErrorIcon)
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "Path to a TOML config file")
	cmd.Flags().IntVar(&f.width, "width", config.WindowWidth, "Window width in pixels")
	cmd.Flags().IntVar(&f.height, "height", config.WindowHeight, "Window height in pixels")
	cmd.Flags().BoolVar(&f.mute, "mute", false, "Disable the snap click sound")
	cmd.Flags().StringVar(&f.clickSound, "click-sound", "", "WAV, MP3 or FLAC file to play on snap instead of the built-in click")
	cmd.Flags().BoolVarP(&f.debug, "debug", "d", false, "Enable debug logging")
	return cmd
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
	}))
}

// resolveConfig layers defaults, the optional config file and explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command, f flags) (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath); err != nil {
			return cfg, err
		}
		slog.Info("config loaded", "path", f.configPath)
	}

	fs := cmd.Flags()
	if fs.Changed("width") {
		cfg.Width = f.width
	}
	if fs.Changed("height") {
		cfg.Height = f.height
	}
	if fs.Changed("mute") {
		cfg.Mute = f.mute
	}
	if fs.Changed("click-sound") {
		cfg.ClickSound = f.clickSound
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
