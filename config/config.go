// Package config loads flappy-term settings from TOML or YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Display     DisplayConfig     `toml:"display" yaml:"display"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics" yaml:"diagnostics"`
	Frame       FrameConfig       `toml:"frame" yaml:"frame"`
	Logging     LoggingConfig     `toml:"logging" yaml:"logging"`
	Audio       AudioConfig       `toml:"audio" yaml:"audio"`
}

// DisplayConfig sizes the virtual viewport; VirtualWidth is also the fallback
// layout width for aligned text. Colors are #rrggbb, FilterMode is
// "nearest" or "linear".
type DisplayConfig struct {
	VirtualWidth  float64 `toml:"virtual_width" yaml:"virtual_width"`
	VirtualHeight float64 `toml:"virtual_height" yaml:"virtual_height"`
	ClearColor    string  `toml:"clear_color" yaml:"clear_color"`
	FilterMode    string  `toml:"filter_mode" yaml:"filter_mode"`
}

type DiagnosticsConfig struct {
	ShowFPS  bool    `toml:"show_fps" yaml:"show_fps"`
	X        float64 `toml:"x" yaml:"x"`
	Y        float64 `toml:"y" yaml:"y"`
	FontSize float64 `toml:"font_size" yaml:"font_size"`
	Color    string  `toml:"color" yaml:"color"`
}

// FrameConfig paces the loop; FPSWindow is the number of frames averaged by the readout
type FrameConfig struct {
	TargetFPS int `toml:"target_fps" yaml:"target_fps"`
	FPSWindow int `toml:"fps_window" yaml:"fps_window"`
}

// LoggingConfig selects zap level and encoding ("json" or "console")
// An empty File disables logging since the terminal owns stdout
type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
	File   string `toml:"file" yaml:"file"`
}

type AudioConfig struct {
	Enabled bool    `toml:"enabled" yaml:"enabled"`
	Volume  float64 `toml:"volume" yaml:"volume"` // 0.0-1.0
}

// MaxTargetFPS bounds the frame ticker; the terminal cannot present faster
const MaxTargetFPS = 1000

// Load reads path over Default(); an empty path returns the defaults
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml", "":
		err = toml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("config %s: unsupported extension %q", path, filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			VirtualWidth:  80,
			VirtualHeight: 24,
			ClearColor:    "#282d34",
			FilterMode:    "nearest",
		},
		Diagnostics: DiagnosticsConfig{
			ShowFPS:  true,
			X:        10,
			Y:        10,
			FontSize: 8,
			Color:    "#00ff00",
		},
		Frame: FrameConfig{
			TargetFPS: 60,
			FPSWindow: 200,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.5,
		},
	}
}

// Validate rejects settings the frame loop cannot run with
func (c *Config) Validate() error {
	var errs []error
	if c.Display.VirtualWidth <= 0 {
		errs = append(errs, fmt.Errorf("display.virtual_width must be positive, got %v", c.Display.VirtualWidth))
	}
	if c.Display.VirtualHeight <= 0 {
		errs = append(errs, fmt.Errorf("display.virtual_height must be positive, got %v", c.Display.VirtualHeight))
	}
	if c.Frame.TargetFPS <= 0 || c.Frame.TargetFPS > MaxTargetFPS {
		errs = append(errs, fmt.Errorf("frame.target_fps must be within [1,%d], got %d", MaxTargetFPS, c.Frame.TargetFPS))
	}
	if c.Frame.FPSWindow < 0 {
		errs = append(errs, fmt.Errorf("frame.fps_window must not be negative, got %d", c.Frame.FPSWindow))
	}
	if _, err := ParseColor(c.Display.ClearColor); err != nil {
		errs = append(errs, fmt.Errorf("display.clear_color: %w", err))
	}
	if _, err := ParseColor(c.Diagnostics.Color); err != nil {
		errs = append(errs, fmt.Errorf("diagnostics.color: %w", err))
	}
	if _, err := c.Display.Filter(); err != nil {
		errs = append(errs, err)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio.volume must be within [0,1], got %v", c.Audio.Volume))
	}
	return errors.Join(errs...)
}
