package config

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/flappy-term/core"
	"github.com/lixenwraith/flappy-term/render"
)

// ParseColor parses #rrggbb (or #rgb) into core.RGB
func ParseColor(s string) (core.RGB, error) {
	c, err := colorful.Hex(strings.TrimSpace(s))
	if err != nil {
		return core.RGB{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return core.RGB{R: r, G: g, B: b}, nil
}

// Filter resolves the text flush filter mode
func (d DisplayConfig) Filter() (render.FilterMode, error) {
	switch strings.ToLower(d.FilterMode) {
	case "", "nearest":
		return render.FilterNearest, nil
	case "linear":
		return render.FilterLinear, nil
	default:
		return 0, fmt.Errorf("display.filter_mode: unknown mode %q", d.FilterMode)
	}
}

// ClearRGB returns the parsed clear color; call after Validate
func (d DisplayConfig) ClearRGB() core.RGB {
	c, _ := ParseColor(d.ClearColor)
	return c
}

// Overlay builds the FPS overlay placement
func (d DiagnosticsConfig) Overlay() render.OverlayConfig {
	cfg := render.DefaultOverlayConfig()
	cfg.Position = render.Vec2{X: d.X, Y: d.Y}
	if d.FontSize > 0 {
		cfg.FontSize = d.FontSize
	}
	if c, err := ParseColor(d.Color); err == nil {
		cfg.Color = c
	}
	return cfg
}
