package render

import (
	"fmt"
	"sync/atomic"

	"github.com/lixenwraith/flappy-term/component"
	"github.com/lixenwraith/flappy-term/core"
)

// OverlayConfig places the frame rate readout
type OverlayConfig struct {
	Font     component.FontType
	FontSize float64
	Position Vec2
	Color    core.RGB
}

// DefaultOverlayConfig matches the classic top-left green counter
func DefaultOverlayConfig() OverlayConfig {
	return OverlayConfig{
		Font:     component.FontRetro,
		FontSize: 8,
		Position: Vec2{X: 10, Y: 10},
		Color:    core.RGBGreen,
	}
}

// FPSOverlay queues "FPS: n.n" into the frame's text batch
// Independent of the entity store; visible by default
type FPSOverlay struct {
	sampler FrameRateSampler
	fonts   FontTable
	cfg     OverlayConfig
	visible atomic.Bool
}

// NewFPSOverlay creates a visible overlay
func NewFPSOverlay(sampler FrameRateSampler, fonts FontTable, cfg OverlayConfig) *FPSOverlay {
	o := &FPSOverlay{
		sampler: sampler,
		fonts:   fonts,
		cfg:     cfg,
	}
	o.visible.Store(true)
	return o
}

// FormatFPS renders the readout text
func FormatFPS(fps float64) string {
	return fmt.Sprintf("FPS: %.1f", fps)
}

// Render queues the readout; an unresolvable overlay font is a ResourceError
func (o *FPSOverlay) Render(_ RenderContext, s Surface) error {
	font, err := o.fonts.Lookup(o.cfg.Font)
	if err != nil {
		return err
	}
	s.QueueText(TextFragment{
		Text: FormatFPS(o.sampler.FPS()),
		Font: font,
		Size: o.cfg.FontSize,
	}, o.cfg.Position, o.cfg.Color)
	return nil
}

// IsVisible implements VisibilityToggle
func (o *FPSOverlay) IsVisible() bool {
	return o.visible.Load()
}

// SetVisible shows or hides the overlay
func (o *FPSOverlay) SetVisible(v bool) {
	o.visible.Store(v)
}

// Toggle flips visibility and returns the new state
// Safe to call from the input goroutine
func (o *FPSOverlay) Toggle() bool {
	for {
		cur := o.visible.Load()
		if o.visible.CompareAndSwap(cur, !cur) {
			return !cur
		}
	}
}
