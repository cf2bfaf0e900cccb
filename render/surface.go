package render

import (
	"github.com/lixenwraith/flappy-term/asset"
	"github.com/lixenwraith/flappy-term/core"
)

// Vec2 is a point or offset in virtual viewport units
type Vec2 struct {
	X, Y float64
}

// DrawParam is the destination transform of an image draw
// Rotation is in radians, applied around Dest+Offset
type DrawParam struct {
	Dest     Vec2
	Offset   Vec2
	Rotation float64
}

// FilterMode selects sampling for the queued text flush
type FilterMode int

const (
	FilterNearest FilterMode = iota
	FilterLinear
)

// TextFragment is one shaped text line awaiting the batched flush
type TextFragment struct {
	Text string
	Font Font
	Size float64
}

// Surface is the drawing backend for one frame
// Clear starts a frame and discards text queued by an aborted frame
type Surface interface {
	Clear(color core.RGB) error
	DrawImage(sprite *asset.Sprite, param DrawParam) error
	QueueText(frag TextFragment, pos Vec2, color core.RGB)
	FlushText(filter FilterMode) error
	Present() error
}

// Font measures text for layout
type Font interface {
	Measure(text string, size float64) float64
}

// FrameRateSampler reports the current smoothed frames per second
type FrameRateSampler interface {
	FPS() float64
}
