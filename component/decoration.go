package component

import (
	"github.com/lixenwraith/flappy-term/asset"
	"github.com/lixenwraith/flappy-term/core"
)

// SizeComponent bounds an entity's layout box, used for text alignment
type SizeComponent struct {
	W, H float64
}

// RotationComponent rotates an image around pivot (X, Y) by Deg degrees
type RotationComponent struct {
	X, Y float64
	Deg  float64
}

// ImageComponent draws a sprite at the entity position
type ImageComponent struct {
	Sprite *asset.Sprite
}

// TextComponent draws a text line at the entity position
type TextComponent struct {
	Text     string
	Font     FontType
	FontSize float64
	Color    core.RGB
	Align    Alignment
}

// FontType selects a font from the environment font table
type FontType int

const (
	FontRetro FontType = iota
	FontFlappy
)

// String returns the font selector name
func (f FontType) String() string {
	switch f {
	case FontRetro:
		return "retro"
	case FontFlappy:
		return "flappy"
	default:
		return "unknown"
	}
}

// Alignment is the horizontal placement of a text line
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignCentered
)

// PipeSide tells which half of a pipe pair an entity is
type PipeSide int

const (
	PipeTop PipeSide = iota
	PipeBottom
)

// PipeComponent tags a scrolling obstacle
type PipeComponent struct {
	Side PipeSide
}
