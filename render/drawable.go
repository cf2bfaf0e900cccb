package render

import (
	"math"

	"github.com/lixenwraith/flappy-term/asset"
	"github.com/lixenwraith/flappy-term/component"
	"github.com/lixenwraith/flappy-term/core"
)

// Row is one entity joined against the render columns
// Renderable and Position are mandatory; the pointers are nil when absent
type Row struct {
	Entity   core.Entity
	Render   component.RenderComponent
	Position component.PositionComponent
	Size     *component.SizeComponent
	Rotation *component.RotationComponent
	Image    *component.ImageComponent
	Text     *component.TextComponent
}

// Drawable is the per-entity draw variant: SpriteDraw, TextDraw or NoDraw
type Drawable interface {
	drawable()
}

// SpriteDraw draws an image with a resolved transform
type SpriteDraw struct {
	Sprite *asset.Sprite
	Param  DrawParam
}

// TextDraw queues a text line; placement needs the measured width
type TextDraw struct {
	Entity   core.Entity
	Text     component.TextComponent
	Position component.PositionComponent
	Size     *component.SizeComponent
}

// NoDraw is a logical renderable with nothing to draw
type NoDraw struct{}

func (SpriteDraw) drawable() {}
func (TextDraw) drawable()   {}
func (NoDraw) drawable()     {}

// Classify derives the draw variant once per row; Image wins over Text
func Classify(row Row) Drawable {
	switch {
	case row.Image != nil:
		return SpriteDraw{
			Sprite: row.Image.Sprite,
			Param:  SpriteParam(row.Position, row.Rotation),
		}
	case row.Text != nil:
		return TextDraw{
			Entity:   row.Entity,
			Text:     *row.Text,
			Position: row.Position,
			Size:     row.Size,
		}
	default:
		return NoDraw{}
	}
}

// SpriteParam anchors the draw at the position and applies the optional rotation
func SpriteParam(pos component.PositionComponent, rot *component.RotationComponent) DrawParam {
	p := DrawParam{Dest: Vec2{X: pos.X, Y: pos.Y}}
	if rot != nil {
		p.Offset = Vec2{X: rot.X, Y: rot.Y}
		p.Rotation = DegToRad(rot.Deg)
	}
	return p
}

// DegToRad converts degrees to the backend's radians
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// TextDest computes the queued text position for an alignment
// layoutWidth is Size.W when present, otherwise the viewport width
func TextDest(align component.Alignment, pos component.PositionComponent, size *component.SizeComponent, viewportWidth, textWidth float64) Vec2 {
	layoutWidth := viewportWidth
	if size != nil {
		layoutWidth = size.W
	}
	switch align {
	case component.AlignRight:
		return Vec2{X: layoutWidth - textWidth, Y: pos.Y}
	case component.AlignCentered:
		return Vec2{X: layoutWidth/2 - textWidth/2, Y: pos.Y}
	default:
		return Vec2{X: pos.X, Y: pos.Y}
	}
}
