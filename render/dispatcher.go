package render

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/flappy-term/core"
	"github.com/lixenwraith/flappy-term/engine"
)

// DrawStats counts what one dispatch pass produced
type DrawStats struct {
	Visited int
	Hidden  int
	Sprites int
	Texts   int
	Logical int
}

// Dispatcher draws a sorted entity sequence joined against the render columns
type Dispatcher struct {
	world         *engine.World
	fonts         FontTable
	viewportWidth float64
}

// NewDispatcher creates a dispatcher with its font table and fallback layout width
func NewDispatcher(world *engine.World, fonts FontTable, viewportWidth float64) *Dispatcher {
	return &Dispatcher{
		world:         world,
		fonts:         fonts,
		viewportWidth: viewportWidth,
	}
}

// Draw visits entities in order, skipping hidden ones
// Images are drawn immediately; text is queued for the end-of-frame flush.
// The first error aborts the pass. A listed renderable without Position
// panics with InvariantViolation.
func (d *Dispatcher) Draw(s Surface, entities []core.Entity) (DrawStats, error) {
	var stats DrawStats

	joined := d.world.Query().
		With(d.world.Renderables).
		Ordered(entities).
		Execute()

	for _, e := range joined {
		row, ok := d.join(e)
		if !ok {
			continue
		}
		stats.Visited++
		if !row.Render.Visible {
			stats.Hidden++
			continue
		}

		switch dr := Classify(row).(type) {
		case SpriteDraw:
			if err := s.DrawImage(dr.Sprite, dr.Param); err != nil {
				return stats, fmt.Errorf("draw image for entity %d: %w", e, err)
			}
			stats.Sprites++
		case TextDraw:
			if err := d.queueText(s, dr); err != nil {
				return stats, err
			}
			stats.Texts++
		case NoDraw:
			stats.Logical++
		default:
			panic(fmt.Sprintf("render: unhandled drawable %T", dr))
		}
	}
	return stats, nil
}

func (d *Dispatcher) join(e core.Entity) (Row, bool) {
	w := d.world
	render, ok := w.Renderables.Get(e)
	if !ok {
		return Row{}, false
	}
	pos, ok := w.Positions.Get(e)
	if !ok {
		panic(&InvariantViolation{Entity: e, Reason: "renderable entity has no position"})
	}
	row := Row{Entity: e, Render: render, Position: pos}
	if v, ok := w.Sizes.Get(e); ok {
		row.Size = &v
	}
	if v, ok := w.Rotations.Get(e); ok {
		row.Rotation = &v
	}
	if v, ok := w.Images.Get(e); ok {
		row.Image = &v
	}
	if v, ok := w.Texts.Get(e); ok {
		row.Text = &v
	}
	return row, true
}

func (d *Dispatcher) queueText(s Surface, td TextDraw) error {
	font, err := d.fonts.Lookup(td.Text.Font)
	if err != nil {
		var re *ResourceError
		if errors.As(err, &re) {
			re.Entity = td.Entity
		}
		return err
	}
	width := font.Measure(td.Text.Text, td.Text.FontSize)
	dest := TextDest(td.Text.Align, td.Position, td.Size, d.viewportWidth, width)
	s.QueueText(TextFragment{Text: td.Text.Text, Font: font, Size: td.Text.FontSize}, dest, td.Text.Color)
	return nil
}
