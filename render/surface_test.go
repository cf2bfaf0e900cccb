package render

import (
	"errors"

	"github.com/lixenwraith/flappy-term/asset"
	"github.com/lixenwraith/flappy-term/component"
	"github.com/lixenwraith/flappy-term/core"
	"github.com/lixenwraith/flappy-term/engine"
)

// fixedFont measures every string at the same width
type fixedFont struct {
	width float64
}

func (f fixedFont) Measure(string, float64) float64 {
	return f.width
}

type imageCall struct {
	sprite *asset.Sprite
	param  DrawParam
}

type textCall struct {
	frag  TextFragment
	pos   Vec2
	color core.RGB
}

// recordingSurface captures draw calls; the *Err fields inject backend failures
type recordingSurface struct {
	log     []string
	images  []imageCall
	queued  []textCall
	flushed []textCall
	filter  FilterMode

	clearErr, drawErr, flushErr, presentErr error
}

var errBackend = errors.New("backend failure")

func (s *recordingSurface) Clear(core.RGB) error {
	s.log = append(s.log, "clear")
	s.queued = s.queued[:0]
	return s.clearErr
}

func (s *recordingSurface) DrawImage(sprite *asset.Sprite, p DrawParam) error {
	s.log = append(s.log, "image:"+sprite.Name)
	if s.drawErr != nil {
		return s.drawErr
	}
	s.images = append(s.images, imageCall{sprite: sprite, param: p})
	return nil
}

func (s *recordingSurface) QueueText(frag TextFragment, pos Vec2, color core.RGB) {
	s.log = append(s.log, "text:"+frag.Text)
	s.queued = append(s.queued, textCall{frag: frag, pos: pos, color: color})
}

func (s *recordingSurface) FlushText(filter FilterMode) error {
	s.log = append(s.log, "flush")
	s.filter = filter
	if s.flushErr != nil {
		return s.flushErr
	}
	s.flushed = append(s.flushed, s.queued...)
	s.queued = s.queued[:0]
	return nil
}

func (s *recordingSurface) Present() error {
	s.log = append(s.log, "present")
	return s.presentErr
}

func testFonts() FontTable {
	return FontTable{
		component.FontRetro:  fixedFont{width: 40},
		component.FontFlappy: fixedFont{width: 40},
	}
}

type option func(w *engine.World, e *engine.EntityBuilder)

// spawn adds a renderable with position; the Renderable lands last
func spawn(w *engine.World, z int, opts ...option) core.Entity {
	eb := w.NewEntity()
	engine.With(eb, w.Positions, component.PositionComponent{Z: z})
	for _, opt := range opts {
		opt(w, eb)
	}
	engine.With(eb, w.Renderables, component.RenderComponent{Visible: true})
	return eb.Build()
}

func withImage(name string) option {
	return func(w *engine.World, eb *engine.EntityBuilder) {
		engine.With(eb, w.Images, component.ImageComponent{Sprite: asset.Fill(name, 1, 1, core.RGBWhite)})
	}
}

func withText(text string, font component.FontType, align component.Alignment) option {
	return func(w *engine.World, eb *engine.EntityBuilder) {
		engine.With(eb, w.Texts, component.TextComponent{Text: text, Font: font, FontSize: 8, Align: align})
	}
}
