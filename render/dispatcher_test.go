package render

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/flappy-term/asset"
	"github.com/lixenwraith/flappy-term/component"
	"github.com/lixenwraith/flappy-term/core"
	"github.com/lixenwraith/flappy-term/engine"
)

func TestTextAlignmentFallsBackToViewport(t *testing.T) {
	tests := []struct {
		align component.Alignment
		wantX float64
	}{
		{component.AlignLeft, 0},
		{component.AlignRight, 160},
		{component.AlignCentered, 80},
	}
	for _, tt := range tests {
		w := engine.NewWorld()
		e := spawn(w, 0, withText("hello", component.FontRetro, tt.align))
		w.Positions.Set(e, component.PositionComponent{X: 0, Y: 5})

		s := &recordingSurface{}
		stats, err := NewDispatcher(w, testFonts(), 200).Draw(s, []core.Entity{e})
		require.NoError(t, err)
		require.Len(t, s.queued, 1)
		assert.Equal(t, Vec2{X: tt.wantX, Y: 5}, s.queued[0].pos, "align %d", tt.align)
		assert.Equal(t, 1, stats.Texts)
	}
}

func TestTextAlignmentUsesSize(t *testing.T) {
	pos := component.PositionComponent{X: 3, Y: 7}
	size := &component.SizeComponent{W: 100}

	assert.Equal(t, Vec2{X: 60, Y: 7}, TextDest(component.AlignRight, pos, size, 200, 40))
	assert.Equal(t, Vec2{X: 30, Y: 7}, TextDest(component.AlignCentered, pos, size, 200, 40))
	assert.Equal(t, Vec2{X: 3, Y: 7}, TextDest(component.AlignLeft, pos, size, 200, 40))
}

func TestRotationConvertsToRadians(t *testing.T) {
	w := engine.NewWorld()
	e := spawn(w, 0, withImage("bird"))
	w.Positions.Set(e, component.PositionComponent{X: 100, Y: 50})
	w.Rotations.Set(e, component.RotationComponent{X: 5, Y: 5, Deg: 90})

	s := &recordingSurface{}
	_, err := NewDispatcher(w, testFonts(), 200).Draw(s, []core.Entity{e})
	require.NoError(t, err)
	require.Len(t, s.images, 1)

	p := s.images[0].param
	assert.Equal(t, Vec2{X: 100, Y: 50}, p.Dest)
	assert.Equal(t, Vec2{X: 5, Y: 5}, p.Offset)
	assert.InDelta(t, math.Pi/2, p.Rotation, 1e-12)
}

func TestImageWithoutRotation(t *testing.T) {
	p := SpriteParam(component.PositionComponent{X: 4, Y: 2}, nil)
	assert.Equal(t, DrawParam{Dest: Vec2{X: 4, Y: 2}}, p)
	assert.InDelta(t, -math.Pi, DegToRad(-180), 1e-12)
}

func TestClassify(t *testing.T) {
	img := &component.ImageComponent{Sprite: asset.Fill("img", 1, 1, core.RGBWhite)}
	txt := &component.TextComponent{Text: "t"}

	assert.IsType(t, SpriteDraw{}, Classify(Row{Image: img, Text: txt}), "image wins over text")
	assert.IsType(t, TextDraw{}, Classify(Row{Text: txt}))
	assert.IsType(t, NoDraw{}, Classify(Row{}))
}

func TestHiddenEntitiesStayListedButDrawNothing(t *testing.T) {
	w := engine.NewWorld()
	er := NewEntityRenderer(w, testFonts(), 200, nil)
	e := spawn(w, 0, withImage("ghost"))
	w.Renderables.Set(e, component.RenderComponent{Visible: false})

	s := &recordingSurface{}
	require.NoError(t, er.Render(RenderContext{}, s))

	assert.True(t, er.View().Contains(e))
	assert.Empty(t, s.images)
	assert.Equal(t, DrawStats{Visited: 1, Hidden: 1}, er.LastStats())
}

func TestDispatchOrderFollowsView(t *testing.T) {
	w := engine.NewWorld()
	er := NewEntityRenderer(w, testFonts(), 200, nil)
	spawn(w, 3, withImage("front"))
	spawn(w, -1, withImage("back"))
	spawn(w, 1, withText("mid", component.FontRetro, component.AlignLeft))
	spawn(w, 2) // logical

	s := &recordingSurface{}
	require.NoError(t, er.Render(RenderContext{}, s))

	assert.Equal(t, []string{"image:back", "text:mid", "image:front"}, s.log)
	assert.Equal(t, DrawStats{Visited: 4, Sprites: 2, Texts: 1, Logical: 1}, er.LastStats())
}

func TestMissingFontIsResourceError(t *testing.T) {
	w := engine.NewWorld()
	before := spawn(w, 0, withImage("before"))
	e := spawn(w, 1, withText("score", component.FontFlappy, component.AlignLeft))
	after := spawn(w, 2, withImage("after"))

	fonts := FontTable{component.FontRetro: fixedFont{width: 1}}
	s := &recordingSurface{}
	stats, err := NewDispatcher(w, fonts, 200).Draw(s, []core.Entity{before, e, after})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrResource))
	var re *ResourceError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "font", re.Kind)
	assert.Equal(t, "flappy", re.Selector)
	assert.Equal(t, e, re.Entity)
	assert.Contains(t, err.Error(), "flappy")

	// Remainder of the pass is aborted
	assert.Equal(t, []string{"image:before"}, s.log)
	assert.Equal(t, 1, stats.Sprites)
}

func TestDrawImageErrorPropagates(t *testing.T) {
	w := engine.NewWorld()
	e := spawn(w, 0, withImage("x"))
	s := &recordingSurface{drawErr: errBackend}

	_, err := NewDispatcher(w, testFonts(), 200).Draw(s, []core.Entity{e})
	assert.ErrorIs(t, err, errBackend)
}

func TestDispatcherSkipsEntitiesWithoutRenderable(t *testing.T) {
	w := engine.NewWorld()
	e := w.CreateEntity()
	w.Images.Set(e, component.ImageComponent{Sprite: asset.Fill("orphan", 1, 1, core.RGBWhite)})

	s := &recordingSurface{}
	stats, err := NewDispatcher(w, testFonts(), 200).Draw(s, []core.Entity{e})
	require.NoError(t, err)
	assert.Zero(t, stats.Visited)
	assert.Empty(t, s.log)
}

func TestDrawPanicsOnListedEntityWithoutPosition(t *testing.T) {
	w := engine.NewWorld()
	er := NewEntityRenderer(w, testFonts(), 200, nil)
	e := spawn(w, 0, withImage("bird"))

	s := &recordingSurface{}
	require.NoError(t, er.Render(RenderContext{}, s))
	require.True(t, er.View().Contains(e))

	// Untracked column: the view gets no event and still lists e
	w.Positions.Remove(e)

	defer func() {
		r := recover()
		require.NotNil(t, r, "missing position must not be skipped silently")
		iv, ok := r.(*InvariantViolation)
		require.True(t, ok, "panic value %T", r)
		assert.Equal(t, e, iv.Entity)
		assert.Contains(t, iv.Reason, "no position")
	}()
	_ = er.Render(RenderContext{}, &recordingSurface{})
}

func TestFontLookupErrorIsWrapped(t *testing.T) {
	_, err := FontTable{}.Lookup(component.FontRetro)
	require.Error(t, err)

	_, direct := err.(*ResourceError)
	assert.False(t, direct, "lookup wraps its ResourceError")

	var re *ResourceError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "retro", re.Selector)
	assert.ErrorIs(t, err, ErrResource)
}
