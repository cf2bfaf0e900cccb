package render

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/flappy-term/component"
	"github.com/lixenwraith/flappy-term/core"
	"github.com/lixenwraith/flappy-term/engine"
	"github.com/lixenwraith/flappy-term/status"
)

type fixedRate float64

func (r fixedRate) FPS() float64 { return float64(r) }

// stubRenderer logs its name, optionally failing or hiding
type stubRenderer struct {
	name    string
	log     *[]string
	err     error
	visible bool
}

func (r *stubRenderer) Render(_ RenderContext, _ Surface) error {
	*r.log = append(*r.log, r.name)
	return r.err
}

func (r *stubRenderer) IsVisible() bool { return r.visible }

func TestFormatFPS(t *testing.T) {
	assert.Equal(t, "FPS: 59.9", FormatFPS(59.94))
	assert.Equal(t, "FPS: 0.0", FormatFPS(0))
	assert.Equal(t, "FPS: 120.5", FormatFPS(120.46))
}

func TestFPSOverlayQueuesReadout(t *testing.T) {
	o := NewFPSOverlay(fixedRate(60), testFonts(), DefaultOverlayConfig())
	s := &recordingSurface{}

	require.NoError(t, o.Render(RenderContext{}, s))
	require.Len(t, s.queued, 1)
	q := s.queued[0]
	assert.Equal(t, "FPS: 60.0", q.frag.Text)
	assert.Equal(t, Vec2{X: 10, Y: 10}, q.pos)
	assert.Equal(t, core.RGBGreen, q.color)
	assert.Equal(t, 8.0, q.frag.Size)
}

func TestFPSOverlayToggle(t *testing.T) {
	o := NewFPSOverlay(fixedRate(0), testFonts(), DefaultOverlayConfig())
	assert.True(t, o.IsVisible(), "visible by default")
	assert.False(t, o.Toggle())
	assert.False(t, o.IsVisible())
	assert.True(t, o.Toggle())
	o.SetVisible(false)
	assert.False(t, o.IsVisible())
}

func TestFPSOverlayMissingFont(t *testing.T) {
	o := NewFPSOverlay(fixedRate(0), FontTable{}, DefaultOverlayConfig())
	err := o.Render(RenderContext{}, &recordingSurface{})
	assert.ErrorIs(t, err, ErrResource)
}

func TestOrchestratorFramePipeline(t *testing.T) {
	w := engine.NewWorld()
	s := &recordingSurface{}
	o := NewRenderOrchestrator(s, w, nil)

	er := NewEntityRenderer(w, testFonts(), 200, nil)
	overlay := NewFPSOverlay(fixedRate(30), testFonts(), DefaultOverlayConfig())
	o.Register(overlay, PriorityDebug)
	o.Register(er, PriorityEntities)

	spawn(w, 0, withText("score", component.FontFlappy, component.AlignCentered))
	spawn(w, -1, withImage("sky"))

	require.NoError(t, o.RenderFrame(RenderContext{Frame: 1}))
	assert.Equal(t, []string{"clear", "image:sky", "text:score", "text:FPS: 30.0", "flush", "present"}, s.log)
	assert.Equal(t, FilterNearest, s.filter)

	// Overlay shares the batch and lands after entity text
	require.Len(t, s.flushed, 2)
	assert.Equal(t, "FPS: 30.0", s.flushed[1].frag.Text)

	assert.Same(t, er, o.Entities())
	assert.Same(t, overlay, o.Overlay())
}

func TestOrchestratorHiddenOverlaySkipped(t *testing.T) {
	w := engine.NewWorld()
	s := &recordingSurface{}
	o := NewRenderOrchestrator(s, w, nil)
	overlay := NewFPSOverlay(fixedRate(30), testFonts(), DefaultOverlayConfig())
	o.Register(overlay, PriorityDebug)

	overlay.SetVisible(false)
	require.NoError(t, o.RenderFrame(RenderContext{}))
	assert.Equal(t, []string{"clear", "flush", "present"}, s.log)
}

func TestOrchestratorPriorityOrderIsStable(t *testing.T) {
	var log []string
	o := NewRenderOrchestrator(&recordingSurface{}, engine.NewWorld(), nil)
	o.Register(&stubRenderer{name: "debug", log: &log, visible: true}, PriorityDebug)
	o.Register(&stubRenderer{name: "hud-1", log: &log, visible: true}, PriorityHUD)
	o.Register(&stubRenderer{name: "bg", log: &log, visible: true}, PriorityBackdrop)
	o.Register(&stubRenderer{name: "hud-2", log: &log, visible: true}, PriorityHUD)
	o.Register(&stubRenderer{name: "hidden", log: &log, visible: false}, PriorityHUD)

	require.NoError(t, o.RenderFrame(RenderContext{}))
	assert.Equal(t, []string{"bg", "hud-1", "hud-2", "debug"}, log)
}

func TestOrchestratorCustomPrioritySlot(t *testing.T) {
	var log []string
	o := NewRenderOrchestrator(&recordingSurface{}, engine.NewWorld(), nil)
	o.Register(&stubRenderer{name: "hud", log: &log, visible: true}, PriorityHUD)
	o.Register(&stubRenderer{name: "between", log: &log, visible: true}, PriorityEntities+1)
	o.Register(&stubRenderer{name: "entities", log: &log, visible: true}, PriorityEntities)

	require.NoError(t, o.RenderFrame(RenderContext{}))
	assert.Equal(t, []string{"entities", "between", "hud"}, log)
}

func TestRenderPriorityString(t *testing.T) {
	assert.Equal(t, "entities", PriorityEntities.String())
	assert.Equal(t, "debug", PriorityDebug.String())
	assert.Equal(t, "priority(11)", (PriorityEntities + 1).String())
}

func TestOrchestratorAbortsOnRendererError(t *testing.T) {
	var log []string
	s := &recordingSurface{}
	o := NewRenderOrchestrator(s, engine.NewWorld(), nil)
	o.Register(&stubRenderer{name: "first", log: &log, visible: true, err: errBackend}, PriorityEntities)
	o.Register(&stubRenderer{name: "second", log: &log, visible: true}, PriorityHUD)

	err := o.RenderFrame(RenderContext{})
	assert.ErrorIs(t, err, errBackend)
	assert.Equal(t, []string{"first"}, log)
	assert.Equal(t, []string{"clear"}, s.log, "no flush or present after abort")
}

func TestOrchestratorBackendFailures(t *testing.T) {
	tests := []struct {
		name    string
		surface *recordingSurface
		stage   string
	}{
		{"clear", &recordingSurface{clearErr: errBackend}, "clear surface"},
		{"flush", &recordingSurface{flushErr: errBackend}, "flush text"},
		{"present", &recordingSurface{presentErr: errBackend}, "present"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewRenderOrchestrator(tt.surface, engine.NewWorld(), nil)
			err := o.RenderFrame(RenderContext{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, errBackend))
			assert.Contains(t, err.Error(), tt.stage)
		})
	}
}

func TestOrchestratorMetrics(t *testing.T) {
	w := engine.NewWorld()
	reg := status.NewRegistry()
	o := NewRenderOrchestrator(&recordingSurface{}, w, nil)
	o.Register(NewEntityRenderer(w, testFonts(), 200, nil), PriorityEntities)
	o.Register(NewFPSOverlay(fixedRate(42), testFonts(), DefaultOverlayConfig()), PriorityDebug)
	o.AttachMetrics(reg)

	spawn(w, 0, withImage("a"))
	spawn(w, 1, withText("b", component.FontRetro, component.AlignLeft))
	require.NoError(t, o.RenderFrame(RenderContext{}))

	assert.Equal(t, int64(1), reg.Ints.Get("render.frames").Load())
	assert.Equal(t, int64(2), reg.Ints.Get("render.sorted").Load())
	assert.Equal(t, int64(1), reg.Ints.Get("render.sprites").Load())
	assert.Equal(t, int64(1), reg.Ints.Get("render.texts").Load())
	assert.Equal(t, 42.0, reg.Floats.Get("render.fps").Get())
	assert.Equal(t, 42.0, reg.Floats.Get("render.fps_peak").Get())
	assert.True(t, reg.Bools.Get("render.fps_visible").Load())

	// A broken font aborts the frame and is recorded
	spawn(w, 3, withText("c", component.FontType(7), component.AlignLeft))
	err := o.RenderFrame(RenderContext{})
	require.ErrorIs(t, err, ErrResource)
	assert.Equal(t, int64(2), reg.Ints.Get("render.frames").Load())
	assert.Equal(t, int64(1), reg.Ints.Get("render.aborted").Load())
	assert.Contains(t, reg.Strings.Get("render.last_error").Load(), "unknown")
}
