package render

import (
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/lixenwraith/flappy-term/core"
	"github.com/lixenwraith/flappy-term/engine"
	"github.com/lixenwraith/flappy-term/status"
)

type rendererEntry struct {
	renderer SystemRenderer
	priority RenderPriority
	index    int // registration order for stable sort
}

// frameMetrics are cached registry pointers written once per frame
type frameMetrics struct {
	frames  *atomic.Int64
	aborted *atomic.Int64
	sorted  *atomic.Int64
	resorts *atomic.Int64
	sprites *atomic.Int64
	texts   *atomic.Int64
	hidden  *atomic.Int64
	fps     *status.AtomicFloat
	fpsPeak *status.AtomicFloat
	lastErr *status.AtomicString
	overlay *atomic.Bool
}

// RenderOrchestrator coordinates the render pipeline
type RenderOrchestrator struct {
	surface   Surface
	world     *engine.World
	renderers []rendererEntry
	regCount  int
	logger    *zap.Logger

	clearColor core.RGB
	filter     FilterMode

	entities *EntityRenderer
	overlay  *FPSOverlay
	sampler  FrameRateSampler
	metrics  *frameMetrics
}

// NewRenderOrchestrator creates an orchestrator drawing to surface
func NewRenderOrchestrator(surface Surface, world *engine.World, logger *zap.Logger) *RenderOrchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RenderOrchestrator{
		surface:    surface,
		world:      world,
		renderers:  make([]rendererEntry, 0, 4),
		logger:     logger,
		clearColor: core.RGB{R: 40, G: 45, B: 52},
		filter:     FilterNearest,
	}
}

// SetClearColor sets the per-frame background
func (o *RenderOrchestrator) SetClearColor(c core.RGB) {
	o.clearColor = c
}

// SetFilterMode sets the sampling mode of the text flush
func (o *RenderOrchestrator) SetFilterMode(f FilterMode) {
	o.filter = f
}

// Register adds a renderer at the specified priority. Maintains sorted order via insertion sort
func (o *RenderOrchestrator) Register(r SystemRenderer, priority RenderPriority) {
	entry := rendererEntry{
		renderer: r,
		priority: priority,
		index:    o.regCount,
	}
	o.regCount++

	// Insertion sort: find position and insert
	pos := len(o.renderers)
	for i, e := range o.renderers {
		if priority < e.priority || (priority == e.priority && entry.index < e.index) {
			pos = i
			break
		}
	}

	o.renderers = append(o.renderers, rendererEntry{})
	copy(o.renderers[pos+1:], o.renderers[pos:])
	o.renderers[pos] = entry
	o.logger.Debug("renderer registered",
		zap.String("type", fmt.Sprintf("%T", r)),
		zap.Stringer("priority", priority),
		zap.Int("slot", pos))

	switch v := r.(type) {
	case *EntityRenderer:
		o.entities = v
	case *FPSOverlay:
		o.overlay = v
		o.sampler = v.sampler
	}
}

// AttachMetrics publishes per-frame counters into reg
func (o *RenderOrchestrator) AttachMetrics(reg *status.Registry) {
	o.metrics = &frameMetrics{
		frames:  reg.Ints.Get("render.frames"),
		aborted: reg.Ints.Get("render.aborted"),
		sorted:  reg.Ints.Get("render.sorted"),
		resorts: reg.Ints.Get("render.resorts"),
		sprites: reg.Ints.Get("render.sprites"),
		texts:   reg.Ints.Get("render.texts"),
		hidden:  reg.Ints.Get("render.hidden"),
		fps:     reg.Floats.Get("render.fps"),
		fpsPeak: reg.Floats.Get("render.fps_peak"),
		lastErr: reg.Strings.Get("render.last_error"),
		overlay: reg.Bools.Get("render.fps_visible"),
	}
}

// RenderFrame executes the render pipeline: clear, render all, flush text, present
// Any error aborts the rest of the frame and is returned to the frame driver
func (o *RenderOrchestrator) RenderFrame(ctx RenderContext) error {
	o.world.Lock()
	defer o.world.Unlock()

	err := o.renderFrame(ctx)
	o.publish(err)
	return err
}

func (o *RenderOrchestrator) renderFrame(ctx RenderContext) error {
	if err := o.surface.Clear(o.clearColor); err != nil {
		return fmt.Errorf("clear surface: %w", err)
	}

	for _, entry := range o.renderers {
		// Skip if renderer implements VisibilityToggle and is not visible
		if vt, ok := entry.renderer.(VisibilityToggle); ok && !vt.IsVisible() {
			continue
		}
		if err := entry.renderer.Render(ctx, o.surface); err != nil {
			return err
		}
	}

	if err := o.surface.FlushText(o.filter); err != nil {
		return fmt.Errorf("flush text: %w", err)
	}
	if err := o.surface.Present(); err != nil {
		return fmt.Errorf("present: %w", err)
	}
	return nil
}

func (o *RenderOrchestrator) publish(err error) {
	if err != nil {
		var re *ResourceError
		if errors.As(err, &re) {
			o.logger.Debug("frame aborted on missing resource", zap.Error(err))
		}
	}

	m := o.metrics
	if m == nil {
		return
	}
	m.frames.Add(1)
	if err != nil {
		m.aborted.Add(1)
		m.lastErr.Store(err.Error())
	}
	if o.entities != nil {
		stats := o.entities.LastStats()
		m.sorted.Store(int64(o.entities.View().Len()))
		m.resorts.Store(int64(o.entities.View().Resorts()))
		m.sprites.Store(int64(stats.Sprites))
		m.texts.Store(int64(stats.Texts))
		m.hidden.Store(int64(stats.Hidden))
	}
	if o.overlay != nil {
		m.overlay.Store(o.overlay.IsVisible())
	}
	if o.sampler != nil {
		fps := o.sampler.FPS()
		m.fps.Set(fps)
		m.fpsPeak.Max(fps)
	}
}

// Entities returns the registered entity renderer, nil if none
func (o *RenderOrchestrator) Entities() *EntityRenderer {
	return o.entities
}

// Overlay returns the registered FPS overlay, nil if none
func (o *RenderOrchestrator) Overlay() *FPSOverlay {
	return o.overlay
}
