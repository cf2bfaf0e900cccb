package render

import (
	"go.uber.org/zap"

	"github.com/lixenwraith/flappy-term/engine"
)

// EntityRenderer keeps the z-ordered view in sync with the Renderable change
// channel and dispatches it once per frame
type EntityRenderer struct {
	world      *engine.World
	tracker    *ChangeTracker
	dirty      *DirtySet
	view       *SortedView
	dispatcher *Dispatcher
	logger     *zap.Logger

	lastStats DrawStats
}

// NewEntityRenderer registers a reader on the world's Renderable channel
func NewEntityRenderer(world *engine.World, fonts FontTable, viewportWidth float64, logger *zap.Logger) *EntityRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EntityRenderer{
		world:      world,
		tracker:    NewChangeTracker(world.Renderables.Channel()),
		dirty:      NewDirtySet(),
		view:       NewSortedView(),
		dispatcher: NewDispatcher(world, fonts, viewportWidth),
		logger:     logger,
	}
}

// Sync drains pending events and updates the view; returns true if it re-sorted
func (r *EntityRenderer) Sync() bool {
	events := r.tracker.Drain()
	r.dirty.Accumulate(events)
	resorted := r.view.Apply(r.dirty, r.world.Renderables, r.world.Positions)
	if resorted {
		r.logger.Debug("render view resorted",
			zap.Int("events", len(events)),
			zap.Int("inserted", len(r.dirty.Inserted())),
			zap.Int("removed", r.dirty.RemovedCount()),
			zap.Int("size", r.view.Len()))
	}
	return resorted
}

// Render implements SystemRenderer
func (r *EntityRenderer) Render(_ RenderContext, s Surface) error {
	r.Sync()
	stats, err := r.dispatcher.Draw(s, r.view.Entities())
	r.lastStats = stats
	return err
}

// View exposes the sorted view for diagnostics and tests
func (r *EntityRenderer) View() *SortedView {
	return r.view
}

// LastStats returns counters from the most recent dispatch
func (r *EntityRenderer) LastStats() DrawStats {
	return r.lastStats
}

// Close releases the change reader
func (r *EntityRenderer) Close() {
	r.tracker.Close()
}
