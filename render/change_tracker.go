package render

import (
	"github.com/lixenwraith/flappy-term/core"
	"github.com/lixenwraith/flappy-term/engine"
)

// ChangeTracker owns the render cursor into the Renderable change channel
type ChangeTracker struct {
	channel *engine.EventChannel
	reader  *engine.ReaderID
	buf     []engine.ComponentEvent
}

// NewChangeTracker registers a fresh reader; only later mutations are observed
func NewChangeTracker(channel *engine.EventChannel) *ChangeTracker {
	return &ChangeTracker{
		channel: channel,
		reader:  channel.RegisterReader(),
		buf:     make([]engine.ComponentEvent, 0, 64),
	}
}

// Drain returns events emitted since the previous drain, in emission order
// The returned slice is reused by the next Drain
func (t *ChangeTracker) Drain() []engine.ComponentEvent {
	t.buf = t.channel.ReadInto(t.reader, t.buf[:0])
	return t.buf
}

// Close releases the reader so the channel stops retaining events for it
func (t *ChangeTracker) Close() {
	t.channel.UnregisterReader(t.reader)
}

// DirtySet is frame-local membership delta built from one event batch
type DirtySet struct {
	inserted []core.Entity
	pending  map[core.Entity]struct{}
	removed  map[core.Entity]struct{}
	resort   bool
}

// NewDirtySet creates empty sets
func NewDirtySet() *DirtySet {
	return &DirtySet{
		inserted: make([]core.Entity, 0, 16),
		pending:  make(map[core.Entity]struct{}, 16),
		removed:  make(map[core.Entity]struct{}, 16),
	}
}

// Reset clears both sets and the batch resort bit
func (d *DirtySet) Reset() {
	d.inserted = d.inserted[:0]
	clear(d.pending)
	clear(d.removed)
	d.resort = false
}

// Accumulate rebuilds the sets from a drained batch
//
// Events are folded in order: a Removed after an Inserted of the same handle
// cancels the insertion, while an Inserted after a Removed (handle reuse)
// keeps both so the stale entry is culled and the new one appended.
func (d *DirtySet) Accumulate(events []engine.ComponentEvent) {
	d.Reset()
	for _, ev := range events {
		switch ev.Kind {
		case engine.EventInserted:
			if _, ok := d.pending[ev.Entity]; !ok {
				d.pending[ev.Entity] = struct{}{}
				d.inserted = append(d.inserted, ev.Entity)
			}
			d.resort = true
		case engine.EventModified:
			d.resort = true
		case engine.EventRemoved:
			if _, ok := d.pending[ev.Entity]; ok {
				delete(d.pending, ev.Entity)
				d.inserted = removeEntity(d.inserted, ev.Entity)
			}
			d.removed[ev.Entity] = struct{}{}
		}
	}
}

// Inserted returns handles to append, in first-insertion order
func (d *DirtySet) Inserted() []core.Entity {
	return d.inserted
}

// Removed reports whether e was removed in this batch
func (d *DirtySet) Removed(e core.Entity) bool {
	_, ok := d.removed[e]
	return ok
}

// RemovedCount returns the size of the removal set
func (d *DirtySet) RemovedCount() int {
	return len(d.removed)
}

// OrderAffected reports whether the batch held an Inserted or Modified event
func (d *DirtySet) OrderAffected() bool {
	return d.resort
}

func removeEntity(list []core.Entity, e core.Entity) []core.Entity {
	for i, x := range list {
		if x == e {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
