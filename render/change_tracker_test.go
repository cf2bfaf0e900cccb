package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/flappy-term/core"
	"github.com/lixenwraith/flappy-term/engine"
)

func ev(kind engine.EventKind, e core.Entity) engine.ComponentEvent {
	return engine.ComponentEvent{Kind: kind, Entity: e}
}

func TestDirtySetClassification(t *testing.T) {
	tests := []struct {
		name     string
		events   []engine.ComponentEvent
		inserted []core.Entity
		removed  []core.Entity
		resort   bool
	}{
		{
			name:   "empty batch",
			resort: false,
		},
		{
			name:     "insert flags resort",
			events:   []engine.ComponentEvent{ev(engine.EventInserted, 1), ev(engine.EventInserted, 2)},
			inserted: []core.Entity{1, 2},
			resort:   true,
		},
		{
			name:   "modify flags resort only",
			events: []engine.ComponentEvent{ev(engine.EventModified, 3)},
			resort: true,
		},
		{
			name:    "remove does not flag resort",
			events:  []engine.ComponentEvent{ev(engine.EventRemoved, 4)},
			removed: []core.Entity{4},
			resort:  false,
		},
		{
			name:    "insert then remove cancels",
			events:  []engine.ComponentEvent{ev(engine.EventInserted, 5), ev(engine.EventRemoved, 5)},
			removed: []core.Entity{5},
			resort:  true,
		},
		{
			name:     "remove then insert keeps both",
			events:   []engine.ComponentEvent{ev(engine.EventRemoved, 6), ev(engine.EventInserted, 6)},
			inserted: []core.Entity{6},
			removed:  []core.Entity{6},
			resort:   true,
		},
		{
			name:     "duplicate insert collapses",
			events:   []engine.ComponentEvent{ev(engine.EventInserted, 7), ev(engine.EventInserted, 7)},
			inserted: []core.Entity{7},
			resort:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDirtySet()
			d.Accumulate(tt.events)

			assert.ElementsMatch(t, tt.inserted, d.Inserted())
			assert.Equal(t, len(tt.removed), d.RemovedCount())
			for _, e := range tt.removed {
				assert.True(t, d.Removed(e))
			}
			assert.Equal(t, tt.resort, d.OrderAffected())
		})
	}
}

func TestDirtySetIsFrameLocal(t *testing.T) {
	d := NewDirtySet()
	d.Accumulate([]engine.ComponentEvent{ev(engine.EventInserted, 1), ev(engine.EventRemoved, 2)})
	d.Accumulate(nil)

	assert.Empty(t, d.Inserted())
	assert.Zero(t, d.RemovedCount())
	assert.False(t, d.OrderAffected())
}

func TestChangeTrackerDrain(t *testing.T) {
	ch := engine.NewEventChannel()
	ch.Emit(engine.EventInserted, 1) // before registration: never seen

	tr := NewChangeTracker(ch)
	assert.Empty(t, tr.Drain())

	ch.Emit(engine.EventInserted, 2)
	ch.Emit(engine.EventModified, 2)
	assert.Equal(t, []engine.ComponentEvent{
		ev(engine.EventInserted, 2),
		ev(engine.EventModified, 2),
	}, tr.Drain())
	assert.Empty(t, tr.Drain(), "each event is drained once")

	tr.Close()
	ch.Emit(engine.EventRemoved, 2)
	assert.Zero(t, ch.Len(), "closed tracker no longer pins events")
}
