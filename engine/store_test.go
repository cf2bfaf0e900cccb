package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/flappy-term/component"
	"github.com/lixenwraith/flappy-term/core"
)

func TestTrackedStoreEvents(t *testing.T) {
	s := NewTrackedStore[component.RenderComponent]()
	r := s.Channel().RegisterReader()

	s.Set(1, component.RenderComponent{Visible: true})
	s.Set(1, component.RenderComponent{Visible: false})
	assert.True(t, s.Modify(1, func(c *component.RenderComponent) { c.Visible = true }))
	assert.False(t, s.Modify(2, func(c *component.RenderComponent) {}), "absent entity is not modified")
	s.Remove(1)
	s.Remove(1) // absent: no event

	assert.Equal(t, []ComponentEvent{
		{Kind: EventInserted, Entity: 1},
		{Kind: EventModified, Entity: 1},
		{Kind: EventModified, Entity: 1},
		{Kind: EventRemoved, Entity: 1},
	}, s.Channel().Read(r))
}

func TestUntrackedStoreHasNoChannel(t *testing.T) {
	s := NewStore[component.PositionComponent]()
	assert.Nil(t, s.Channel())
	s.Set(1, component.PositionComponent{Z: 3})
	got, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, 3, got.Z)
}

func TestStoreSwapRemoveKeepsIndex(t *testing.T) {
	s := NewStore[int]()
	for i := 1; i <= 4; i++ {
		s.Set(core.Entity(i), i*10)
	}
	s.Remove(2)

	assert.Equal(t, 3, s.Count())
	assert.ElementsMatch(t, []core.Entity{1, 3, 4}, s.All())
	for _, e := range []core.Entity{1, 3, 4} {
		v, ok := s.Get(e)
		require.True(t, ok)
		assert.Equal(t, int(e)*10, v)
	}

	// The swapped entity must still be removable
	s.Remove(4)
	assert.ElementsMatch(t, []core.Entity{1, 3}, s.All())
}

func TestStoreClearEmitsRemovals(t *testing.T) {
	s := NewTrackedStore[int]()
	r := s.Channel().RegisterReader()
	s.Set(1, 1)
	s.Set(2, 2)
	s.Channel().Read(r)

	s.Clear()

	assert.Zero(t, s.Count())
	assert.ElementsMatch(t, []ComponentEvent{
		{Kind: EventRemoved, Entity: 1},
		{Kind: EventRemoved, Entity: 2},
	}, s.Channel().Read(r))
}

func TestStoreRemoveBatch(t *testing.T) {
	s := NewTrackedStore[int]()
	r := s.Channel().RegisterReader()
	for i := 1; i <= 5; i++ {
		s.Set(core.Entity(i), i)
	}
	s.Channel().Read(r)

	s.RemoveBatch([]core.Entity{2, 4, 9})

	assert.ElementsMatch(t, []core.Entity{1, 3, 5}, s.All())
	assert.ElementsMatch(t, []ComponentEvent{
		{Kind: EventRemoved, Entity: 2},
		{Kind: EventRemoved, Entity: 4},
	}, s.Channel().Read(r))
}
