// Package engine provides the entity store consumed by the render core.
//
// Change Channel Architecture
//
// A tracked component store publishes one ComponentEvent per mutation to its
// EventChannel. Consumers never rescan the store; they register a ReaderID and
// drain only what happened since their previous drain.
//
// Key Properties:
// - Ordering: Events are delivered in emission order
// - Exactly-once: Each registered reader observes each event once
// - Isolation: Readers advance independently; one reader never consumes for another
// - Bounded memory: Events observed by every reader are compacted away
//
// Event Flow Pattern:
//  1. Consumer registers once at construction: r := store.Channel().RegisterReader()
//  2. Producer mutates the store: store.Set(e, v) / store.Modify(e, fn) / store.Remove(e)
//  3. Store emits Inserted / Modified / Removed to its channel
//  4. Consumer drains once per frame: events := ch.ReadInto(r, buf[:0])
//
// The channel is unbounded and never overwrites unread entries: a dropped
// Removed event would leave a stale identity in a consumer's derived view for
// the rest of the process lifetime.
package engine

import (
	"sync"

	"github.com/lixenwraith/flappy-term/core"
)

// EventKind classifies a component mutation
type EventKind uint8

const (
	// EventInserted: the component was attached to an entity that did not hold one
	EventInserted EventKind = iota
	// EventModified: an existing component was overwritten or mutated in place
	EventModified
	// EventRemoved: the component was detached from the entity
	EventRemoved
)

// String returns the name of the event kind for debugging
func (k EventKind) String() string {
	switch k {
	case EventInserted:
		return "Inserted"
	case EventModified:
		return "Modified"
	case EventRemoved:
		return "Removed"
	default:
		return "Unknown"
	}
}

// ComponentEvent is a single column mutation notification
type ComponentEvent struct {
	Kind   EventKind
	Entity core.Entity
}

// ReaderID is a resumable read position into one EventChannel
// Owned by exactly one consumer; never share a ReaderID between consumers
type ReaderID struct {
	pos     uint64
	channel *EventChannel
}

// Pending returns the number of events this reader has not yet observed
func (r *ReaderID) Pending() int {
	r.channel.mu.Lock()
	defer r.channel.mu.Unlock()
	return int(r.channel.tail() - r.pos)
}

// EventChannel is an append-only, multi-reader log of component events
//
// Positions are absolute sequence numbers: base is the sequence number of
// events[0] and tail() is one past the newest event. A reader at pos has
// observed every event with sequence < pos.
type EventChannel struct {
	mu      sync.Mutex
	events  []ComponentEvent
	base    uint64
	readers []*ReaderID
}

// NewEventChannel creates an empty channel
func NewEventChannel() *EventChannel {
	return &EventChannel{
		events:  make([]ComponentEvent, 0, 64),
		readers: make([]*ReaderID, 0, 2),
	}
}

func (c *EventChannel) tail() uint64 {
	return c.base + uint64(len(c.events))
}

// RegisterReader creates a cursor positioned at the current tail
// Events emitted before registration are not visible to the new reader
func (c *EventChannel) RegisterReader() *ReaderID {
	c.mu.Lock()
	defer c.mu.Unlock()

	r := &ReaderID{pos: c.tail(), channel: c}
	c.readers = append(c.readers, r)
	return r
}

// UnregisterReader detaches r; its unread backlog no longer pins memory
func (c *EventChannel) UnregisterReader(r *ReaderID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, reader := range c.readers {
		if reader == r {
			c.readers = append(c.readers[:i], c.readers[i+1:]...)
			break
		}
	}
	c.compact()
}

// Emit appends an event; with no registered readers the event is discarded
func (c *EventChannel) Emit(kind EventKind, e core.Entity) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.readers) == 0 {
		c.base++
		return
	}
	c.events = append(c.events, ComponentEvent{Kind: kind, Entity: e})
}

// Read returns every event r has not observed, oldest first, and advances r
// Returns nil when the backlog is empty
func (c *EventChannel) Read(r *ReaderID) []ComponentEvent {
	return c.ReadInto(r, nil)
}

// ReadInto appends r's unread events to dst and advances r
// Passing a reused buffer (buf[:0]) keeps the per-frame drain allocation-free
func (c *EventChannel) ReadInto(r *ReaderID, dst []ComponentEvent) []ComponentEvent {
	c.mu.Lock()
	defer c.mu.Unlock()

	if r.channel != c {
		panic("engine: reader registered on a different channel")
	}

	start := int(r.pos - c.base)
	if start < len(c.events) {
		dst = append(dst, c.events[start:]...)
	}
	r.pos = c.tail()
	c.compact()
	return dst
}

// Len returns the number of retained (not yet fully observed) events
func (c *EventChannel) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}

// compact drops the prefix every reader has observed; caller holds mu
func (c *EventChannel) compact() {
	if len(c.events) == 0 {
		return
	}
	minPos := c.tail()
	for _, r := range c.readers {
		if r.pos < minPos {
			minPos = r.pos
		}
	}
	drop := int(minPos - c.base)
	if drop == 0 {
		return
	}
	// Single pass shift keeps the backing array
	n := copy(c.events, c.events[drop:])
	c.events = c.events[:n]
	c.base = minPos
}
