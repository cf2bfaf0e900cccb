package engine

import (
	"sync"

	"github.com/lixenwraith/flappy-term/core"
)

// Store is a generic container for a specific component type T
// Uses sparse set pattern for cache-friendly iteration
// A tracked store publishes every mutation to its EventChannel
type Store[T any] struct {
	mu         sync.RWMutex
	components map[core.Entity]T
	entities   []core.Entity
	index      map[core.Entity]int
	events     *EventChannel
}

// NewStore creates a new component store for type T
func NewStore[T any]() *Store[T] {
	return &Store[T]{
		components: make(map[core.Entity]T),
		entities:   make([]core.Entity, 0, 64),
		index:      make(map[core.Entity]int),
	}
}

// NewTrackedStore creates a store that emits change events
func NewTrackedStore[T any]() *Store[T] {
	s := NewStore[T]()
	s.events = NewEventChannel()
	return s
}

// Channel returns the change channel, nil if the store is untracked
func (s *Store[T]) Channel() *EventChannel {
	return s.events
}

func (s *Store[T]) emit(kind EventKind, e core.Entity) {
	if s.events != nil {
		s.events.Emit(kind, e)
	}
}

// Set inserts or overwrites the component for an entity
func (s *Store[T]) Set(e core.Entity, val T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.components[e]
	if !exists {
		s.index[e] = len(s.entities)
		s.entities = append(s.entities, e)
	}
	s.components[e] = val

	if exists {
		s.emit(EventModified, e)
	} else {
		s.emit(EventInserted, e)
	}
}

// Modify mutates the component in place and emits Modified
// Returns false without emitting if the entity has no component
func (s *Store[T]) Modify(e core.Entity, fn func(*T)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	val, ok := s.components[e]
	if !ok {
		return false
	}
	fn(&val)
	s.components[e] = val
	s.emit(EventModified, e)
	return true
}

// Get retrieves the component for an entity
func (s *Store[T]) Get(e core.Entity) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.components[e]
	return val, ok
}

// Remove deletes the component from an entity
func (s *Store[T]) Remove(e core.Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.removeLocked(e) {
		s.emit(EventRemoved, e)
	}
}

func (s *Store[T]) removeLocked(e core.Entity) bool {
	i, exists := s.index[e]
	if !exists {
		return false
	}
	delete(s.components, e)
	delete(s.index, e)

	// Swap-remove from entities slice
	last := len(s.entities) - 1
	if i != last {
		moved := s.entities[last]
		s.entities[i] = moved
		s.index[moved] = i
	}
	s.entities = s.entities[:last]
	return true
}

// Has checks if entity has this component
func (s *Store[T]) Has(e core.Entity) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.components[e]
	return ok
}

// All returns all entities with this component type
func (s *Store[T]) All() []core.Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]core.Entity, len(s.entities))
	copy(result, s.entities)
	return result
}

// Count returns number of entities with this component
func (s *Store[T]) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entities)
}

// Clear removes all components from this store, emitting Removed for each
func (s *Store[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entities {
		s.emit(EventRemoved, e)
	}
	s.components = make(map[core.Entity]T)
	s.entities = make([]core.Entity, 0, 64)
	s.index = make(map[core.Entity]int)
}

// RemoveBatch deletes several entities with a single compaction of the entity list
// Removed is emitted in argument order for entities that were present
func (s *Store[T]) RemoveBatch(entities []core.Entity) {
	if len(entities) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Early exit if store is empty
	if len(s.components) == 0 {
		return
	}

	// Build removal set and delete from map
	toRemove := make(map[core.Entity]struct{}, len(entities))
	for _, e := range entities {
		if _, exists := s.components[e]; exists {
			toRemove[e] = struct{}{}
			delete(s.components, e)
			s.emit(EventRemoved, e)
		}
	}

	if len(toRemove) == 0 {
		return
	}

	// Single pass compaction of entities slice
	writeIdx := 0
	for _, e := range s.entities {
		if _, remove := toRemove[e]; !remove {
			s.entities[writeIdx] = e
			s.index[e] = writeIdx
			writeIdx++
		} else {
			delete(s.index, e)
		}
	}
	s.entities = s.entities[:writeIdx]
}
