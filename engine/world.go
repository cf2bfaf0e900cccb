package engine

import (
	"sync"

	"github.com/lixenwraith/flappy-term/component"
	"github.com/lixenwraith/flappy-term/core"
)

// World contains all entities and their components using typed stores
type World struct {
	mu   sync.RWMutex
	pool *EntityPool

	// Renderables is tracked: its channel drives the sorted render view
	Renderables *Store[component.RenderComponent]
	Positions   *Store[component.PositionComponent]
	Sizes       *Store[component.SizeComponent]
	Rotations   *Store[component.RotationComponent]
	Images      *Store[component.ImageComponent]
	Texts       *Store[component.TextComponent]
	Pipes       *Store[component.PipeComponent]

	// Lifecycle registry - all stores implement AnyStore for uniform cleanup
	allStores []AnyStore

	updateMutex sync.Mutex
}

// NewWorld creates a world with all component stores initialized
func NewWorld() *World {
	w := &World{
		pool:        NewEntityPool(),
		Renderables: NewTrackedStore[component.RenderComponent](),
		Positions:   NewStore[component.PositionComponent](),
		Sizes:       NewStore[component.SizeComponent](),
		Rotations:   NewStore[component.RotationComponent](),
		Images:      NewStore[component.ImageComponent](),
		Texts:       NewStore[component.TextComponent](),
		Pipes:       NewStore[component.PipeComponent](),
	}

	// Renderables first so Removed is emitted before the decorations vanish
	w.allStores = []AnyStore{
		w.Renderables,
		w.Positions,
		w.Sizes,
		w.Rotations,
		w.Images,
		w.Texts,
		w.Pipes,
	}
	return w
}

// CreateEntity reserves an entity handle without adding any components
// Handles of destroyed entities are reused
func (w *World) CreateEntity() core.Entity {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pool.Create()
}

// DestroyEntity removes all components associated with an entity and frees its handle
func (w *World) DestroyEntity(e core.Entity) {
	w.DestroyEntities([]core.Entity{e})
}

// DestroyEntities removes a group of entities with one compaction per store
// Dead handles in es are ignored
func (w *World) DestroyEntities(es []core.Entity) {
	w.mu.Lock()
	defer w.mu.Unlock()

	live := make([]core.Entity, 0, len(es))
	for _, e := range es {
		if w.pool.Alive(e) {
			live = append(live, e)
		}
	}
	if len(live) == 0 {
		return
	}
	for _, store := range w.allStores {
		store.RemoveBatch(live)
	}
	for _, e := range live {
		w.pool.Destroy(e)
	}
}

// Alive reports whether e is a live entity handle
func (w *World) Alive(e core.Entity) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.pool.Alive(e)
}

// EntityCount returns the number of live entities
func (w *World) EntityCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.pool.Count()
}

// Clear removes all entities and components from the world
func (w *World) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, store := range w.allStores {
		store.Clear()
	}
	w.pool.Reset()
}

// RunSafe executes a function while holding the world's update lock
// Mutating phases and the render phase both run under it, never overlapping
func (w *World) RunSafe(fn func()) {
	w.updateMutex.Lock()
	defer w.updateMutex.Unlock()
	fn()
}

// Lock acquires a lock on the world's update mutex
func (w *World) Lock() {
	w.updateMutex.Lock()
}

// Unlock releases the update mutex
func (w *World) Unlock() {
	w.updateMutex.Unlock()
}
