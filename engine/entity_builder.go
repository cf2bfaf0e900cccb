package engine

import "github.com/lixenwraith/flappy-term/core"

// EntityBuilder provides a fluent, type-safe interface for constructing entities with components.
// It reserves an entity ID upfront and stages components until Build() commits them.
//
// Example usage:
//
//	e := With(With(world.NewEntity(),
//	    world.Positions, component.PositionComponent{X: 10, Y: 5, Z: 1}),
//	    world.Renderables, component.RenderComponent{Visible: true}).
//	    Build()
type EntityBuilder struct {
	world  *World
	entity core.Entity
	staged []func()
	built  bool
}

// NewEntity creates a new EntityBuilder with a reserved entity ID.
func (w *World) NewEntity() *EntityBuilder {
	return &EntityBuilder{
		world:  w,
		entity: w.CreateEntity(),
		staged: make([]func(), 0, 6),
	}
}

// With stages a component of type T for the entity being built.
// The store type must match the component type.
// Panics if called after Build().
func With[T any](eb *EntityBuilder, store *Store[T], component T) *EntityBuilder {
	if eb.built {
		panic("entity already built - cannot add components after Build()")
	}
	e := eb.entity
	eb.staged = append(eb.staged, func() { store.Set(e, component) })
	return eb
}

// Build commits staged components in the order they were added and returns the entity ID.
// Stage the tracked Renderable last so observers never see it before its Position.
func (eb *EntityBuilder) Build() core.Entity {
	if eb.built {
		panic("entity already built")
	}
	eb.built = true
	for _, apply := range eb.staged {
		apply()
	}
	eb.staged = nil
	return eb.entity
}

// Entity returns the reserved ID without committing
func (eb *EntityBuilder) Entity() core.Entity {
	return eb.entity
}
