package engine

import (
	"sort"

	"github.com/lixenwraith/flappy-term/core"
)

// QueryBuilder provides a fluent interface for querying entities based on component intersection.
// It uses the sparse set pattern from stores to efficiently find entities that have all specified components.
// An unordered query starts with the smallest store and filters through larger ones;
// a guided query walks a caller-supplied entity list and keeps its order.
type QueryBuilder struct {
	world    *World
	stores   []QueryableStore
	guide    []core.Entity
	guided   bool
	executed bool
	results  []core.Entity
}

// Query creates a new QueryBuilder for finding entities with specific component combinations.
// Use With() to add mandatory component filters, then Execute() to get the results.
//
// Example:
//
//	entities := world.Query().
//	    With(world.Renderables).
//	    With(world.Positions).
//	    Ordered(sorted).
//	    Execute()
func (w *World) Query() *QueryBuilder {
	return &QueryBuilder{
		world:  w,
		stores: make([]QueryableStore, 0, 4),
	}
}

// With adds a mandatory component store to the query filter.
// The resulting query will only return entities that have components in ALL specified stores.
// Returns the QueryBuilder for method chaining.
//
// Panics if called after Execute().
func (qb *QueryBuilder) With(stores ...QueryableStore) *QueryBuilder {
	if qb.executed {
		panic("query already executed - cannot modify after Execute()")
	}
	qb.stores = append(qb.stores, stores...)
	return qb
}

// Ordered restricts the query to the given entities and preserves their order.
// Entities missing from any mandatory store are skipped; optional columns are
// read by the caller with Store.Get.
//
// Panics if called after Execute().
func (qb *QueryBuilder) Ordered(entities []core.Entity) *QueryBuilder {
	if qb.executed {
		panic("query already executed - cannot modify after Execute()")
	}
	qb.guide = entities
	qb.guided = true
	return qb
}

// Execute runs the query and returns all entities that have components in all specified stores.
// Calling Execute() multiple times returns the cached result.
//
// Returns:
//   - Empty slice if no stores were specified and the query is unguided
//   - Guide order for guided queries, otherwise store order of the smallest store
func (qb *QueryBuilder) Execute() []core.Entity {
	if qb.executed {
		return qb.results
	}
	qb.executed = true

	if qb.guided {
		qb.results = make([]core.Entity, 0, len(qb.guide))
	guide:
		for _, e := range qb.guide {
			for _, store := range qb.stores {
				if !store.Has(e) {
					continue guide
				}
			}
			qb.results = append(qb.results, e)
		}
		return qb.results
	}

	// Empty query returns no results
	if len(qb.stores) == 0 {
		qb.results = make([]core.Entity, 0)
		return qb.results
	}

	// Single store: just return all entities from that store
	if len(qb.stores) == 1 {
		qb.results = qb.stores[0].All()
		return qb.results
	}

	// Sort stores by count (ascending) for optimal intersection performance
	// Starting with the smallest store minimizes the number of Has() checks
	sort.Slice(qb.stores, func(i, j int) bool {
		return qb.stores[i].Count() < qb.stores[j].Count()
	})

	candidates := qb.stores[0].All()

	// Filter candidates through remaining stores, reusing the candidates slice
	for i := 1; i < len(qb.stores); i++ {
		store := qb.stores[i]
		filtered := candidates[:0]
		for _, e := range candidates {
			if store.Has(e) {
				filtered = append(filtered, e)
			}
		}
		candidates = filtered

		if len(candidates) == 0 {
			break
		}
	}

	qb.results = candidates
	return qb.results
}
