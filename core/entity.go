package core

// Entity is an opaque handle grouping components
// Handles are recycled after destruction; uniqueness holds only among live entities
type Entity uint64

// NoEntity is never assigned to a live entity
const NoEntity Entity = 0
