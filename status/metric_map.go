package status

import (
	"maps"
	"slices"
	"sync"
	"sync/atomic"
)

// MetricMap hands out one stable *T per key
// Reads go through an immutable snapshot; registering a key copies it under mu
type MetricMap[T any] struct {
	mu   sync.Mutex
	snap atomic.Pointer[map[string]*T]
}

func NewMetricMap[T any]() *MetricMap[T] {
	m := &MetricMap[T]{}
	empty := map[string]*T{}
	m.snap.Store(&empty)
	return m
}

// Get returns the pointer for key, registering a zero value on first use
func (m *MetricMap[T]) Get(key string) *T {
	if ptr, ok := (*m.snap.Load())[key]; ok {
		return ptr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cur := *m.snap.Load()
	if ptr, ok := cur[key]; ok {
		return ptr
	}
	next := make(map[string]*T, len(cur)+1)
	maps.Copy(next, cur)
	ptr := new(T)
	next[key] = ptr
	m.snap.Store(&next)
	return ptr
}

// Lookup returns the pointer for key without registering it
func (m *MetricMap[T]) Lookup(key string) (*T, bool) {
	ptr, ok := (*m.snap.Load())[key]
	return ptr, ok
}

// Range visits keys in sorted order over the snapshot current at call time
func (m *MetricMap[T]) Range(fn func(key string, ptr *T)) {
	cur := *m.snap.Load()
	for _, k := range slices.Sorted(maps.Keys(cur)) {
		fn(k, cur[k])
	}
}

func (m *MetricMap[T]) Count() int {
	return len(*m.snap.Load())
}
