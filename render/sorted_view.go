package render

import (
	"sort"

	"github.com/lixenwraith/flappy-term/component"
	"github.com/lixenwraith/flappy-term/core"
)

// PositionReader is the Position column as seen by the sorted view
type PositionReader interface {
	Get(e core.Entity) (component.PositionComponent, bool)
}

// MembershipReader is the Renderable column as seen by the sorted view
type MembershipReader interface {
	Has(e core.Entity) bool
}

// SortedView is the cached z-ordered sequence of renderable entities
//
// order is the dense sequence; index maps each handle to its slot so that
// removal is a lookup plus one compaction pass. dirty persists across frames
// and is consumed only by a resort.
type SortedView struct {
	order   []core.Entity
	index   map[core.Entity]int
	dirty   bool
	resorts uint64

	keys []zKey
}

type zKey struct {
	e core.Entity
	z int
}

// NewSortedView creates an empty view; the first Apply always sorts
func NewSortedView() *SortedView {
	return &SortedView{
		order: make([]core.Entity, 0, 64),
		index: make(map[core.Entity]int, 64),
		dirty: true,
	}
}

// Apply folds one frame's dirty sets into the view
// Returns true if the sequence was re-sorted this frame
func (v *SortedView) Apply(d *DirtySet, members MembershipReader, positions PositionReader) bool {
	if d.OrderAffected() {
		v.dirty = true
	}
	if d.RemovedCount() > 0 {
		v.cull(d)
	}
	for _, e := range d.Inserted() {
		v.append(e, members)
	}
	if !v.dirty {
		return false
	}
	v.sort(positions)
	return true
}

// cull drops removed handles preserving survivor order
func (v *SortedView) cull(d *DirtySet) {
	write := 0
	for _, e := range v.order {
		if d.Removed(e) {
			delete(v.index, e)
			continue
		}
		v.order[write] = e
		v.index[e] = write
		write++
	}
	clear(v.order[write:])
	v.order = v.order[:write]
}

// append adds e at the tail unless it is already listed or no longer renderable
func (v *SortedView) append(e core.Entity, members MembershipReader) {
	if _, ok := v.index[e]; ok {
		return
	}
	if !members.Has(e) {
		return
	}
	v.index[e] = len(v.order)
	v.order = append(v.order, e)
}

// sort stably orders by ascending Position.Z and consumes the dirty flag
// A listed entity without Position is an InvariantViolation
func (v *SortedView) sort(positions PositionReader) {
	v.keys = v.keys[:0]
	for _, e := range v.order {
		pos, ok := positions.Get(e)
		if !ok {
			panic(&InvariantViolation{Entity: e, Reason: "renderable entity has no position"})
		}
		v.keys = append(v.keys, zKey{e: e, z: pos.Z})
	}
	sort.SliceStable(v.keys, func(i, j int) bool {
		return v.keys[i].z < v.keys[j].z
	})
	for i, k := range v.keys {
		v.order[i] = k.e
		v.index[k.e] = i
	}
	v.dirty = false
	v.resorts++
}

// markDirty forces a resort on the next Apply
func (v *SortedView) markDirty() {
	v.dirty = true
}

// Dirty reports whether a resort is pending
func (v *SortedView) Dirty() bool {
	return v.dirty
}

// Entities returns the live sequence; callers must not modify it
func (v *SortedView) Entities() []core.Entity {
	return v.order
}

// Snapshot returns a copy of the sequence
func (v *SortedView) Snapshot() []core.Entity {
	out := make([]core.Entity, len(v.order))
	copy(out, v.order)
	return out
}

// Contains reports whether e is listed
func (v *SortedView) Contains(e core.Entity) bool {
	_, ok := v.index[e]
	return ok
}

// IndexOf returns e's slot, or -1 if absent
func (v *SortedView) IndexOf(e core.Entity) int {
	if i, ok := v.index[e]; ok {
		return i
	}
	return -1
}

// Len returns the number of listed entities
func (v *SortedView) Len() int {
	return len(v.order)
}

// Resorts returns how many full sorts have run
func (v *SortedView) Resorts() uint64 {
	return v.resorts
}
