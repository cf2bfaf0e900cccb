package engine

import "github.com/lixenwraith/flappy-term/core"

// EntityPool allocates entity handles and recycles destroyed ones (LIFO)
type EntityPool struct {
	alive    map[core.Entity]struct{}
	freeList []core.Entity
	nextID   core.Entity
}

// NewEntityPool creates a pool whose first handle is 1
func NewEntityPool() *EntityPool {
	return &EntityPool{
		alive:    make(map[core.Entity]struct{}, 256),
		freeList: make([]core.Entity, 0, 64),
		nextID:   1,
	}
}

// Create returns a recycled handle if one is free, otherwise a fresh one
func (p *EntityPool) Create() core.Entity {
	var e core.Entity
	if n := len(p.freeList); n > 0 {
		e = p.freeList[n-1]
		p.freeList = p.freeList[:n-1]
	} else {
		e = p.nextID
		p.nextID++
	}
	p.alive[e] = struct{}{}
	return e
}

// Alive reports whether e is currently allocated
func (p *EntityPool) Alive(e core.Entity) bool {
	_, ok := p.alive[e]
	return ok
}

// Destroy returns e to the free list; destroying a dead handle is a no-op
func (p *EntityPool) Destroy(e core.Entity) bool {
	if _, ok := p.alive[e]; !ok {
		return false
	}
	delete(p.alive, e)
	p.freeList = append(p.freeList, e)
	return true
}

// Count returns the number of live entities
func (p *EntityPool) Count() int {
	return len(p.alive)
}

// Reset forgets every allocation
func (p *EntityPool) Reset() {
	p.alive = make(map[core.Entity]struct{}, 256)
	p.freeList = p.freeList[:0]
	p.nextID = 1
}
