package engine

import (
	"sync"

	"github.com/lixenwraith/scenecore/core"
	"github.com/lixenwraith/scenecore/parameter"
)

// Registry owns entity identity: slot allocation, destruction, and the
// per-slot generation counters that invalidate stale handles.
//
// Recycling policy: destroyed slot indices go onto a FIFO free list so an
// index is reused as late as possible, and the slot's generation is bumped
// at destruction time. Generations are uint32 and wrap; after 2^32 reuses of
// one slot an ancient handle compares valid again. Accepted: collision
// probability is negligible at this width, and the behavior is covered by
// tests rather than guarded against.
type Registry struct {
	mu          sync.RWMutex
	generations []uint32
	alive       []bool
	free        []uint32 // FIFO: pop from front, push to back
	count       int
}

// NewRegistry creates an empty registry. Slot 0 is reserved so core.Nil
// never collides with a live handle.
func NewRegistry() *Registry {
	r := &Registry{
		generations: make([]uint32, 1, parameter.InitialRegistryCapacity),
		alive:       make([]bool, 1, parameter.InitialRegistryCapacity),
	}
	return r
}

// Create allocates a new entity, recycling a free slot when one exists.
func (r *Registry) Create() core.Entity {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.free) > 0 {
		idx := r.free[0]
		r.free = r.free[1:]
		r.alive[idx] = true
		r.count++
		return core.MakeEntity(idx, r.generations[idx])
	}

	idx := uint32(len(r.generations))
	r.generations = append(r.generations, 0)
	r.alive = append(r.alive, true)
	r.count++
	return core.MakeEntity(idx, 0)
}

// Destroy invalidates the handle and returns its slot to the free list.
// Returns false without side effects if the handle is stale or nil.
func (r *Registry) Destroy(e core.Entity) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.validLocked(e) {
		return false
	}

	idx := e.Index()
	r.alive[idx] = false
	r.generations[idx]++ // wraps at uint32 max, see type comment
	r.free = append(r.free, idx)
	r.count--
	return true
}

// IsValid reports whether the handle still refers to a live entity.
func (r *Registry) IsValid(e core.Entity) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.validLocked(e)
}

func (r *Registry) validLocked(e core.Entity) bool {
	idx := e.Index()
	if e.IsNil() || idx >= uint32(len(r.generations)) {
		return false
	}
	return r.alive[idx] && r.generations[idx] == e.Generation()
}

// Alive returns the number of live entities.
func (r *Registry) Alive() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.count
}

// Each calls fn for every live entity. The set is snapshotted first, so
// creating or destroying entities from fn does not affect the pass.
func (r *Registry) Each(fn func(core.Entity)) {
	r.mu.RLock()
	live := make([]core.Entity, 0, r.count)
	for idx := 1; idx < len(r.generations); idx++ {
		if r.alive[idx] {
			live = append(live, core.MakeEntity(uint32(idx), r.generations[idx]))
		}
	}
	r.mu.RUnlock()

	for _, e := range live {
		fn(e)
	}
}

// Clear destroys every live entity and resets the free list.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := 1; idx < len(r.generations); idx++ {
		if r.alive[idx] {
			r.alive[idx] = false
			r.generations[idx]++
			r.free = append(r.free, uint32(idx))
		}
	}
	r.count = 0
}
