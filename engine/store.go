package engine

import (
	"sync"

	"github.com/lixenwraith/scenecore/core"
	"github.com/lixenwraith/scenecore/parameter"
)

// AnyStore is the type-erased view of a component store, used for uniform
// entity destruction and for snapshot enumeration.
type AnyStore interface {
	Name() string
	Has(e core.Entity) bool
	Remove(e core.Entity) bool
	RemoveBatch(entities []core.Entity)
	Count() int
	Clear()
	All() []core.Entity
	GetRaw(e core.Entity) (any, bool)
}

// QueryableStore is the minimal store surface the query builder needs.
type QueryableStore interface {
	Has(e core.Entity) bool
	Count() int
	All() []core.Entity
}

// Store is a generic container for a specific component type T
// Uses sparse set pattern: map for lookup, entity slice for iteration
type Store[T any] struct {
	mu         sync.RWMutex
	name       string
	components map[core.Entity]T
	entities   []core.Entity
}

// NewStore creates a new component store for type T.
// Stores are normally obtained through GetStore, which registers them with
// the world under their reflect type; name is the registration name.
func NewStore[T any](name string) *Store[T] {
	return &Store[T]{
		name:       name,
		components: make(map[core.Entity]T, parameter.InitialStoreCapacity),
		entities:   make([]core.Entity, 0, parameter.InitialStoreCapacity),
	}
}

// Name returns the registration name of the store.
func (s *Store[T]) Name() string {
	return s.name
}

// Add inserts a component for an entity.
// Returns ErrDuplicateComponent if the entity already has one; the existing
// value is left untouched.
func (s *Store[T]) Add(e core.Entity, val T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.components[e]; exists {
		return ErrDuplicateComponent
	}
	s.entities = append(s.entities, e)
	s.components[e] = val
	return nil
}

// Set inserts or updates a component for an entity.
func (s *Store[T]) Set(e core.Entity, val T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.components[e]; !exists {
		s.entities = append(s.entities, e)
	}
	s.components[e] = val
}

// GetOrAdd returns the existing component, inserting def when absent.
// The second result is true when the component already existed.
func (s *Store[T]) GetOrAdd(e core.Entity, def T) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if val, exists := s.components[e]; exists {
		return val, true
	}
	s.entities = append(s.entities, e)
	s.components[e] = def
	return def, false
}

// Get retrieves a component for an entity.
// A miss is expected behavior, not an error.
func (s *Store[T]) Get(e core.Entity) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.components[e]
	return val, ok
}

// Has checks if entity has this component
func (s *Store[T]) Has(e core.Entity) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.components[e]
	return ok
}

// Remove deletes a component from an entity.
func (s *Store[T]) Remove(e core.Entity) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.components[e]; !exists {
		return false
	}
	delete(s.components, e)
	for i, entity := range s.entities {
		if entity == e {
			s.entities[i] = s.entities[len(s.entities)-1]
			s.entities = s.entities[:len(s.entities)-1]
			break
		}
	}
	return true
}

// All returns a copy of the entities that have this component.
func (s *Store[T]) All() []core.Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]core.Entity, len(s.entities))
	copy(result, s.entities)
	return result
}

// Each calls fn for every (entity, component) pair.
// Iteration runs over a snapshot of the membership: removals performed during
// the pass are observed (the pair is skipped), additions are not. Systems
// that destroy entities mid-iteration must go through the deferred destroy
// path, not structural self-mutation.
func (s *Store[T]) Each(fn func(core.Entity, T)) {
	for _, e := range s.All() {
		if val, ok := s.Get(e); ok {
			fn(e, val)
		}
	}
}

// Count returns number of entities with this component
func (s *Store[T]) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entities)
}

// Clear removes all components from this store
func (s *Store[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.components = make(map[core.Entity]T, parameter.InitialStoreCapacity)
	s.entities = s.entities[:0]
}

// GetRaw is the type-erased Get used by snapshot enumeration.
func (s *Store[T]) GetRaw(e core.Entity) (any, bool) {
	val, ok := s.Get(e)
	if !ok {
		return nil, false
	}
	return val, true
}

// RemoveBatch deletes multiple entities in a single pass - O(n+m) vs O(n*m)
// for individual removes
func (s *Store[T]) RemoveBatch(entities []core.Entity) {
	if len(entities) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.components) == 0 {
		return
	}

	toRemove := make(map[core.Entity]struct{}, len(entities))
	for _, e := range entities {
		if _, exists := s.components[e]; exists {
			toRemove[e] = struct{}{}
			delete(s.components, e)
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
			writeIdx++
		}
	}
	s.entities = s.entities[:writeIdx]
}
