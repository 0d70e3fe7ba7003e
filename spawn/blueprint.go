package spawn

import (
	"github.com/lixenwraith/scenecore/core"
	"github.com/lixenwraith/scenecore/engine"
)

// blueprintEntry pairs the apply and clear closures for one component type.
// The apply side copies the template value onto the entity; the clear side
// removes that component again at release time.
type blueprintEntry struct {
	apply func(w *engine.World, e core.Entity)
	clear func(w *engine.World, e core.Entity)
}

// Blueprint is a prefab template: the set of component values copied onto a
// freshly acquired pooled entity. A blueprint is built once, registered with
// the manager, and shared read-only across every spawned instance; the
// component values are copied per entity, never aliased.
type Blueprint struct {
	entries []blueprintEntry
}

// NewBlueprint creates an empty blueprint.
func NewBlueprint() *Blueprint {
	return &Blueprint{}
}

// With records a component value in the blueprint.
//
// Example:
//
//	bp := spawn.NewBlueprint()
//	spawn.With(bp, component.Position{})
//	spawn.With(bp, component.Health{Current: 10, Max: 10})
func With[T any](bp *Blueprint, value T) *Blueprint {
	bp.entries = append(bp.entries, blueprintEntry{
		apply: func(w *engine.World, e core.Entity) {
			engine.GetStore[T](w).Set(e, value)
		},
		clear: func(w *engine.World, e core.Entity) {
			engine.GetStore[T](w).Remove(e)
		},
	})
	return bp
}

// Apply copies every template component value onto the entity.
func (bp *Blueprint) Apply(w *engine.World, e core.Entity) {
	for _, entry := range bp.entries {
		entry.apply(w, e)
	}
}

// ClearOwned removes every blueprint-owned component from the entity.
// Components added to the entity after acquisition are not touched.
func (bp *Blueprint) ClearOwned(w *engine.World, e core.Entity) {
	for _, entry := range bp.entries {
		entry.clear(w, e)
	}
}

// Len returns the number of component types in the blueprint.
func (bp *Blueprint) Len() int {
	return len(bp.entries)
}
