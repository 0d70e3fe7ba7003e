// Package snapshot makes world state enumerable for an external save
// subsystem. The wire format of save games is owned elsewhere; this package
// only walks the registry and every registered store into plain records,
// keyed by the stable UUID of component.Info where present.
//
// Take must run between ticks (or on the simulation thread); it observes no
// half-destroyed entity there because destruction is atomic within a tick.
package snapshot

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/lixenwraith/scenecore/component"
	"github.com/lixenwraith/scenecore/core"
	"github.com/lixenwraith/scenecore/engine"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// EntityRecord is the flattened view of one entity.
type EntityRecord struct {
	Entity core.Entity `json:"entity"`
	UUID   string      `json:"uuid,omitempty"`
	Name   string      `json:"name,omitempty"`

	// Components maps store name to the component value
	Components map[string]any `json:"components"`
}

// Snapshot is the enumerable state of a world at one point in time.
type Snapshot struct {
	Tick     int64          `json:"tick"`
	Entities []EntityRecord `json:"entities"`
}

// Take walks every live entity and every registered store.
func Take(w *engine.World) *Snapshot {
	infos := engine.GetStore[component.Info](w)
	var stores []engine.AnyStore
	w.EachStore(func(s engine.AnyStore) {
		stores = append(stores, s)
	})

	snap := &Snapshot{
		Tick:     w.Time.Tick,
		Entities: make([]EntityRecord, 0, w.Alive()),
	}

	w.EachEntity(func(e core.Entity) {
		rec := EntityRecord{
			Entity:     e,
			Components: make(map[string]any),
		}
		if info, ok := infos.Get(e); ok {
			rec.UUID = info.UUID
			rec.Name = info.Name
		}
		for _, store := range stores {
			if val, ok := store.GetRaw(e); ok {
				rec.Components[store.Name()] = val
			}
		}
		snap.Entities = append(snap.Entities, rec)
	})

	return snap
}

// Encode renders the snapshot as JSON. Debug and export tooling only; the
// save subsystem defines its own format on top of Take.
func (s *Snapshot) Encode() ([]byte, error) {
	return json.Marshal(s)
}
