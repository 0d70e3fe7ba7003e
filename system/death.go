package system

import (
	"time"

	"github.com/lixenwraith/scenecore/component"
	"github.com/lixenwraith/scenecore/core"
	"github.com/lixenwraith/scenecore/engine"
	"github.com/lixenwraith/scenecore/event"
	"github.com/lixenwraith/scenecore/parameter"
)

// Destroyed is published through the deferred queue for every entity the
// death system hands to destruction, so observers (loot, score, quest
// tracking) learn about it on the next flush.
type Destroyed struct {
	Entity core.Entity
}

func init() {
	event.RegisterName("EntityDestroyed", Destroyed{})
}

// DeathSystem converts Death marks into deferred destroy requests.
// It runs last so every earlier system in the tick still observes the
// marked entities with their components intact; the actual destruction
// happens in the end-of-tick sweep, after the event flush.
type DeathSystem struct {
	deaths *engine.Store[component.Death]
}

// NewDeathSystem creates a new death sweep system
func NewDeathSystem(w *engine.World) engine.System {
	return &DeathSystem{
		deaths: engine.GetStore[component.Death](w),
	}
}

// Name returns system's name
func (s *DeathSystem) Name() string {
	return "death"
}

// Priority returns the system's priority (runs after all game logic)
func (s *DeathSystem) Priority() int {
	return parameter.PriorityDeath
}

// Update requests deferred destruction for every marked entity
func (s *DeathSystem) Update(w *engine.World, dt time.Duration) {
	s.deaths.Each(func(e core.Entity, _ component.Death) {
		w.DestroyDeferred(e)
		event.Enqueue(w.Dispatcher(), Destroyed{Entity: e})
	})
}
