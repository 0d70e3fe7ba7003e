package system

import (
	"time"

	"github.com/lixenwraith/scenecore/component"
	"github.com/lixenwraith/scenecore/core"
	"github.com/lixenwraith/scenecore/engine"
	"github.com/lixenwraith/scenecore/parameter"
)

// TimerSystem manages lifecycle timers for entities
// It runs after game logic to tag expired entities for destruction
type TimerSystem struct {
	timers *engine.Store[component.Timer]
	deaths *engine.Store[component.Death]
}

// NewTimerSystem creates a new timer system
func NewTimerSystem(w *engine.World) engine.System {
	return &TimerSystem{
		timers: engine.GetStore[component.Timer](w),
		deaths: engine.GetStore[component.Death](w),
	}
}

// Name returns system's name
func (s *TimerSystem) Name() string {
	return "timer"
}

// Priority returns the system's priority (runs just before DeathSystem)
func (s *TimerSystem) Priority() int {
	return parameter.PriorityTimer
}

// Update decrements timers and handles expiration
func (s *TimerSystem) Update(w *engine.World, dt time.Duration) {
	s.timers.Each(func(e core.Entity, timer component.Timer) {
		timer.Remaining -= dt

		if timer.Remaining <= 0 {
			// Expired: hand the entity to the death sweep
			s.timers.Remove(e)
			s.deaths.Set(e, component.Death{})
		} else {
			s.timers.Set(e, timer)
		}
	})
}
