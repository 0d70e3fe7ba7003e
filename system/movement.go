package system

import (
	"time"

	"github.com/lixenwraith/scenecore/component"
	"github.com/lixenwraith/scenecore/engine"
	"github.com/lixenwraith/scenecore/parameter"
	"github.com/lixenwraith/scenecore/vmath"
)

// MovementSystem integrates Position by Velocity every tick
type MovementSystem struct {
	positions  *engine.Store[component.Position]
	velocities *engine.Store[component.Velocity]
}

// NewMovementSystem creates a movement system with its stores resolved once
func NewMovementSystem(w *engine.World) engine.System {
	return &MovementSystem{
		positions:  engine.GetStore[component.Position](w),
		velocities: engine.GetStore[component.Velocity](w),
	}
}

// Name returns system's name
func (s *MovementSystem) Name() string {
	return "movement"
}

// Priority returns the system's priority
func (s *MovementSystem) Priority() int {
	return parameter.PriorityMovement
}

// Update advances every entity that has both Position and Velocity
func (s *MovementSystem) Update(w *engine.World, dt time.Duration) {
	seconds := dt.Seconds()

	entities := w.Query().
		With(s.positions).
		With(s.velocities).
		Execute()

	for _, e := range entities {
		pos, ok := s.positions.Get(e)
		if !ok {
			continue
		}
		vel, ok := s.velocities.Get(e)
		if !ok {
			continue
		}
		pos.Pos = vmath.V3FAdd(pos.Pos, vmath.V3FScale(vel.Vel, seconds))
		s.positions.Set(e, pos)
	}
}
