package engine

import "time"

// System is a per-tick unit of game logic. Systems run serially in priority
// order on the simulation thread; they own no scheduler-visible state beyond
// what they keep privately.
type System interface {
	// Name identifies the system for scheduling and diagnostics
	Name() string

	// Priority orders execution within a tick (lower runs first)
	Priority() int

	// Update runs one tick of the system against the world
	Update(w *World, dt time.Duration)
}
