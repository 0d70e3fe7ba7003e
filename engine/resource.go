package engine

import "time"

// TimeResource wraps tick timing for systems.
// It is updated by the world at the start of every tick; systems read it
// instead of consulting the wall clock so pause and fixed-step stay coherent.
type TimeResource struct {
	// Delta is the duration of the current tick
	Delta time.Duration

	// Elapsed is the accumulated simulation time
	Elapsed time.Duration

	// Tick is the current tick number, starting at 1 on the first tick
	Tick int64
}

// Advance moves the resource forward by one tick of dt.
// Called under the world's tick lock; fields are mutated in place.
func (tr *TimeResource) Advance(dt time.Duration) {
	tr.Delta = dt
	tr.Elapsed += dt
	tr.Tick++
}
