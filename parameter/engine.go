package parameter

import "time"

// Engine timing
const (
	// DefaultTickInterval is the default simulation tick interval (20 Hz)
	DefaultTickInterval = 50 * time.Millisecond

	// PausedPollInterval is the sleep interval of the clock while paused
	PausedPollInterval = 100 * time.Millisecond

	// MaxTickLag is how far behind the deadline the clock may fall before
	// it resynchronizes instead of running catch-up ticks
	MaxTickLag = 2
)

// Capacity defaults
const (
	// InitialStoreCapacity is the initial entity capacity of a component store
	InitialStoreCapacity = 64

	// InitialRegistryCapacity is the initial slot capacity of the entity registry
	InitialRegistryCapacity = 256

	// PendingEventWarn is the pending-queue depth at which the dispatcher
	// logs a warning about an unflushed backlog
	PendingEventWarn = 4096
)

// Job system defaults
const (
	// DefaultJobWorkers is the default worker count of the jobs runner
	DefaultJobWorkers = 4
)
