package parameter

// Built-in system execution priorities (lower runs first).
// Gameplay modules should schedule their systems between PriorityFirst and
// PriorityDeath so lifecycle sweeps always observe a settled frame.
const (
	PriorityFirst    = 0
	PriorityMovement = 100
	PriorityGameplay = 200
	PriorityTimer    = 800 // after game logic, before death collection
	PriorityDeath    = 900 // last, converts death marks into deferred destroys
)
