package component

import "time"

// Timer tracks time until an entity is marked for death
type Timer struct {
	Remaining time.Duration
}
