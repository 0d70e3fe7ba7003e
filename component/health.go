package component

// Health is the remaining hit points of a damageable entity
type Health struct {
	// Current is the remaining hit points (entity is dead at <= 0)
	Current int

	// Max caps healing
	Max int
}
