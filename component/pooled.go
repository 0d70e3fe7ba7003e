package component

// Pooled marks an entity as owned by a spawn pool.
// Present on every entity a pool has ever created, active or not; the spawn
// manager uses it to validate release and ownership checks.
type Pooled struct {
	// Pool is the owning template name
	Pool string

	// Active is false while the entity sits in the free list
	Active bool

	// AcquireID increments on every acquisition, distinguishing reuses of
	// the same pooled entity
	AcquireID uint64
}
