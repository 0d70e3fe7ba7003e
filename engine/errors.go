package engine

import "errors"

var (
	// ErrStaleHandle is returned when an operation names an entity whose
	// generation no longer matches the registry slot. Always recoverable.
	ErrStaleHandle = errors.New("stale entity handle")

	// ErrDuplicateComponent is returned by Store.Add when the entity already
	// has a component of that type. The value is not overwritten; callers
	// that want upsert semantics use Set.
	ErrDuplicateComponent = errors.New("component already present")
)
