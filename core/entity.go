package core

import "fmt"

// Entity is an opaque handle to a world entity.
// The low 32 bits hold the slot index, the high 32 bits hold the generation
// counter for that slot. A handle is only valid while its generation matches
// the registry's live generation for the index; stale handles fail lookups
// instead of aliasing a recycled slot.
type Entity uint64

// Nil is the zero handle. It never refers to a live entity.
const Nil Entity = 0

const (
	indexBits = 32
	indexMask = (1 << indexBits) - 1
)

// MakeEntity packs a slot index and generation into a handle.
func MakeEntity(index, generation uint32) Entity {
	return Entity(uint64(generation)<<indexBits | uint64(index))
}

// Index returns the slot index of the handle.
func (e Entity) Index() uint32 {
	return uint32(e & indexMask)
}

// Generation returns the generation counter of the handle.
func (e Entity) Generation() uint32 {
	return uint32(e >> indexBits)
}

// IsNil reports whether the handle is the zero handle.
func (e Entity) IsNil() bool {
	return e == Nil
}

func (e Entity) String() string {
	return fmt.Sprintf("entity(%d:%d)", e.Index(), e.Generation())
}
