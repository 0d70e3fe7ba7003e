package component

import (
	"github.com/lixenwraith/scenecore/core"
	"github.com/lixenwraith/scenecore/engine"
	"github.com/lixenwraith/scenecore/vmath"
)

// Position is the world-space location of an entity
type Position struct {
	Pos vmath.Vec3F
}

// PositionOf is the canonical position lookup.
// Every module resolves entity positions through this helper; do not
// reimplement the store walk at call sites.
func PositionOf(w *engine.World, e core.Entity) (vmath.Vec3F, bool) {
	p, ok := engine.GetStore[Position](w).Get(e)
	if !ok {
		return vmath.Vec3F{}, false
	}
	return p.Pos, true
}
