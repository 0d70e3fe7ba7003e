package component

import "github.com/lixenwraith/scenecore/vmath"

// Velocity is the linear velocity of an entity in units per second
type Velocity struct {
	Vel vmath.Vec3F
}
