package component

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

// Info is optional entity metadata used for lookup, debugging and external
// serialization. Not simulation-critical: no built-in system reads it.
type Info struct {
	// Name is a display name for debug views
	Name string

	// UUID is a stable unique identifier, preserved across save/load by the
	// external save subsystem
	UUID string

	// Enabled is a soft on/off flag interpreted by gameplay modules
	Enabled bool
}

var (
	idNodeOnce sync.Once
	idNode     *snowflake.Node
)

// NewInfo creates an Info with a freshly generated UUID and Enabled set.
func NewInfo(name string) Info {
	idNodeOnce.Do(func() {
		// Node ID 0 is fine: one process, uniqueness comes from timestamp+sequence
		idNode, _ = snowflake.NewNode(0)
	})
	return Info{
		Name:    name,
		UUID:    idNode.Generate().String(),
		Enabled: true,
	}
}
