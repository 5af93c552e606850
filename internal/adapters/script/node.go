package script

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/keel/internal/core/ports"
)

// NodeID is the unique identifier for the script runner Graft node.
const NodeID graft.ID = "adapter.script_runner"

func init() {
	graft.Register(graft.Node[ports.Configurer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Configurer, error) {
			return NewRunner("."), nil
		},
	})
}
