package tooling

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/keel/internal/core/ports"
)

// NodeID is the unique identifier for the model builder Graft node.
const NodeID graft.ID = "adapter.model_builder"

func init() {
	graft.Register(graft.Node[ports.ModelBuilder]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.ModelBuilder, error) {
			return NewBuilder(), nil
		},
	})
}
