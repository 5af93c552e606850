package problems

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the problem collector Graft node.
const NodeID graft.ID = "engine.problems"

func init() {
	graft.Register(graft.Node[*Collector]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Collector, error) {
			return NewCollector(), nil
		},
	})
}
