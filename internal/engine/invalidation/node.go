package invalidation

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the invalidation analyzer Graft node.
const NodeID graft.ID = "engine.invalidation"

func init() {
	graft.Register(graft.Node[*Analyzer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Analyzer, error) {
			return NewAnalyzer(), nil
		},
	})
}
