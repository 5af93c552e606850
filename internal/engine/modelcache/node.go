package modelcache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/keel/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/keel/internal/adapters/tooling"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/keel/internal/core/ports"
)

// NodeID is the unique identifier for the model cache Graft node.
const NodeID graft.ID = "engine.modelcache"

func init() {
	graft.Register(graft.Node[*Cache]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			tooling.NodeID,
			telemetry.SinkNodeID,
		},
		Run: func(ctx context.Context) (*Cache, error) {
			builder, err := graft.Dep[ports.ModelBuilder](ctx)
			if err != nil {
				return nil, err
			}

			sink, err := graft.Dep[ports.EventSink](ctx)
			if err != nil {
				return nil, err
			}

			return NewCache(builder, sink), nil
		},
	})
}
