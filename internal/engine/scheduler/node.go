package scheduler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/keel/internal/adapters/script"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/keel/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/keel/internal/core/ports"
	"go.trai.ch/keel/internal/engine/modelcache"
	"go.trai.ch/keel/internal/engine/problems"
)

// NodeID is the unique identifier for the scheduler Graft node.
const NodeID graft.ID = "engine.scheduler"

func init() {
	graft.Register(graft.Node[*Scheduler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			script.NodeID,
			modelcache.NodeID,
			problems.NodeID,
			telemetry.SinkNodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Scheduler, error) {
			configurer, err := graft.Dep[ports.Configurer](ctx)
			if err != nil {
				return nil, err
			}

			models, err := graft.Dep[*modelcache.Cache](ctx)
			if err != nil {
				return nil, err
			}

			collector, err := graft.Dep[*problems.Collector](ctx)
			if err != nil {
				return nil, err
			}

			sink, err := graft.Dep[ports.EventSink](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return NewScheduler(configurer, models, collector, sink, tracer), nil
		},
	})
}
