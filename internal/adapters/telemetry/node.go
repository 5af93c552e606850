package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/keel/internal/adapters/logger"
	"go.trai.ch/keel/internal/core/ports"
)

const (
	// TracerNodeID is the unique identifier for the tracer Graft node.
	TracerNodeID graft.ID = "adapter.telemetry.tracer"
	// SinkNodeID is the unique identifier for the event sink Graft node.
	SinkNodeID graft.ID = "adapter.telemetry.sink"
)

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Tracer, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			Setup(log)
			return NewOTelTracer("keel"), nil
		},
	})

	graft.Register(graft.Node[ports.EventSink]{
		ID:        SinkNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.EventSink, error) {
			return NewCollector(), nil
		},
	})
}
