package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/keel/internal/adapters/cas"       //nolint:depguard // Wired in app layer
	"go.trai.ch/keel/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/keel/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/keel/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/keel/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/keel/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/keel/internal/core/ports"
	"go.trai.ch/keel/internal/engine/invalidation"
	"go.trai.ch/keel/internal/engine/problems"
	"go.trai.ch/keel/internal/engine/scheduler"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			fs.FingerprinterNodeID,
			cas.NodeID,
			scheduler.NodeID,
			invalidation.NodeID,
			problems.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
			watcher.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			problems.NodeID,
			cas.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	fingerprinter, err := graft.Dep[ports.Fingerprinter](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.CacheStore](ctx)
	if err != nil {
		return nil, err
	}

	sched, err := graft.Dep[*scheduler.Scheduler](ctx)
	if err != nil {
		return nil, err
	}

	analyzer, err := graft.Dep[*invalidation.Analyzer](ctx)
	if err != nil {
		return nil, err
	}

	collector, err := graft.Dep[*problems.Collector](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	fsWatcher, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, fingerprinter, store, sched, analyzer, collector, tracer, log, fsWatcher), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	application, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	collector, err := graft.Dep[*problems.Collector](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.CacheStore](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:      application,
		Logger:   log,
		Problems: collector,
		store:    store,
	}, nil
}
