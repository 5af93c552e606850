// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/keel/internal/adapters/cas"
	_ "go.trai.ch/keel/internal/adapters/config"
	_ "go.trai.ch/keel/internal/adapters/fs"
	_ "go.trai.ch/keel/internal/adapters/logger"
	_ "go.trai.ch/keel/internal/adapters/script"
	_ "go.trai.ch/keel/internal/adapters/telemetry"
	_ "go.trai.ch/keel/internal/adapters/tooling"
	_ "go.trai.ch/keel/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/keel/internal/app"
	_ "go.trai.ch/keel/internal/engine/invalidation"
	_ "go.trai.ch/keel/internal/engine/modelcache"
	_ "go.trai.ch/keel/internal/engine/problems"
	_ "go.trai.ch/keel/internal/engine/scheduler"
)
