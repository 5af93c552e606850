package app

import (
	"go.trai.ch/keel/internal/core/ports"
	"go.trai.ch/keel/internal/engine/problems"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App      *App
	Logger   ports.Logger
	Problems *problems.Collector

	store ports.CacheStore
}

// Store exposes the cache store for diagnostic commands.
func (c *Components) Store() ports.CacheStore {
	return c.store
}
