// Package modelcache implements memoization of tooling-model computations
// per (scope, unit, model-type) key.
package modelcache

import (
	"context"
	"sync"
	"time"

	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/keel/internal/core/ports"
	"go.trai.ch/zerr"
)

// Cache serves model queries for one configuration pass, reusing results
// recorded in the prior cache entry for units whose owner is reused.
type Cache struct {
	builder ports.ModelBuilder
	sink    ports.EventSink

	mu      sync.Mutex
	prior   *domain.CacheEntry
	results []domain.ModelRequest
	served  map[string]int // key -> index into results
}

// NewCache creates a Cache backed by the given builder and event sink.
func NewCache(builder ports.ModelBuilder, sink ports.EventSink) *Cache {
	c := &Cache{
		builder: builder,
		sink:    sink,
	}
	c.resetLocked()
	return c
}

// Prime installs the prior cache entry and clears any recorded results,
// preparing the cache for a new pass.
func (c *Cache) Prime(prior *domain.CacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prior = prior
	c.resetLocked()
}

func (c *Cache) resetLocked() {
	c.results = nil
	c.served = make(map[string]int)
}

// Query serves one model request.
//
// When the owning unit is reused and the prior entry holds an identical key,
// the prior payload is returned directly: the builder is not invoked and no
// query event is emitted. Otherwise the model is computed fresh, recorded and
// a model-queried event is emitted. Distinct model types for the same unit
// are separate entries; build-scoped and project-scoped keys never merge.
func (c *Cache) Query(ctx context.Context, key domain.ModelKey, unit *domain.Unit, ownerReused bool) (domain.ModelRequest, error) {
	keyStr := key.String()

	c.mu.Lock()
	if idx, ok := c.served[keyStr]; ok {
		req := c.results[idx]
		c.mu.Unlock()
		return req, nil
	}

	if ownerReused {
		if prior, ok := c.prior.FindModel(key); ok {
			req := prior
			req.FromCache = true
			c.record(keyStr, req)
			c.mu.Unlock()
			return req, nil
		}
	}
	c.mu.Unlock()

	payload, err := c.builder.Build(ctx, key, unit)
	if err != nil {
		wrapped := zerr.With(zerr.Wrap(domain.ErrModelComputationFailed, err.Error()), "model", key.Type.String())
		return domain.ModelRequest{}, zerr.With(wrapped, "path", key.Path.String())
	}

	req := domain.ModelRequest{
		Scope:       key.Scope,
		Path:        key.Path.String(),
		Type:        key.Type.String(),
		Payload:     payload,
		RequestedAt: time.Now(),
	}

	c.mu.Lock()
	// A concurrent sibling may have served the key meanwhile; first write wins.
	if idx, ok := c.served[keyStr]; ok {
		req = c.results[idx]
		c.mu.Unlock()
		return req, nil
	}
	c.record(keyStr, req)
	c.mu.Unlock()

	c.sink.Emit(domain.Event{
		Kind:      domain.EventModelQueried,
		Path:      key.Path.String(),
		ModelType: key.Type.String(),
		At:        req.RequestedAt,
	})

	return req, nil
}

// record assumes c.mu is held.
func (c *Cache) record(keyStr string, req domain.ModelRequest) {
	c.served[keyStr] = len(c.results)
	c.results = append(c.results, req)
}

// Lookup returns the request recorded for the key during this pass.
// The boolean makes "checked and absent" observable, as opposed to a key
// that was never looked up at all.
func (c *Cache) Lookup(key domain.ModelKey) (domain.ModelRequest, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx, ok := c.served[key.String()]
	if !ok {
		return domain.ModelRequest{}, false
	}
	return c.results[idx], true
}

// Results returns the recorded requests in serve order.
func (c *Cache) Results() []domain.ModelRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.ModelRequest, len(c.results))
	copy(out, c.results)
	return out
}

// Counts returns the number of freshly computed and cache-served requests.
func (c *Cache) Counts() (fresh, cached int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, req := range c.results {
		if req.FromCache {
			cached++
		} else {
			fresh++
		}
	}
	return fresh, cached
}
