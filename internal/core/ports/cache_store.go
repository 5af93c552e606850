package ports

import "go.trai.ch/keel/internal/core/domain"

//go:generate go run go.uber.org/mock/mockgen -source=cache_store.go -destination=mocks/mock_cache_store.go -package=mocks

// CacheStore persists the cache entry between passes.
type CacheStore interface {
	// Load reads the prior cache entry.
	// Returns nil, nil when no entry exists (cold start).
	// Returns domain.ErrCacheCorrupt when the entry is unreadable or
	// malformed; callers treat that identically to a cold start.
	Load() (*domain.CacheEntry, error)

	// Save atomically persists the entry (write-new-then-swap). A failed
	// or interrupted save leaves the prior entry untouched.
	Save(entry *domain.CacheEntry) error

	// Clear removes the persisted entry, if any.
	Clear() error
}
