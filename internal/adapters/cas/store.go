// Package cas implements the persisted cache-entry store.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/zerr"
)

// DefaultPath is the cache entry location relative to the source root.
const DefaultPath = ".keel/cache.json"

// Store persists the cache entry as a single JSON artifact.
// Saves are write-new-then-swap: the prior entry is never mutated in place,
// so an interrupted pass leaves it untouched.
type Store struct {
	path string
}

// NewStore creates a Store backed by the file at the given path.
func NewStore(path string) *Store {
	return &Store{path: filepath.Clean(path)}
}

// Load reads the prior cache entry.
// A missing entry is not an error and returns nil, nil (cold start).
// A malformed entry returns domain.ErrCacheCorrupt.
func (s *Store) Load() (*domain.CacheEntry, error) {
	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read cache entry"), "path", s.path)
	}

	if len(data) == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrCacheCorrupt, "cache entry file is empty"), "path", s.path)
	}

	var entry domain.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrCacheCorrupt, err.Error()), "path", s.path)
	}

	return &entry, nil
}

// Save atomically persists the entry: it writes a sibling temp file and
// renames it over the old one.
func (s *Store) Save(entry *domain.CacheEntry) error {
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal cache entry")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create cache directory"), "path", dir)
	}

	tmp := s.path + ".tmp"
	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write cache entry"), "path", tmp)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		// Leave the prior entry in place; the temp file is best-effort
		// cleaned up.
		_ = os.Remove(tmp)
		return zerr.With(zerr.Wrap(err, "failed to swap cache entry into place"), "path", s.path)
	}

	return nil
}

// Clear removes the persisted entry, if any.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, "failed to remove cache entry"), "path", s.path)
	}
	return nil
}
