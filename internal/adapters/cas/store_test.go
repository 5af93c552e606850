package cas_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/keel/internal/adapters/cas"
	"go.trai.ch/keel/internal/core/domain"
)

func tempStore(t *testing.T) (*cas.Store, string) {
	t.Helper()
	root := t.TempDir()
	path := filepath.Join(root, cas.DefaultPath)
	return cas.NewStore(path), path
}

func TestStore_LoadMissingIsColdStart(t *testing.T) {
	store, _ := tempStore(t)

	entry, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestStore_LoadCorrupt(t *testing.T) {
	t.Run("malformed json", func(t *testing.T) {
		store, path := tempStore(t)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		_, err := store.Load()
		assert.ErrorIs(t, err, domain.ErrCacheCorrupt)
	})

	t.Run("empty file", func(t *testing.T) {
		store, path := tempStore(t)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, nil, 0o644))

		_, err := store.Load()
		assert.ErrorIs(t, err, domain.ErrCacheCorrupt)
	})
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	store, path := tempStore(t)

	entry := &domain.CacheEntry{
		ID:        "pass-1",
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Outcome:   domain.OutcomeStored,
		Fingerprints: domain.FingerprintSnapshot{
			":": "aaaa", ":app": "bbbb",
		},
		Units: map[string]domain.UnitRecord{
			":app": {Path: ":app", Kind: domain.KindProject, State: domain.StateNew},
		},
	}
	require.NoError(t, store.Save(entry))

	// No temp file left behind after a successful swap.
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, entry.ID, loaded.ID)
	assert.Equal(t, entry.Outcome, loaded.Outcome)
	assert.Equal(t, entry.Fingerprints, loaded.Fingerprints)
	assert.Equal(t, domain.StateNew, loaded.Units[":app"].State)
}

func TestStore_SaveOverwritesAtomically(t *testing.T) {
	store, _ := tempStore(t)

	first := &domain.CacheEntry{ID: "pass-1", Outcome: domain.OutcomeStored}
	second := &domain.CacheEntry{ID: "pass-2", Outcome: domain.OutcomeStoredWithProblems}

	require.NoError(t, store.Save(first))
	require.NoError(t, store.Save(second))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "pass-2", loaded.ID)
}

func TestStore_Clear(t *testing.T) {
	store, _ := tempStore(t)

	// Clearing a missing entry is not an error.
	require.NoError(t, store.Clear())

	require.NoError(t, store.Save(&domain.CacheEntry{ID: "pass-1", Outcome: domain.OutcomeStored}))
	require.NoError(t, store.Clear())

	entry, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, entry)
}

// TestCacheEntry_PersistedFormat pins the on-disk JSON layout. The cache
// entry is read by external tooling, so field names and shapes are a
// contract.
func TestCacheEntry_PersistedFormat(t *testing.T) {
	entry := &domain.CacheEntry{
		ID:        "01234567-89ab-cdef-0123-456789abcdef",
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Outcome:   domain.OutcomeStoredWithProblems,
		Fingerprints: domain.FingerprintSnapshot{
			":":    "d41b1f10a972cb1b",
			":app": "9f86d081884c7d65",
		},
		Units: map[string]domain.UnitRecord{
			":": {
				Path:           ":",
				Kind:           domain.KindSettings,
				Fingerprint:    "d41b1f10a972cb1b",
				State:          domain.StateReconfigured,
				LastConfigured: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
				ScriptSources:  []string{"keel.settings.sh"},
			},
			":app": {
				Path:        ":app",
				Kind:        domain.KindProject,
				Fingerprint: "9f86d081884c7d65",
				State:       domain.StateReused,
			},
		},
		Models: []domain.ModelRequest{
			{
				Scope:       domain.ScopeBuild,
				Path:        ":",
				Type:        "toolchains",
				Payload:     json.RawMessage(`{"go":"1.25"}`),
				RequestedAt: time.Date(2026, 3, 1, 12, 0, 1, 0, time.UTC),
			},
			{
				Scope:     domain.ScopeProject,
				Path:      ":app",
				Type:      "sources",
				Payload:   json.RawMessage(`{"count":2}`),
				FromCache: true,
			},
		},
		Problems: domain.ProblemSet{
			{
				Severity: domain.SeverityWarning,
				Message:  "glob matched no files",
				Path:     ":app",
				At:       time.Date(2026, 3, 1, 12, 0, 2, 0, time.UTC),
			},
		},
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "cache_entry", data)
}
