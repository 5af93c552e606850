package invalidation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/keel/internal/engine/invalidation"
)

func buildTree(t *testing.T, paths ...string) *domain.UnitTree {
	t.Helper()
	tree := domain.NewUnitTree()
	require.NoError(t, tree.AddUnit(&domain.Unit{Path: domain.RootPath(), Kind: domain.KindSettings}))
	for _, p := range paths {
		require.NoError(t, tree.AddUnit(&domain.Unit{Path: domain.MustUnitPath(p), Kind: domain.KindProject}))
	}
	require.NoError(t, tree.Validate())
	return tree
}

func TestAnalyzer_ColdStart(t *testing.T) {
	tree := buildTree(t, ":a", ":b")
	analyzer := invalidation.NewAnalyzer()

	current := domain.FingerprintSnapshot{":": "f0", ":a": "f1", ":b": "f2"}
	record := analyzer.Analyze(domain.FingerprintSnapshot{}, current, tree)

	assert.Equal(t, 3, record.CountOf(domain.StateNew))
	assert.Equal(t, 0, record.CountOf(domain.StateReused))
}

func TestAnalyzer_AllUnchanged(t *testing.T) {
	tree := buildTree(t, ":a", ":a:x", ":b")
	analyzer := invalidation.NewAnalyzer()

	snapshot := domain.FingerprintSnapshot{":": "f0", ":a": "f1", ":a:x": "f2", ":b": "f3"}
	record := analyzer.Analyze(snapshot, snapshot, tree)

	assert.Equal(t, 4, record.CountOf(domain.StateReused))
}

func TestAnalyzer_OwnChangeReconfigures(t *testing.T) {
	tree := buildTree(t, ":a", ":b")
	analyzer := invalidation.NewAnalyzer()

	prior := domain.FingerprintSnapshot{":": "f0", ":a": "f1", ":b": "f2"}
	current := domain.FingerprintSnapshot{":": "f0", ":a": "f1-changed", ":b": "f2"}
	record := analyzer.Analyze(prior, current, tree)

	assert.Equal(t, domain.StateReconfigured, record.StateOf(domain.MustUnitPath(":a")))
	assert.Equal(t, domain.StateReused, record.StateOf(domain.MustUnitPath(":b")))
	assert.Equal(t, domain.StateReused, record.StateOf(domain.RootPath()))
}

func TestAnalyzer_SettingsChangeInvalidatesEverything(t *testing.T) {
	tree := buildTree(t, ":a", ":a:x", ":b")
	analyzer := invalidation.NewAnalyzer()

	prior := domain.FingerprintSnapshot{":": "f0", ":a": "f1", ":a:x": "f2", ":b": "f3"}
	current := domain.FingerprintSnapshot{":": "f0-changed", ":a": "f1", ":a:x": "f2", ":b": "f3"}
	record := analyzer.Analyze(prior, current, tree)

	// Ancestor propagation: every project is invalidated transitively even
	// though the project-local fingerprints are unchanged.
	assert.Equal(t, domain.StateReconfigured, record.StateOf(domain.RootPath()))
	assert.Equal(t, 4, record.CountOf(domain.StateReconfigured))
	assert.Equal(t, 0, record.CountOf(domain.StateReused))
}

func TestAnalyzer_IntermediateChangePropagatesDown(t *testing.T) {
	tree := buildTree(t, ":a", ":a:x", ":b")
	analyzer := invalidation.NewAnalyzer()

	prior := domain.FingerprintSnapshot{":": "f0", ":a": "f1", ":a:x": "f2", ":b": "f3"}
	current := domain.FingerprintSnapshot{":": "f0", ":a": "f1-changed", ":a:x": "f2", ":b": "f3"}
	record := analyzer.Analyze(prior, current, tree)

	assert.Equal(t, domain.StateReconfigured, record.StateOf(domain.MustUnitPath(":a")))
	assert.Equal(t, domain.StateReconfigured, record.StateOf(domain.MustUnitPath(":a:x")))
	// Siblings of the changed subtree stay reused.
	assert.Equal(t, domain.StateReused, record.StateOf(domain.MustUnitPath(":b")))
}

func TestAnalyzer_NewUnit(t *testing.T) {
	tree := buildTree(t, ":a", ":b")
	analyzer := invalidation.NewAnalyzer()

	prior := domain.FingerprintSnapshot{":": "f0", ":a": "f1"}
	current := domain.FingerprintSnapshot{":": "f0", ":a": "f1", ":b": "f2"}
	record := analyzer.Analyze(prior, current, tree)

	assert.Equal(t, domain.StateNew, record.StateOf(domain.MustUnitPath(":b")))
	assert.Equal(t, domain.StateReused, record.StateOf(domain.MustUnitPath(":a")))
}

func TestAnalyzer_DroppedUnitLeavesNoOrphan(t *testing.T) {
	tree := buildTree(t, ":a")
	analyzer := invalidation.NewAnalyzer()

	prior := domain.FingerprintSnapshot{":": "f0", ":a": "f1", ":gone": "f2"}
	current := domain.FingerprintSnapshot{":": "f0", ":a": "f1"}
	record := analyzer.Analyze(prior, current, tree)

	assert.Equal(t, 2, record.Len())
	assert.Equal(t, domain.StateReused, record.StateOf(domain.MustUnitPath(":a")))
}

func TestAnalyzer_UnavailableFingerprintIsNew(t *testing.T) {
	tree := buildTree(t, ":a")
	analyzer := invalidation.NewAnalyzer()

	prior := domain.FingerprintSnapshot{":": "f0", ":a": "f1"}
	// :a missing from the current snapshot: its fingerprint could not be
	// computed this pass.
	current := domain.FingerprintSnapshot{":": "f0"}
	record := analyzer.Analyze(prior, current, tree)

	assert.Equal(t, domain.StateNew, record.StateOf(domain.MustUnitPath(":a")))
}
