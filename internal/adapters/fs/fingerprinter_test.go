package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/keel/internal/adapters/fs"
	"go.trai.ch/keel/internal/core/domain"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newFingerprinter() *fs.Fingerprinter {
	return fs.NewFingerprinter(fs.NewWalker())
}

func scriptedUnit(path string, scripts ...string) *domain.Unit {
	u := &domain.Unit{Path: domain.MustUnitPath(path), Kind: domain.KindProject}
	for _, s := range scripts {
		u.ScriptSources = append(u.ScriptSources, domain.NewInternedString(s))
	}
	return u
}

func TestFingerprinter_Deterministic(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "setup.sh", "echo hi")
	f := newFingerprinter()
	unit := scriptedUnit(":app", "setup.sh")

	first, err := f.ComputeUnitFingerprint(unit, nil, root)
	require.NoError(t, err)
	second, err := f.ComputeUnitFingerprint(unit, nil, root)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 16, "fingerprints are fixed-width hex")
}

func TestFingerprinter_ScriptContentChangesHash(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "setup.sh", "echo hi")
	f := newFingerprinter()
	unit := scriptedUnit(":app", "setup.sh")

	before, err := f.ComputeUnitFingerprint(unit, nil, root)
	require.NoError(t, err)

	writeFile(t, root, "setup.sh", "echo changed")
	after, err := f.ComputeUnitFingerprint(unit, nil, root)
	require.NoError(t, err)

	assert.NotEqual(t, before, after)
}

func TestFingerprinter_UnitIdentityMatters(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "setup.sh", "echo hi")
	f := newFingerprinter()

	a, err := f.ComputeUnitFingerprint(scriptedUnit(":a", "setup.sh"), nil, root)
	require.NoError(t, err)
	b, err := f.ComputeUnitFingerprint(scriptedUnit(":b", "setup.sh"), nil, root)
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "identical content under different paths must differ")
}

func TestFingerprinter_EnvironmentReads(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "setup.sh", "echo hi")
	f := newFingerprinter()

	unit := scriptedUnit(":app", "setup.sh")
	unit.EnvReads = []string{"BUILD_MODE"}

	withDebug, err := f.ComputeUnitFingerprint(unit, map[string]string{"BUILD_MODE": "debug"}, root)
	require.NoError(t, err)
	withRelease, err := f.ComputeUnitFingerprint(unit, map[string]string{"BUILD_MODE": "release"}, root)
	require.NoError(t, err)
	assert.NotEqual(t, withDebug, withRelease)

	// Only declared reads participate.
	withNoise, err := f.ComputeUnitFingerprint(unit, map[string]string{"BUILD_MODE": "debug", "UNRELATED": "x"}, root)
	require.NoError(t, err)
	assert.Equal(t, withDebug, withNoise)

	// Unset is distinct from empty.
	unset, err := f.ComputeUnitFingerprint(unit, map[string]string{}, root)
	require.NoError(t, err)
	empty, err := f.ComputeUnitFingerprint(unit, map[string]string{"BUILD_MODE": ""}, root)
	require.NoError(t, err)
	assert.NotEqual(t, unset, empty)
}

func TestFingerprinter_MissingScript(t *testing.T) {
	root := t.TempDir()
	f := newFingerprinter()
	unit := scriptedUnit(":app", "missing.sh")

	_, err := f.ComputeUnitFingerprint(unit, nil, root)
	assert.ErrorIs(t, err, domain.ErrScriptNotFound)
}

func TestFingerprinter_DeclaredInputs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "setup.sh", "echo hi")
	writeFile(t, root, "src/main.go", "package main")
	f := newFingerprinter()

	unit := scriptedUnit(":app", "setup.sh")
	unit.DeclaredInputs = []domain.InternedString{domain.NewInternedString("src")}

	before, err := f.ComputeUnitFingerprint(unit, nil, root)
	require.NoError(t, err)

	writeFile(t, root, "src/extra.go", "package main")
	after, err := f.ComputeUnitFingerprint(unit, nil, root)
	require.NoError(t, err)
	assert.NotEqual(t, before, after, "new file under a directory input changes the hash")
}

func TestFingerprinter_GlobInputs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "setup.sh", "echo hi")
	writeFile(t, root, "conf/a.yaml", "a: 1")
	f := newFingerprinter()

	unit := scriptedUnit(":app", "setup.sh")
	unit.DeclaredInputs = []domain.InternedString{domain.NewInternedString("conf/*.yaml")}

	before, err := f.ComputeUnitFingerprint(unit, nil, root)
	require.NoError(t, err)

	writeFile(t, root, "conf/a.yaml", "a: 2")
	after, err := f.ComputeUnitFingerprint(unit, nil, root)
	require.NoError(t, err)
	assert.NotEqual(t, before, after)
}

func TestFingerprinter_MissingInput(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "setup.sh", "echo hi")
	f := newFingerprinter()

	unit := scriptedUnit(":app", "setup.sh")
	unit.DeclaredInputs = []domain.InternedString{domain.NewInternedString("does-not-exist/**")}

	_, err := f.ComputeUnitFingerprint(unit, nil, root)
	assert.ErrorIs(t, err, domain.ErrInputNotFound)
}

func TestWalker_SkipsCacheAndVCSDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/main.go", "package main")
	writeFile(t, root, ".git/HEAD", "ref: refs/heads/main")
	writeFile(t, root, ".keel/cache.json", "{}")
	writeFile(t, root, "node_modules/dep/index.js", "x")

	var files []string
	for path := range fs.NewWalker().WalkFiles(root) {
		rel, err := filepath.Rel(root, path)
		require.NoError(t, err)
		files = append(files, rel)
	}

	assert.Equal(t, []string{filepath.Join("src", "main.go")}, files)
}
