package fs

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/keel/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Fingerprinter = (*Fingerprinter)(nil)

// Fingerprinter computes content fingerprints for configuration units.
type Fingerprinter struct {
	walker *Walker
}

// NewFingerprinter creates a new Fingerprinter.
func NewFingerprinter(walker *Walker) *Fingerprinter {
	return &Fingerprinter{walker: walker}
}

// ComputeFileHash computes the XXHash of a file's content.
func (f *Fingerprinter) ComputeFileHash(path string) (uint64, error) {
	file, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer file.Close() //nolint:errcheck // Best effort close in defer

	digest := xxhash.New()
	if _, err := io.Copy(digest, file); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return digest.Sum64(), nil
}

// ComputeUnitFingerprint computes a single hash covering the unit identity,
// its script sources, declared inputs and the values of its declared
// environment reads. Identical inputs always produce the identical hash.
func (f *Fingerprinter) ComputeUnitFingerprint(unit *domain.Unit, env map[string]string, root string) (string, error) {
	digest := xxhash.New()

	f.hashUnitIdentity(unit, digest)
	f.hashEnvironmentReads(unit, env, digest)

	if err := f.hashScriptSources(unit, root, digest); err != nil {
		return "", err
	}
	if err := f.hashDeclaredInputs(unit, root, digest); err != nil {
		return "", err
	}

	return fmt.Sprintf("%016x", digest.Sum64()), nil
}

// hashUnitIdentity hashes the unit's path and kind.
func (f *Fingerprinter) hashUnitIdentity(unit *domain.Unit, digest *xxhash.Digest) {
	_, _ = digest.WriteString(unit.Path.String())
	_, _ = digest.Write([]byte{0}) // Separator
	_, _ = digest.WriteString(string(unit.Kind))
	_, _ = digest.Write([]byte{0})
}

// hashEnvironmentReads hashes the values of the environment variables the
// unit declares it reads, in deterministic order. Unset variables hash as
// absent, which is distinct from an empty value.
func (f *Fingerprinter) hashEnvironmentReads(unit *domain.Unit, env map[string]string, digest *xxhash.Digest) {
	reads := make([]string, len(unit.EnvReads))
	copy(reads, unit.EnvReads)
	sort.Strings(reads)

	for _, name := range reads {
		value, ok := env[name]
		if !ok {
			continue
		}
		_, _ = digest.WriteString(name)
		_, _ = digest.Write([]byte{'='})
		_, _ = digest.WriteString(value)
		_, _ = digest.Write([]byte{0})
	}
	_, _ = digest.Write([]byte{0}) // Section separator
}

// hashScriptSources hashes each contributing script: path then content hash.
func (f *Fingerprinter) hashScriptSources(unit *domain.Unit, root string, digest *xxhash.Digest) error {
	for _, script := range unit.ScriptSources {
		path := filepath.Join(root, script.String())
		if _, err := os.Stat(path); err != nil {
			return zerr.With(zerr.Wrap(domain.ErrScriptNotFound, "declared script source does not exist"), "path", path)
		}
		if err := f.hashFile(path, digest); err != nil {
			return err
		}
	}
	_, _ = digest.Write([]byte{0})
	return nil
}

// hashDeclaredInputs hashes the unit's declared input files and directories,
// attempting glob resolution for paths that don't exist verbatim.
func (f *Fingerprinter) hashDeclaredInputs(unit *domain.Unit, root string, digest *xxhash.Digest) error {
	for _, input := range unit.DeclaredInputs {
		path := filepath.Join(root, input.String())

		if _, err := os.Stat(path); err != nil {
			if globErr := f.globAndHash(path, digest); globErr != nil {
				return globErr
			}
			continue
		}
		if err := f.hashPath(path, digest); err != nil {
			return err
		}
	}
	_, _ = digest.Write([]byte{0})
	return nil
}

// globAndHash resolves a path as a glob pattern and hashes all matches.
func (f *Fingerprinter) globAndHash(path string, digest io.Writer) error {
	matches, err := filepath.Glob(path)
	if err != nil || len(matches) == 0 {
		return zerr.With(zerr.Wrap(domain.ErrInputNotFound, "declared input matches nothing"), "path", path)
	}
	for _, match := range matches {
		if err := f.hashPath(match, digest); err != nil {
			return err
		}
	}
	return nil
}

func (f *Fingerprinter) hashPath(path string, digest io.Writer) error {
	info, err := os.Stat(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to stat path"), "path", path)
	}

	if info.IsDir() {
		for filePath := range f.walker.WalkFiles(path) {
			if err := f.hashFile(filePath, digest); err != nil {
				return err
			}
		}
		return nil
	}
	return f.hashFile(path, digest)
}

func (f *Fingerprinter) hashFile(path string, digest io.Writer) error {
	_, _ = digest.Write([]byte(path))
	_, _ = digest.Write([]byte{0})

	hash, err := f.ComputeFileHash(path)
	if err != nil {
		return err
	}

	if err := binary.Write(digest, binary.LittleEndian, hash); err != nil {
		return zerr.Wrap(err, "failed to write hash to digest")
	}
	return nil
}
