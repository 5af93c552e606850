// Package fs implements the file system fingerprinter for configuration units.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
)

// skipDirectories are directories never considered build inputs.
var skipDirectories = map[string]bool{
	".git":         true,
	".jj":          true,
	".keel":        true,
	"node_modules": true,
}

// Walker provides deterministic file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields all regular files under root in lexical order, skipping
// VCS metadata and the keel cache directory. Lexical order makes the
// fingerprint of a directory input stable across runs.
func (w *Walker) WalkFiles(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if skipDirectories[d.Name()] {
					return filepath.SkipDir
				}
				return nil
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}
