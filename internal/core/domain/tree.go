// Package domain contains the core domain model of the configuration cache:
// the unit tree, fingerprints, invalidation states, model requests, problems
// and the persisted cache entry.
package domain

import (
	"iter"
	"slices"

	"go.trai.ch/zerr"
)

// UnitTree holds the configuration units of a build, keyed by path.
// The tree is rooted at the settings unit; every other unit's parent chain
// must resolve to it.
type UnitTree struct {
	units     map[UnitPath]Unit
	walkOrder []UnitPath
}

// NewUnitTree creates a new empty UnitTree.
func NewUnitTree() *UnitTree {
	return &UnitTree{
		units: make(map[UnitPath]Unit),
	}
}

// AddUnit adds a unit to the tree.
// It returns an error if a unit with the same path already exists.
func (t *UnitTree) AddUnit(u *Unit) error {
	if _, exists := t.units[u.Path]; exists {
		return zerr.With(zerr.Wrap(ErrUnitAlreadyExists, "failed to add unit"), "path", u.Path.String())
	}
	t.units[u.Path] = *u
	return nil
}

// Validate checks that every unit's parent exists and that the root unit is
// present, then populates the deterministic parent-before-child walk order.
func (t *UnitTree) Validate() error {
	if _, ok := t.units[RootPath()]; !ok {
		return zerr.With(zerr.Wrap(ErrMissingParent, "tree has no settings scope"), "path", rootPath)
	}

	t.walkOrder = make([]UnitPath, 0, len(t.units))
	for path := range t.units {
		if parent, ok := path.Parent(); ok {
			if _, exists := t.units[parent]; !exists {
				wrapped := zerr.With(zerr.Wrap(ErrMissingParent, "unit has no parent in the tree"), "path", path.String())
				return zerr.With(wrapped, "parent", parent.String())
			}
		}
		t.walkOrder = append(t.walkOrder, path)
	}

	// Depth-then-lexical ordering guarantees parents precede children and
	// keeps the walk stable across runs.
	slices.SortFunc(t.walkOrder, CompareUnitPaths)
	return nil
}

// UnitCount returns the number of units in the tree.
func (t *UnitTree) UnitCount() int {
	return len(t.units)
}

// GetUnit returns the unit with the given path.
func (t *UnitTree) GetUnit(path UnitPath) (Unit, error) {
	u, ok := t.units[path]
	if !ok {
		return Unit{}, zerr.With(zerr.Wrap(ErrUnitNotFound, "failed to get unit"), "path", path.String())
	}
	return u, nil
}

// Walk returns an iterator that yields units parent-before-child.
// It assumes Validate() has been called and returned nil.
func (t *UnitTree) Walk() iter.Seq[Unit] {
	return func(yield func(Unit) bool) {
		for _, path := range t.walkOrder {
			if !yield(t.units[path]) {
				return
			}
		}
	}
}

// Children returns the paths of the direct children of the given unit,
// in stable order. It assumes Validate() has been called.
func (t *UnitTree) Children(path UnitPath) []UnitPath {
	var children []UnitPath
	for _, candidate := range t.walkOrder {
		if parent, ok := candidate.Parent(); ok && parent == path {
			children = append(children, candidate)
		}
	}
	return children
}
