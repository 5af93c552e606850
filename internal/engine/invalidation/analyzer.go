// Package invalidation implements the analyzer that classifies every
// configuration unit as reused, reconfigured or new for one pass.
package invalidation

import "go.trai.ch/keel/internal/core/domain"

// Analyzer compares the current fingerprint snapshot against the prior one.
type Analyzer struct{}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze classifies every unit of the current tree:
//
//   - absent from the prior snapshot: new
//   - own fingerprint changed: reconfigured
//   - any ancestor not reused: reconfigured (ancestor propagation — a
//     settings change invalidates every project transitively, even with an
//     unchanged project-local fingerprint)
//   - otherwise: reused
//
// Units present in the prior snapshot but absent from the current tree are
// dropped silently: the record never contains orphan entries.
// The tree's walk order guarantees a unit's ancestors are classified before
// the unit itself.
func (a *Analyzer) Analyze(prior, current domain.FingerprintSnapshot, tree *domain.UnitTree) *domain.InvalidationRecord {
	record := domain.NewInvalidationRecord()

	for unit := range tree.Walk() {
		record.Set(unit.Path, a.classify(unit.Path, prior, current, record))
	}

	return record
}

func (a *Analyzer) classify(
	path domain.UnitPath,
	prior, current domain.FingerprintSnapshot,
	record *domain.InvalidationRecord,
) domain.UnitState {
	key := path.String()

	// A unit whose current fingerprint is unavailable starts over as new,
	// the same degradation as a missing prior snapshot.
	currentHash, available := current[key]
	if !available {
		return domain.StateNew
	}

	priorHash, existed := prior[key]
	if !existed {
		return domain.StateNew
	}

	if currentHash != priorHash {
		return domain.StateReconfigured
	}

	// Ancestors were classified earlier in the walk; parent state already
	// folds in the rest of the chain.
	if parent, ok := path.Parent(); ok && !record.Reused(parent) {
		return domain.StateReconfigured
	}

	return domain.StateReused
}
