package domain

// FingerprintSnapshot maps unit paths (canonical string form) to their
// content fingerprints, as computed in one pass or restored from the prior
// cache entry.
type FingerprintSnapshot map[string]string

// UnitState classifies a unit's fate for one configuration pass.
type UnitState string

const (
	// StateNew indicates the unit was absent from the prior snapshot.
	StateNew UnitState = "new"
	// StateReconfigured indicates the unit or one of its ancestors changed
	// and its configuration must be re-run.
	StateReconfigured UnitState = "reconfigured"
	// StateReused indicates the unit and its full ancestor chain are
	// unchanged; its prior results are carried forward.
	StateReused UnitState = "reused"
)

// Invalidated reports whether the state requires configuration to run.
func (s UnitState) Invalidated() bool {
	return s == StateNew || s == StateReconfigured
}

// InvalidationRecord maps every unit of the current tree to its state for
// one pass. Units present in the prior snapshot but absent from the current
// tree are dropped silently and never appear in the record.
type InvalidationRecord struct {
	states map[UnitPath]UnitState
}

// NewInvalidationRecord creates an empty record.
func NewInvalidationRecord() *InvalidationRecord {
	return &InvalidationRecord{
		states: make(map[UnitPath]UnitState),
	}
}

// Set records the state of a unit.
func (r *InvalidationRecord) Set(path UnitPath, state UnitState) {
	r.states[path] = state
}

// StateOf returns the state of a unit. Units missing from the record are
// reported as new, matching the cold-start contract.
func (r *InvalidationRecord) StateOf(path UnitPath) UnitState {
	if state, ok := r.states[path]; ok {
		return state
	}
	return StateNew
}

// Reused reports whether the unit is marked reused.
func (r *InvalidationRecord) Reused(path UnitPath) bool {
	return r.StateOf(path) == StateReused
}

// Len returns the number of units in the record.
func (r *InvalidationRecord) Len() int {
	return len(r.states)
}

// CountOf returns the number of units in the given state.
func (r *InvalidationRecord) CountOf(state UnitState) int {
	n := 0
	for _, s := range r.states {
		if s == state {
			n++
		}
	}
	return n
}
