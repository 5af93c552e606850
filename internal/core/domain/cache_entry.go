package domain

import "time"

// Outcome is the overall result recorded on a cache entry.
type Outcome string

const (
	// OutcomeStored indicates a clean entry, reusable on the next pass.
	OutcomeStored Outcome = "stored"
	// OutcomeStoredWithProblems indicates a reusable entry persisted
	// together with below-threshold problems.
	OutcomeStoredWithProblems Outcome = "stored-with-problems"
	// OutcomeDiscarded indicates the entry was written but marked invalid;
	// the next pass starts cold.
	OutcomeDiscarded Outcome = "discarded"
	// OutcomeReusedUnchanged indicates the prior entry was reused as-is
	// and nothing was written. It is a pass result, never persisted.
	OutcomeReusedUnchanged Outcome = "reused-unchanged"
)

// UnitRecord is the persisted per-unit slice of a cache entry.
type UnitRecord struct {
	Path           string    `json:"path"`
	Kind           UnitKind  `json:"kind"`
	Fingerprint    string    `json:"fingerprint,omitzero"`
	State          UnitState `json:"state"`
	LastConfigured time.Time `json:"last_configured,omitzero"`
	ScriptSources  []string  `json:"script_sources,omitempty"`
}

// CacheEntry is the artifact persisted at the end of a configuration pass
// and read back at the start of the next one.
type CacheEntry struct {
	ID           string                `json:"id"`
	CreatedAt    time.Time             `json:"created_at"`
	Outcome      Outcome               `json:"outcome"`
	Fingerprints FingerprintSnapshot   `json:"fingerprints"`
	Units        map[string]UnitRecord `json:"units"`
	Models       []ModelRequest        `json:"models,omitempty"`
	Problems     ProblemSet            `json:"problems,omitempty"`
}

// Reusable reports whether the entry may seed the next pass.
// A discarded entry is treated as absent: every unit starts new.
func (e *CacheEntry) Reusable() bool {
	if e == nil {
		return false
	}
	return e.Outcome == OutcomeStored || e.Outcome == OutcomeStoredWithProblems
}

// FindModel looks up a recorded model request by key.
// The boolean distinguishes "checked and absent" from a hit; callers that
// never invoke FindModel have not checked at all.
func (e *CacheEntry) FindModel(key ModelKey) (ModelRequest, bool) {
	if e == nil {
		return ModelRequest{}, false
	}
	want := key.String()
	for _, m := range e.Models {
		if m.Key().String() == want {
			return m, true
		}
	}
	return ModelRequest{}, false
}

// UnitRecordFor returns the persisted record of the given unit path.
func (e *CacheEntry) UnitRecordFor(path UnitPath) (UnitRecord, bool) {
	if e == nil {
		return UnitRecord{}, false
	}
	rec, ok := e.Units[path.String()]
	return rec, ok
}
