package domain

// Policy carries the externally configured knobs of the caching engine.
type Policy struct {
	// FailOn is the severity threshold at or above which accumulated
	// problems force the cache entry to be discarded.
	FailOn Severity
}

// Layout is the loaded build layout: the unit tree plus pass policy,
// anchored at the source root.
type Layout struct {
	Root   string
	Tree   *UnitTree
	Policy Policy
}
