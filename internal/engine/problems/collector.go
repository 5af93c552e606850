// Package problems implements the problem collector and its store/discard
// policy.
package problems

import (
	"sync"
	"time"

	"go.trai.ch/keel/internal/core/domain"
)

// Collector accumulates diagnostics raised during a configuration pass.
// It is safe for concurrent use; the scheduler records from multiple workers.
// Order of accumulation is preserved.
type Collector struct {
	mu  sync.Mutex
	set domain.ProblemSet
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Record appends a problem to the set.
func (c *Collector) Record(problem domain.Problem) {
	if problem.At.IsZero() {
		problem.At = time.Now()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set = append(c.set, problem)
}

// RecordError records an error as a problem with the given severity and
// originating unit path.
func (c *Collector) RecordError(err error, severity domain.Severity, path domain.UnitPath) {
	c.Record(domain.Problem{
		Severity: severity,
		Message:  err.Error(),
		Path:     path.String(),
	})
}

// Reset drops all accumulated problems. Called at the start of each pass so
// the collector can be reused across watch-mode runs.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set = nil
}

// Problems returns a copy of the accumulated set in record order.
func (c *Collector) Problems() domain.ProblemSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(domain.ProblemSet, len(c.set))
	copy(out, c.set)
	return out
}

// Decide applies the three-way store policy against the given threshold:
// no problems stores cleanly, problems below the threshold are stored
// alongside the entry, and any problem at or above it discards the entry.
// The threshold is external configuration, never owned by the collector.
func (c *Collector) Decide(failOn domain.Severity) domain.StoreDecision {
	c.mu.Lock()
	defer c.mu.Unlock()

	maxSev, any := c.set.MaxSeverity()
	switch {
	case !any:
		return domain.DecisionStore
	case maxSev >= failOn:
		return domain.DecisionDiscard
	default:
		return domain.DecisionStoreWithProblems
	}
}
