package domain

import (
	"fmt"
	"strings"
	"time"

	"go.trai.ch/zerr"
)

// Severity grades a problem, mirroring the slog level spacing.
type Severity int

const (
	// SeverityWarning marks a problem that degrades gracefully.
	SeverityWarning Severity = 4
	// SeverityError marks a problem that compromises the cache entry.
	SeverityError Severity = 8
	// SeverityFatal marks a problem that aborted the pass.
	SeverityFatal Severity = 12
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// ParseSeverity converts a string to a Severity.
// The threshold separating storable from discarded entries is policy owned
// by the caller's configuration, so unknown strings are an error rather than
// defaulting.
func ParseSeverity(raw string) (Severity, error) {
	switch strings.ToLower(raw) {
	case "warning":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	case "fatal":
		return SeverityFatal, nil
	default:
		return 0, zerr.With(zerr.Wrap(ErrInvalidSeverity, "failed to parse severity"), "severity", raw)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Problem is one diagnostic raised during configuration or model building,
// tagged with the originating unit.
type Problem struct {
	Severity Severity  `json:"severity"`
	Message  string    `json:"message"`
	Path     string    `json:"path,omitzero"`
	At       time.Time `json:"at,omitzero"`
}

// ProblemSet is the ordered sequence of problems of one pass.
type ProblemSet []Problem

// MaxSeverity returns the highest severity in the set and whether the set is
// non-empty.
func (ps ProblemSet) MaxSeverity() (Severity, bool) {
	if len(ps) == 0 {
		return 0, false
	}
	maxSev := ps[0].Severity
	for _, p := range ps[1:] {
		if p.Severity > maxSev {
			maxSev = p.Severity
		}
	}
	return maxSev, true
}

// StoreDecision is the three-way outcome of the problem policy for one pass.
type StoreDecision string

const (
	// DecisionStore persists the entry as fully reusable.
	DecisionStore StoreDecision = "store"
	// DecisionStoreWithProblems persists the entry together with its
	// below-threshold problems; it remains reusable on the next pass.
	DecisionStoreWithProblems StoreDecision = "store-with-problems"
	// DecisionDiscard persists the entry marked invalid; the next pass
	// treats every unit as new.
	DecisionDiscard StoreDecision = "discard"
)
