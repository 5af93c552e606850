package domain_test

import (
	"errors"
	"testing"

	"go.trai.ch/keel/internal/core/domain"
)

func TestParseSeverity(t *testing.T) {
	cases := map[string]domain.Severity{
		"warning": domain.SeverityWarning,
		"error":   domain.SeverityError,
		"FATAL":   domain.SeverityFatal,
	}
	for raw, want := range cases {
		got, err := domain.ParseSeverity(raw)
		if err != nil {
			t.Errorf("ParseSeverity(%q): unexpected error: %v", raw, err)
		}
		if got != want {
			t.Errorf("ParseSeverity(%q): got %v, want %v", raw, got, want)
		}
	}

	if _, err := domain.ParseSeverity("critical"); !errors.Is(err, domain.ErrInvalidSeverity) {
		t.Errorf("expected ErrInvalidSeverity, got %v", err)
	}
}

func TestProblemSet_MaxSeverity(t *testing.T) {
	var empty domain.ProblemSet
	if _, any := empty.MaxSeverity(); any {
		t.Error("empty set must report no severity")
	}

	set := domain.ProblemSet{
		{Severity: domain.SeverityWarning, Message: "slow glob"},
		{Severity: domain.SeverityError, Message: "bad script"},
		{Severity: domain.SeverityWarning, Message: "another"},
	}
	maxSev, any := set.MaxSeverity()
	if !any || maxSev != domain.SeverityError {
		t.Errorf("expected error severity, got %v (any=%v)", maxSev, any)
	}
}

func TestSeverity_String(t *testing.T) {
	cases := map[domain.Severity]string{
		domain.SeverityWarning: "warning",
		domain.SeverityError:   "error",
		domain.SeverityFatal:   "fatal",
		domain.Severity(0):     "severity(0)",
		domain.Severity(99):    "severity(99)",
	}
	for sev, want := range cases {
		if got := sev.String(); got != want {
			t.Errorf("Severity(%d).String(): got %q, want %q", int(sev), got, want)
		}
	}
}

func TestSeverity_Ordering(t *testing.T) {
	// The discard threshold compares severities numerically.
	if !(domain.SeverityWarning < domain.SeverityError && domain.SeverityError < domain.SeverityFatal) {
		t.Error("severity values must be ordered warning < error < fatal")
	}
}
