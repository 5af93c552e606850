package domain_test

import (
	"encoding/json"
	"testing"

	"go.trai.ch/keel/internal/core/domain"
)

func TestCacheEntry_Reusable(t *testing.T) {
	var nilEntry *domain.CacheEntry
	if nilEntry.Reusable() {
		t.Error("nil entry must not be reusable")
	}

	cases := map[domain.Outcome]bool{
		domain.OutcomeStored:             true,
		domain.OutcomeStoredWithProblems: true,
		domain.OutcomeDiscarded:          false,
	}
	for outcome, want := range cases {
		entry := &domain.CacheEntry{Outcome: outcome}
		if entry.Reusable() != want {
			t.Errorf("outcome %s: expected reusable=%v", outcome, want)
		}
	}
}

func TestCacheEntry_FindModel(t *testing.T) {
	appPath := domain.MustUnitPath(":app")
	entry := &domain.CacheEntry{
		Outcome: domain.OutcomeStored,
		Models: []domain.ModelRequest{
			{Scope: domain.ScopeBuild, Path: ":", Type: "toolchains", Payload: json.RawMessage(`{"n":1}`)},
			{Scope: domain.ScopeProject, Path: ":app", Type: "sources", Payload: json.RawMessage(`{"n":2}`)},
		},
	}

	if _, ok := entry.FindModel(domain.BuildModelKey("toolchains")); !ok {
		t.Error("expected build-scoped model hit")
	}
	if _, ok := entry.FindModel(domain.ProjectModelKey(appPath, "sources")); !ok {
		t.Error("expected project-scoped model hit")
	}

	// The two scopes never collide, even for the same type string.
	if _, ok := entry.FindModel(domain.ProjectModelKey(domain.RootPath(), "toolchains")); ok {
		t.Error("project-scoped lookup must not see the build-scoped model")
	}
	if _, ok := entry.FindModel(domain.BuildModelKey("sources")); ok {
		t.Error("build-scoped lookup must not see the project-scoped model")
	}

	var nilEntry *domain.CacheEntry
	if _, ok := nilEntry.FindModel(domain.BuildModelKey("toolchains")); ok {
		t.Error("nil entry must report no models")
	}
}

func TestInvalidationRecord_Defaults(t *testing.T) {
	record := domain.NewInvalidationRecord()

	// Unknown units are new: the cold-start contract.
	if got := record.StateOf(domain.MustUnitPath(":ghost")); got != domain.StateNew {
		t.Errorf("expected new for unknown unit, got %v", got)
	}

	record.Set(domain.RootPath(), domain.StateReused)
	record.Set(domain.MustUnitPath(":a"), domain.StateReconfigured)

	if !record.Reused(domain.RootPath()) {
		t.Error("expected root to report reused")
	}
	if record.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", record.Len())
	}
	if record.CountOf(domain.StateReconfigured) != 1 {
		t.Errorf("expected 1 reconfigured, got %d", record.CountOf(domain.StateReconfigured))
	}
}

func TestUnitState_Invalidated(t *testing.T) {
	if !domain.StateNew.Invalidated() || !domain.StateReconfigured.Invalidated() {
		t.Error("new and reconfigured must be invalidated")
	}
	if domain.StateReused.Invalidated() {
		t.Error("reused must not be invalidated")
	}
}
