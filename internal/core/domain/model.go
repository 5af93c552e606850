package domain

import (
	"encoding/json"
	"time"
)

// ModelScope distinguishes build-scoped model queries (no owning project)
// from project-scoped ones. The two namespaces never collide, even for
// identical paths and model types.
type ModelScope string

const (
	// ScopeBuild marks a model computed for the build as a whole.
	ScopeBuild ModelScope = "build"
	// ScopeProject marks a model computed for a single project unit.
	ScopeProject ModelScope = "project"
)

// ModelKey identifies one memoized model computation.
type ModelKey struct {
	Scope ModelScope
	Path  UnitPath
	Type  InternedString
}

// BuildModelKey returns the key for a build-scoped model of the given type.
func BuildModelKey(modelType string) ModelKey {
	return ModelKey{
		Scope: ScopeBuild,
		Path:  RootPath(),
		Type:  NewInternedString(modelType),
	}
}

// ProjectModelKey returns the key for a project-scoped model of the given type.
func ProjectModelKey(path UnitPath, modelType string) ModelKey {
	return ModelKey{
		Scope: ScopeProject,
		Path:  path,
		Type:  NewInternedString(modelType),
	}
}

// String renders the key in its canonical "scope|path|type" form, used as
// the lookup key in persisted cache entries.
func (k ModelKey) String() string {
	return string(k.Scope) + "|" + k.Path.String() + "|" + k.Type.String()
}

// ModelRequest records one served model query: the key, the opaque result
// payload and whether it was served from the prior cache entry.
// Requests are immutable once recorded.
type ModelRequest struct {
	Scope       ModelScope      `json:"scope"`
	Path        string          `json:"path"`
	Type        string          `json:"type"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	FromCache   bool            `json:"from_cache,omitzero"`
	RequestedAt time.Time       `json:"requested_at,omitzero"`
}

// Key reconstructs the ModelKey of the request.
func (m ModelRequest) Key() ModelKey {
	return ModelKey{
		Scope: m.Scope,
		Path:  MustUnitPath(m.Path),
		Type:  NewInternedString(m.Type),
	}
}
