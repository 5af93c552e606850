// Package tooling implements the default model builder.
// It assembles tool-consumable descriptors of configured units; richer model
// types belong to the external evaluation engine.
package tooling

import (
	"context"
	"encoding/json"

	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/keel/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ModelBuilder = (*Builder)(nil)

// Builder implements ports.ModelBuilder with structural unit descriptors.
type Builder struct{}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// descriptor is the payload shape of the built-in model types.
// Deterministic for identical layouts, so cached and fresh results compare
// equal.
type descriptor struct {
	Scope   domain.ModelScope `json:"scope"`
	Path    string            `json:"path"`
	Type    string            `json:"type"`
	Kind    domain.UnitKind   `json:"kind,omitzero"`
	Scripts []string          `json:"scripts,omitempty"`
	Models  []string          `json:"models,omitempty"`
}

// Build computes the model payload for the given key.
// For build-scoped keys unit is nil and the descriptor covers the build
// scope only.
func (b *Builder) Build(_ context.Context, key domain.ModelKey, unit *domain.Unit) (json.RawMessage, error) {
	desc := descriptor{
		Scope: key.Scope,
		Path:  key.Path.String(),
		Type:  key.Type.String(),
	}

	if unit != nil {
		desc.Kind = unit.Kind
		for _, s := range unit.ScriptSources {
			desc.Scripts = append(desc.Scripts, s.String())
		}
		for _, m := range unit.ModelTypes {
			desc.Models = append(desc.Models, m.String())
		}
	}

	payload, err := json.Marshal(desc)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to marshal model payload"), "model", key.String())
	}
	return payload, nil
}
