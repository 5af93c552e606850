package ports

import (
	"context"
	"encoding/json"

	"go.trai.ch/keel/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=model_builder.go -destination=mocks/mock_model_builder.go -package=mocks

// ModelBuilder computes tooling-model payloads.
type ModelBuilder interface {
	// Build computes the model identified by key. For build-scoped keys
	// unit is nil. The payload is opaque to the caller.
	Build(ctx context.Context, key domain.ModelKey, unit *domain.Unit) (json.RawMessage, error)
}
