package ports

import (
	"context"

	"go.trai.ch/keel/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=configurer.go -destination=mocks/mock_configurer.go -package=mocks

// Configurer runs the configuration logic of a single unit by evaluating its
// script sources. The real evaluation engine is an external collaborator;
// adapters implement whatever "apply" means for their environment.
type Configurer interface {
	// Configure evaluates the unit's scripts. A failure is fatal to the
	// whole pass and must not leave partially-applied state for the unit.
	Configure(ctx context.Context, unit *domain.Unit) error
}
