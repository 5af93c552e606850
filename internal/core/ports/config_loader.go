// Package ports defines the interfaces between the engine and its adapters.
package ports

import "go.trai.ch/keel/internal/core/domain"

//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks

// ConfigLoader loads the build layout from the working directory.
type ConfigLoader interface {
	// Load reads the keelfile under cwd and returns the validated layout.
	Load(cwd string) (*domain.Layout, error)
}
