package ports

import "go.trai.ch/keel/internal/core/domain"

//go:generate go run go.uber.org/mock/mockgen -source=fingerprint.go -destination=mocks/mock_fingerprint.go -package=mocks

// Fingerprinter computes content/identity fingerprints for configuration units.
type Fingerprinter interface {
	// ComputeUnitFingerprint hashes the unit's script sources, declared
	// inputs and the values of its declared environment reads.
	// The hash is deterministic for identical inputs.
	ComputeUnitFingerprint(unit *domain.Unit, env map[string]string, root string) (string, error)
}
