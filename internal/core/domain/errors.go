package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidUnitPath is returned when a unit path does not start with ':' or contains empty segments.
	ErrInvalidUnitPath = zerr.New("invalid unit path")

	// ErrUnitAlreadyExists is returned when attempting to add a unit with a path that already exists.
	ErrUnitAlreadyExists = zerr.New("unit already exists")

	// ErrMissingParent is returned when a unit references a parent path that doesn't exist in the tree.
	ErrMissingParent = zerr.New("missing parent unit")

	// ErrUnitNotFound is returned when a requested unit is not found in the tree.
	ErrUnitNotFound = zerr.New("unit not found")

	// ErrNoUnitsDefined is returned when the configuration declares no projects at all.
	ErrNoUnitsDefined = zerr.New("no configuration units defined")

	// ErrInvalidSeverity is returned when a severity string cannot be parsed.
	ErrInvalidSeverity = zerr.New("invalid severity, expected 'warning', 'error' or 'fatal'")

	// ErrConfigReadFailed is returned when the keelfile cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read keelfile")

	// ErrConfigParseFailed is returned when the keelfile cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse keelfile")

	// ErrConfigNotFound is returned when no keelfile exists in the working directory.
	ErrConfigNotFound = zerr.New("could not find keel.yaml")

	// ErrInputNotFound is returned when a declared input file or directory is not found.
	ErrInputNotFound = zerr.New("input not found")

	// ErrScriptNotFound is returned when a declared script source does not exist.
	ErrScriptNotFound = zerr.New("script source not found")

	// ErrFingerprintUnavailable is returned when a unit's fingerprint cannot be computed.
	// Callers treat the unit as new rather than failing the pass.
	ErrFingerprintUnavailable = zerr.New("fingerprint unavailable")

	// ErrConfigurationFailed is returned when configuring a unit fails.
	// This aborts the whole configuration pass.
	ErrConfigurationFailed = zerr.New("configuration failed")

	// ErrModelComputationFailed is returned when building a single tooling model fails.
	// It is recorded as a problem and does not abort sibling queries.
	ErrModelComputationFailed = zerr.New("model computation failed")

	// ErrModelNotRequested is returned when a model type is queried for a unit that never declared it.
	ErrModelNotRequested = zerr.New("model type not requested by unit")

	// ErrPassAborted is returned when a configuration pass is aborted fail-fast.
	ErrPassAborted = zerr.New("configuration pass aborted")

	// ErrCacheCorrupt is returned when the persisted cache entry is unreadable or malformed.
	// Callers treat this identically to a cold start.
	ErrCacheCorrupt = zerr.New("cache entry corrupt")

	// ErrCacheReadFailed is returned when the cache entry cannot be read from disk.
	ErrCacheReadFailed = zerr.New("failed to read cache entry")

	// ErrCacheMarshalFailed is returned when the cache entry cannot be marshaled.
	ErrCacheMarshalFailed = zerr.New("failed to marshal cache entry")

	// ErrCacheWriteFailed is returned when the cache entry cannot be written.
	ErrCacheWriteFailed = zerr.New("failed to write cache entry")

	// ErrCacheSwapFailed is returned when the atomic rename of the new cache entry fails.
	ErrCacheSwapFailed = zerr.New("failed to swap cache entry into place")

	// ErrCacheCleanFailed is returned when removing the persisted cache entry fails.
	ErrCacheCleanFailed = zerr.New("failed to remove cache entry")
)
