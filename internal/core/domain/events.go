package domain

import "time"

// EventKind identifies one kind of configuration-pass event.
type EventKind string

const (
	// EventScriptApplied is emitted once per script file evaluated.
	// The settings script event carries the earliest timestamp of all
	// script events in a pass.
	EventScriptApplied EventKind = "script-applied"
	// EventProjectConfigured is emitted once per unit actually configured.
	EventProjectConfigured EventKind = "project-configured"
	// EventModelQueried is emitted once per freshly computed model.
	// Cache-served models emit no event.
	EventModelQueried EventKind = "model-queried"
)

// Event is one element of the structured event stream consumed by external
// observability collaborators. The (path, kind, timestamp-ordering) schema
// is a hard contract.
type Event struct {
	Kind      EventKind
	Path      string
	Script    string
	ModelType string
	At        time.Time
}
