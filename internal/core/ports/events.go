package ports

import "go.trai.ch/keel/internal/core/domain"

//go:generate go run go.uber.org/mock/mockgen -source=events.go -destination=mocks/mock_events.go -package=mocks

// EventSink receives the structured event stream of a configuration pass.
// Implementations must be safe for concurrent use; the scheduler emits from
// multiple workers.
type EventSink interface {
	Emit(event domain.Event)
}
