package telemetry

import (
	"sync"

	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/keel/internal/core/ports"
)

var _ ports.EventSink = (*Collector)(nil)

// Collector is a concurrency-safe, in-memory EventSink.
// It preserves emission order, which carries the timestamp-ordering contract
// of the event stream.
type Collector struct {
	mu     sync.Mutex
	events []domain.Event
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Emit appends an event to the stream.
func (c *Collector) Emit(event domain.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
}

// Events returns a copy of the recorded stream in emission order.
func (c *Collector) Events() []domain.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Event, len(c.events))
	copy(out, c.events)
	return out
}

// CountOf returns the number of recorded events of the given kind.
func (c *Collector) CountOf(kind domain.EventKind) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, e := range c.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Reset discards all recorded events.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = nil
}
