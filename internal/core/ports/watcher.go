package ports

import (
	"context"
	"iter"
)

// WatchEvent is a single file system change notification.
type WatchEvent struct {
	Path string
}

// Watcher watches the source tree for changes, for watch-mode passes.
type Watcher interface {
	// Start begins watching the given root directory recursively.
	Start(ctx context.Context, root string) error
	// Stop stops the watcher and releases all resources.
	Stop() error
	// Events returns an iterator of file system events.
	Events() iter.Seq[WatchEvent]
}
