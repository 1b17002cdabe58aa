package schema

import "context"

// Watcher observes a schema source and emits raw document bytes on a channel.
// Implementations must emit the current document immediately upon Watch()
// so the Loader can build its first form.
type Watcher interface {
	// Watch begins observing the source. The returned channel is closed when
	// the context is canceled or an unrecoverable error occurs.
	Watch(ctx context.Context) (<-chan []byte, error)
}
