package schema

import (
	"context"
	"sync"
)

// MemoryWatcher serves a document held in memory. Set publishes a new
// document to every active watch. Each watch buffers at most one pending
// document; a newer Set replaces one that has not been read yet.
type MemoryWatcher struct {
	mu      sync.Mutex
	current []byte
	has     bool
	subs    map[chan []byte]struct{}
}

// NewMemoryWatcher creates a MemoryWatcher. A nil initial document means
// nothing is emitted until the first Set.
func NewMemoryWatcher(initial []byte) *MemoryWatcher {
	w := &MemoryWatcher{subs: make(map[chan []byte]struct{})}
	if initial != nil {
		w.current = clone(initial)
		w.has = true
	}
	return w
}

// Set replaces the current document and publishes it.
func (w *MemoryWatcher) Set(data []byte) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.current = clone(data)
	w.has = true
	for ch := range w.subs {
		offer(ch, w.current)
	}
}

// Watch returns a channel that emits the current document immediately and
// every later Set until ctx is canceled.
func (w *MemoryWatcher) Watch(ctx context.Context) (<-chan []byte, error) {
	ch := make(chan []byte, 1)

	w.mu.Lock()
	if w.has {
		ch <- w.current
	}
	w.subs[ch] = struct{}{}
	w.mu.Unlock()

	go func() {
		<-ctx.Done()
		w.mu.Lock()
		delete(w.subs, ch)
		close(ch)
		w.mu.Unlock()
	}()

	return ch, nil
}

// offer delivers data, replacing an unread pending value. Callers hold w.mu,
// which makes them the only senders.
func offer(ch chan []byte, data []byte) {
	select {
	case <-ch:
	default:
	}
	ch <- data
}

func clone(data []byte) []byte {
	out := make([]byte, len(data))
	copy(out, data)
	return out
}
