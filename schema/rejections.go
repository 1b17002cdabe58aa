package schema

import (
	"sync"
	"time"
)

// Rejection records a document the Loader refused.
type Rejection struct {
	// Stage is "decode" or "build".
	Stage string

	// Err is the reason the document was refused.
	Err error

	// At is when the rejection happened, per the Loader's clock.
	At time.Time
}

// rejectionLog keeps the most recent rejections, oldest first. A nil log
// records nothing.
type rejectionLog struct {
	mu      sync.RWMutex
	entries []Rejection
	limit   int
}

func newRejectionLog(limit int) *rejectionLog {
	if limit <= 0 {
		return nil
	}
	return &rejectionLog{entries: make([]Rejection, 0, limit), limit: limit}
}

func (l *rejectionLog) add(r Rejection) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.entries) == l.limit {
		copy(l.entries, l.entries[1:])
		l.entries = l.entries[:l.limit-1]
	}
	l.entries = append(l.entries, r)
}

func (l *rejectionLog) reset() {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = l.entries[:0]
}

func (l *rejectionLog) list() []Rejection {
	if l == nil {
		return nil
	}
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.entries) == 0 {
		return nil
	}
	out := make([]Rejection, len(l.entries))
	copy(out, l.entries)
	return out
}
