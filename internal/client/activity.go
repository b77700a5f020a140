package client

import (
	"slices"
	"sync"
	"time"

	"github.com/triplab-ai/tripd/internal/domain"
)

// DefaultActivityCapacity bounds the activity log; oldest entries are evicted first.
const DefaultActivityCapacity = 50

// activityLog is a bounded, most-recent-first record of tool call lifecycle events.
// It is safe for concurrent use.
type activityLog struct {
	mu      sync.Mutex
	cap     int
	entries []domain.ActivityEntry
}

func newActivityLog(capacity int) *activityLog {
	if capacity <= 0 {
		capacity = DefaultActivityCapacity
	}
	return &activityLog{cap: capacity}
}

// record prepends an entry, evicting the oldest entry once the capacity is exceeded.
func (l *activityLog) record(at time.Time, message string, kind domain.ActivityKind, data any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append([]domain.ActivityEntry{{
		Timestamp: at,
		Message:   message,
		Kind:      kind,
		Data:      data,
	}}, l.entries...)

	if len(l.entries) > l.cap {
		l.entries = l.entries[:l.cap]
	}
}

// snapshot returns a most-recent-first copy of the log.
func (l *activityLog) snapshot() []domain.ActivityEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.entries)
}
