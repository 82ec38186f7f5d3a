package leaderboard

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/mauv0809/playtime-placeholders/internal/metrics"
	"golang.org/x/sync/singleflight"
)

const (
	// TopSize is the number of ranks kept in a snapshot.
	TopSize = 10
	// DefaultInterval is the refresh cadence used when none is configured.
	DefaultInterval = 60 * time.Second
)

// Entry is a single leaderboard row.
type Entry struct {
	Name           string `json:"name" msgpack:"name"`
	PlaytimeMillis int64  `json:"playtime_ms" msgpack:"playtime_ms"`
}

// Snapshot is an immutable, rank ordered view of the top playtimes.
// Callers must not modify Entries.
type Snapshot struct {
	Entries []Entry   `json:"entries" msgpack:"entries"`
	TakenAt time.Time `json:"taken_at" msgpack:"taken_at"`
}

// Len returns the number of entries in the snapshot.
func (s Snapshot) Len() int {
	return len(s.Entries)
}

// Empty reports whether the snapshot holds no entries.
func (s Snapshot) Empty() bool {
	return len(s.Entries) == 0
}

// RefreshedEvent is published after every scheduled or explicit refresh.
type RefreshedEvent struct {
	Reason   string   `msgpack:"reason"`
	Snapshot Snapshot `msgpack:"snapshot"`
}

// RefreshRequest is the payload of a refresh-requested event.
type RefreshRequest struct {
	Reason string `msgpack:"reason"`
}

// Cache holds the current top playtime snapshot and the refresh task that
// keeps it up to date.
type Cache struct {
	source    Source
	scheduler Scheduler
	metrics   metrics.Metrics
	publisher Publisher

	snapshot atomic.Pointer[Snapshot]
	handle   atomic.Pointer[handle]

	// publishMu orders snapshot stores against Stop clearing the snapshot.
	publishMu  sync.Mutex
	// generation is bumped by Stop; a fill started before it is not stored.
	generation atomic.Uint64
	fill       singleflight.Group
}

type handle struct {
	task     Task
	interval time.Duration
}
