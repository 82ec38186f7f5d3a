package leaderboard

import (
	"context"
	"time"

	"github.com/mauv0809/playtime-placeholders/internal/players"
	"github.com/mauv0809/playtime-placeholders/internal/pubsub"
)

// Source provides the players with the most playtime, best first.
type Source interface {
	TopPlaytimes(ctx context.Context, limit int) ([]players.Player, error)
}

// Publisher announces refreshed snapshots. It may be nil.
type Publisher interface {
	SendMessage(topic pubsub.EventType, data any) error
}

// Task is a handle to a scheduled recurring job.
type Task interface {
	// Cancel stops future runs and cancels the context of a running one.
	// It is safe to call more than once.
	Cancel()
}

// Scheduler runs a job every interval until the returned Task is cancelled.
// Runs of the same job never overlap.
type Scheduler interface {
	Every(interval time.Duration, job func(ctx context.Context)) Task
}
