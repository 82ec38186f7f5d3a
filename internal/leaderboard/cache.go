package leaderboard

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/playtime-placeholders/internal/metrics"
	"github.com/mauv0809/playtime-placeholders/internal/pubsub"
)

// New creates an empty Cache. publisher may be nil.
func New(source Source, scheduler Scheduler, metrics metrics.Metrics, publisher Publisher) *Cache {
	return &Cache{
		source:    source,
		scheduler: scheduler,
		metrics:   metrics,
		publisher: publisher,
	}
}

// Read returns the current snapshot. When the cache is empty it is filled
// synchronously from the source first; concurrent callers share one fill.
// The shared fill is not cancelled with ctx, a caller whose ctx ends returns
// early without failing the others.
func (c *Cache) Read(ctx context.Context) (Snapshot, error) {
	if s := c.snapshot.Load(); s != nil && !s.Empty() {
		return *s, nil
	}

	fillCtx := context.WithoutCancel(ctx)
	ch := c.fill.DoChan("fill", func() (any, error) {
		if s := c.snapshot.Load(); s != nil && !s.Empty() {
			return s, nil
		}
		gen := c.generation.Load()
		s, err := c.load(fillCtx)
		if err != nil {
			return nil, err
		}
		c.publishMu.Lock()
		if c.generation.Load() == gen {
			c.snapshot.Store(s)
		} else {
			log.Debug("Cache stopped during fill, not storing result")
		}
		c.publishMu.Unlock()
		log.Debug("Filled empty leaderboard", "entries", s.Len())
		return s, nil
	})

	select {
	case <-ctx.Done():
		return Snapshot{}, fmt.Errorf("failed to fill leaderboard: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return Snapshot{}, fmt.Errorf("failed to fill leaderboard: %w", res.Err)
		}
		if res.Shared {
			log.Debug("Shared leaderboard fill with concurrent readers")
		}
		return *res.Val.(*Snapshot), nil
	}
}

// Refresh replaces the snapshot with fresh data from the source. On error
// the previous snapshot is kept.
func (c *Cache) Refresh(ctx context.Context, reason string) (Snapshot, error) {
	s, err := c.load(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	c.publishMu.Lock()
	c.snapshot.Store(s)
	c.publishMu.Unlock()
	c.announce(reason, s)
	return *s, nil
}

// Start schedules a recurring refresh every interval and cancels the
// previously scheduled one, if any. A non-positive interval means
// DefaultInterval.
func (c *Cache) Start(interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	task := c.scheduler.Every(interval, c.scheduledRefresh)
	if prev := c.handle.Swap(&handle{task: task, interval: interval}); prev != nil {
		prev.task.Cancel()
		log.Debug("Replaced leaderboard refresh task", "previousInterval", prev.interval)
	}
	log.Info("Scheduled leaderboard refresh", "interval", interval)
}

// Stop cancels the scheduled refresh and clears the snapshot. Stopping a
// stopped cache is a no-op apart from clearing.
func (c *Cache) Stop() {
	if prev := c.handle.Swap(nil); prev != nil {
		prev.task.Cancel()
		log.Info("Stopped leaderboard refresh")
	}
	c.publishMu.Lock()
	c.generation.Add(1)
	c.snapshot.Store(nil)
	c.publishMu.Unlock()
}

// Running reports whether a refresh task is scheduled.
func (c *Cache) Running() bool {
	return c.handle.Load() != nil
}

// Peek returns the current snapshot without filling an empty cache.
func (c *Cache) Peek() (Snapshot, bool) {
	s := c.snapshot.Load()
	if s == nil {
		return Snapshot{}, false
	}
	return *s, true
}

func (c *Cache) scheduledRefresh(ctx context.Context) {
	s, err := c.load(ctx)
	if err != nil {
		log.Error("Scheduled leaderboard refresh failed, keeping previous snapshot", "error", err)
		return
	}

	c.publishMu.Lock()
	if ctx.Err() != nil {
		c.publishMu.Unlock()
		log.Debug("Refresh task cancelled, dropping result")
		return
	}
	c.snapshot.Store(s)
	c.publishMu.Unlock()

	c.announce("scheduled", s)
}

// load fetches a new snapshot from the source.
func (c *Cache) load(ctx context.Context) (*Snapshot, error) {
	start := time.Now()
	top, err := c.source.TopPlaytimes(ctx, TopSize)
	c.metrics.ObserveRefreshDuration(time.Since(start).Seconds())
	if err != nil {
		c.metrics.IncLeaderboardRefreshFailures()
		return nil, fmt.Errorf("failed to fetch top playtimes: %w", err)
	}

	entries := make([]Entry, 0, len(top))
	for _, p := range top {
		entries = append(entries, Entry{Name: p.Name, PlaytimeMillis: p.PlaytimeMillis})
	}
	c.metrics.IncLeaderboardRefreshes()
	c.metrics.SetLeaderboardSize(len(entries))
	return &Snapshot{Entries: entries, TakenAt: start}, nil
}

func (c *Cache) announce(reason string, s *Snapshot) {
	if c.publisher == nil {
		return
	}
	if err := c.publisher.SendMessage(pubsub.EventLeaderboardRefreshed, RefreshedEvent{Reason: reason, Snapshot: *s}); err != nil {
		log.Error("Failed to publish leaderboard refresh", "error", err)
	}
}
