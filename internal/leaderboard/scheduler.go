package leaderboard

import (
	"context"
	"sync"
	"time"
)

// TickerScheduler runs every job on its own goroutine driven by a time.Ticker.
// The first run happens one interval after scheduling.
type TickerScheduler struct{}

var _ Scheduler = TickerScheduler{}

type tickerTask struct {
	cancel context.CancelFunc
	once   sync.Once
	done   chan struct{}
}

func (TickerScheduler) Every(interval time.Duration, job func(ctx context.Context)) Task {
	ctx, cancel := context.WithCancel(context.Background())
	t := &tickerTask{
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go func() {
		defer close(t.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				job(ctx)
			}
		}
	}()
	return t
}

func (t *tickerTask) Cancel() {
	t.once.Do(t.cancel)
}

// Done is closed once the task goroutine has exited.
func (t *tickerTask) Done() <-chan struct{} {
	return t.done
}
