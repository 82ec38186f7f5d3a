package leaderboard_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mauv0809/playtime-placeholders/internal/leaderboard"
	"github.com/mauv0809/playtime-placeholders/internal/metrics"
	"github.com/mauv0809/playtime-placeholders/internal/players"
	"github.com/mauv0809/playtime-placeholders/internal/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeScheduler records scheduled jobs and lets tests run them by hand.
type fakeScheduler struct {
	mu    sync.Mutex
	tasks []*fakeTask
}

type fakeTask struct {
	interval  time.Duration
	job       func(ctx context.Context)
	ctx       context.Context
	cancel    context.CancelFunc
	cancelled atomic.Int32
}

func (t *fakeTask) Cancel() {
	t.cancelled.Add(1)
	t.cancel()
}

func (t *fakeTask) Fire() {
	t.job(t.ctx)
}

func (s *fakeScheduler) Every(interval time.Duration, job func(ctx context.Context)) leaderboard.Task {
	ctx, cancel := context.WithCancel(context.Background())
	t := &fakeTask{interval: interval, job: job, ctx: ctx, cancel: cancel}
	s.mu.Lock()
	s.tasks = append(s.tasks, t)
	s.mu.Unlock()
	return t
}

func (s *fakeScheduler) totalCancels() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tasks {
		n += int(t.cancelled.Load())
	}
	return n
}

func sampleTop() []players.Player {
	return []players.Player{
		{Name: "Alice", PlaytimeMillis: 3661000},
		{Name: "Bob", PlaytimeMillis: 61000},
	}
}

func setup(t *testing.T) (*leaderboard.Cache, *players.MockStore, *fakeScheduler, *metrics.Mock, *pubsub.MockPubSubClient) {
	t.Helper()
	store := players.NewMock()
	store.TopPlaytimesFunc = func(ctx context.Context, limit int) ([]players.Player, error) {
		return sampleTop(), nil
	}
	sched := &fakeScheduler{}
	m := metrics.NewMock()
	pub := pubsub.NewMock("")
	return leaderboard.New(store, sched, m, pub), store, sched, m, pub
}

func TestRead_LazyFill(t *testing.T) {
	cache, store, _, m, _ := setup(t)
	ctx := context.Background()

	snap, err := cache.Read(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, snap.Len())
	assert.Equal(t, leaderboard.Entry{Name: "Alice", PlaytimeMillis: 3661000}, snap.Entries[0])
	assert.Equal(t, leaderboard.Entry{Name: "Bob", PlaytimeMillis: 61000}, snap.Entries[1])

	_, err = cache.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, store.TopPlaytimesCallCount(), "A filled cache should not hit the source again")
	assert.Equal(t, []int{leaderboard.TopSize}, store.TopPlaytimesCalls)
	assert.Equal(t, 1, m.Refreshes())
	assert.Equal(t, 2, m.LeaderboardSize())
}

func TestRead_ConcurrentReadersShareOneFill(t *testing.T) {
	store := players.NewMock()
	release := make(chan struct{})
	store.TopPlaytimesFunc = func(ctx context.Context, limit int) ([]players.Player, error) {
		<-release
		return sampleTop(), nil
	}
	cache := leaderboard.New(store, &fakeScheduler{}, metrics.NewMock(), nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap, err := cache.Read(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, 2, snap.Len())
		}()
	}
	// Give the readers time to pile up on the in-flight fill.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.LessOrEqual(t, store.TopPlaytimesCallCount(), 2)
	assert.GreaterOrEqual(t, store.TopPlaytimesCallCount(), 1)
}

func TestRead_SourceError(t *testing.T) {
	store := players.NewMock()
	store.TopPlaytimesFunc = func(ctx context.Context, limit int) ([]players.Player, error) {
		return nil, errors.New("db down")
	}
	m := metrics.NewMock()
	cache := leaderboard.New(store, &fakeScheduler{}, m, nil)

	_, err := cache.Read(context.Background())
	assert.ErrorContains(t, err, "db down")
	assert.Equal(t, 1, m.RefreshFailures())
}

// blockingStore returns a store whose TopPlaytimes blocks until release is
// closed and then fails with the caller's context error, if any.
func blockingStore() (*players.MockStore, <-chan struct{}, chan struct{}) {
	store := players.NewMock()
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	store.TopPlaytimesFunc = func(ctx context.Context, limit int) ([]players.Player, error) {
		once.Do(func() { close(started) })
		<-release
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return sampleTop(), nil
	}
	return store, started, release
}

func TestRead_CancelledReaderDoesNotFailOthers(t *testing.T) {
	store, started, release := blockingStore()
	cache := leaderboard.New(store, &fakeScheduler{}, metrics.NewMock(), nil)

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := cache.Read(ctxA)
		errA <- err
	}()
	<-started

	type result struct {
		snap leaderboard.Snapshot
		err  error
	}
	resB := make(chan result, 1)
	go func() {
		snap, err := cache.Read(context.Background())
		resB <- result{snap, err}
	}()
	// Let the second reader join the in-flight fill.
	time.Sleep(20 * time.Millisecond)

	cancelA()
	assert.ErrorIs(t, <-errA, context.Canceled)

	close(release)
	b := <-resB
	require.NoError(t, b.err)
	assert.Equal(t, 2, b.snap.Len())

	snap, ok := cache.Peek()
	require.True(t, ok)
	assert.Equal(t, 2, snap.Len())
}

func TestRead_FillRunningDuringStopIsNotStored(t *testing.T) {
	store, started, release := blockingStore()
	cache := leaderboard.New(store, &fakeScheduler{}, metrics.NewMock(), nil)

	done := make(chan error, 1)
	go func() {
		_, err := cache.Read(context.Background())
		done <- err
	}()
	<-started

	cache.Stop()
	close(release)
	require.NoError(t, <-done)

	_, ok := cache.Peek()
	assert.False(t, ok, "A fill started before Stop must not repopulate the cache")

	snap, err := cache.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Len())
	assert.Equal(t, 2, store.TopPlaytimesCallCount())
}

func TestStart_TwiceLeavesOneTask(t *testing.T) {
	cache, _, sched, _, _ := setup(t)

	cache.Start(time.Minute)
	cache.Start(time.Minute)

	assert.Len(t, sched.tasks, 2)
	assert.Equal(t, 1, sched.totalCancels(), "Exactly the first task should be cancelled")
	assert.Equal(t, int32(1), sched.tasks[0].cancelled.Load())
	assert.Equal(t, int32(0), sched.tasks[1].cancelled.Load())
	assert.True(t, cache.Running())
}

func TestStart_DefaultInterval(t *testing.T) {
	cache, _, sched, _, _ := setup(t)
	cache.Start(0)
	require.Len(t, sched.tasks, 1)
	assert.Equal(t, leaderboard.DefaultInterval, sched.tasks[0].interval)
}

func TestStartStop_ThenReadFillsOnce(t *testing.T) {
	cache, store, sched, _, _ := setup(t)
	ctx := context.Background()

	cache.Start(time.Minute)
	sched.tasks[0].Fire()
	assert.Equal(t, 1, store.TopPlaytimesCallCount())

	cache.Stop()
	assert.False(t, cache.Running())
	_, ok := cache.Peek()
	assert.False(t, ok, "Stop should clear the snapshot")

	store.Reset()
	_, err := cache.Read(ctx)
	require.NoError(t, err)
	_, err = cache.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, store.TopPlaytimesCallCount())
}

func TestStop_Idempotent(t *testing.T) {
	cache, _, sched, _, _ := setup(t)

	assert.NotPanics(t, func() { cache.Stop() }, "Stopping a cache that never started")

	cache.Start(time.Minute)
	cache.Stop()
	cache.Stop()
	assert.Equal(t, 1, sched.totalCancels())
}

func TestScheduledRefresh(t *testing.T) {
	cache, store, sched, _, pub := setup(t)
	ctx := context.Background()

	_, err := cache.Read(ctx)
	require.NoError(t, err)

	store.TopPlaytimesFunc = func(ctx context.Context, limit int) ([]players.Player, error) {
		return []players.Player{{Name: "Carol", PlaytimeMillis: 9000000}}, nil
	}
	cache.Start(time.Minute)
	sched.tasks[0].Fire()

	snap, err := cache.Read(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, snap.Len())
	assert.Equal(t, "Carol", snap.Entries[0].Name)

	sent := pub.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, pubsub.EventLeaderboardRefreshed, sent[0].Topic)
	event, ok := sent[0].Data.(leaderboard.RefreshedEvent)
	require.True(t, ok)
	assert.Equal(t, "scheduled", event.Reason)
}

func TestScheduledRefresh_ErrorKeepsPrevious(t *testing.T) {
	cache, store, sched, m, _ := setup(t)
	ctx := context.Background()

	_, err := cache.Read(ctx)
	require.NoError(t, err)

	store.TopPlaytimesFunc = func(ctx context.Context, limit int) ([]players.Player, error) {
		return nil, errors.New("timeout")
	}
	cache.Start(time.Minute)
	sched.tasks[0].Fire()

	snap, ok := cache.Peek()
	require.True(t, ok)
	assert.Equal(t, 2, snap.Len())
	assert.Equal(t, 1, m.RefreshFailures())
}

func TestScheduledRefresh_CancelledTaskDoesNotPublish(t *testing.T) {
	cache, store, sched, _, _ := setup(t)

	cache.Start(time.Minute)
	task := sched.tasks[0]
	cache.Stop()

	task.Fire()
	_, ok := cache.Peek()
	assert.False(t, ok, "A cancelled task must not repopulate a stopped cache")
	assert.Equal(t, 1, store.TopPlaytimesCallCount())
}

func TestRefresh(t *testing.T) {
	cache, _, _, _, pub := setup(t)

	snap, err := cache.Refresh(context.Background(), "manual")
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Len())

	sent := pub.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "manual", sent[0].Data.(leaderboard.RefreshedEvent).Reason)
}
