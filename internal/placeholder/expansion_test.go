package placeholder_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mauv0809/playtime-placeholders/internal/leaderboard"
	"github.com/mauv0809/playtime-placeholders/internal/messages"
	"github.com/mauv0809/playtime-placeholders/internal/metrics"
	"github.com/mauv0809/playtime-placeholders/internal/placeholder"
	"github.com/mauv0809/playtime-placeholders/internal/players"
	"github.com/mauv0809/playtime-placeholders/internal/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const clockTemplate = "#<position> <playername>: <playtime_h>h <playtime_m>m <playtime_s>s"

// fakeMessages returns the same template for every locale.
type fakeMessages map[string]string

func (m fakeMessages) Message(locale, key string) string {
	if msg, ok := m[key]; ok {
		return msg
	}
	return key
}

// fakeBoard is a leaderboard with a fixed snapshot.
type fakeBoard struct {
	mu        sync.Mutex
	snapshot  leaderboard.Snapshot
	err       error
	reads     int
	started   []time.Duration
	stopCalls int
}

func (b *fakeBoard) Read(ctx context.Context) (leaderboard.Snapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reads++
	return b.snapshot, b.err
}

func (b *fakeBoard) Start(interval time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.started = append(b.started, interval)
}

func (b *fakeBoard) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopCalls++
}

var alice = players.Player{ID: uuid.New(), Name: "Alice", Language: "en", PlaytimeMillis: 3661000}

func aliceAndBob() leaderboard.Snapshot {
	return leaderboard.Snapshot{Entries: []leaderboard.Entry{
		{Name: "Alice", PlaytimeMillis: 3661000},
		{Name: "Bob", PlaytimeMillis: 61000},
	}}
}

type fixture struct {
	expansion *placeholder.Expansion
	store     *players.MockStore
	board     *fakeBoard
	hooks     *placeholder.Registry
	metrics   *metrics.Mock
}

func newFixture(t *testing.T, msgs messages.Lookup) *fixture {
	t.Helper()

	store := players.NewMock()
	store.GetPlayerFunc = func(ctx context.Context, id uuid.UUID) (*players.Player, error) {
		if id == alice.ID {
			p := alice
			return &p, nil
		}
		return nil, players.ErrPlayerNotFound
	}
	board := &fakeBoard{snapshot: aliceAndBob()}
	hooks := placeholder.NewRegistry()
	hooks.Register(placeholder.DefaultHookKey, placeholder.HookFunc(func(ctx context.Context, p *players.Player, identifier string) (string, bool) {
		if identifier == "something_else" {
			return "42", true
		}
		return "", false
	}))
	m := metrics.NewMock()

	if msgs == nil {
		msgs = fakeMessages{messages.PlaytimeTop: clockTemplate}
	}
	e, err := placeholder.New(store, board, hooks, msgs, text.NewSectionFormatter(), m, 0)
	require.NoError(t, err)

	return &fixture{expansion: e, store: store, board: board, hooks: hooks, metrics: m}
}

func TestNew_RequiresDefaultHook(t *testing.T) {
	_, err := placeholder.New(players.NewMock(), &fakeBoard{}, placeholder.NewRegistry(), fakeMessages{}, text.NewSectionFormatter(), metrics.NewMock(), time.Minute)
	assert.ErrorIs(t, err, placeholder.ErrNoDefaultHook)
}

func TestMetadata(t *testing.T) {
	f := newFixture(t, nil)
	assert.Equal(t, "networkmanager", f.expansion.Identifier())
	assert.Equal(t, "ChimpGamer", f.expansion.Author())
	assert.Equal(t, "1.2.4", f.expansion.Version())
}

func TestResolve(t *testing.T) {
	testCases := []struct {
		name       string
		playerID   uuid.UUID
		identifier string
		expected   placeholder.Result
	}{
		{
			name:       "Unknown player",
			playerID:   uuid.New(),
			identifier: "playtime_top_1",
			expected:   placeholder.Result{Kind: placeholder.KindNotFound, Value: "Player not found"},
		},
		{
			name:       "Absent player handle",
			playerID:   uuid.Nil,
			identifier: "playtime_top_1",
			expected:   placeholder.Result{Kind: placeholder.KindNotFound, Value: "Player not found"},
		},
		{
			name:       "First rank",
			playerID:   alice.ID,
			identifier: "playtime_top_1",
			expected:   placeholder.Result{Kind: placeholder.KindValue, Value: "#1 Alice: 1h 1m 1s"},
		},
		{
			name:       "Second rank",
			playerID:   alice.ID,
			identifier: "playtime_top_2",
			expected:   placeholder.Result{Kind: placeholder.KindValue, Value: "#2 Bob: 0h 1m 1s"},
		},
		{
			name:       "Rank above ten",
			playerID:   alice.ID,
			identifier: "playtime_top_11",
			expected:   placeholder.Result{Kind: placeholder.KindOutOfRange, Value: "Please define an number between 1 - 10"},
		},
		{
			name:       "Rank zero",
			playerID:   alice.ID,
			identifier: "playtime_top_0",
			expected:   placeholder.Result{Kind: placeholder.KindOutOfRange, Value: "Please define an number between 1 - 10"},
		},
		{
			name:       "Rank beyond snapshot",
			playerID:   alice.ID,
			identifier: "playtime_top_3",
			expected:   placeholder.Result{Kind: placeholder.KindInvalid, Value: "Invalid placeholder."},
		},
		{
			name:       "Malformed rank",
			playerID:   alice.ID,
			identifier: "playtime_top_first",
			expected:   placeholder.Result{Kind: placeholder.KindUnrecognized},
		},
		{
			name:       "Too many segments",
			playerID:   alice.ID,
			identifier: "playtime_top_1_2",
			expected:   placeholder.Result{Kind: placeholder.KindUnrecognized},
		},
		{
			name:       "Too few segments",
			playerID:   alice.ID,
			identifier: "playtime_top",
			expected:   placeholder.Result{Kind: placeholder.KindUnrecognized},
		},
		{
			name:       "Prefixed identifier with three segments",
			playerID:   alice.ID,
			identifier: "playtime_topx_1",
			expected:   placeholder.Result{Kind: placeholder.KindValue, Value: "#1 Alice: 1h 1m 1s"},
		},
		{
			name:       "Passthrough",
			playerID:   alice.ID,
			identifier: "something_else",
			expected:   placeholder.Result{Kind: placeholder.KindValue, Value: "42"},
		},
		{
			name:       "Passthrough unknown to hook",
			playerID:   alice.ID,
			identifier: "nothing",
			expected:   placeholder.Result{Kind: placeholder.KindUnrecognized},
		},
	}

	f := newFixture(t, nil)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := f.expansion.Resolve(context.Background(), tc.playerID, tc.identifier)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestResolve_OutOfRangeSkipsLeaderboard(t *testing.T) {
	f := newFixture(t, nil)
	f.expansion.Resolve(context.Background(), alice.ID, "playtime_top_11")
	assert.Equal(t, 0, f.board.reads)
}

func TestResolve_StyledTemplate(t *testing.T) {
	bundle, err := messages.Load("en")
	require.NoError(t, err)
	f := newFixture(t, bundle)

	got := f.expansion.Resolve(context.Background(), alice.ID, "playtime_top_1")
	assert.Equal(t, placeholder.KindValue, got.Kind)
	assert.Equal(t, "§6#1§r §7Alice§8:§r §e1 hour, 1 minute, 1 second", got.Value)
}

func TestResolve_PlainTokensAreNotParsed(t *testing.T) {
	f := newFixture(t, nil)
	f.board.snapshot = leaderboard.Snapshot{Entries: []leaderboard.Entry{{Name: "<red>Mallory", PlaytimeMillis: 1000}}}

	got := f.expansion.Resolve(context.Background(), alice.ID, "playtime_top_1")
	assert.Equal(t, "#1 <red>Mallory: 0h 0m 1s", got.Value)
}

func TestResolve_LiteralTemplateRoundTrip(t *testing.T) {
	f := newFixture(t, fakeMessages{messages.PlaytimeTop: "Top players this week"})
	got := f.expansion.Resolve(context.Background(), alice.ID, "playtime_top_2")
	assert.Equal(t, placeholder.Result{Kind: placeholder.KindValue, Value: "Top players this week"}, got)
}

func TestResolve_LeaderboardError(t *testing.T) {
	f := newFixture(t, nil)
	f.board.err = errors.New("db down")

	got := f.expansion.Resolve(context.Background(), alice.ID, "playtime_top_1")
	assert.Equal(t, placeholder.KindInvalid, got.Kind)
}

func TestResolve_StoreError(t *testing.T) {
	f := newFixture(t, nil)
	f.store.GetPlayerFunc = func(ctx context.Context, id uuid.UUID) (*players.Player, error) {
		return nil, errors.New("connection reset")
	}

	got := f.expansion.Resolve(context.Background(), alice.ID, "playtime_top_1")
	assert.Equal(t, placeholder.KindInvalid, got.Kind)
}

func TestResolve_RecoversFromPanickingHook(t *testing.T) {
	f := newFixture(t, nil)
	f.hooks.Register(placeholder.DefaultHookKey, placeholder.HookFunc(func(ctx context.Context, p *players.Player, identifier string) (string, bool) {
		panic("boom")
	}))

	var got placeholder.Result
	assert.NotPanics(t, func() {
		got = f.expansion.Resolve(context.Background(), alice.ID, "anything")
	})
	assert.Equal(t, placeholder.Result{Kind: placeholder.KindInvalid, Value: "Invalid placeholder."}, got)
	assert.Equal(t, 1, f.metrics.PlaceholderRequests("invalid"))
}

func TestResolve_DefaultHookRemoved(t *testing.T) {
	f := newFixture(t, nil)
	f.hooks.Unregister(placeholder.DefaultHookKey)

	got := f.expansion.Resolve(context.Background(), alice.ID, "something_else")
	assert.Equal(t, placeholder.KindInvalid, got.Kind)
}

func TestResolve_CountsResults(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	f.expansion.Resolve(ctx, alice.ID, "playtime_top_1")
	f.expansion.Resolve(ctx, alice.ID, "playtime_top_1")
	f.expansion.Resolve(ctx, uuid.New(), "playtime_top_1")
	f.expansion.Resolve(ctx, alice.ID, "playtime_top_12")

	assert.Equal(t, 2, f.metrics.PlaceholderRequests("value"))
	assert.Equal(t, 1, f.metrics.PlaceholderRequests("not_found"))
	assert.Equal(t, 1, f.metrics.PlaceholderRequests("out_of_range"))
}

func TestStartStop(t *testing.T) {
	f := newFixture(t, nil)

	f.expansion.Start()
	f.expansion.Stop()

	assert.Equal(t, []time.Duration{leaderboard.DefaultInterval}, f.board.started)
	assert.Equal(t, 1, f.board.stopCalls)
}

func TestCanRegister(t *testing.T) {
	f := newFixture(t, nil)
	assert.True(t, f.expansion.CanRegister(context.Background()))

	f.store.PingFunc = func(ctx context.Context) error { return errors.New("unreachable") }
	assert.False(t, f.expansion.CanRegister(context.Background()))
}

func TestRenderTop(t *testing.T) {
	f := newFixture(t, nil)
	rows, err := f.expansion.RenderTop(context.Background(), "en")
	require.NoError(t, err)
	assert.Equal(t, []string{"#1 Alice: 1h 1m 1s", "#2 Bob: 0h 1m 1s"}, rows)
}

// With a real cache the first request fills the leaderboard from the store.
func TestResolve_WithLeaderboardCache(t *testing.T) {
	store := players.NewMock()
	store.GetPlayerFunc = func(ctx context.Context, id uuid.UUID) (*players.Player, error) {
		p := alice
		return &p, nil
	}
	store.TopPlaytimesFunc = func(ctx context.Context, limit int) ([]players.Player, error) {
		return []players.Player{alice, {Name: "Bob", PlaytimeMillis: 61000}}, nil
	}
	hooks := placeholder.NewRegistry()
	hooks.Register(placeholder.DefaultHookKey, placeholder.PlayerHook{})
	m := metrics.NewMock()
	cache := leaderboard.New(store, leaderboard.TickerScheduler{}, m, nil)

	e, err := placeholder.New(store, cache, hooks, fakeMessages{messages.PlaytimeTop: clockTemplate}, text.NewSectionFormatter(), m, time.Hour)
	require.NoError(t, err)
	defer e.Stop()
	e.Start()

	ctx := context.Background()
	assert.Equal(t, "#2 Bob: 0h 1m 1s", e.Resolve(ctx, alice.ID, "playtime_top_2").Value)
	assert.Equal(t, "#1 Alice: 1h 1m 1s", e.Resolve(ctx, alice.ID, "playtime_top_1").Value)
	assert.Equal(t, 1, store.TopPlaytimesCallCount())
}
