package placeholder

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mauv0809/playtime-placeholders/internal/leaderboard"
	"github.com/mauv0809/playtime-placeholders/internal/messages"
	"github.com/mauv0809/playtime-placeholders/internal/metrics"
	"github.com/mauv0809/playtime-placeholders/internal/players"
	"github.com/mauv0809/playtime-placeholders/internal/text"
)

const (
	// DefaultHookKey is the registry key of the hook that receives every
	// identifier the expansion does not handle itself.
	DefaultHookKey = ""

	topPrefix   = "playtime_top"
	maxPosition = 10

	msgPlayerNotFound = "Player not found"
	msgOutOfRange     = "Please define an number between 1 - 10"
	msgInvalid        = "Invalid placeholder."
)

// ErrNoDefaultHook is returned by New when the registry has no default hook.
var ErrNoDefaultHook = errors.New("no default placeholder hook registered")

// Kind classifies the outcome of a placeholder request.
type Kind int

const (
	// KindValue carries the resolved text.
	KindValue Kind = iota
	// KindNotFound means the requesting player is unknown.
	KindNotFound
	// KindUnrecognized means the identifier is not understood and nothing
	// should be substituted.
	KindUnrecognized
	// KindOutOfRange means the requested rank is outside 1-10.
	KindOutOfRange
	// KindInvalid means the request could not be served.
	KindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindNotFound:
		return "not_found"
	case KindUnrecognized:
		return "unrecognized"
	case KindOutOfRange:
		return "out_of_range"
	case KindInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Result is the outcome of Resolve. Value is empty for KindUnrecognized.
type Result struct {
	Kind  Kind   `json:"kind"`
	Value string `json:"value"`
}

func value(s string) Result { return Result{Kind: KindValue, Value: s} }
func notFound() Result       { return Result{Kind: KindNotFound, Value: msgPlayerNotFound} }
func unrecognized() Result   { return Result{Kind: KindUnrecognized} }
func outOfRange() Result     { return Result{Kind: KindOutOfRange, Value: msgOutOfRange} }
func invalid() Result        { return Result{Kind: KindInvalid, Value: msgInvalid} }

// Hook resolves identifiers delegated by the expansion. ok is false when the
// hook does not know the identifier.
type Hook interface {
	Resolve(ctx context.Context, player *players.Player, identifier string) (value string, ok bool)
}

// HookFunc adapts a function to the Hook interface.
type HookFunc func(ctx context.Context, player *players.Player, identifier string) (string, bool)

func (f HookFunc) Resolve(ctx context.Context, player *players.Player, identifier string) (string, bool) {
	return f(ctx, player, identifier)
}

// Registry maps keys to placeholder hooks. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	hooks map[string]Hook
}

// PlayerSource looks up player records.
type PlayerSource interface {
	GetPlayer(ctx context.Context, id uuid.UUID) (*players.Player, error)
	Ping(ctx context.Context) error
}

// Leaderboard is the top playtime cache read by the expansion.
type Leaderboard interface {
	Read(ctx context.Context) (leaderboard.Snapshot, error)
	Start(interval time.Duration)
	Stop()
}

// Expansion resolves placeholder identifiers for players.
type Expansion struct {
	players   PlayerSource
	board     Leaderboard
	hooks     *Registry
	messages  messages.Lookup
	formatter text.Formatter
	metrics   metrics.Metrics
	interval  time.Duration
}
