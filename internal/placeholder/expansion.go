package placeholder

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/playtime-placeholders/internal/leaderboard"
	"github.com/mauv0809/playtime-placeholders/internal/messages"
	"github.com/mauv0809/playtime-placeholders/internal/metrics"
	"github.com/mauv0809/playtime-placeholders/internal/players"
	"github.com/mauv0809/playtime-placeholders/internal/text"
)

const (
	namespace = "networkmanager"
	author    = "ChimpGamer"
	version   = "1.2.4"
)

// New creates an Expansion. The registry must hold a hook under
// DefaultHookKey. A non-positive interval means leaderboard.DefaultInterval.
func New(
	source PlayerSource,
	board Leaderboard,
	hooks *Registry,
	msgs messages.Lookup,
	formatter text.Formatter,
	metrics metrics.Metrics,
	interval time.Duration,
) (*Expansion, error) {
	if _, ok := hooks.Get(DefaultHookKey); !ok {
		return nil, ErrNoDefaultHook
	}
	if interval <= 0 {
		interval = leaderboard.DefaultInterval
	}
	return &Expansion{
		players:   source,
		board:     board,
		hooks:     hooks,
		messages:  msgs,
		formatter: formatter,
		metrics:   metrics,
		interval:  interval,
	}, nil
}

// Identifier is the namespace under which the placeholders are exposed.
func (e *Expansion) Identifier() string { return namespace }

func (e *Expansion) Author() string { return author }

func (e *Expansion) Version() string { return version }

// CanRegister reports whether the player store is reachable.
func (e *Expansion) CanRegister(ctx context.Context) bool {
	if err := e.players.Ping(ctx); err != nil {
		log.Warn("Player store unavailable", "error", err)
		return false
	}
	return true
}

// Start schedules the periodic leaderboard refresh.
func (e *Expansion) Start() {
	e.board.Start(e.interval)
}

// Stop cancels the periodic refresh and clears the leaderboard.
func (e *Expansion) Stop() {
	e.board.Stop()
}

// Resolve answers a placeholder request made on behalf of playerID.
func (e *Expansion) Resolve(ctx context.Context, playerID uuid.UUID, identifier string) (res Result) {
	defer func() {
		e.metrics.IncPlaceholderRequests(res.Kind.String())
	}()
	defer func() {
		if r := recover(); r != nil {
			log.Error("Recovered from panic while resolving placeholder", "panic", r, "identifier", identifier, "playerID", playerID)
			res = invalid()
		}
	}()

	if playerID == uuid.Nil {
		return notFound()
	}
	player, err := e.players.GetPlayer(ctx, playerID)
	if err != nil {
		if errors.Is(err, players.ErrPlayerNotFound) {
			return notFound()
		}
		log.Error("Failed to look up player", "error", err, "playerID", playerID)
		return invalid()
	}

	if strings.HasPrefix(identifier, topPrefix) {
		return e.resolveTop(ctx, player, identifier)
	}

	hook, ok := e.hooks.Get(DefaultHookKey)
	if !ok {
		log.Error("Default placeholder hook missing", "identifier", identifier)
		return invalid()
	}
	v, ok := hook.Resolve(ctx, player, identifier)
	if !ok {
		return unrecognized()
	}
	return value(v)
}

func (e *Expansion) resolveTop(ctx context.Context, player *players.Player, identifier string) Result {
	parts := strings.Split(identifier, "_")
	if len(parts) != 3 {
		return unrecognized()
	}
	position, err := strconv.Atoi(parts[2])
	if err != nil {
		log.Debug("Malformed leaderboard position", "identifier", identifier)
		return unrecognized()
	}
	if position < 1 || position > maxPosition {
		return outOfRange()
	}

	rows, err := e.RenderTop(ctx, player.Language)
	if err != nil {
		log.Error("Failed to render leaderboard", "error", err)
		return invalid()
	}
	if position > len(rows) {
		log.Debug("Leaderboard position not filled", "position", position, "entries", len(rows))
		return invalid()
	}
	return value(e.formatter.Format(rows[position-1]))
}

// RenderTop renders every leaderboard row with the playtime-top message of
// locale. Rows are ampersand-coded and in rank order.
func (e *Expansion) RenderTop(ctx context.Context, locale string) ([]string, error) {
	snap, err := e.board.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}

	template := e.messages.Message(locale, messages.PlaytimeTop)
	rows := make([]string, 0, snap.Len())
	for i, entry := range snap.Entries {
		tokens := EntryTokens(i+1, entry.Name, entry.PlaytimeMillis, locale, e.messages)
		rows = append(rows, text.Render(template, tokens))
	}
	return rows, nil
}

// Header renders the leaderboard header message of locale.
func (e *Expansion) Header(locale string) string {
	return text.Render(e.messages.Message(locale, messages.PlaytimeTopHeader), nil)
}
