package players

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"
)

// CachedStore keeps recently read players in memory for ttl. Writes through
// the CachedStore evict the affected players.
type CachedStore struct {
	Store
	players *ttlcache.Cache[uuid.UUID, Player]
}

var _ Store = (*CachedStore)(nil)

// NewCachedStore wraps store with a TTL cache for GetPlayer. Call Close to
// stop the expiry goroutine.
func NewCachedStore(store Store, ttl time.Duration) *CachedStore {
	cache := ttlcache.New[uuid.UUID, Player](
		ttlcache.WithTTL[uuid.UUID, Player](ttl),
		ttlcache.WithDisableTouchOnHit[uuid.UUID, Player](),
	)
	go cache.Start()
	return &CachedStore{
		Store:   store,
		players: cache,
	}
}

// GetPlayer returns the cached player or loads it from the wrapped store.
func (s *CachedStore) GetPlayer(ctx context.Context, id uuid.UUID) (*Player, error) {
	if item := s.players.Get(id); item != nil {
		player := item.Value()
		return &player, nil
	}
	player, err := s.Store.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	s.players.Set(id, *player, ttlcache.DefaultTTL)
	return player, nil
}

func (s *CachedStore) UpsertPlayers(ctx context.Context, players []Player) error {
	err := s.Store.UpsertPlayers(ctx, players)
	for _, p := range players {
		s.players.Delete(p.ID)
	}
	return err
}

func (s *CachedStore) AddPlaytime(ctx context.Context, id uuid.UUID, ms int64) error {
	err := s.Store.AddPlaytime(ctx, id, ms)
	s.players.Delete(id)
	return err
}

// Close stops the expiry goroutine.
func (s *CachedStore) Close() {
	s.players.Stop()
}
