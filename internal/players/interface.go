package players

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the interface for reading and updating player records.
type Store interface {
	GetPlayer(ctx context.Context, id uuid.UUID) (*Player, error)
	// TopPlaytimes returns at most limit players ordered by descending playtime.
	TopPlaytimes(ctx context.Context, limit int) ([]Player, error)
	UpsertPlayers(ctx context.Context, players []Player) error
	AddPlaytime(ctx context.Context, id uuid.UUID, ms int64) error
	Ping(ctx context.Context) error
}
