package players

import (
	"database/sql"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrPlayerNotFound is returned when no player exists for an id.
var ErrPlayerNotFound = errors.New("player not found")

// store handles all database operations for players.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Player is the cached record of a player known to the network.
type Player struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	// Language is a BCP 47 tag such as "en" or "nl-NL".
	Language string `json:"language"`
	// PlaytimeMillis never decreases while the player is online.
	PlaytimeMillis int64 `json:"playtime_ms"`
}
