package players

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// New creates a new player Store backed by db.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

// GetPlayer looks up a single player by id.
func (s *store) GetPlayer(ctx context.Context, id uuid.UUID) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, language, playtime_ms
		FROM players
		WHERE id = ?
	`, id.String())

	player, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		log.Error("Failed to query player", "error", err, "playerID", id)
		return nil, fmt.Errorf("database error: %w", err)
	}
	return player, nil
}

// TopPlaytimes returns the players with the most playtime. Ties are broken by name.
func (s *store) TopPlaytimes(ctx context.Context, limit int) ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, language, playtime_ms
		FROM players
		ORDER BY playtime_ms DESC, name ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top playtimes: %w", err)
	}
	defer rows.Close()

	top := make([]Player, 0, limit)
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		top = append(top, *player)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read top playtimes: %w", err)
	}
	return top, nil
}

// UpsertPlayers inserts new players or updates existing ones. Stored playtime
// is never lowered by an upsert.
func (s *store) UpsertPlayers(ctx context.Context, players []Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO players (id, name, language, playtime_ms, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			language = excluded.language,
			playtime_ms = MAX(players.playtime_ms, excluded.playtime_ms),
			updated_at = excluded.updated_at;
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, p := range players {
		if p.PlaytimeMillis < 0 {
			tx.Rollback()
			return fmt.Errorf("player %s has negative playtime", p.ID)
		}
		if _, err := stmt.ExecContext(ctx, p.ID.String(), p.Name, p.Language, p.PlaytimeMillis, now); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to upsert player %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Debug("Upserted players", "count", len(players))
	return nil
}

// AddPlaytime adds ms of playtime to a player.
func (s *store) AddPlaytime(ctx context.Context, id uuid.UUID, ms int64) error {
	if ms < 0 {
		return fmt.Errorf("cannot add negative playtime %d", ms)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		"UPDATE players SET playtime_ms = playtime_ms + ?, updated_at = ? WHERE id = ?",
		ms, time.Now().Unix(), id.String())
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

// Ping reports whether the database is reachable.
func (s *store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// scanPlayer is a helper function to scan a single player row.
func scanPlayer(scanner interface{ Scan(...any) error }) (*Player, error) {
	var (
		player Player
		rawID  string
	)
	if err := scanner.Scan(&rawID, &player.Name, &player.Language, &player.PlaytimeMillis); err != nil {
		return nil, err
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("invalid player id %q: %w", rawID, err)
	}
	player.ID = id
	return &player, nil
}
