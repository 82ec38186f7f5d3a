package handlers

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/playtime-placeholders/internal/placeholder"
)

// Resolver resolves placeholder identifiers for a player.
type Resolver interface {
	Resolve(ctx context.Context, playerID uuid.UUID, identifier string) placeholder.Result
}

// PlaceholderHandler answers GET /placeholder?player=<uuid>&identifier=<id>.
// A missing or malformed player id is treated as an unknown player.
func PlaceholderHandler(resolver Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		identifier := r.URL.Query().Get("identifier")
		if identifier == "" {
			http.Error(w, "identifier is required", http.StatusBadRequest)
			return
		}

		playerID, err := uuid.Parse(r.URL.Query().Get("player"))
		if err != nil {
			log.Debug("Unparseable player id", "player", r.URL.Query().Get("player"), "error", err)
			playerID = uuid.Nil
		}

		result := resolver.Resolve(r.Context(), playerID, identifier)
		status := http.StatusOK
		if result.Kind == placeholder.KindNotFound {
			status = http.StatusNotFound
		}
		respondWithJSON(w, status, result)
	}
}
