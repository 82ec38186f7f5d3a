package handlers

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/playtime-placeholders/internal/leaderboard"
	"github.com/mauv0809/playtime-placeholders/internal/notifier"
)

// Board is the leaderboard cache as used by the HTTP handlers.
type Board interface {
	Read(ctx context.Context) (leaderboard.Snapshot, error)
	Refresh(ctx context.Context, reason string) (leaderboard.Snapshot, error)
}

// Renderer renders the leaderboard rows and header for a locale.
type Renderer interface {
	RenderTop(ctx context.Context, locale string) ([]string, error)
	Header(locale string) string
}

func LeaderboardHandler(board Board) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := board.Read(r.Context())
		if err != nil {
			http.Error(w, "Failed to read leaderboard", http.StatusInternalServerError)
			log.Error("Failed to read leaderboard", "error", err)
			return
		}
		respondWithJSON(w, http.StatusOK, snap)
	}
}

// RefreshHandler forces a leaderboard refresh. With post=true the refreshed
// leaderboard is also sent through the notifier.
func RefreshHandler(board Board, renderer Renderer, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		log.Info("Manual leaderboard refresh requested")
		snap, err := board.Refresh(r.Context(), "manual")
		if err != nil {
			http.Error(w, "Failed to refresh leaderboard", http.StatusInternalServerError)
			log.Error("Failed to refresh leaderboard", "error", err)
			return
		}

		if r.URL.Query().Get("post") == "true" {
			if err := postLeaderboard(r.Context(), renderer, notifier, r.URL.Query().Get("locale"), IsDryRunFromContext(r)); err != nil {
				http.Error(w, "Failed to post leaderboard", http.StatusBadGateway)
				log.Error("Failed to post leaderboard", "error", err)
				return
			}
		}
		respondWithJSON(w, http.StatusOK, snap)
	}
}

func renderLeaderboard(ctx context.Context, renderer Renderer, locale string) (notifier.Leaderboard, error) {
	rows, err := renderer.RenderTop(ctx, locale)
	if err != nil {
		return notifier.Leaderboard{}, err
	}
	return notifier.Leaderboard{Header: renderer.Header(locale), Rows: rows}, nil
}

func postLeaderboard(ctx context.Context, renderer Renderer, n notifier.Notifier, locale string, dryRun bool) error {
	board, err := renderLeaderboard(ctx, renderer, locale)
	if err != nil {
		return err
	}
	return n.SendLeaderboard(ctx, board, dryRun)
}
