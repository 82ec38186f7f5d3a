package handlers

import (
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/playtime-placeholders/internal/notifier"
	"github.com/slack-go/slack"
)

// PlaytimeTopCommandHandler answers the /playtime-top slash command. The
// command text may name a language, e.g. "/playtime-top nl".
func PlaytimeTopCommandHandler(renderer Renderer, n notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmd, err := slack.SlashCommandParse(r)
		if err != nil {
			http.Error(w, "Error parsing slash command", http.StatusBadRequest)
			log.Error("Failed to parse slash command", "error", err)
			return
		}
		locale := strings.TrimSpace(cmd.Text)
		log.Info("Received playtime top command", "user", cmd.UserName, "locale", locale)

		var msg any
		board, err := renderLeaderboard(r.Context(), renderer, locale)
		if err != nil {
			log.Error("Failed to render leaderboard", "error", err)
			msg, err = n.FormatUnavailableResponse("the leaderboard could not be loaded")
		} else {
			msg, err = n.FormatLeaderboardResponse(board)
		}
		if err != nil {
			http.Error(w, "Failed to format leaderboard", http.StatusInternalServerError)
			log.Error("Failed to format leaderboard", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}

		respondWithSlackMsg(w, slackMsg)
	}
}
