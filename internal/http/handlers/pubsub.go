package handlers

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/playtime-placeholders/internal/leaderboard"
	"github.com/mauv0809/playtime-placeholders/internal/pubsub"
)

// RefreshRequestedHandler handles Pub/Sub push deliveries of refresh-requested
// events and refreshes the leaderboard.
func RefreshRequestedHandler(board Board, pubsubClient pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received refresh requested message", "body", string(bodyBytes))

		var pubsubMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data string `json:"data"`
			} `json:"message"`
		}

		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		request := leaderboard.RefreshRequest{}
		if err := pubsubClient.ProcessMessage(rawData, &request); err != nil {
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}
		reason := request.Reason
		if reason == "" {
			reason = "pubsub"
		}

		if IsDryRunFromContext(r) {
			log.Info("[Dry Run] Would refresh leaderboard", "reason", reason)
			w.Write([]byte("OK"))
			return
		}
		if _, err := board.Refresh(r.Context(), reason); err != nil {
			// A non-2xx answer makes Pub/Sub redeliver the message.
			log.Error("Failed to refresh leaderboard", "error", err, "reason", reason)
			http.Error(w, "Failed to refresh leaderboard", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
