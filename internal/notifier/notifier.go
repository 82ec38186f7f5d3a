package notifier

import "context"

// Leaderboard is a rendered leaderboard ready to be sent. Header and Rows may
// carry ampersand formatting codes; notifiers strip what they cannot show.
type Leaderboard struct {
	Header string
	Rows   []string
}

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For the scheduled or manual leaderboard post
	SendLeaderboard(ctx context.Context, board Leaderboard, dryRun bool) error

	// For formatting responses for slash commands
	FormatLeaderboardResponse(board Leaderboard) (any, error)
	FormatUnavailableResponse(reason string) (any, error)
}
