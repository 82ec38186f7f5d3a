package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// disabled is used when no GCP project is configured. Publishing is a no-op.
type disabled struct{}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventLeaderboardRefreshed EventType = "leaderboard-refreshed"
	EventRefreshRequested     EventType = "refresh-requested"
)
