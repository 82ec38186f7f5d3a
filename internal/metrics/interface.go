package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncLeaderboardRefreshes()
	IncLeaderboardRefreshFailures()
	ObserveRefreshDuration(duration float64)
	SetLeaderboardSize(size int)
	IncPlaceholderRequests(result string)
	IncSlackMessagesSent()
	IncSlackMessagesFailed()
	SetStartupTime(duration float64)
}
