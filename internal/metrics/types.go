package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	LeaderboardRefreshes       prometheus.Counter
	LeaderboardRefreshFailures prometheus.Counter
	RefreshDuration            prometheus.Histogram
	LeaderboardSize            prometheus.Gauge
	PlaceholderRequests        *prometheus.CounterVec
	SlackMessagesSent          prometheus.Counter
	SlackMessagesFailed        prometheus.Counter
	StartupTimeSeconds         prometheus.Gauge
}
