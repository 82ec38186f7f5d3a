package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		LeaderboardRefreshes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "playtime_leaderboard_refreshes_total",
			Help: "The total number of successful top playtime refreshes.",
		}),
		LeaderboardRefreshFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "playtime_leaderboard_refresh_failures_total",
			Help: "The total number of top playtime refreshes that failed.",
		}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "playtime_leaderboard_refresh_duration_seconds",
			Help:    "The duration of a top playtime refresh.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		LeaderboardSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "playtime_leaderboard_entries",
			Help: "The number of entries in the current top playtime snapshot.",
		}),
		PlaceholderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "playtime_placeholder_requests_total",
			Help: "The total number of placeholder requests by result kind.",
		}, []string{"result"}),
		SlackMessagesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "playtime_slack_messages_sent_total",
			Help: "The total number of Slack messages successfully sent.",
		}),
		SlackMessagesFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "playtime_slack_messages_failed_total",
			Help: "The total number of Slack messages that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "playtime_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.LeaderboardRefreshes,
		s.LeaderboardRefreshFailures,
		s.RefreshDuration,
		s.LeaderboardSize,
		s.PlaceholderRequests,
		s.SlackMessagesSent,
		s.SlackMessagesFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncLeaderboardRefreshes() {
	s.LeaderboardRefreshes.Inc()
}

func (s *Service) IncLeaderboardRefreshFailures() {
	s.LeaderboardRefreshFailures.Inc()
}

func (s *Service) ObserveRefreshDuration(duration float64) {
	s.RefreshDuration.Observe(duration)
}

func (s *Service) SetLeaderboardSize(size int) {
	s.LeaderboardSize.Set(float64(size))
}

func (s *Service) IncPlaceholderRequests(result string) {
	s.PlaceholderRequests.WithLabelValues(result).Inc()
}

func (s *Service) IncSlackMessagesSent() {
	s.SlackMessagesSent.Inc()
}

func (s *Service) IncSlackMessagesFailed() {
	s.SlackMessagesFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
