package http

import (
	"net/http"

	"github.com/mauv0809/playtime-placeholders/internal/config"
	"github.com/mauv0809/playtime-placeholders/internal/http/handlers"
	"github.com/mauv0809/playtime-placeholders/internal/leaderboard"
	"github.com/mauv0809/playtime-placeholders/internal/metrics"
	"github.com/mauv0809/playtime-placeholders/internal/notifier"
	"github.com/mauv0809/playtime-placeholders/internal/placeholder"
	"github.com/mauv0809/playtime-placeholders/internal/players"
	"github.com/mauv0809/playtime-placeholders/internal/pubsub"
)

func NewServer(store players.Store, board *leaderboard.Cache, expansion *placeholder.Expansion, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Store:          store,
		Board:          board,
		Expansion:      expansion,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(handlers.HealthCheckHandler(s.Store), paramsMiddleware))
	s.Router.Handle("/placeholder", Chain(handlers.PlaceholderHandler(s.Expansion), paramsMiddleware))
	s.Router.Handle("/leaderboard", Chain(handlers.LeaderboardHandler(s.Board), paramsMiddleware))
	s.Router.Handle("/refresh", Chain(handlers.RefreshHandler(s.Board, s.Expansion, s.Notifier), paramsMiddleware))
	s.Router.Handle("/pubsub/refresh", Chain(handlers.RefreshRequestedHandler(s.Board, s.pubsub), paramsMiddleware))
	s.Router.Handle("/slack/command/playtime-top", Chain(handlers.PlaytimeTopCommandHandler(s.Expansion, s.Notifier), paramsMiddleware, slackVerifier(s.Cfg.Slack.SigningSecret)))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
