package http

import (
	"net/http"

	"github.com/mauv0809/playtime-placeholders/internal/config"
	"github.com/mauv0809/playtime-placeholders/internal/leaderboard"
	"github.com/mauv0809/playtime-placeholders/internal/metrics"
	"github.com/mauv0809/playtime-placeholders/internal/notifier"
	"github.com/mauv0809/playtime-placeholders/internal/placeholder"
	"github.com/mauv0809/playtime-placeholders/internal/players"
	"github.com/mauv0809/playtime-placeholders/internal/pubsub"
)

type Server struct {
	Store          players.Store
	Board          *leaderboard.Cache
	Expansion      *placeholder.Expansion
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
