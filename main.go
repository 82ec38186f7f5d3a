package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/playtime-placeholders/internal/config"
	"github.com/mauv0809/playtime-placeholders/internal/database"
	server "github.com/mauv0809/playtime-placeholders/internal/http"
	"github.com/mauv0809/playtime-placeholders/internal/leaderboard"
	"github.com/mauv0809/playtime-placeholders/internal/messages"
	"github.com/mauv0809/playtime-placeholders/internal/metrics"
	"github.com/mauv0809/playtime-placeholders/internal/notifier/slack"
	"github.com/mauv0809/playtime-placeholders/internal/placeholder"
	"github.com/mauv0809/playtime-placeholders/internal/players"
	"github.com/mauv0809/playtime-placeholders/internal/pubsub"
	"github.com/mauv0809/playtime-placeholders/internal/text"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	db, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		db.Close()
	}()

	playerStore := players.NewCachedStore(players.New(db), cfg.Playtime.PlayerCacheTTL)
	defer playerStore.Close()

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()

	ps, err := pubsub.New(cfg.ProjectID)
	if err != nil {
		log.Fatalf("Failed to initialize pubsub: %s", err)
	}
	defer ps.Close()

	bundle, err := messages.Load(cfg.DefaultLanguage)
	if err != nil {
		log.Fatalf("Failed to load message bundles: %s", err)
	}

	board := leaderboard.New(playerStore, leaderboard.TickerScheduler{}, metricsSvc, ps)

	hooks := placeholder.NewRegistry()
	hooks.Register(placeholder.DefaultHookKey, placeholder.PlayerHook{Names: bundle})

	expansion, err := placeholder.New(
		playerStore,
		board,
		hooks,
		bundle,
		text.NewSectionFormatter(),
		metricsSvc,
		cfg.Playtime.TopUpdateInterval,
	)
	if err != nil {
		log.Fatalf("Failed to create placeholder expansion: %s", err)
	}
	if !expansion.CanRegister(context.Background()) {
		log.Fatalf("Player store is unavailable, refusing to register %s", expansion.Identifier())
	}
	expansion.Start()
	defer expansion.Stop()
	log.Info("Placeholder expansion registered",
		"identifier", expansion.Identifier(),
		"version", expansion.Version(),
		"languages", bundle.Languages())

	notifier := slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)

	s := server.NewServer(
		playerStore,
		board,
		expansion,
		metricsSvc,
		metricsHandler,
		cfg,
		notifier,
		ps,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Error("Server error", "error", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		// Create a context with a timeout for the shutdown.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Attempt to gracefully shut down the server.
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
