package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const (
	defaultPort              = "8080"
	defaultLanguage          = "en"
	defaultTopUpdateInterval = 60
	defaultPlayerCacheTTL    = 30 * time.Second
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	cfg, err := FromEnv()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	return cfg
}

// FromEnv builds a Config from the current environment.
func FromEnv() (Config, error) {
	dbName, ok := os.LookupEnv("DB_NAME")
	if !ok || dbName == "" {
		return Config{}, fmt.Errorf("required environment variable DB_NAME is not set")
	}

	// A helper function to get an optional env var with a default.
	getEnv := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			return value
		}
		return fallback
	}

	interval := defaultTopUpdateInterval
	if raw := getEnv("PLAYTIME_TOP_UPDATE_INTERVAL", ""); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return Config{}, fmt.Errorf("PLAYTIME_TOP_UPDATE_INTERVAL must be a positive number of seconds, got %q", raw)
		}
		interval = seconds
	}

	ttl := defaultPlayerCacheTTL
	if raw := getEnv("PLAYER_CACHE_TTL", ""); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("PLAYER_CACHE_TTL: %w", err)
		}
		ttl = d
	}

	cfg := Config{
		DBName:          dbName,
		Port:            getEnv("PORT", defaultPort),
		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", defaultLanguage),
		Slack: SlackConfig{
			Token:         getEnv("SLACK_BOT_TOKEN", ""),
			ChannelID:     getEnv("SLACK_CHANNEL_ID", ""),
			SigningSecret: getEnv("SLACK_SIGNING_SECRET", ""),
		},
		Turso: TursoConfig{
			PrimaryURL: getEnv("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnv("TURSO_AUTH_TOKEN", ""),
		},
		ProjectID: getEnv("GCP_PROJECT", ""),
		Playtime: PlaytimeConfig{
			TopUpdateInterval: time.Duration(interval) * time.Second,
			PlayerCacheTTL:    ttl,
		},
	}
	return cfg, nil
}
