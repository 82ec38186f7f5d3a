package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	DBName          string
	Port            string
	DefaultLanguage string
	Slack           SlackConfig
	Turso           TursoConfig
	ProjectID       string
	Playtime        PlaytimeConfig
}
type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
type PlaytimeConfig struct {
	// TopUpdateInterval is the cadence of the leaderboard refresh.
	TopUpdateInterval time.Duration
	// PlayerCacheTTL is how long a player record is served from memory.
	PlayerCacheTTL time.Duration
}
