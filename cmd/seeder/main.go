package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mauv0809/playtime-placeholders/internal/database"
	"github.com/mauv0809/playtime-placeholders/internal/players"
)

var (
	firstNames = []string{"Alex", "Sam", "Robin", "Jesse", "Kim", "Noa", "Lou", "Charlie", "Max", "Sky"}
	languages  = []string{"en", "nl", "de"}
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"SEED_PLAYERS": "250",
	}
	for _, key := range []string{"DB_NAME", "TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN", "SEED_PLAYERS"} {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	if config["DB_NAME"] == "" {
		log.Fatalf("Error: Required environment variable DB_NAME is not set.")
	}
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	numPlayers, err := strconv.Atoi(cfg["SEED_PLAYERS"])
	if err != nil || numPlayers <= 0 {
		log.Fatalf("SEED_PLAYERS must be a positive number, got %q", cfg["SEED_PLAYERS"])
	}

	db, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer db.Close()
	log.Info("Successfully connected to the database.")

	store := players.New(db)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	const batchSize = 100
	log.Info("Preparing to insert players...", "total", numPlayers, "batch_size", batchSize)
	startTime := time.Now()

	batch := make([]players.Player, 0, batchSize)
	for i := 0; i < numPlayers; i++ {
		batch = append(batch, players.Player{
			ID:       uuid.New(),
			Name:     fmt.Sprintf("%s%d", firstNames[rng.Intn(len(firstNames))], i),
			Language: languages[rng.Intn(len(languages))],
			// Up to 500 hours of playtime.
			PlaytimeMillis: rng.Int63n(int64(500 * time.Hour / time.Millisecond)),
		})
		if len(batch) == batchSize || i == numPlayers-1 {
			if err := store.UpsertPlayers(context.Background(), batch); err != nil {
				log.Fatalf("Failed to insert batch: %s", err)
			}
			log.Info("Inserted batch", "inserted", i+1, "total", numPlayers)
			batch = batch[:0]
		}
	}

	log.Info("Database seeding complete!", "players", numPlayers, "duration", time.Since(startTime))
}
