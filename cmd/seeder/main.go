package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/jsvane/pingpong/internal/ledger"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := make(map[string]string)
	required := []string{"TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN"}

	for _, key := range required {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		} else {
			log.Fatalf("Error: Required environment variable %s is not set.", key)
		}
	}
	return config
}

type seedPlayer struct {
	id   string
	name string
}

// randomSets produces a best-of-five set line won by the first player when
// firstWins is true.
func randomSets(firstWins bool) []ledger.EventSet {
	winnerSets, loserSets := 3, rand.Intn(3)
	sets := make([]ledger.EventSet, 0, winnerSets+loserSets)
	order := make([]bool, 0, winnerSets+loserSets)
	for i := 0; i < loserSets; i++ {
		order = append(order, false)
	}
	for i := 0; i < winnerSets; i++ {
		order = append(order, true)
	}
	rand.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	for i, winnerTook := range order {
		winScore, loseScore := 11, rand.Intn(10)
		if !winnerTook {
			winScore, loseScore = loseScore, winScore
		}
		oneScore, twoScore := winScore, loseScore
		if !firstWins {
			oneScore, twoScore = twoScore, oneScore
		}
		one, two := oneScore, twoScore
		sets = append(sets, ledger.EventSet{
			SetNumber:      i + 1,
			PlayerOneScore: &one,
			PlayerTwoScore: &two,
		})
	}
	return sets
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	// Connect directly to the primary database
	dbURL := fmt.Sprintf("%s?authToken=%s", cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	db, err := sql.Open("libsql", dbURL)
	if err != nil {
		log.Fatalf("Failed to open primary database: %s", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to primary database: %s", err)
	}

	log.Info("Successfully connected to the primary database.")

	dummyPlayers := []seedPlayer{
		{id: "seed-player-1", name: "Seeder Player A"},
		{id: "seed-player-2", name: "Seeder Player B"},
		{id: "seed-player-3", name: "Seeder Player C"},
		{id: "seed-player-4", name: "Seeder Player D"},
	}

	now := time.Now()
	for _, p := range dummyPlayers {
		_, err := db.Exec(
			"INSERT OR IGNORE INTO players (id, display_name, normalized_name, created_at) VALUES (?, ?, ?, ?)",
			p.id, p.name, strings.ToUpper(p.name), now.UnixMilli(),
		)
		if err != nil {
			log.Fatalf("Failed to insert dummy player %s: %s", p.name, err)
		}
	}
	log.Info("Ensured dummy players exist.")

	const batchSize = 100 // Insert 100 events at a time
	const numEvents = 10000

	log.Info("Preparing to insert dummy match events...", "total", numEvents, "batch_size", batchSize)
	startTime := time.Now()

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %s", err)
	}

	valueStrings := make([]string, 0, batchSize)
	valueArgs := make([]interface{}, 0, batchSize*10) // 10 columns per event

	for i := 0; i < numEvents; i++ {
		createdAt := now.Add(-time.Duration(rand.Intn(365*24)) * time.Hour)
		matchDate := createdAt.UTC().Format("2006-01-02")

		one := dummyPlayers[rand.Intn(len(dummyPlayers))]
		two := dummyPlayers[rand.Intn(len(dummyPlayers))]
		for two.id == one.id {
			two = dummyPlayers[rand.Intn(len(dummyPlayers))]
		}

		setsJSON, _ := json.Marshal(randomSets(rand.Intn(2) == 0))

		valueStrings = append(valueStrings, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		valueArgs = append(valueArgs,
			uuid.NewString(),
			ledger.KindScored,
			one.id,
			two.id,
			matchDate,
			createdAt.UnixMilli(),
			"seeder",
			nil, // player_one_won
			nil, // supersedes_event_id
			string(setsJSON),
		)

		if (i+1)%batchSize == 0 || (i+1) == numEvents {
			stmt := fmt.Sprintf(`
				INSERT INTO match_events (id, event_kind, player_one_id, player_two_id, match_date,
					created_at, submitted_by, player_one_won, supersedes_event_id, sets_json)
				VALUES %s;`, strings.Join(valueStrings, ","))

			_, err := tx.Exec(stmt, valueArgs...)
			if err != nil {
				tx.Rollback()
				log.Fatalf("Failed to execute batch insert: %s", err)
			}

			// Reset for the next batch
			valueStrings = make([]string, 0, batchSize)
			valueArgs = make([]interface{}, 0, batchSize*10)
			log.Info("Inserted batch", "completed", i+1, "total", numEvents)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit transaction: %s", err)
	}

	duration := time.Since(startTime)
	log.Info("Successfully inserted all dummy match events.", "duration", duration)
}
