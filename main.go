package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jsvane/pingpong/internal/config"
	"github.com/jsvane/pingpong/internal/database"
	"github.com/jsvane/pingpong/internal/headtohead"
	"github.com/jsvane/pingpong/internal/history"
	server "github.com/jsvane/pingpong/internal/http"
	"github.com/jsvane/pingpong/internal/ledger"
	"github.com/jsvane/pingpong/internal/metrics"
	"github.com/jsvane/pingpong/internal/notifier/slack"
	"github.com/jsvane/pingpong/internal/player"
	"github.com/jsvane/pingpong/internal/pubsub"
	"github.com/jsvane/pingpong/internal/rating"
	"github.com/jsvane/pingpong/internal/standings"
	"github.com/jsvane/pingpong/internal/submission"
	"github.com/jsvane/pingpong/internal/tournament"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	pubsubClient := pubsub.New(cfg.ProjectID)
	notifierSvc := slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)

	events := ledger.New(db)
	players := player.New(db)
	ratingStore := rating.NewStore(db)
	ratingSvc := rating.NewService(events, players, ratingStore, metricsSvc, cfg.Ratings.BaseRating, cfg.Ratings.KFactor)
	standingsSvc := standings.NewService(events, players, ratingStore)
	headToHeadSvc := headtohead.NewService(events, players)
	historySvc := history.NewService(events, players)
	tournamentSvc := tournament.New(db, players, ratingStore)
	submissionSvc := submission.NewService(events, players, ratingSvc, tournamentSvc, pubsubClient, metricsSvc)

	// Ratings are derived state. Replaying the full ledger on boot means the
	// stored projection can never drift from the event log.
	if _, err := ratingSvc.Rebuild(context.Background()); err != nil {
		log.Fatalf("Failed to rebuild ratings on startup: %s", err)
	}

	s := server.NewServer(
		players,
		submissionSvc,
		standingsSvc,
		headToHeadSvc,
		historySvc,
		tournamentSvc,
		notifierSvc,
		metricsSvc,
		metricsHandler,
		cfg,
		db,
		pubsubClient,
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
			log.Fatalf("Server error: %v", err)
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
