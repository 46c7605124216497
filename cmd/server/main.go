package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flightwatch-service/internal/infrastructure/config"
	"flightwatch-service/internal/infrastructure/oauth"
	"flightwatch-service/internal/infrastructure/persistence"
	"flightwatch-service/internal/interface/flightaware"
	"flightwatch-service/internal/interface/opensky"
	mongoRepo "flightwatch-service/internal/interface/repository"
	"flightwatch-service/internal/interface/slack"
	"flightwatch-service/internal/usecase"
	"flightwatch-service/pkg/logger"
	"flightwatch-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	domainRepo "flightwatch-service/internal/domain/repository"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Flightwatch Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	db := persistence.GetDatabase(mongoClient, cfg.MongoDB)

	// Set up PostgreSQL for airport reference data
	gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	// Set up repositories
	flightRepo := mongoRepo.NewMongoFlightRepository(db)
	airportRepo := mongoRepo.NewGormAirportRepository(gormDB)

	// Set up external collaborators
	provider := flightaware.NewClient(cfg.AeroAPIBaseURL, cfg.AeroAPIKey, cfg.AeroAPITimeout, log)
	notifier := slack.NewNotifier(cfg.SlackBaseURL, cfg.SlackBotToken, log)

	// Live position feed is optional
	var positions domainRepo.PositionProvider
	if cfg.OpenSkyClientID != "" && cfg.OpenSkyClientSecret != "" {
		openSkyOAuth := oauth.NewOpenSkyOAuth(cfg.OpenSkyClientID, cfg.OpenSkyClientSecret, log)
		positions = opensky.NewClient(ctx, openSkyOAuth.GetTokenSource(ctx), log)
		log.Info("OpenSky live position feed enabled")
	}

	// Set up the scheduler
	m := metrics.NewMetrics("flightwatch")
	builder := usecase.NewNotificationBuilder(airportRepo, positions, log)
	updater := usecase.NewFlightUpdater(flightRepo, provider, notifier, builder, m, log, cfg.ReconcileInterval)

	// Start the flight updater in a goroutine
	go updater.Run(ctx)

	// Set up HTTP server for metrics
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all pollers

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Flightwatch Service stopped")
}
