package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wavesight/earnings-service/internal/bootstrap"
	"github.com/wavesight/earnings-service/internal/config"
	"github.com/wavesight/earnings-service/internal/database"
	"github.com/wavesight/earnings-service/internal/ledger"
	"github.com/wavesight/earnings-service/internal/profile"
	"github.com/wavesight/earnings-service/internal/rewards"
	"github.com/wavesight/earnings-service/internal/server"
	"github.com/wavesight/earnings-service/internal/submission"
	"github.com/wavesight/earnings-service/internal/worker"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := config.ValidateEnv(); err != nil {
		log.Fatalf("Environment validation failed: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	dbPool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	eventBus, resilientPublisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		slog.Error("Failed to initialize event system", "error", err)
		os.Exit(1)
	}

	repos := bootstrap.InitializeRepositories(dbPool)

	rules := cfg.Ruleset()
	profileService := profile.NewService(repos.Profile, rules, eventBus)
	ledgerService := ledger.NewService(repos.Ledger, rules, eventBus)
	submissionService := submission.NewService(repos.Trend, profileService, ledgerService, rewards.NewCalculator(rules), eventBus)

	if err := bootstrap.RegisterEventHandlers(eventBus); err != nil {
		slog.Error("Failed to register event handlers", "error", err)
		os.Exit(1)
	}

	dailyResetWorker := worker.NewDailyResetWorker(profileService, submissionService, resilientPublisher)
	dailyResetWorker.Start()

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool,
		submissionService, ledgerService, profileService, rules)

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "port", cfg.Port)
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		slog.Error("Server failed", "error", err)
	case sig := <-stop:
		slog.Info("Shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server:             srv,
		DailyResetWorker:   dailyResetWorker,
		ResilientPublisher: resilientPublisher,
	})
}
