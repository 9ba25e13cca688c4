package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/flight-telemetry/internal/config"
	"github.com/flight-telemetry/internal/pkg/logger"
	"github.com/flight-telemetry/internal/repository/cache"
	"github.com/flight-telemetry/internal/repository/postgres"
	redisRepo "github.com/flight-telemetry/internal/repository/redis"
	"github.com/flight-telemetry/internal/usecase"
	"github.com/flight-telemetry/internal/worker"
	"github.com/flight-telemetry/internal/worker/telemetry"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	log = logger.Named(log, "flight-telemetry", "worker")
	defer func() { _ = log.Sync() }()

	log.Info("Starting Flight Telemetry Ingest Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("max_batch_size", cfg.Worker.MaxBatchSize),
		zap.Int("max_retries", cfg.Worker.MaxRetries),
		zap.Duration("claim_min_idle", cfg.Worker.ClaimMinIdle))

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := db.Migrate(ctx); err != nil {
		log.Fatal("Failed to apply migrations", zap.Error(err))
	}

	// 5. Initialize repositories
	flightRepo := postgres.NewFlightRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	// 6. Initialize use cases
	costLog := usecase.NewCostLog(log)
	locationMapUC := usecase.NewLocationMapUseCase(flightRepo, cacheRepo, costLog, log, cfg.Cache.MetadataCacheTTL)
	ingestUC := usecase.NewIngestUseCase(flightRepo, streamRepo, locationMapUC, log)

	// 7. Initialize workers
	ingestWorker := telemetry.NewIngestWorker(
		streamRepo,
		ingestUC,
		cfg.Worker.ConsumerGroup,
		cfg.Worker.MaxBatchSize,
		cfg.Worker.MaxRetries,
		log,
	).WithClaimMinIdle(cfg.Worker.ClaimMinIdle)

	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(ingestWorker)

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// 8. Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}
	cancel()

	log.Info("Worker shutdown complete")
}
