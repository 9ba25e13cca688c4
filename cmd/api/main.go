package main

// @title Flight Telemetry API
// @version 1.0.0
// @description Положения самолётов, табло прилётов, зона запрета полётов над Вашингтоном и журнал стоимости запросов.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/flight-telemetry/docs"
	"github.com/flight-telemetry/internal/config"
	httpDelivery "github.com/flight-telemetry/internal/delivery/http"
	"github.com/flight-telemetry/internal/delivery/http/handler"
	"github.com/flight-telemetry/internal/pkg/logger"
	"github.com/flight-telemetry/internal/repository/cache"
	"github.com/flight-telemetry/internal/repository/postgres"
	redisRepo "github.com/flight-telemetry/internal/repository/redis"
	"github.com/flight-telemetry/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	log = logger.Named(log, "flight-telemetry", "api")
	defer func() { _ = log.Sync() }()

	log.Info("Starting Flight Telemetry API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

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

	// 5. Health checks and schema
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}
	if err := db.Migrate(ctx); err != nil {
		log.Fatal("Failed to apply migrations", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize repositories
	flightRepo := postgres.NewFlightRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	// 7. Initialize use cases
	costLog := usecase.NewCostLog(log)
	locationMapUC := usecase.NewLocationMapUseCase(flightRepo, cacheRepo, costLog, log, cfg.Cache.MetadataCacheTTL)
	arrivalsUC := usecase.NewArrivalsUseCase(flightRepo, cacheRepo, locationMapUC, costLog, log, cfg.Cache.ArrivalsCacheTTL)
	ingestUC := usecase.NewIngestUseCase(flightRepo, streamRepo, locationMapUC, log)

	// 8. Initialize HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		httpDelivery.Handlers{
			Flight:    handler.NewFlightHandler(locationMapUC, log),
			Map:       handler.NewMapHandler(locationMapUC, log),
			Arrivals:  handler.NewArrivalsHandler(arrivalsUC, log),
			Geo:       handler.NewGeoHandler(log),
			CostLog:   handler.NewCostLogHandler(costLog, log),
			Telemetry: handler.NewTelemetryHandler(ingestUC, log),
		},
		map[string]httpDelivery.HealthChecker{
			"postgres": db,
			"redis":    redisClient,
		},
	)

	// 9. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 10. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
