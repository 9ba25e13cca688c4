package http

import (
	"context"
	"time"

	"github.com/flight-telemetry/internal/config"
	"github.com/flight-telemetry/internal/delivery/http/handler"
	"github.com/flight-telemetry/internal/delivery/http/middleware"
	"github.com/flight-telemetry/internal/pkg/errors"
	"github.com/flight-telemetry/internal/pkg/metrics"
	"github.com/flight-telemetry/internal/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

const healthCheckTimeout = 2 * time.Second

// HealthChecker - зависимость, проверяемая в /health
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Handlers - обработчики, которые регистрирует сервер
type Handlers struct {
	Flight    *handler.FlightHandler
	Map       *handler.MapHandler
	Arrivals  *handler.ArrivalsHandler
	Geo       *handler.GeoHandler
	CostLog   *handler.CostLogHandler
	Telemetry *handler.TelemetryHandler
}

// Server - HTTP сервер на основе Fiber
type Server struct {
	app      *fiber.App
	config   *config.Config
	logger   *zap.Logger
	handlers Handlers
	checks   map[string]HealthChecker
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	handlers Handlers,
	checks map[string]HealthChecker,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Flight Telemetry",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:      app,
		config:   cfg,
		logger:   logger,
		handlers: handlers,
		checks:   checks,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App возвращает fiber.App, используется в тестах
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(metrics.Middleware())
	s.app.Use(middleware.CORS(s.config.AllowedOrigins()))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)
	s.app.Get("/metrics", metrics.Handler())

	api := s.app.Group("/api/v1")

	api.Get("/health", s.health)

	// Справочники
	api.Get("/airports", s.handlers.Flight.GetAirports)
	api.Get("/flights", s.handlers.Flight.GetFlights)

	// Карта
	api.Post("/map/locations", s.handlers.Map.GetLocations)
	api.Get("/map/locations/:flight", s.handlers.Map.GetLocation)
	api.Post("/map/view", s.handlers.Map.GetMapView)

	api.Get("/arrivals", s.handlers.Arrivals.GetArrivals)

	api.Post("/telemetry", s.handlers.Telemetry.Ingest)

	geo := api.Group("/geo")
	geo.Get("/distance", s.handlers.Geo.Distance)
	geo.Get("/circle", s.handlers.Geo.Circle)
	geo.Get("/no-fly-zone", s.handlers.Geo.NoFlyZone)
	geo.Get("/no-fly-zone/overlay", s.handlers.Geo.NoFlyZoneOverlay)

	api.Get("/cost-log", s.handlers.CostLog.GetCostLog)
	api.Delete("/cost-log", s.handlers.CostLog.ResetCostLog)
}

// health godoc
// @Summary Health check
// @Description Проверяет PostgreSQL и Redis. 503 если хотя бы одна зависимость недоступна.
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /api/v1/health [get]
func (s *Server) health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), healthCheckTimeout)
	defer cancel()

	status := "healthy"
	code := fiber.StatusOK
	components := make(map[string]string, len(s.checks))

	for name, check := range s.checks {
		if err := check.Health(ctx); err != nil {
			s.logger.Warn("Health check failed", zap.String("component", name), zap.Error(err))
			components[name] = err.Error()
			status = "unhealthy"
			code = fiber.StatusServiceUnavailable
			continue
		}
		components[name] = "ok"
	}

	return c.Status(code).JSON(fiber.Map{
		"status":     status,
		"components": components,
		"time":       time.Now(),
	})
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - ошибки, не обработанные хендлерами (404 маршрута, паники, body limit)
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if e, ok := err.(*fiber.Error); ok {
			if e.Code >= fiber.StatusInternalServerError {
				logger.Error("HTTP Error", zap.String("path", c.Path()), zap.Int("status", e.Code), zap.Error(err))
			}
			return c.Status(e.Code).JSON(utils.ErrorResponse{
				Error: errors.New(httpErrorCode(e.Code), e.Message, e.Code),
			})
		}

		logger.Error("HTTP Error", zap.String("path", c.Path()), zap.Error(err))
		return utils.SendError(c, err)
	}
}

func httpErrorCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "REQUEST_TOO_LARGE"
	case fiber.StatusBadRequest:
		return "INVALID_REQUEST"
	default:
		if status >= fiber.StatusInternalServerError {
			return "INTERNAL_SERVER_ERROR"
		}
		return "HTTP_ERROR"
	}
}
