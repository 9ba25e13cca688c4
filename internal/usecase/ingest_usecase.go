package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/flight-telemetry/internal/domain"
	"github.com/flight-telemetry/internal/domain/repository"
	pkgerrors "github.com/flight-telemetry/internal/pkg/errors"
	"github.com/flight-telemetry/internal/pkg/geo"
	"github.com/flight-telemetry/internal/pkg/metrics"
	"github.com/flight-telemetry/internal/pkg/validator"
	"github.com/flight-telemetry/internal/usecase/dto"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IngestUseCase принимает телеметрию рейсов
type IngestUseCase struct {
	flightRepo  repository.FlightRepository
	streamRepo  repository.StreamRepository
	locationMap *LocationMapUseCase
	logger      *zap.Logger
	now         func() time.Time
}

// NewIngestUseCase создает новый экземпляр IngestUseCase
func NewIngestUseCase(
	flightRepo repository.FlightRepository,
	streamRepo repository.StreamRepository,
	locationMap *LocationMapUseCase,
	logger *zap.Logger,
) *IngestUseCase {
	return &IngestUseCase{
		flightRepo:  flightRepo,
		streamRepo:  streamRepo,
		locationMap: locationMap,
		logger:      logger,
		now:         time.Now,
	}
}

// Ingest проверяет, дополняет и сохраняет событие телеметрии.
// При входе в зону запрета полётов публикует NoFlyAlert.
func (uc *IngestUseCase) Ingest(ctx context.Context, event *domain.LocationEvent) (*dto.IngestResult, error) {
	if !geo.ValidateCoordinates(event.Latitude, event.Longitude) {
		metrics.TelemetryRejected.WithLabelValues("coordinates").Inc()
		return nil, pkgerrors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{
			"flight_number": event.FlightNumber,
			"latitude":      event.Latitude,
			"longitude":     event.Longitude,
		})
	}

	if err := validator.Validate(event); err != nil {
		metrics.TelemetryRejected.WithLabelValues("validation").Inc()
		return nil, pkgerrors.ErrInvalidTelemetry.WithDetails(map[string]interface{}{
			"flight_number": event.FlightNumber,
			"error":         err.Error(),
		})
	}

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.ReportedAt.IsZero() {
		event.ReportedAt = uc.now().UTC()
	}

	if event.RemainingMiles <= 0 {
		uc.fillRemainingMiles(ctx, event)
	}

	if err := uc.flightRepo.SaveLocationEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("save location event: %w", err)
	}
	metrics.TelemetryIngested.Inc()

	result := &dto.IngestResult{
		Event:       *event,
		InNoFlyZone: geo.IsInNoFlyZone(event.Latitude, event.Longitude),
	}

	if result.InNoFlyZone {
		alert := domain.NoFlyAlert{
			FlightNumber:  event.FlightNumber,
			Latitude:      event.Latitude,
			Longitude:     event.Longitude,
			DistanceMiles: geo.DistanceToNoFlyZone(event.Latitude, event.Longitude),
			ReportedAt:    event.ReportedAt,
		}
		metrics.NoFlyZoneAlerts.Inc()
		uc.logger.Warn("Flight inside no-fly zone",
			zap.String("flight_number", alert.FlightNumber),
			zap.Float64("distance_miles", alert.DistanceMiles))

		if err := uc.streamRepo.PublishToStream(ctx, domain.StreamNoFlyAlerts, alert); err != nil {
			// событие уже сохранено, алерт не блокирует приём
			uc.logger.Error("Failed to publish no-fly alert",
				zap.String("flight_number", alert.FlightNumber),
				zap.Error(err))
		}
	}

	return result, nil
}

func (uc *IngestUseCase) fillRemainingMiles(ctx context.Context, event *domain.LocationEvent) {
	metadata, err := uc.locationMap.LoadMetadata(ctx)
	if err != nil {
		uc.logger.Warn("Failed to load airports for remaining distance", zap.Error(err))
		return
	}

	arrival, ok := domain.FindAirport(metadata.Airports, event.ArrivalAirport)
	if !ok {
		uc.logger.Debug("Unknown arrival airport",
			zap.String("flight_number", event.FlightNumber),
			zap.String("arrival_airport", event.ArrivalAirport))
		return
	}

	event.RemainingMiles = geo.CalculateDistance(event.Latitude, event.Longitude, arrival.Latitude, arrival.Longitude)
}
