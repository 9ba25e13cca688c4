package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flight-telemetry/internal/domain"
	"github.com/flight-telemetry/internal/domain/repository"
	pkgerrors "github.com/flight-telemetry/internal/pkg/errors"
	"github.com/flight-telemetry/internal/pkg/metrics"
	"github.com/flight-telemetry/internal/usecase/dto"
	"go.uber.org/zap"
)

const (
	statusArrived = "ARRIVED"
	// формат ожидаемого времени прилёта на табло
	arrivalTimeLayout = "03:04 PM"
)

// ArrivalsUseCase строит табло прилётов
type ArrivalsUseCase struct {
	flightRepo  repository.FlightRepository
	cacheRepo   repository.CacheRepository
	locationMap *LocationMapUseCase
	costLog     *CostLog
	logger      *zap.Logger
	cacheTTL    time.Duration
}

// NewArrivalsUseCase создает новый экземпляр ArrivalsUseCase
func NewArrivalsUseCase(
	flightRepo repository.FlightRepository,
	cacheRepo repository.CacheRepository,
	locationMap *LocationMapUseCase,
	costLog *CostLog,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *ArrivalsUseCase {
	return &ArrivalsUseCase{
		flightRepo:  flightRepo,
		cacheRepo:   cacheRepo,
		locationMap: locationMap,
		costLog:     costLog,
		logger:      logger,
		cacheTTL:    cacheTTL,
	}
}

// GetArrivalsBoard возвращает строки табло для аэропортов; пустой список - все аэропорты.
// Аэропорты без прилётов пропускаются.
func (uc *ArrivalsUseCase) GetArrivalsBoard(ctx context.Context, airportCodes []string, now time.Time) (*dto.ArrivalsBoard, error) {
	codes := airportCodes
	if len(codes) == 0 {
		metadata, err := uc.locationMap.LoadMetadata(ctx)
		if err != nil {
			return nil, err
		}
		// свой срез: не пишем в массив вызывающего
		codes = make([]string, 0, len(metadata.Airports))
		for _, a := range metadata.Airports {
			codes = append(codes, a.Code)
		}
	}

	board := &dto.ArrivalsBoard{
		Rows:        []dto.ArrivalsBoardRow{},
		GeneratedAt: now,
	}

	for _, code := range codes {
		arrivals, err := uc.getAirportArrivals(ctx, code)
		if err != nil {
			if errors.Is(err, pkgerrors.ErrArrivalsNotFound) {
				continue
			}
			return nil, err
		}

		for _, f := range arrivals.Flights {
			board.Rows = append(board.Rows, dto.ArrivalsBoardRow{
				Flight: f.FlightNumber,
				From:   f.DepartureAirport,
				To:     arrivals.AirportCode,
				Status: arrivalStatus(f.RemainingMinutes, now),
			})
		}
	}

	return board, nil
}

func (uc *ArrivalsUseCase) getAirportArrivals(ctx context.Context, code string) (*domain.AirportArrivals, error) {
	cached, err := uc.cacheRepo.GetArrivals(ctx, code)
	if err != nil {
		uc.logger.Warn("Failed to get arrivals from cache", zap.String("airport", code), zap.Error(err))
	}
	if cached != nil {
		metrics.CacheHits.WithLabelValues("arrivals").Inc()
		return cached, nil
	}
	metrics.CacheMisses.WithLabelValues("arrivals").Inc()

	result, err := uc.flightRepo.ReadAirportArrivals(ctx, code)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrArrivalsNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("read arrivals for %s: %w", code, err)
	}
	uc.costLog.Record("arrivals_read",
		formatCost("Arrivals board point read by pk/id "+code, result.Charge),
		result.Charge)

	if err := uc.cacheRepo.SetArrivals(ctx, result.Arrivals, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache arrivals", zap.String("airport", code), zap.Error(err))
	}

	return result.Arrivals, nil
}

func arrivalStatus(remainingMinutes int, now time.Time) string {
	if remainingMinutes == 0 {
		return statusArrived
	}
	return now.Add(time.Duration(remainingMinutes) * time.Minute).Format(arrivalTimeLayout)
}
