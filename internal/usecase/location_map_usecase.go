package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/flight-telemetry/internal/domain"
	"github.com/flight-telemetry/internal/domain/repository"
	pkgerrors "github.com/flight-telemetry/internal/pkg/errors"
	"github.com/flight-telemetry/internal/pkg/geo"
	"github.com/flight-telemetry/internal/pkg/metrics"
	"github.com/flight-telemetry/internal/usecase/dto"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

const (
	// materializedPointReadLimit - до этого числа рейсов point read дешевле одного пакетного запроса
	materializedPointReadLimit = 3

	maxConcurrentLocationQueries = 8

	noFlyZoneTag     = "dc"
	noFlyZoneTooltip = "Washington DC No-Fly Zone"
)

// LocationMapUseCase собирает положения рейсов и слои карты
type LocationMapUseCase struct {
	flightRepo  repository.FlightRepository
	cacheRepo   repository.CacheRepository
	costLog     *CostLog
	logger      *zap.Logger
	metadataTTL time.Duration
}

// NewLocationMapUseCase создает новый экземпляр LocationMapUseCase
func NewLocationMapUseCase(
	flightRepo repository.FlightRepository,
	cacheRepo repository.CacheRepository,
	costLog *CostLog,
	logger *zap.Logger,
	metadataTTL time.Duration,
) *LocationMapUseCase {
	return &LocationMapUseCase{
		flightRepo:  flightRepo,
		cacheRepo:   cacheRepo,
		costLog:     costLog,
		logger:      logger,
		metadataTTL: metadataTTL,
	}
}

// LoadMetadata возвращает справочники аэропортов и рейсов, используя кеш когда возможно
func (uc *LocationMapUseCase) LoadMetadata(ctx context.Context) (*dto.Metadata, error) {
	// 1. Проверяем кеш
	airports, airportsErr := uc.cacheRepo.GetAirports(ctx)
	flights, flightsErr := uc.cacheRepo.GetFlights(ctx)
	if airportsErr == nil && flightsErr == nil && airports != nil && flights != nil {
		metrics.CacheHits.WithLabelValues("metadata").Inc()
		uc.logger.Debug("Metadata fetched from cache")
		return &dto.Metadata{Airports: airports, Flights: flights}, nil
	}
	metrics.CacheMisses.WithLabelValues("metadata").Inc()

	if airportsErr != nil || flightsErr != nil {
		uc.logger.Warn("Failed to get metadata from cache",
			zap.NamedError("airports_error", airportsErr),
			zap.NamedError("flights_error", flightsErr))
	}

	// 2. Получаем из БД
	airports, err := uc.flightRepo.GetAirports(ctx)
	if err != nil {
		return nil, fmt.Errorf("get airports: %w", err)
	}
	flights, err = uc.flightRepo.GetFlights(ctx)
	if err != nil {
		return nil, fmt.Errorf("get flights: %w", err)
	}
	if airports == nil {
		airports = []domain.Airport{}
	}
	if flights == nil {
		flights = []domain.Flight{}
	}

	// 3. Кешируем, ошибки кеша не критичны
	if err := uc.cacheRepo.SetAirports(ctx, airports, uc.metadataTTL); err != nil {
		uc.logger.Warn("Failed to cache airports", zap.Error(err))
	}
	if err := uc.cacheRepo.SetFlights(ctx, flights, uc.metadataTTL); err != nil {
		uc.logger.Warn("Failed to cache flights", zap.Error(err))
	}

	uc.logger.Info("Metadata loaded",
		zap.Int("airports", len(airports)),
		zap.Int("flights", len(flights)))

	return &dto.Metadata{Airports: airports, Flights: flights}, nil
}

// GetFlightLocations возвращает положение для каждого известного рейса.
// Ключи есть для всех рейсов справочника; nil - рейс скрыт или не выбран.
func (uc *LocationMapUseCase) GetFlightLocations(ctx context.Context, req dto.FlightLocationsRequest) (map[string]*domain.LocationEvent, error) {
	metadata, err := uc.LoadMetadata(ctx)
	if err != nil {
		return nil, err
	}
	return uc.getFlightLocations(ctx, metadata.Flights, req)
}

// GetFlightLocation возвращает последнее положение одного рейса.
// Неизвестный рейс и рейс без телеметрии дают ErrFlightNotFound.
func (uc *LocationMapUseCase) GetFlightLocation(ctx context.Context, flightNumber string, useMaterializedView bool) (*domain.LocationEvent, error) {
	metadata, err := uc.LoadMetadata(ctx)
	if err != nil {
		return nil, err
	}

	flight, ok := findFlight(metadata.Flights, flightNumber)
	if !ok {
		return nil, pkgerrors.ErrFlightNotFound.WithDetails(map[string]interface{}{
			"flight_number": flightNumber,
		})
	}

	locations, err := uc.getFlightLocations(ctx, []domain.Flight{*flight}, dto.FlightLocationsRequest{
		ShowFlights:         true,
		UseMaterializedView: useMaterializedView,
	})
	if err != nil {
		return nil, err
	}

	event := locations[flightNumber]
	if event == nil {
		return nil, pkgerrors.ErrFlightNotFound.WithDetails(map[string]interface{}{
			"flight_number": flightNumber,
			"reason":        "no telemetry",
		})
	}
	return event, nil
}

func findFlight(flights []domain.Flight, flightNumber string) (*domain.Flight, bool) {
	for i := range flights {
		if flights[i].FlightNumber == flightNumber {
			return &flights[i], true
		}
	}
	return nil, false
}

func (uc *LocationMapUseCase) getFlightLocations(
	ctx context.Context,
	flights []domain.Flight,
	req dto.FlightLocationsRequest,
) (map[string]*domain.LocationEvent, error) {
	locations := make(map[string]*domain.LocationEvent, len(flights))
	selected := make([]string, 0, len(flights))

	wanted := toSet(req.FlightNumbers)
	for _, f := range flights {
		locations[f.FlightNumber] = nil
		if req.ShowFlights && (len(wanted) == 0 || wanted[f.FlightNumber]) {
			selected = append(selected, f.FlightNumber)
		}
	}

	if len(selected) == 0 {
		return locations, nil
	}

	var err error
	switch {
	case !req.UseMaterializedView:
		err = uc.queryLocations(ctx, selected, locations)
	case len(selected) <= materializedPointReadLimit:
		err = uc.readCurrentLocations(ctx, selected, locations)
	default:
		err = uc.queryCurrentLocations(ctx, selected, locations)
	}
	if err != nil {
		return nil, err
	}

	return locations, nil
}

// queryLocations ищет последнее событие каждого рейса в журнале событий
func (uc *LocationMapUseCase) queryLocations(ctx context.Context, flightNumbers []string, out map[string]*domain.LocationEvent) error {
	var mu sync.Mutex
	p := pool.New().
		WithMaxGoroutines(maxConcurrentLocationQueries).
		WithContext(ctx).
		WithCancelOnError()

	for _, flightNumber := range flightNumbers {
		flightNumber := flightNumber
		p.Go(func(ctx context.Context) error {
			result, err := uc.flightRepo.QueryLocation(ctx, flightNumber)
			if err != nil {
				return err
			}
			uc.costLog.RecordQuery("query_location", result.QueryCharge)

			mu.Lock()
			out[flightNumber] = result.Event
			mu.Unlock()
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return fmt.Errorf("query flight locations: %w", err)
	}
	return nil
}

// readCurrentLocations - point read из materialized view для каждого рейса
func (uc *LocationMapUseCase) readCurrentLocations(ctx context.Context, flightNumbers []string, out map[string]*domain.LocationEvent) error {
	for _, flightNumber := range flightNumbers {
		result, err := uc.flightRepo.ReadCurrentLocation(ctx, flightNumber)
		if err != nil {
			return fmt.Errorf("read current location: %w", err)
		}
		uc.costLog.Record("point_read",
			formatCost("Point read for flight "+flightNumber, result.Charge),
			result.Charge)
		out[flightNumber] = result.Event
	}
	return nil
}

// queryCurrentLocations - один пакетный запрос к materialized view
func (uc *LocationMapUseCase) queryCurrentLocations(ctx context.Context, flightNumbers []string, out map[string]*domain.LocationEvent) error {
	result, err := uc.flightRepo.QueryCurrentLocations(ctx, flightNumbers)
	if err != nil {
		return fmt.Errorf("query current locations: %w", err)
	}

	for i := range result.Events {
		event := result.Events[i]
		if _, known := out[event.FlightNumber]; known {
			out[event.FlightNumber] = &event
		}
	}
	uc.costLog.RecordQuery("query_current_locations", result.QueryCharge)
	return nil
}

// BuildMapView собирает слои карты по переключателям запроса
func (uc *LocationMapUseCase) BuildMapView(ctx context.Context, req dto.MapViewRequest) (*dto.MapView, error) {
	metadata, err := uc.LoadMetadata(ctx)
	if err != nil {
		return nil, err
	}

	locations, err := uc.getFlightLocations(ctx, metadata.Flights, req.FlightLocationsRequest)
	if err != nil {
		return nil, err
	}

	view := &dto.MapView{
		Center:  domain.MapCenter,
		Zoom:    domain.MapZoom,
		Flights: make([]dto.FlightMarker, 0, len(locations)),
	}

	if req.ShowAirports {
		view.Airports = metadata.Airports
	}
	if req.ShowNoFlyZone {
		view.NoFlyZone = NoFlyZoneOverlay()
	}

	// порядок маркеров совпадает с порядком справочника рейсов
	for _, flight := range metadata.Flights {
		location := locations[flight.FlightNumber]
		if location == nil || location.RemainingMiles <= domain.MinVisibleRemainingMiles {
			continue
		}
		view.Flights = append(view.Flights, buildFlightMarker(flight, *location, metadata.Airports, req))
	}

	return view, nil
}

// NoFlyZoneOverlay - контур зоны запрета полётов над Вашингтоном
func NoFlyZoneOverlay() *dto.Overlay {
	return &dto.Overlay{
		Tag:     noFlyZoneTag,
		Tooltip: noFlyZoneTooltip,
		Polyline: dto.Polyline{
			Points:          geo.CreateCirclePoints(geo.NoFlyZoneLatitude, geo.NoFlyZoneLongitude, geo.NoFlyZoneRadiusMiles),
			Color:           "red",
			StrokeThickness: 2,
		},
	}
}

func buildFlightMarker(flight domain.Flight, location domain.LocationEvent, airports []domain.Airport, req dto.MapViewRequest) dto.FlightMarker {
	position := geo.GeoPoint{Lat: location.Latitude, Lon: location.Longitude}

	marker := dto.FlightMarker{
		FlightNumber: location.FlightNumber,
		Position:     position,
		Rotation:     flight.IconRotation,
		Tooltip: fmt.Sprintf("Flight: %s (%s > %s)\nSpeed: %g mph\nAltitude: %g ft\nLocation: %g, %g",
			location.FlightNumber, location.DepartureAirport, location.ArrivalAirport,
			location.Speed, location.Altitude, location.Latitude, location.Longitude),
		InNoFlyZone: geo.IsInNoFlyZone(location.Latitude, location.Longitude),
		Location:    location,
	}

	if req.ShowLabels {
		marker.Label = location.FlightNumber
	}

	if req.ShowTrailing {
		if departure, ok := domain.FindAirport(airports, location.DepartureAirport); ok {
			marker.Trailing = &dto.Polyline{
				Points:          []geo.GeoPoint{{Lat: departure.Latitude, Lon: departure.Longitude}, position},
				Color:           "yellow",
				StrokeThickness: 2,
			}
		}
	}

	if req.ShowLeading {
		if arrival, ok := domain.FindAirport(airports, location.ArrivalAirport); ok {
			marker.Leading = &dto.Polyline{
				Points:          []geo.GeoPoint{{Lat: arrival.Latitude, Lon: arrival.Longitude}, position},
				Color:           "yellow",
				StrokeThickness: 2,
				Dashed:          true,
			}
		}
	}

	return marker
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
