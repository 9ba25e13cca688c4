package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/flight-telemetry/internal/domain"
	"github.com/flight-telemetry/internal/domain/repository"
	pkgerrors "github.com/flight-telemetry/internal/pkg/errors"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

const locationColumns = "id, flight_number, departure_airport, arrival_airport, latitude, longitude, " +
	"speed, altitude, remaining_miles, remaining_minutes, reported_at"

const (
	queryAirports = "SELECT code, name, latitude, longitude FROM airports ORDER BY code"

	queryFlights = "SELECT flight_number, departure_airport, arrival_airport, icon_rotation FROM flights ORDER BY flight_number"

	queryLatestLocation = "SELECT " + locationColumns + " FROM location_events " +
		"WHERE flight_number = $1 ORDER BY reported_at DESC LIMIT 1"

	readCurrentLocation = "SELECT " + locationColumns + " FROM current_locations WHERE flight_number = $1"

	queryCurrentLocations = "SELECT " + locationColumns + " FROM current_locations " +
		"WHERE flight_number = ANY($1) ORDER BY flight_number"

	readAirportArrivals = "SELECT flight_number, departure_airport, remaining_minutes FROM current_locations " +
		"WHERE arrival_airport = $1 ORDER BY remaining_minutes, flight_number"

	// повторная доставка того же события из stream не ошибка
	insertLocationEvent = "INSERT INTO location_events (" + locationColumns + ") VALUES " +
		"(:id, :flight_number, :departure_airport, :arrival_airport, :latitude, :longitude, " +
		":speed, :altitude, :remaining_miles, :remaining_minutes, :reported_at) " +
		"ON CONFLICT (id) DO NOTHING"

	// старое событие не перезаписывает более свежее положение
	upsertCurrentLocation = "INSERT INTO current_locations (" + locationColumns + ") VALUES " +
		"(:id, :flight_number, :departure_airport, :arrival_airport, :latitude, :longitude, " +
		":speed, :altitude, :remaining_miles, :remaining_minutes, :reported_at) " +
		"ON CONFLICT (flight_number) DO UPDATE SET " +
		"id = EXCLUDED.id, departure_airport = EXCLUDED.departure_airport, " +
		"arrival_airport = EXCLUDED.arrival_airport, latitude = EXCLUDED.latitude, " +
		"longitude = EXCLUDED.longitude, speed = EXCLUDED.speed, altitude = EXCLUDED.altitude, " +
		"remaining_miles = EXCLUDED.remaining_miles, remaining_minutes = EXCLUDED.remaining_minutes, " +
		"reported_at = EXCLUDED.reported_at " +
		"WHERE current_locations.reported_at <= EXCLUDED.reported_at"
)

type flightRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewFlightRepository создает новый экземпляр flight repository
func NewFlightRepository(db *DB) repository.FlightRepository {
	return &flightRepository{
		db:     db,
		logger: db.logger,
	}
}

func (r *flightRepository) GetAirports(ctx context.Context) ([]domain.Airport, error) {
	airports := make([]domain.Airport, 0)
	if err := r.db.SelectContext(ctx, &airports, queryAirports); err != nil {
		r.logger.Error("failed to get airports", zap.Error(err))
		return nil, dbError("get airports", err)
	}
	return airports, nil
}

func (r *flightRepository) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	flights := make([]domain.Flight, 0)
	if err := r.db.SelectContext(ctx, &flights, queryFlights); err != nil {
		r.logger.Error("failed to get flights", zap.Error(err))
		return nil, dbError("get flights", err)
	}
	return flights, nil
}

func (r *flightRepository) QueryLocation(ctx context.Context, flightNumber string) (*domain.LocationQuery, error) {
	return r.getLocation(ctx, queryLatestLocation, flightNumber)
}

func (r *flightRepository) ReadCurrentLocation(ctx context.Context, flightNumber string) (*domain.LocationQuery, error) {
	return r.getLocation(ctx, readCurrentLocation, flightNumber)
}

// getLocation выполняет чтение одной строки; отсутствие строки не ошибка, Event = nil
func (r *flightRepository) getLocation(ctx context.Context, query, flightNumber string) (*domain.LocationQuery, error) {
	start := time.Now()

	var event domain.LocationEvent
	err := r.db.GetContext(ctx, &event, query, flightNumber)
	charge := chargeSince(start)

	result := &domain.LocationQuery{
		QueryCharge: domain.QueryCharge{Statement: query, Charge: charge},
	}

	if errors.Is(err, sql.ErrNoRows) {
		return result, nil
	}
	if err != nil {
		r.logger.Error("failed to read flight location",
			zap.String("flight_number", flightNumber),
			zap.Error(err))
		return nil, dbError("read location of "+flightNumber, err)
	}

	result.Event = &event
	return result, nil
}

func (r *flightRepository) QueryCurrentLocations(ctx context.Context, flightNumbers []string) (*domain.LocationsQuery, error) {
	start := time.Now()

	events := make([]domain.LocationEvent, 0, len(flightNumbers))
	if err := r.db.SelectContext(ctx, &events, queryCurrentLocations, pq.Array(flightNumbers)); err != nil {
		r.logger.Error("failed to query current locations",
			zap.Strings("flight_numbers", flightNumbers),
			zap.Error(err))
		return nil, dbError("query current locations", err)
	}

	return &domain.LocationsQuery{
		QueryCharge: domain.QueryCharge{Statement: queryCurrentLocations, Charge: chargeSince(start)},
		Events:      events,
	}, nil
}

func (r *flightRepository) ReadAirportArrivals(ctx context.Context, airportCode string) (*domain.ArrivalsRead, error) {
	start := time.Now()

	var flights []domain.ArrivingFlight
	if err := r.db.SelectContext(ctx, &flights, readAirportArrivals, airportCode); err != nil {
		r.logger.Error("failed to read airport arrivals",
			zap.String("airport", airportCode),
			zap.Error(err))
		return nil, dbError("read arrivals of "+airportCode, err)
	}

	if len(flights) == 0 {
		return nil, pkgerrors.ErrArrivalsNotFound.WithDetails(map[string]interface{}{
			"airport": airportCode,
		})
	}

	return &domain.ArrivalsRead{
		QueryCharge: domain.QueryCharge{Statement: readAirportArrivals, Charge: chargeSince(start)},
		Arrivals: &domain.AirportArrivals{
			AirportCode: airportCode,
			Flights:     flights,
		},
	}, nil
}

func (r *flightRepository) SaveLocationEvent(ctx context.Context, event *domain.LocationEvent) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return dbError("begin tx", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.NamedExecContext(ctx, insertLocationEvent, event); err != nil {
		r.logger.Error("failed to insert location event",
			zap.String("flight_number", event.FlightNumber),
			zap.Error(err))
		return dbError("insert location event", err)
	}

	if _, err := tx.NamedExecContext(ctx, upsertCurrentLocation, event); err != nil {
		r.logger.Error("failed to upsert current location",
			zap.String("flight_number", event.FlightNumber),
			zap.Error(err))
		return dbError("upsert current location", err)
	}

	if err := tx.Commit(); err != nil {
		return dbError("commit tx", err)
	}

	return nil
}

// chargeSince - стоимость запроса в условных единицах (миллисекунды)
func chargeSince(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}

// dbError помечает ошибку драйвера как DATABASE_ERROR, сохраняя исходную причину в цепочке
func dbError(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(pkgerrors.ErrDatabaseError, err))
}
