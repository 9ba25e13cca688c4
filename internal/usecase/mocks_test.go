package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/flight-telemetry/internal/domain"
)

// MockFlightRepository is a mock of FlightRepository
type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) GetAirports(ctx context.Context) ([]domain.Airport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Airport), args.Error(1)
}

func (m *MockFlightRepository) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) QueryLocation(ctx context.Context, flightNumber string) (*domain.LocationQuery, error) {
	args := m.Called(ctx, flightNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LocationQuery), args.Error(1)
}

func (m *MockFlightRepository) ReadCurrentLocation(ctx context.Context, flightNumber string) (*domain.LocationQuery, error) {
	args := m.Called(ctx, flightNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LocationQuery), args.Error(1)
}

func (m *MockFlightRepository) QueryCurrentLocations(ctx context.Context, flightNumbers []string) (*domain.LocationsQuery, error) {
	args := m.Called(ctx, flightNumbers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LocationsQuery), args.Error(1)
}

func (m *MockFlightRepository) ReadAirportArrivals(ctx context.Context, airportCode string) (*domain.ArrivalsRead, error) {
	args := m.Called(ctx, airportCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ArrivalsRead), args.Error(1)
}

func (m *MockFlightRepository) SaveLocationEvent(ctx context.Context, event *domain.LocationEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) GetAirports(ctx context.Context) ([]domain.Airport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Airport), args.Error(1)
}

func (m *MockCacheRepository) SetAirports(ctx context.Context, airports []domain.Airport, ttl time.Duration) error {
	args := m.Called(ctx, airports, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockCacheRepository) SetFlights(ctx context.Context, flights []domain.Flight, ttl time.Duration) error {
	args := m.Called(ctx, flights, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) GetArrivals(ctx context.Context, airportCode string) (*domain.AirportArrivals, error) {
	args := m.Called(ctx, airportCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AirportArrivals), args.Error(1)
}

func (m *MockCacheRepository) SetArrivals(ctx context.Context, arrivals *domain.AirportArrivals, ttl time.Duration) error {
	args := m.Called(ctx, arrivals, ttl)
	return args.Error(0)
}

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, maxCount int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, maxCount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) ClaimPending(ctx context.Context, stream, group, consumer string, minIdle time.Duration, maxCount int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, minIdle, maxCount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) AckMessages(ctx context.Context, stream, group string, messageIDs []string) error {
	args := m.Called(ctx, stream, group, messageIDs)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

var testAirports = []domain.Airport{
	{Code: "IAD", Name: "Washington Dulles International", Latitude: 38.9531, Longitude: -77.4565},
	{Code: "JFK", Name: "John F. Kennedy International", Latitude: 40.6413, Longitude: -73.7781},
	{Code: "ORD", Name: "Chicago O'Hare International", Latitude: 41.9742, Longitude: -87.9073},
	{Code: "LAX", Name: "Los Angeles International", Latitude: 33.9416, Longitude: -118.4085},
}

var testFlights = []domain.Flight{
	{FlightNumber: "CA101", DepartureAirport: "IAD", ArrivalAirport: "JFK", IconRotation: 45},
	{FlightNumber: "CA202", DepartureAirport: "ORD", ArrivalAirport: "JFK", IconRotation: 90},
	{FlightNumber: "CA303", DepartureAirport: "JFK", ArrivalAirport: "LAX", IconRotation: 260},
	{FlightNumber: "CA404", DepartureAirport: "LAX", ArrivalAirport: "IAD", IconRotation: 80},
}

// newCachedMetadata primes the cache mock so LoadMetadata never touches the database.
func newCachedMetadata(cache *MockCacheRepository) {
	cache.On("GetAirports", mock.Anything).Return(testAirports, nil)
	cache.On("GetFlights", mock.Anything).Return(testFlights, nil)
}
