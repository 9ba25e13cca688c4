package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/flight-telemetry/internal/domain"
	pkgerrors "github.com/flight-telemetry/internal/pkg/errors"
	"github.com/flight-telemetry/internal/usecase"
	"github.com/flight-telemetry/internal/usecase/dto"
)

func newArrivalsUseCase(flightRepo *MockFlightRepository, cache *MockCacheRepository) (*usecase.ArrivalsUseCase, *usecase.CostLog) {
	locationMap, costLog := newLocationMapUseCase(flightRepo, cache)
	return usecase.NewArrivalsUseCase(flightRepo, cache, locationMap, costLog, zap.NewNop(), 15*time.Second), costLog
}

func TestArrivalsUseCase_GetArrivalsBoard(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 13, 50, 0, 0, time.UTC)

	jfk := &domain.AirportArrivals{
		AirportCode: "JFK",
		Flights: []domain.ArrivingFlight{
			{FlightNumber: "CA202", DepartureAirport: "ORD", RemainingMinutes: 0},
			{FlightNumber: "CA101", DepartureAirport: "IAD", RemainingMinutes: 25},
		},
	}

	t.Run("rows with arrival status", func(t *testing.T) {
		flightRepo := &MockFlightRepository{}
		cache := &MockCacheRepository{}
		cache.On("GetArrivals", ctx, "JFK").Return(nil, nil)
		flightRepo.On("ReadAirportArrivals", ctx, "JFK").Return(&domain.ArrivalsRead{
			QueryCharge: domain.QueryCharge{Statement: "SELECT arrivals", Charge: 1},
			Arrivals:    jfk,
		}, nil)
		cache.On("SetArrivals", ctx, jfk, 15*time.Second).Return(nil)

		uc, costLog := newArrivalsUseCase(flightRepo, cache)
		board, err := uc.GetArrivalsBoard(ctx, []string{"JFK"}, now)

		require.NoError(t, err)
		assert.Equal(t, now, board.GeneratedAt)
		assert.Equal(t, []dto.ArrivalsBoardRow{
			{Flight: "CA202", From: "ORD", To: "JFK", Status: "ARRIVED"},
			{Flight: "CA101", From: "IAD", To: "JFK", Status: "02:15 PM"},
		}, board.Rows)

		entries := costLog.Drain()
		require.Len(t, entries, 1)
		assert.Equal(t, "'Arrivals board point read by pk/id JFK' - Cost: 1.00 units", entries[0].Output)
		cache.AssertExpectations(t)
	})

	t.Run("cached arrivals are not charged", func(t *testing.T) {
		flightRepo := &MockFlightRepository{}
		cache := &MockCacheRepository{}
		cache.On("GetArrivals", ctx, "JFK").Return(jfk, nil)

		uc, costLog := newArrivalsUseCase(flightRepo, cache)
		board, err := uc.GetArrivalsBoard(ctx, []string{"JFK"}, now)

		require.NoError(t, err)
		assert.Len(t, board.Rows, 2)
		assert.Empty(t, costLog.Drain())
		flightRepo.AssertNotCalled(t, "ReadAirportArrivals", mock.Anything, mock.Anything)
	})

	t.Run("airports without arrivals are skipped", func(t *testing.T) {
		flightRepo := &MockFlightRepository{}
		cache := &MockCacheRepository{}
		newCachedMetadata(cache)
		cache.On("GetArrivals", ctx, mock.Anything).Return(nil, nil)
		cache.On("SetArrivals", ctx, mock.Anything, mock.Anything).Return(nil)
		flightRepo.On("ReadAirportArrivals", ctx, "JFK").Return(&domain.ArrivalsRead{Arrivals: jfk}, nil)
		for _, code := range []string{"IAD", "ORD", "LAX"} {
			flightRepo.On("ReadAirportArrivals", ctx, code).
				Return(nil, pkgerrors.ErrArrivalsNotFound.WithDetails(map[string]interface{}{"airport": code}))
		}

		uc, _ := newArrivalsUseCase(flightRepo, cache)
		board, err := uc.GetArrivalsBoard(ctx, nil, now)

		require.NoError(t, err)
		assert.Len(t, board.Rows, 2)
		flightRepo.AssertNumberOfCalls(t, "ReadAirportArrivals", 4)
	})

	t.Run("caller slice capacity is left untouched", func(t *testing.T) {
		flightRepo := &MockFlightRepository{}
		cache := &MockCacheRepository{}
		newCachedMetadata(cache)
		cache.On("GetArrivals", ctx, mock.Anything).Return(nil, nil)
		flightRepo.On("ReadAirportArrivals", ctx, mock.Anything).Return(nil, pkgerrors.ErrArrivalsNotFound)

		codes := make([]string, 0, 4)
		uc, _ := newArrivalsUseCase(flightRepo, cache)
		_, err := uc.GetArrivalsBoard(ctx, codes, now)

		require.NoError(t, err)
		assert.Empty(t, codes)
		assert.Equal(t, []string{"", "", "", ""}, codes[:cap(codes)])
		flightRepo.AssertNumberOfCalls(t, "ReadAirportArrivals", 4)
	})

	t.Run("empty board", func(t *testing.T) {
		flightRepo := &MockFlightRepository{}
		cache := &MockCacheRepository{}
		cache.On("GetArrivals", ctx, "LAX").Return(nil, nil)
		flightRepo.On("ReadAirportArrivals", ctx, "LAX").Return(nil, pkgerrors.ErrArrivalsNotFound)

		uc, _ := newArrivalsUseCase(flightRepo, cache)
		board, err := uc.GetArrivalsBoard(ctx, []string{"LAX"}, now)

		require.NoError(t, err)
		assert.NotNil(t, board.Rows)
		assert.Empty(t, board.Rows)
	})

	t.Run("database failure is returned", func(t *testing.T) {
		flightRepo := &MockFlightRepository{}
		cache := &MockCacheRepository{}
		cache.On("GetArrivals", ctx, "JFK").Return(nil, errors.New("redis down"))
		flightRepo.On("ReadAirportArrivals", ctx, "JFK").Return(nil, errors.New("db down"))

		uc, _ := newArrivalsUseCase(flightRepo, cache)
		board, err := uc.GetArrivalsBoard(ctx, []string{"JFK"}, now)

		assert.Error(t, err)
		assert.Nil(t, board)
	})
}
