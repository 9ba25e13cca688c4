package telemetry_test

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
	"github.com/flight-telemetry/internal/usecase/dto"
	"github.com/flight-telemetry/internal/worker/telemetry"
)

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

// MockIngester is a mock of Ingester
type MockIngester struct {
	mock.Mock
}

func (m *MockIngester) Ingest(ctx context.Context, event *domain.LocationEvent) (*dto.IngestResult, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.IngestResult), args.Error(1)
}

const group = "test-group"

func noPending(streams *MockStreamRepository) {
	streams.On("ClaimPending", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.StreamMessage{}, nil)
}

func matchFlight(number string) interface{} {
	return mock.MatchedBy(func(e *domain.LocationEvent) bool { return e.FlightNumber == number })
}

func TestIngestWorker_Name(t *testing.T) {
	w := telemetry.NewIngestWorker(&MockStreamRepository{}, &MockIngester{}, group, 20, 3, zap.NewNop())

	assert.Equal(t, "telemetry-ingest", w.Name())
	assert.Equal(t, domain.StreamFlightTelemetry, w.Stream())
	assert.Equal(t, group, w.ConsumerGroup())
	assert.Contains(t, w.ConsumerName(), "telemetry-ingest-")
}

func TestIngestWorker_ProcessBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("empty stream", func(t *testing.T) {
		streams := &MockStreamRepository{}
		ingester := &MockIngester{}
		w := telemetry.NewIngestWorker(streams, ingester, group, 20, 3, zap.NewNop())
		noPending(streams)
		streams.On("ConsumeBatch", ctx, domain.StreamFlightTelemetry, group, w.ConsumerName(), 20).
			Return([]domain.StreamMessage{}, nil)

		processed, err := w.ProcessBatch(ctx)

		require.NoError(t, err)
		assert.Zero(t, processed)
		streams.AssertNotCalled(t, "AckMessages", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("valid malformed and rejected messages are acked", func(t *testing.T) {
		streams := &MockStreamRepository{}
		ingester := &MockIngester{}
		w := telemetry.NewIngestWorker(streams, ingester, group, 20, 3, zap.NewNop())
		noPending(streams)

		streams.On("ConsumeBatch", ctx, domain.StreamFlightTelemetry, group, w.ConsumerName(), 20).
			Return([]domain.StreamMessage{
				{ID: "1-0", Data: `{"flight_number":"CA101","departure_airport":"IAD","arrival_airport":"JFK","latitude":39.2,"longitude":-76.9}`},
				{ID: "2-0", Data: `not json`},
				{ID: "3-0", Data: ""},
				{ID: "4-0", Data: `{"flight_number":"CA202","departure_airport":"ORD","arrival_airport":"JFK","latitude":95,"longitude":-80}`},
			}, nil)
		ingester.On("Ingest", ctx, matchFlight("CA101")).Return(&dto.IngestResult{}, nil)
		ingester.On("Ingest", ctx, matchFlight("CA202")).Return(nil, pkgerrors.ErrInvalidCoordinates)
		streams.On("AckMessages", ctx, domain.StreamFlightTelemetry, group, []string{"1-0", "2-0", "3-0", "4-0"}).Return(nil)

		processed, err := w.ProcessBatch(ctx)

		require.NoError(t, err)
		assert.Equal(t, 4, processed)
		ingester.AssertNumberOfCalls(t, "Ingest", 2)
		streams.AssertExpectations(t)
	})

	t.Run("storage failure leaves message pending after retries", func(t *testing.T) {
		streams := &MockStreamRepository{}
		ingester := &MockIngester{}
		w := telemetry.NewIngestWorker(streams, ingester, group, 5, 2, zap.NewNop())
		noPending(streams)

		streams.On("ConsumeBatch", ctx, domain.StreamFlightTelemetry, group, w.ConsumerName(), 5).
			Return([]domain.StreamMessage{
				{ID: "1-0", Data: `{"flight_number":"CA101","latitude":39.2,"longitude":-76.9}`},
				{ID: "2-0", Data: `{"flight_number":"CA303","latitude":39,"longitude":-95}`},
			}, nil)
		ingester.On("Ingest", ctx, matchFlight("CA101")).Return(nil, errors.New("db down"))
		ingester.On("Ingest", ctx, matchFlight("CA303")).Return(&dto.IngestResult{}, nil)
		streams.On("AckMessages", ctx, domain.StreamFlightTelemetry, group, []string{"2-0"}).Return(nil)

		processed, err := w.ProcessBatch(ctx)

		require.NoError(t, err)
		assert.Equal(t, 2, processed)
		ingester.AssertNumberOfCalls(t, "Ingest", 3)
		streams.AssertExpectations(t)
	})

	t.Run("stopped worker leaves batch pending", func(t *testing.T) {
		streams := &MockStreamRepository{}
		ingester := &MockIngester{}
		w := telemetry.NewIngestWorker(streams, ingester, group, 20, 3, zap.NewNop())
		noPending(streams)
		require.NoError(t, w.Stop())

		streams.On("ConsumeBatch", ctx, domain.StreamFlightTelemetry, group, w.ConsumerName(), 20).
			Return([]domain.StreamMessage{
				{ID: "1-0", Data: `{"flight_number":"CA101","latitude":39.2,"longitude":-76.9}`},
			}, nil)
		streams.On("AckMessages", ctx, domain.StreamFlightTelemetry, group, []string{}).Return(nil)

		processed, err := w.ProcessBatch(ctx)

		require.NoError(t, err)
		assert.Equal(t, 1, processed)
		ingester.AssertNotCalled(t, "Ingest", mock.Anything, mock.Anything)
		streams.AssertExpectations(t)
	})

	t.Run("consume failure", func(t *testing.T) {
		streams := &MockStreamRepository{}
		w := telemetry.NewIngestWorker(streams, &MockIngester{}, group, 20, 3, zap.NewNop())
		noPending(streams)
		streams.On("ConsumeBatch", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("redis down"))

		processed, err := w.ProcessBatch(ctx)

		assert.Error(t, err)
		assert.Zero(t, processed)
	})
}

func TestIngestWorker_FailedMessageIsRedelivered(t *testing.T) {
	ctx := context.Background()
	streams := &MockStreamRepository{}
	ingester := &MockIngester{}
	w := telemetry.NewIngestWorker(streams, ingester, group, 20, 1, zap.NewNop()).
		WithClaimMinIdle(time.Millisecond)

	msg := domain.StreamMessage{ID: "1-0", Data: `{"flight_number":"CA101","latitude":39.2,"longitude":-76.9}`}

	// first batch: new message, storage fails
	streams.On("ClaimPending", ctx, domain.StreamFlightTelemetry, group, w.ConsumerName(), time.Millisecond, 20).
		Return([]domain.StreamMessage{}, nil).Once()
	streams.On("ConsumeBatch", ctx, domain.StreamFlightTelemetry, group, w.ConsumerName(), 20).
		Return([]domain.StreamMessage{msg}, nil).Once()
	ingester.On("Ingest", ctx, matchFlight("CA101")).Return(nil, errors.New("db down")).Once()
	streams.On("AckMessages", ctx, domain.StreamFlightTelemetry, group, []string{}).Return(nil).Once()

	processed, err := w.ProcessBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, processed)

	// second batch: the pending message is reclaimed and stored
	streams.On("ClaimPending", ctx, domain.StreamFlightTelemetry, group, w.ConsumerName(), time.Millisecond, 20).
		Return([]domain.StreamMessage{msg}, nil).Once()
	ingester.On("Ingest", ctx, matchFlight("CA101")).Return(&dto.IngestResult{}, nil).Once()
	streams.On("AckMessages", ctx, domain.StreamFlightTelemetry, group, []string{"1-0"}).Return(nil).Once()

	processed, err = w.ProcessBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, processed)

	ingester.AssertNumberOfCalls(t, "Ingest", 2)
	streams.AssertNumberOfCalls(t, "ConsumeBatch", 1)
	streams.AssertExpectations(t)
	ingester.AssertExpectations(t)
}

func TestIngestWorker_ClaimFailureFallsBackToNewMessages(t *testing.T) {
	ctx := context.Background()
	streams := &MockStreamRepository{}
	ingester := &MockIngester{}
	w := telemetry.NewIngestWorker(streams, ingester, group, 20, 3, zap.NewNop())

	streams.On("ClaimPending", ctx, domain.StreamFlightTelemetry, group, w.ConsumerName(), telemetry.DefaultClaimMinIdle, 20).
		Return(nil, errors.New("NOSCRIPT"))
	streams.On("ConsumeBatch", ctx, domain.StreamFlightTelemetry, group, w.ConsumerName(), 20).
		Return([]domain.StreamMessage{
			{ID: "5-0", Data: `{"flight_number":"CA101","latitude":39.2,"longitude":-76.9}`},
		}, nil)
	ingester.On("Ingest", ctx, matchFlight("CA101")).Return(&dto.IngestResult{}, nil)
	streams.On("AckMessages", ctx, domain.StreamFlightTelemetry, group, []string{"5-0"}).Return(nil)

	processed, err := w.ProcessBatch(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, processed)
	streams.AssertExpectations(t)
}

func TestIngestWorker_StartStop(t *testing.T) {
	streams := &MockStreamRepository{}
	w := telemetry.NewIngestWorker(streams, &MockIngester{}, group, 20, 3, zap.NewNop())

	streams.On("CreateConsumerGroup", mock.Anything, domain.StreamFlightTelemetry, group).Return(nil)
	noPending(streams)
	streams.On("ConsumeBatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.StreamMessage{}, nil)

	done := make(chan error, 1)
	go func() {
		done <- w.Start(context.Background())
	}()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, w.Stop())
	assert.True(t, w.IsStopped())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestIngestWorker_StartFailsWithoutConsumerGroup(t *testing.T) {
	streams := &MockStreamRepository{}
	w := telemetry.NewIngestWorker(streams, &MockIngester{}, group, 20, 3, zap.NewNop())
	streams.On("CreateConsumerGroup", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down"))

	err := w.Start(context.Background())

	assert.Error(t, err)
}
