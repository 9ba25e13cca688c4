package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/flight-telemetry/internal/domain"
	"github.com/flight-telemetry/internal/domain/repository"
	pkgerrors "github.com/flight-telemetry/internal/pkg/errors"
	"github.com/flight-telemetry/internal/pkg/metrics"
	"github.com/flight-telemetry/internal/usecase/dto"
	"github.com/flight-telemetry/internal/worker"
	"go.uber.org/zap"
)

const (
	defaultBatchSize = 20
	emptyQueueSleep  = 100 * time.Millisecond
	errorSleep       = time.Second
	retryBackoff     = 200 * time.Millisecond

	// DefaultClaimMinIdle - через сколько простоя в pending сообщение забирается повторно
	DefaultClaimMinIdle = 30 * time.Second
)

// Ingester сохраняет одно событие телеметрии
type Ingester interface {
	Ingest(ctx context.Context, event *domain.LocationEvent) (*dto.IngestResult, error)
}

// IngestWorker читает телеметрию из stream:flight:telemetry и сохраняет её
type IngestWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	ingester     Ingester
	batchSize    int
	maxRetries   int
	claimMinIdle time.Duration
}

// NewIngestWorker создает новый IngestWorker
func NewIngestWorker(
	streamRepo repository.StreamRepository,
	ingester Ingester,
	consumerGroup string,
	batchSize int,
	maxRetries int,
	logger *zap.Logger,
) *IngestWorker {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	if maxRetries <= 0 {
		maxRetries = 1
	}

	return &IngestWorker{
		BaseWorker:   worker.NewBaseWorker("telemetry-ingest", domain.StreamFlightTelemetry, consumerGroup, logger),
		streamRepo:   streamRepo,
		ingester:     ingester,
		batchSize:    batchSize,
		maxRetries:   maxRetries,
		claimMinIdle: DefaultClaimMinIdle,
	}
}

// WithClaimMinIdle задаёт минимальный простой сообщения в pending перед повторной доставкой
func (w *IngestWorker) WithClaimMinIdle(d time.Duration) *IngestWorker {
	if d > 0 {
		w.claimMinIdle = d
	}
	return w
}

// Start создаёт consumer group и обрабатывает батчи до Stop или отмены контекста
func (w *IngestWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting telemetry ingest worker",
		zap.String("stream", w.Stream()),
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.ConsumerName()),
		zap.Int("max_batch_size", w.batchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, w.Stream(), w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil
		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()
		default:
		}

		processed, err := w.ProcessBatch(ctx)
		if err != nil {
			logger.Error("Failed to process batch", zap.Error(err))
			w.Pause(ctx, errorSleep)
			continue
		}

		if processed == 0 {
			w.Pause(ctx, emptyQueueSleep)
		}
	}
}

// ProcessBatch читает до batchSize сообщений и возвращает их количество.
// Битые и невалидные сообщения подтверждаются сразу; сообщения, которые
// не удалось сохранить, остаются в pending и забираются повторно после claimMinIdle.
func (w *IngestWorker) ProcessBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.nextMessages(ctx)
	if err != nil {
		return 0, err
	}
	if len(messages) == 0 {
		return 0, nil
	}

	logger.Debug("Processing batch", zap.Int("message_count", len(messages)))

	ackIDs := make([]string, 0, len(messages))
	var saved, rejected, failed int

	for _, msg := range messages {
		if w.IsStopped() {
			// необработанный остаток батча останется в pending
			break
		}

		event, err := parseMessage(msg)
		if err != nil {
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			metrics.TelemetryRejected.WithLabelValues("malformed").Inc()
			ackIDs = append(ackIDs, msg.ID)
			rejected++
			continue
		}

		err = w.ingestWithRetry(ctx, event)
		switch {
		case err == nil:
			ackIDs = append(ackIDs, msg.ID)
			saved++
		case isRejection(err):
			logger.Warn("Telemetry rejected",
				zap.String("message_id", msg.ID),
				zap.String("flight_number", event.FlightNumber),
				zap.Error(err))
			ackIDs = append(ackIDs, msg.ID)
			rejected++
		default:
			logger.Error("Failed to ingest telemetry, leaving pending",
				zap.String("message_id", msg.ID),
				zap.String("flight_number", event.FlightNumber),
				zap.Error(err))
			failed++
		}
	}

	if err := w.streamRepo.AckMessages(ctx, w.Stream(), w.ConsumerGroup(), ackIDs); err != nil {
		// сообщения будут переобработаны, upsert идемпотентен по reported_at
		logger.Error("Failed to ack messages", zap.Error(err))
	}

	logger.Info("Batch processed",
		zap.Int("saved", saved),
		zap.Int("rejected", rejected),
		zap.Int("failed", failed))

	return len(messages), nil
}

// nextMessages сначала забирает зависшие в pending сообщения, затем читает новые
func (w *IngestWorker) nextMessages(ctx context.Context) ([]domain.StreamMessage, error) {
	claimed, err := w.streamRepo.ClaimPending(ctx, w.Stream(), w.ConsumerGroup(), w.ConsumerName(), w.claimMinIdle, w.batchSize)
	if err != nil {
		// новые сообщения читаем, даже если повторная доставка не удалась
		w.Logger().Warn("Failed to claim pending messages", zap.Error(err))
	}
	if len(claimed) > 0 {
		return claimed, nil
	}

	messages, err := w.streamRepo.ConsumeBatch(ctx, w.Stream(), w.ConsumerGroup(), w.ConsumerName(), w.batchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to consume batch: %w", err)
	}
	return messages, nil
}

func (w *IngestWorker) ingestWithRetry(ctx context.Context, event *domain.LocationEvent) error {
	var err error
	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		_, err = w.ingester.Ingest(ctx, event)
		if err == nil || isRejection(err) {
			return err
		}
		if attempt < w.maxRetries && !w.Pause(ctx, time.Duration(attempt)*retryBackoff) {
			return err
		}
	}
	return err
}

// isRejection - ошибка данных, повтор не поможет
func isRejection(err error) bool {
	return errors.Is(err, pkgerrors.ErrInvalidCoordinates) || errors.Is(err, pkgerrors.ErrInvalidTelemetry)
}

func parseMessage(msg domain.StreamMessage) (*domain.LocationEvent, error) {
	if msg.Data == "" {
		return nil, fmt.Errorf("empty message data")
	}

	var event domain.LocationEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	return &event, nil
}
