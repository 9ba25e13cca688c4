package usecase

import (
	"fmt"
	"sync"
	"time"

	"github.com/flight-telemetry/internal/domain"
	"github.com/flight-telemetry/internal/pkg/metrics"
	"github.com/flight-telemetry/internal/usecase/dto"
	"go.uber.org/zap"
)

// CostLog - журнал стоимости запросов к БД с накопительным итогом
type CostLog struct {
	mu        sync.Mutex
	pending   []dto.CostLogEntry
	total     float64
	startedAt time.Time
	now       func() time.Time
	logger    *zap.Logger
}

// NewCostLog создает журнал, отсчёт времени начинается с момента создания
func NewCostLog(logger *zap.Logger) *CostLog {
	return newCostLogWithClock(logger, time.Now)
}

func newCostLogWithClock(logger *zap.Logger, now func() time.Time) *CostLog {
	return &CostLog{
		startedAt: now(),
		now:       now,
		logger:    logger,
	}
}

// Record добавляет строку в журнал и прибавляет стоимость к итогу
func (l *CostLog) Record(operation, output string, charge float64) {
	l.logger.Debug(output,
		zap.String("operation", operation),
		zap.Float64("charge", charge))
	metrics.QueryCharge.WithLabelValues(operation).Add(charge)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.total += charge
	l.pending = append(l.pending, dto.CostLogEntry{
		At:     l.now(),
		Output: output,
		Charge: charge,
	})
}

// RecordQuery записывает запрос в формате "'<statement>' - Cost: <charge> units"
func (l *CostLog) RecordQuery(operation string, q domain.QueryCharge) {
	l.Record(operation, formatCost(q.Statement, q.Charge), q.Charge)
}

// Drain возвращает накопленные строки и очищает буфер; итог сохраняется
func (l *CostLog) Drain() []dto.CostLogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := l.pending
	l.pending = nil
	if entries == nil {
		entries = []dto.CostLogEntry{}
	}
	return entries
}

// Summary возвращает итог и среднюю стоимость в секунду с момента последнего сброса
func (l *CostLog) Summary() dto.CostSummary {
	l.mu.Lock()
	defer l.mu.Unlock()

	elapsed := l.now().Sub(l.startedAt)
	summary := dto.CostSummary{
		TotalCharge: l.total,
		Elapsed:     elapsed,
		ElapsedText: formatElapsed(elapsed),
	}
	if seconds := elapsed.Seconds(); seconds > 0 {
		summary.ChargePerSecond = int(l.total / seconds)
	}
	return summary
}

// Reset очищает журнал, обнуляет итог и перезапускает отсчёт времени
func (l *CostLog) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.pending = nil
	l.total = 0
	l.startedAt = l.now()
}

func formatCost(statement string, charge float64) string {
	return fmt.Sprintf("'%s' - Cost: %.2f units", statement, charge)
}

func formatElapsed(d time.Duration) string {
	d = d.Truncate(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh %dm %ds", h, m, s)
}
