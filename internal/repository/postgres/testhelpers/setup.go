package testhelpers

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// Порядок важен: дочерние таблицы раньше справочников
var telemetryTables = []string{
	"current_locations",
	"location_events",
	"flights",
	"airports",
}

// TestDB - подключение к тестовой базе
type TestDB struct {
	DB     *sqlx.DB
	Logger *zap.Logger
}

// SetupTestDB подключается к тестовой базе.
// TEST_DB_DSN задаёт строку подключения целиком, иначе она собирается из TEST_DB_*.
// Если PostgreSQL недоступен, тест пропускается.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		dsn = fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			envOr("TEST_DB_HOST", "localhost"),
			envOr("TEST_DB_PORT", "5433"),
			envOr("TEST_DB_USER", "postgres"),
			envOr("TEST_DB_PASSWORD", "postgres"),
			envOr("TEST_DB_NAME", "flight_telemetry_test"),
			envOr("TEST_DB_SSLMODE", "disable"),
		)
	}

	db, err := connectWithRetry(t, dsn, 3)
	if err != nil {
		t.Skipf("PostgreSQL not available for integration tests: %v", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		logger = zap.NewNop()
	}

	return &TestDB{DB: db, Logger: logger}
}

// connectWithRetry ждёт подъёма базы в docker-compose: 200ms, 400ms, ...
func connectWithRetry(t *testing.T, dsn string, attempts int) (*sqlx.DB, error) {
	delay := 200 * time.Millisecond

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		db, err := sqlx.Connect("postgres", dsn)
		if err == nil {
			return db, nil
		}
		lastErr = err

		if attempt < attempts {
			t.Logf("database not ready (attempt %d/%d), retrying in %v", attempt, attempts, delay)
			time.Sleep(delay)
			delay *= 2
		}
	}
	return nil, lastErr
}

// Close закрывает подключение
func (tdb *TestDB) Close() {
	if tdb.DB != nil {
		_ = tdb.DB.Close()
	}
}

// Cleanup очищает таблицы телеметрии и справочники.
// Отсутствующие таблицы пропускаются.
func (tdb *TestDB) Cleanup(ctx context.Context) error {
	for _, table := range telemetryTables {
		if _, err := tdb.DB.ExecContext(ctx, "TRUNCATE TABLE "+table+" CASCADE"); err != nil {
			tdb.Logger.Debug("truncate skipped", zap.String("table", table), zap.Error(err))
		}
	}
	return nil
}

func envOr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
