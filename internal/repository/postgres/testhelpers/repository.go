package testhelpers

import (
	"context"

	"github.com/flight-telemetry/internal/domain/repository"
	"github.com/flight-telemetry/internal/repository/postgres"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// ApplyMigrations applies the embedded schema migrations
func ApplyMigrations(ctx context.Context, db *sqlx.DB, logger *zap.Logger) error {
	return NewDBForTest(db, logger).Migrate(ctx)
}

// NewFlightRepositoryForTest creates a flight repository with test database and logger
func NewFlightRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.FlightRepository {
	return postgres.NewFlightRepository(NewDBForTest(db, logger))
}
