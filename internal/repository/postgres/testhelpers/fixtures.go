package testhelpers

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ReferenceData - аэропорты и рейсы для интеграционных тестов
const ReferenceData = `
INSERT INTO airports (code, name, latitude, longitude) VALUES
    ('IAD', 'Washington Dulles International', 38.9531, -77.4565),
    ('JFK', 'John F. Kennedy International', 40.6413, -73.7781),
    ('ORD', 'Chicago O''Hare International', 41.9742, -87.9073),
    ('LAX', 'Los Angeles International', 33.9416, -118.4085);

INSERT INTO flights (flight_number, departure_airport, arrival_airport, icon_rotation) VALUES
    ('CA101', 'IAD', 'JFK', 45),
    ('CA202', 'ORD', 'JFK', 90),
    ('CA303', 'JFK', 'LAX', 270),
    ('CA404', 'LAX', 'IAD', 60);
`

// LoadFixtures loads the reference data into the database
func LoadFixtures(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, ReferenceData); err != nil {
		return fmt.Errorf("load reference data: %w", err)
	}
	return nil
}
