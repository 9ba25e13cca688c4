package repository

import (
	"context"
	"time"

	"github.com/flight-telemetry/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// Exists проверяет существование ключа
	Exists(ctx context.Context, key string) (bool, error)

	// GetAirports получает справочник аэропортов из кеша
	GetAirports(ctx context.Context) ([]domain.Airport, error)

	// SetAirports сохраняет справочник аэропортов в кеше
	SetAirports(ctx context.Context, airports []domain.Airport, ttl time.Duration) error

	// GetFlights получает справочник рейсов из кеша
	GetFlights(ctx context.Context) ([]domain.Flight, error)

	// SetFlights сохраняет справочник рейсов в кеше
	SetFlights(ctx context.Context, flights []domain.Flight, ttl time.Duration) error

	// GetArrivals получает табло прилётов аэропорта из кеша
	GetArrivals(ctx context.Context, airportCode string) (*domain.AirportArrivals, error)

	// SetArrivals сохраняет табло прилётов аэропорта в кеше
	SetArrivals(ctx context.Context, arrivals *domain.AirportArrivals, ttl time.Duration) error
}
