package repository

import (
	"context"

	"github.com/flight-telemetry/internal/domain"
)

// FlightRepository - хранилище справочников и телеметрии рейсов.
// Каждая операция чтения возвращает стоимость запроса.
type FlightRepository interface {
	// GetAirports возвращает все аэропорты
	GetAirports(ctx context.Context) ([]domain.Airport, error)

	// GetFlights возвращает все рейсы
	GetFlights(ctx context.Context) ([]domain.Flight, error)

	// QueryLocation ищет последнее событие телеметрии рейса в журнале событий
	QueryLocation(ctx context.Context, flightNumber string) (*domain.LocationQuery, error)

	// ReadCurrentLocation читает текущее положение рейса из materialized view
	ReadCurrentLocation(ctx context.Context, flightNumber string) (*domain.LocationQuery, error)

	// QueryCurrentLocations читает текущие положения нескольких рейсов одним запросом
	QueryCurrentLocations(ctx context.Context, flightNumbers []string) (*domain.LocationsQuery, error)

	// ReadAirportArrivals читает табло прилётов аэропорта
	ReadAirportArrivals(ctx context.Context, airportCode string) (*domain.ArrivalsRead, error)

	// SaveLocationEvent сохраняет событие и обновляет текущее положение рейса
	SaveLocationEvent(ctx context.Context, event *domain.LocationEvent) error
}
