package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Flight - рейс из справочника
type Flight struct {
	FlightNumber     string  `json:"flight_number" db:"flight_number"`
	DepartureAirport string  `json:"departure_airport" db:"departure_airport"`
	ArrivalAirport   string  `json:"arrival_airport" db:"arrival_airport"`
	IconRotation     float64 `json:"icon_rotation" db:"icon_rotation"`
}

// Label возвращает подпись рейса вида "CA101 IAD > JFK"
func (f Flight) Label() string {
	return fmt.Sprintf("%s %s > %s", f.FlightNumber, f.DepartureAirport, f.ArrivalAirport)
}

// LocationEvent - телеметрия положения самолёта
type LocationEvent struct {
	ID               uuid.UUID `json:"id" db:"id"`
	FlightNumber     string    `json:"flight_number" db:"flight_number" validate:"required"`
	DepartureAirport string    `json:"departure_airport" db:"departure_airport" validate:"required"`
	ArrivalAirport   string    `json:"arrival_airport" db:"arrival_airport" validate:"required"`
	Latitude         float64   `json:"latitude" db:"latitude" validate:"latitude"`
	Longitude        float64   `json:"longitude" db:"longitude" validate:"longitude"`
	Speed            float64   `json:"speed" db:"speed" validate:"gte=0"`
	Altitude         float64   `json:"altitude" db:"altitude"`
	RemainingMiles   float64   `json:"remaining_miles" db:"remaining_miles"`
	RemainingMinutes int       `json:"remaining_minutes" db:"remaining_minutes" validate:"gte=0"`
	ReportedAt       time.Time `json:"reported_at" db:"reported_at"`
}

// ArrivingFlight - строка табло прилётов
type ArrivingFlight struct {
	FlightNumber     string `json:"flight_number" db:"flight_number"`
	DepartureAirport string `json:"departure_airport" db:"departure_airport"`
	RemainingMinutes int    `json:"remaining_minutes" db:"remaining_minutes"`
}

// AirportArrivals - прилёты в аэропорт
type AirportArrivals struct {
	AirportCode string           `json:"airport_code"`
	Flights     []ArrivingFlight `json:"flights"`
}
