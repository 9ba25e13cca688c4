package domain

import "time"

// Stream names
const (
	StreamFlightTelemetry = "stream:flight:telemetry"
	StreamNoFlyAlerts     = "stream:flight:nofly"
)

// NoFlyAlert - событие о входе самолёта в зону запрета полётов
type NoFlyAlert struct {
	FlightNumber  string    `json:"flight_number"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	DistanceMiles float64   `json:"distance_miles"`
	ReportedAt    time.Time `json:"reported_at"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
