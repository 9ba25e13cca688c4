package dto

import (
	"time"

	"github.com/flight-telemetry/internal/domain"
	"github.com/flight-telemetry/internal/pkg/geo"
)

// Metadata - справочники для построения карты и табло
type Metadata struct {
	Airports []domain.Airport `json:"airports"`
	Flights  []domain.Flight  `json:"flights"`
}

// Polyline - линия на карте
type Polyline struct {
	Points          []geo.GeoPoint `json:"points"`
	Color           string         `json:"color"`
	StrokeThickness int            `json:"stroke_thickness"`
	Dashed          bool           `json:"dashed,omitempty"`
}

// Overlay - именованный слой-контур (зона запрета полётов)
type Overlay struct {
	Tag     string `json:"tag"`
	Tooltip string `json:"tooltip"`
	Polyline
}

// FlightMarker - самолёт на карте
type FlightMarker struct {
	FlightNumber string               `json:"flight_number"`
	Position     geo.GeoPoint         `json:"position"`
	Rotation     float64              `json:"rotation"`
	Tooltip      string               `json:"tooltip"`
	Label        string               `json:"label,omitempty"`
	Trailing     *Polyline            `json:"trailing,omitempty"`
	Leading      *Polyline            `json:"leading,omitempty"`
	InNoFlyZone  bool                 `json:"in_no_fly_zone"`
	Location     domain.LocationEvent `json:"location"`
}

// MapView - полное состояние карты
type MapView struct {
	Center    geo.GeoPoint     `json:"center"`
	Zoom      int              `json:"zoom"`
	Airports  []domain.Airport `json:"airports,omitempty"`
	NoFlyZone *Overlay         `json:"no_fly_zone,omitempty"`
	Flights   []FlightMarker   `json:"flights"`
}

// ArrivalsBoardRow - строка табло прилётов
type ArrivalsBoardRow struct {
	Flight string `json:"flight"`
	From   string `json:"from"`
	To     string `json:"to"`
	Status string `json:"status"`
}

// ArrivalsBoard - табло прилётов
type ArrivalsBoard struct {
	Rows        []ArrivalsBoardRow `json:"rows"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// CostLogEntry - строка журнала стоимости запросов
type CostLogEntry struct {
	At     time.Time `json:"at"`
	Output string    `json:"output"`
	Charge float64   `json:"charge"`
}

// CostSummary - итог журнала: сумма, прошедшее время и средняя скорость расхода
type CostSummary struct {
	TotalCharge     float64       `json:"total_charge"`
	Elapsed         time.Duration `json:"elapsed_ns"`
	ElapsedText     string        `json:"elapsed"`
	ChargePerSecond int           `json:"charge_per_second"`
}

// CostLogResponse - ответ журнала стоимости
type CostLogResponse struct {
	Entries []CostLogEntry `json:"entries"`
	Summary CostSummary    `json:"summary"`
}

// DistanceResponse - расстояние в милях
type DistanceResponse struct {
	Miles float64 `json:"miles"`
}

// NoFlyZoneResponse - результат проверки зоны
type NoFlyZoneResponse struct {
	InNoFlyZone   bool         `json:"in_no_fly_zone"`
	DistanceMiles float64      `json:"distance_miles"`
	Center        geo.GeoPoint `json:"center"`
	RadiusMiles   float64      `json:"radius_miles"`
}

// IngestResult - результат приёма события телеметрии
type IngestResult struct {
	Event       domain.LocationEvent `json:"event"`
	InNoFlyZone bool                 `json:"in_no_fly_zone"`
}
