package domain

import "github.com/flight-telemetry/internal/pkg/geo"

// MapCenter - начальный центр карты (географический центр США)
var MapCenter = geo.GeoPoint{Lat: 39.8283, Lon: -98.5795}

// MapZoom - начальный масштаб карты
const MapZoom = 4

// MinVisibleRemainingMiles - рейсы ближе к аэропорту прибытия на карте не показываются
const MinVisibleRemainingMiles = 50.0
