// Package geo содержит геодезические примитивы на сферической модели Земли.
// Все функции чистые: без состояния и без ввода-вывода, безопасны для конкурентного вызова.
package geo

import "math"

const (
	// EarthRadiusMiles - радиус Земли в статутных милях для формулы точки назначения
	EarthRadiusMiles = 3956.0

	// nauticalMilesPerDegree * statuteMilesPerNauticalMile переводят градус дуги в мили
	nauticalMilesPerDegree      = 60.0
	statuteMilesPerNauticalMile = 1.1515

	// CirclePointCount - пеленги 0..360 включительно, первая и последняя точки совпадают
	CirclePointCount = 361
)

// Зона запрета полётов над Вашингтоном
const (
	NoFlyZoneLatitude    = 38.9072
	NoFlyZoneLongitude   = -77.0369
	NoFlyZoneRadiusMiles = 150.0
)

// GeoPoint - точка в десятичных градусах
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// CalculateDistance вычисляет расстояние по большому кругу в милях (сферическая теорема косинусов)
func CalculateDistance(lat1, lon1, lat2, lon2 float64) float64 {
	if lat1 == lat2 && lon1 == lon2 {
		return 0
	}

	phi1 := toRadians(lat1)
	phi2 := toRadians(lat2)

	cosD := math.Sin(phi1)*math.Sin(phi2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Cos(toRadians(lon1-lon2))

	// округление может вывести аргумент за [-1, 1] для совпадающих и антиподальных точек
	cosD = math.Max(-1, math.Min(1, cosD))

	return toDegrees(math.Acos(cosD)) * nauticalMilesPerDegree * statuteMilesPerNauticalMile
}

// CreateCirclePoints строит замкнутую окружность радиусом radiusMiles вокруг центра:
// по одной точке на каждый целый градус пеленга от 0 до 360 включительно.
func CreateCirclePoints(centerLat, centerLon, radiusMiles float64) []GeoPoint {
	lat := toRadians(centerLat)
	lon := toRadians(centerLon)
	d := radiusMiles / EarthRadiusMiles // угловое расстояние

	points := make([]GeoPoint, 0, CirclePointCount)
	for bearing := 0; bearing <= 360; bearing++ {
		brng := toRadians(float64(bearing))

		destLat := math.Asin(math.Sin(lat)*math.Cos(d) + math.Cos(lat)*math.Sin(d)*math.Cos(brng))
		destLon := lon + math.Atan2(
			math.Sin(brng)*math.Sin(d)*math.Cos(lat),
			math.Cos(d)-math.Sin(lat)*math.Sin(destLat),
		)

		points = append(points, GeoPoint{Lat: toDegrees(destLat), Lon: toDegrees(destLon)})
	}

	return points
}

// IsInNoFlyZone проверяет, находится ли точка строго ближе NoFlyZoneRadiusMiles к центру зоны
func IsInNoFlyZone(latitude, longitude float64) bool {
	return DistanceToNoFlyZone(latitude, longitude) < NoFlyZoneRadiusMiles
}

// DistanceToNoFlyZone возвращает расстояние в милях от точки до центра зоны
func DistanceToNoFlyZone(latitude, longitude float64) float64 {
	return CalculateDistance(latitude, longitude, NoFlyZoneLatitude, NoFlyZoneLongitude)
}

// ValidateCoordinates проверяет валидность координат.
// Примитивы выше её не вызывают: проверка выполняется на границе (HTTP, воркер).
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}

func toDegrees(radians float64) float64 {
	return radians / math.Pi * 180.0
}
