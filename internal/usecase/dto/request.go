package dto

// FlightLocationsRequest - выбор рейсов для карты.
// Пустой FlightNumbers означает все рейсы из справочника.
type FlightLocationsRequest struct {
	FlightNumbers       []string `json:"flight_numbers" validate:"omitempty,max=500,dive,required,max=16"`
	ShowFlights         bool     `json:"show_flights"`
	UseMaterializedView bool     `json:"use_materialized_view"`
}

// MapViewRequest - переключатели слоёв карты
type MapViewRequest struct {
	FlightLocationsRequest
	ShowAirports  bool `json:"show_airports"`
	ShowLabels    bool `json:"show_labels"`
	ShowTrailing  bool `json:"show_trailing"`
	ShowLeading   bool `json:"show_leading"`
	ShowNoFlyZone bool `json:"show_no_fly_zone"`
}

// ArrivalsBoardRequest - аэропорты для табло прилётов, пусто = все
type ArrivalsBoardRequest struct {
	Airports []string `validate:"omitempty,max=100,dive,airport_code"`
}

// DistanceRequest - запрос расстояния между двумя точками
type DistanceRequest struct {
	Lat1 float64 `query:"lat1" validate:"min=-90,max=90"`
	Lon1 float64 `query:"lon1" validate:"min=-180,max=180"`
	Lat2 float64 `query:"lat2" validate:"min=-90,max=90"`
	Lon2 float64 `query:"lon2" validate:"min=-180,max=180"`
}

// CircleRequest - запрос окружности вокруг центра
type CircleRequest struct {
	Lat    float64 `query:"lat" validate:"min=-90,max=90"`
	Lon    float64 `query:"lon" validate:"min=-180,max=180"`
	Radius float64 `query:"radius" validate:"min=0,max=12450"` // miles
}

// PointRequest - одна точка
type PointRequest struct {
	Lat float64 `query:"lat" validate:"min=-90,max=90"`
	Lon float64 `query:"lon" validate:"min=-180,max=180"`
}
