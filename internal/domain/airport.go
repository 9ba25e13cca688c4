package domain

// Airport - аэропорт из справочника
type Airport struct {
	Code      string  `json:"code" db:"code"`
	Name      string  `json:"name" db:"name"`
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}

// FindAirport ищет аэропорт по коду
func FindAirport(airports []Airport, code string) (*Airport, bool) {
	for i := range airports {
		if airports[i].Code == code {
			return &airports[i], true
		}
	}
	return nil, false
}
