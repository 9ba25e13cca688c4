package domain

// QueryCharge - стоимость одной операции с БД.
// Charge измеряется в условных единицах: миллисекунды на запрос.
type QueryCharge struct {
	Statement string  `json:"statement"`
	Charge    float64 `json:"charge"`
}

// LocationQuery - результат чтения положения одного рейса
type LocationQuery struct {
	QueryCharge
	Event *LocationEvent `json:"event,omitempty"`
}

// LocationsQuery - результат пакетного чтения положений
type LocationsQuery struct {
	QueryCharge
	Events []LocationEvent `json:"events"`
}

// ArrivalsRead - результат point read табло прилётов
type ArrivalsRead struct {
	QueryCharge
	Arrivals *AirportArrivals `json:"arrivals"`
}
