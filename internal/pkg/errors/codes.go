package errors

import "net/http"

var (
	ErrFlightNotFound = New(
		"FLIGHT_NOT_FOUND",
		"Flight not found",
		http.StatusNotFound,
	)

	ErrArrivalsNotFound = New(
		"ARRIVALS_NOT_FOUND",
		"No arrivals for airport",
		http.StatusNotFound,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Invalid radius value",
		http.StatusBadRequest,
	)

	ErrInvalidTelemetry = New(
		"INVALID_TELEMETRY",
		"Invalid telemetry event",
		http.StatusBadRequest,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
