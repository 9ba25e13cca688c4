package handler

import (
	"strings"
	"time"

	"github.com/flight-telemetry/internal/pkg/errors"
	"github.com/flight-telemetry/internal/pkg/utils"
	"github.com/flight-telemetry/internal/pkg/validator"
	"github.com/flight-telemetry/internal/usecase"
	"github.com/flight-telemetry/internal/usecase/dto"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// MapHandler - положения рейсов и слои карты
type MapHandler struct {
	locationMapUC *usecase.LocationMapUseCase
	logger        *zap.Logger
}

// NewMapHandler создает новый экземпляр MapHandler
func NewMapHandler(locationMapUC *usecase.LocationMapUseCase, logger *zap.Logger) *MapHandler {
	return &MapHandler{
		locationMapUC: locationMapUC,
		logger:        logger,
	}
}

// GetLocations godoc
// @Summary Текущие положения рейсов
// @Description Для каждого рейса справочника возвращает последнее событие телеметрии или null.
// @Description use_materialized_view переключает чтение с журнала событий на таблицу текущих положений.
// @Tags Map
// @Accept json
// @Produce json
// @Param request body dto.FlightLocationsRequest true "Выбор рейсов"
// @Success 200 {object} utils.SuccessResponse{data=map[string]domain.LocationEvent}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/map/locations [post]
func (h *MapHandler) GetLocations(c *fiber.Ctx) error {
	var req dto.FlightLocationsRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	start := time.Now()
	locations, err := h.locationMapUC.GetFlightLocations(c.Context(), req)
	if err != nil {
		h.logger.Error("Failed to get flight locations", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, locations, &utils.Meta{
		Total:    len(locations),
		TimeMSec: elapsedMS(start),
	})
}

// GetLocation godoc
// @Summary Положение одного рейса
// @Tags Map
// @Produce json
// @Param flight path string true "Номер рейса"
// @Param materialized query bool false "Читать из таблицы текущих положений"
// @Success 200 {object} utils.SuccessResponse{data=domain.LocationEvent}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/map/locations/{flight} [get]
func (h *MapHandler) GetLocation(c *fiber.Ctx) error {
	flightNumber := strings.ToUpper(strings.TrimSpace(c.Params("flight")))
	if flightNumber == "" {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	event, err := h.locationMapUC.GetFlightLocation(c.Context(), flightNumber, c.QueryBool("materialized"))
	if err != nil {
		if _, ok := errors.AsAppError(err); !ok {
			h.logger.Error("Failed to get flight location",
				zap.String("flight_number", flightNumber),
				zap.Error(err))
		}
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, event, nil)
}

// GetMapView godoc
// @Summary Состояние карты
// @Description Центр, масштаб, аэропорты, зона запрета полётов и маркеры рейсов по переключателям слоёв.
// @Tags Map
// @Accept json
// @Produce json
// @Param request body dto.MapViewRequest true "Переключатели слоёв"
// @Success 200 {object} utils.SuccessResponse{data=dto.MapView}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/map/view [post]
func (h *MapHandler) GetMapView(c *fiber.Ctx) error {
	var req dto.MapViewRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	start := time.Now()
	view, err := h.locationMapUC.BuildMapView(c.Context(), req)
	if err != nil {
		h.logger.Error("Failed to build map view", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, view, &utils.Meta{
		Total:    len(view.Flights),
		TimeMSec: elapsedMS(start),
	})
}

func elapsedMS(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
