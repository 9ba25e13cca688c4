package handler

import (
	"github.com/flight-telemetry/internal/pkg/utils"
	"github.com/flight-telemetry/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// FlightHandler отдаёт справочники аэропортов и рейсов
type FlightHandler struct {
	locationMapUC *usecase.LocationMapUseCase
	logger        *zap.Logger
}

// NewFlightHandler создает новый экземпляр FlightHandler
func NewFlightHandler(locationMapUC *usecase.LocationMapUseCase, logger *zap.Logger) *FlightHandler {
	return &FlightHandler{
		locationMapUC: locationMapUC,
		logger:        logger,
	}
}

// GetAirports godoc
// @Summary Справочник аэропортов
// @Tags Metadata
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Airport}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/airports [get]
func (h *FlightHandler) GetAirports(c *fiber.Ctx) error {
	metadata, err := h.locationMapUC.LoadMetadata(c.Context())
	if err != nil {
		h.logger.Error("Failed to load airports", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, metadata.Airports, &utils.Meta{
		Total: len(metadata.Airports),
	})
}

// GetFlights godoc
// @Summary Справочник рейсов
// @Tags Metadata
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Flight}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/flights [get]
func (h *FlightHandler) GetFlights(c *fiber.Ctx) error {
	metadata, err := h.locationMapUC.LoadMetadata(c.Context())
	if err != nil {
		h.logger.Error("Failed to load flights", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, metadata.Flights, &utils.Meta{
		Total: len(metadata.Flights),
	})
}
