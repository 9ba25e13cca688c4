package handler

import (
	"github.com/flight-telemetry/internal/domain"
	"github.com/flight-telemetry/internal/pkg/errors"
	"github.com/flight-telemetry/internal/pkg/utils"
	"github.com/flight-telemetry/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// TelemetryHandler - синхронный приём телеметрии, минуя Redis Stream
type TelemetryHandler struct {
	ingestUC *usecase.IngestUseCase
	logger   *zap.Logger
}

// NewTelemetryHandler создает новый экземпляр TelemetryHandler
func NewTelemetryHandler(ingestUC *usecase.IngestUseCase, logger *zap.Logger) *TelemetryHandler {
	return &TelemetryHandler{
		ingestUC: ingestUC,
		logger:   logger,
	}
}

// Ingest godoc
// @Summary Приём события телеметрии
// @Description Сохраняет положение самолёта. Если точка в зоне запрета полётов, публикует алерт в stream:flight:nofly.
// @Tags Telemetry
// @Accept json
// @Produce json
// @Param request body domain.LocationEvent true "Событие телеметрии"
// @Success 201 {object} utils.SuccessResponse{data=dto.IngestResult}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/telemetry [post]
func (h *TelemetryHandler) Ingest(c *fiber.Ctx) error {
	var event domain.LocationEvent
	if err := c.BodyParser(&event); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	result, err := h.ingestUC.Ingest(c.Context(), &event)
	if err != nil {
		h.logger.Warn("Failed to ingest telemetry",
			zap.String("flight_number", event.FlightNumber),
			zap.Error(err))
		return utils.SendError(c, err)
	}

	c.Status(fiber.StatusCreated)
	return utils.SendSuccess(c, result, nil)
}
