package handler

import (
	"strings"
	"time"

	"github.com/flight-telemetry/internal/pkg/utils"
	"github.com/flight-telemetry/internal/pkg/validator"
	"github.com/flight-telemetry/internal/usecase"
	"github.com/flight-telemetry/internal/usecase/dto"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ArrivalsHandler - табло прилётов
type ArrivalsHandler struct {
	arrivalsUC *usecase.ArrivalsUseCase
	logger     *zap.Logger
	now        func() time.Time
}

// NewArrivalsHandler создает новый экземпляр ArrivalsHandler
func NewArrivalsHandler(arrivalsUC *usecase.ArrivalsUseCase, logger *zap.Logger) *ArrivalsHandler {
	return &ArrivalsHandler{
		arrivalsUC: arrivalsUC,
		logger:     logger,
		now:        time.Now,
	}
}

// GetArrivals godoc
// @Summary Табло прилётов
// @Description Прилёты в выбранные аэропорты. Без параметра airports - все аэропорты.
// @Tags Arrivals
// @Produce json
// @Param airports query string false "Коды аэропортов через запятую" example(IAD,JFK)
// @Success 200 {object} utils.SuccessResponse{data=dto.ArrivalsBoard}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/arrivals [get]
func (h *ArrivalsHandler) GetArrivals(c *fiber.Ctx) error {
	req := dto.ArrivalsBoardRequest{
		Airports: splitCodes(c.Query("airports")),
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	board, err := h.arrivalsUC.GetArrivalsBoard(c.Context(), req.Airports, h.now())
	if err != nil {
		h.logger.Error("Failed to get arrivals board", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, board, &utils.Meta{
		Total: len(board.Rows),
	})
}

func splitCodes(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	codes := make([]string, 0, len(parts))
	for _, p := range parts {
		if code := strings.ToUpper(strings.TrimSpace(p)); code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}
