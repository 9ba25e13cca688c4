package handler

import (
	"github.com/flight-telemetry/internal/pkg/utils"
	"github.com/flight-telemetry/internal/usecase"
	"github.com/flight-telemetry/internal/usecase/dto"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CostLogHandler - журнал стоимости запросов к БД
type CostLogHandler struct {
	costLog *usecase.CostLog
	logger  *zap.Logger
}

// NewCostLogHandler создает новый экземпляр CostLogHandler
func NewCostLogHandler(costLog *usecase.CostLog, logger *zap.Logger) *CostLogHandler {
	return &CostLogHandler{
		costLog: costLog,
		logger:  logger,
	}
}

// GetCostLog godoc
// @Summary Журнал стоимости запросов
// @Description Возвращает строки, накопленные с прошлого вызова, и итог с момента последнего сброса.
// @Tags CostLog
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.CostLogResponse}
// @Router /api/v1/cost-log [get]
func (h *CostLogHandler) GetCostLog(c *fiber.Ctx) error {
	entries := h.costLog.Drain()

	return utils.SendSuccess(c, dto.CostLogResponse{
		Entries: entries,
		Summary: h.costLog.Summary(),
	}, &utils.Meta{
		Total: len(entries),
	})
}

// ResetCostLog godoc
// @Summary Сброс журнала стоимости
// @Tags CostLog
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.CostSummary}
// @Router /api/v1/cost-log [delete]
func (h *CostLogHandler) ResetCostLog(c *fiber.Ctx) error {
	h.costLog.Reset()
	h.logger.Info("Cost log reset")

	return utils.SendSuccess(c, h.costLog.Summary(), nil)
}
