package handler

import (
	stderrors "errors"

	"github.com/flight-telemetry/internal/pkg/errors"
	"github.com/flight-telemetry/internal/pkg/geo"
	"github.com/flight-telemetry/internal/pkg/utils"
	"github.com/flight-telemetry/internal/pkg/validator"
	"github.com/flight-telemetry/internal/usecase"
	"github.com/flight-telemetry/internal/usecase/dto"
	playground "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GeoHandler - расчёты на сфере без обращения к хранилищу
type GeoHandler struct {
	logger *zap.Logger
}

// NewGeoHandler создает новый экземпляр GeoHandler
func NewGeoHandler(logger *zap.Logger) *GeoHandler {
	return &GeoHandler{logger: logger}
}

// Distance godoc
// @Summary Расстояние между точками
// @Description Сферический закон косинусов, результат в статутных милях.
// @Tags Geo
// @Produce json
// @Param lat1 query number true "Широта первой точки"
// @Param lon1 query number true "Долгота первой точки"
// @Param lat2 query number true "Широта второй точки"
// @Param lon2 query number true "Долгота второй точки"
// @Success 200 {object} utils.SuccessResponse{data=dto.DistanceResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/geo/distance [get]
func (h *GeoHandler) Distance(c *fiber.Ctx) error {
	var req dto.DistanceRequest
	if err := parseQuery(c, &req, "lat1", "lon1", "lat2", "lon2"); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.DistanceResponse{
		Miles: geo.CalculateDistance(req.Lat1, req.Lon1, req.Lat2, req.Lon2),
	}, nil)
}

// Circle godoc
// @Summary Окружность вокруг точки
// @Description 361 точка с шагом 1 градус по азимуту, первая и последняя совпадают.
// @Tags Geo
// @Produce json
// @Param lat query number true "Широта центра"
// @Param lon query number true "Долгота центра"
// @Param radius query number true "Радиус в милях"
// @Success 200 {object} utils.SuccessResponse{data=[]geo.GeoPoint}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/geo/circle [get]
func (h *GeoHandler) Circle(c *fiber.Ctx) error {
	var req dto.CircleRequest
	if err := parseQuery(c, &req, "lat", "lon", "radius"); err != nil {
		if isRadiusError(err) {
			return utils.SendError(c, errors.ErrInvalidRadius.WithDetails(map[string]interface{}{
				"radius": c.Query("radius"),
			}))
		}
		return utils.SendError(c, err)
	}

	points := geo.CreateCirclePoints(req.Lat, req.Lon, req.Radius)
	return utils.SendSuccess(c, points, &utils.Meta{
		Total: len(points),
	})
}

// NoFlyZone godoc
// @Summary Проверка зоны запрета полётов
// @Description Точка внутри зоны, если расстояние до центра строго меньше радиуса.
// @Tags Geo
// @Produce json
// @Param lat query number true "Широта"
// @Param lon query number true "Долгота"
// @Success 200 {object} utils.SuccessResponse{data=dto.NoFlyZoneResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/geo/no-fly-zone [get]
func (h *GeoHandler) NoFlyZone(c *fiber.Ctx) error {
	var req dto.PointRequest
	if err := parseQuery(c, &req, "lat", "lon"); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.NoFlyZoneResponse{
		InNoFlyZone:   geo.IsInNoFlyZone(req.Lat, req.Lon),
		DistanceMiles: geo.DistanceToNoFlyZone(req.Lat, req.Lon),
		Center:        geo.GeoPoint{Lat: geo.NoFlyZoneLatitude, Lon: geo.NoFlyZoneLongitude},
		RadiusMiles:   geo.NoFlyZoneRadiusMiles,
	}, nil)
}

// NoFlyZoneOverlay godoc
// @Summary Контур зоны запрета полётов
// @Tags Geo
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.Overlay}
// @Router /api/v1/geo/no-fly-zone/overlay [get]
func (h *GeoHandler) NoFlyZoneOverlay(c *fiber.Ctx) error {
	return utils.SendSuccess(c, usecase.NoFlyZoneOverlay(), nil)
}

// parseQuery разбирает query-параметры в req и проверяет, что обязательные ключи переданы.
// Нулевая координата допустима, поэтому тег required здесь не подходит.
func parseQuery(c *fiber.Ctx, req interface{}, required ...string) error {
	missing := make(map[string]interface{})
	for _, key := range required {
		if c.Query(key) == "" {
			missing[key] = "required"
		}
	}
	if len(missing) > 0 {
		return errors.ErrInvalidRequest.WithDetails(missing)
	}

	if err := c.QueryParser(req); err != nil {
		return errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"query": err.Error(),
		})
	}

	if err := validator.Validate(req); err != nil {
		return err
	}

	return nil
}

func isRadiusError(err error) bool {
	var validationErrs playground.ValidationErrors
	if !stderrors.As(err, &validationErrs) {
		return false
	}
	for _, fe := range validationErrs {
		if fe.Field() == "Radius" {
			return true
		}
	}
	return false
}
