package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-telemetry/internal/pkg/errors"
	"github.com/flight-telemetry/internal/pkg/validator"
)

type radiusRequest struct {
	Radius float64 `json:"radius" validate:"gt=0"`
}

func newTestApp(handlerErr error) *fiber.App {
	app := fiber.New()
	app.Get("/ok", func(c *fiber.Ctx) error {
		return SendSuccess(c, fiber.Map{"value": 1}, &Meta{Total: 1})
	})
	app.Get("/err", func(c *fiber.Ctx) error {
		return SendError(c, handlerErr)
	})
	return app
}

func decode(t *testing.T, body io.Reader) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestSendSuccess(t *testing.T) {
	resp, err := newTestApp(nil).Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := decode(t, resp.Body)
	assert.Equal(t, 1.0, body["data"].(map[string]interface{})["value"])
	assert.Equal(t, 1.0, body["meta"].(map[string]interface{})["total"])
}

func TestSendError(t *testing.T) {
	validationErr := validator.Validate(&radiusRequest{Radius: -1})
	require.Error(t, validationErr)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"app error", errors.ErrFlightNotFound, 404, "FLIGHT_NOT_FOUND"},
		{"wrapped app error", fmt.Errorf("read: %w", errors.ErrInvalidCoordinates), 400, "INVALID_COORDINATES"},
		{"validation error", validationErr, 400, "INVALID_REQUEST"},
		{"unknown error", fmt.Errorf("boom"), 500, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := newTestApp(tt.err).Test(httptest.NewRequest("GET", "/err", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			body := decode(t, resp.Body)
			assert.Equal(t, tt.wantCode, body["error"].(map[string]interface{})["code"])
		})
	}
}
