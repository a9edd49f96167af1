package middlewares

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errorApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(RecoveryMiddleware())
	app.Get("/fiber", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusForbidden, "nope") })
	app.Get("/plain", func(c *fiber.Ctx) error { return errors.New("pq: connection refused") })
	app.Get("/panic", func(c *fiber.Ctx) error { panic("boom") })
	return app
}

func decode(t *testing.T, app *fiber.App, path string) (int, map[string]any) {
	t.Helper()
	res, err := app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	return res.StatusCode, body
}

func TestErrorHandlerKeepsFiberErrors(t *testing.T) {
	status, body := decode(t, errorApp(), "/fiber")
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "nope", body["message"])
	assert.Equal(t, "FORBIDDEN", body["errorCode"])
}

func TestErrorHandlerHidesInternalErrors(t *testing.T) {
	app := errorApp()
	for _, path := range []string{"/plain", "/panic"} {
		status, body := decode(t, app, path)
		assert.Equal(t, fiber.StatusInternalServerError, status, path)
		assert.Equal(t, "Internal server error", body["message"], path)
		assert.Equal(t, false, body["success"], path)
	}
}

func TestUnknownRouteIs404Envelope(t *testing.T) {
	status, body := decode(t, errorApp(), "/missing")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body["errorCode"])
}
