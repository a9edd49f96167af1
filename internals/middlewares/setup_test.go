package middlewares

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDKeepsIncomingHeader(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID(time.Second))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("requestid").(string))
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", res.Header.Get("X-Request-ID"))
}

func TestRequestIDGeneratesOne(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID(0))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	res, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Len(t, res.Header.Get("X-Request-ID"), 36)
}

func TestGlobalRateLimiterAnswers429(t *testing.T) {
	app := fiber.New()
	app.Use(newLimiter(1, time.Minute, "slow down"))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	res, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	res, err = app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, res.StatusCode)
}

func TestRequestIDBoundsUserContext(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID(10 * time.Second))
	app.Get("/", func(c *fiber.Ctx) error {
		deadline, ok := c.UserContext().Deadline()
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		if time.Until(deadline) > 10*time.Second {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	res, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, res.StatusCode)
}

func TestProxyConfigOnlyTrustsListedProxies(t *testing.T) {
	ip := func(cfg fiber.Config) string {
		app := fiber.New(cfg)
		app.Get("/", func(c *fiber.Ctx) error { return c.SendString(c.IP()) })
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(fiber.HeaderXForwardedFor, "203.0.113.9")
		res, err := app.Test(req)
		require.NoError(t, err)
		body, err := io.ReadAll(res.Body)
		require.NoError(t, err)
		return string(body)
	}

	assert.NotEqual(t, "203.0.113.9", ip(ProxyConfig(fiber.Config{}, nil)), "no proxies configured")
	assert.NotEqual(t, "203.0.113.9", ip(ProxyConfig(fiber.Config{}, []string{"10.0.0.0/8"})), "peer is not a listed proxy")
	assert.Equal(t, "203.0.113.9", ip(ProxyConfig(fiber.Config{}, []string{"0.0.0.0/0"})), "peer is a listed proxy")
}
