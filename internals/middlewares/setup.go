package middlewares

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"

	"teecha_backend/internals/middlewares/logger"
)

// RequestID propagates X-Request-ID (or makes one) and bounds the request context.
func RequestID(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("requestid", id)

		if timeout > 0 {
			ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
			defer cancel()
			c.SetUserContext(ctx)
		}
		return c.Next()
	}
}

// ProxyConfig honours X-Forwarded-For only from the trusted proxy IPs or CIDRs.
// With none, c.IP() is the socket peer and client headers are ignored.
func ProxyConfig(cfg fiber.Config, trusted []string) fiber.Config {
	if len(trusted) == 0 {
		cfg.ProxyHeader = ""
		cfg.EnableTrustedProxyCheck = false
		cfg.TrustedProxies = nil
		return cfg
	}
	cfg.ProxyHeader = fiber.HeaderXForwardedFor
	cfg.EnableTrustedProxyCheck = true
	cfg.TrustedProxies = trusted
	return cfg
}

// SetupMiddlewares installs the global chain. Order matters: recover first, metrics last.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(RequestID(10 * time.Second))
	app.Use(logger.LoggerMiddleware())
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
	app.Use(MetricsMiddleware())
}
