package middlewares

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	helper "teecha_backend/internals/helpers"
	"teecha_backend/internals/helpers/reporter"
)

// ErrorHandler is the Fiber app error handler. *fiber.Error keeps its status and
// message; anything else is reported and answered with a generic 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	reporter.Error(err, map[string]interface{}{
		"method":    c.Method(),
		"path":      c.Path(),
		"requestId": c.Locals("requestid"),
	})
	return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
}
