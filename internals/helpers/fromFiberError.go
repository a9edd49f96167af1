package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// FromFiberError renders an error returned from a service or transaction.
// *fiber.Error keeps its code and message; anything else becomes a generic 500.
func FromFiberError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	return err
}
