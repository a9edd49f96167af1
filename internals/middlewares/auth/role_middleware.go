package auth

import (
	"github.com/gofiber/fiber/v2"

	"teecha_backend/internals/constants"
	helper "teecha_backend/internals/helpers"
	helperAuth "teecha_backend/internals/helpers/auth"
)

// OnlyRoles lets the request through when the caller has one of roles.
func OnlyRoles(feature string, roles ...string) fiber.Handler {
	msg := constants.RoleError(feature, roles...)
	return func(c *fiber.Ctx) error {
		ac, ok := helperAuth.FromContext(c)
		if !ok {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Authentication required")
		}
		if !ac.IsRole(roles...) {
			return helper.JsonError(c, fiber.StatusForbidden, msg)
		}
		return c.Next()
	}
}
