package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	LocAuthContext = "auth_context"
	LocUserID      = "user_id"
	LocRole        = "role"
)

// AuthContext is the caller identity resolved by the JWT middleware.
type AuthContext struct {
	UserID           uuid.UUID
	Role             string
	ProfileCompleted bool
}

func (a AuthContext) IsRole(roles ...string) bool {
	for _, r := range roles {
		if strings.EqualFold(a.Role, r) {
			return true
		}
	}
	return false
}

func SetContext(c *fiber.Ctx, a AuthContext) {
	c.Locals(LocAuthContext, a)
	c.Locals(LocUserID, a.UserID.String())
	c.Locals(LocRole, a.Role)
}

// FromContext returns the identity stored by the auth middleware.
func FromContext(c *fiber.Ctx) (AuthContext, bool) {
	a, ok := c.Locals(LocAuthContext).(AuthContext)
	if !ok || a.UserID == uuid.Nil {
		return AuthContext{}, false
	}
	return a, true
}

// MustUserID is for handlers mounted behind AuthJWT.
func MustUserID(c *fiber.Ctx) (uuid.UUID, error) {
	a, ok := FromContext(c)
	if !ok {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
	}
	return a.UserID, nil
}
