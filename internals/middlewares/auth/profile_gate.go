package auth

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"teecha_backend/internals/constants"
	helper "teecha_backend/internals/helpers"
	helperAuth "teecha_backend/internals/helpers/auth"
)

// ProfileStatus is what the gate needs to know about the caller.
type ProfileStatus struct {
	Role             string
	HasProfile       bool
	ProfileCompleted bool
}

type ProfileStatusFinder interface {
	ProfileStatus(ctx context.Context, userID uuid.UUID) (*ProfileStatus, error)
}

// RequireCompletedProfile runs after AuthJWT and blocks callers without a completed role profile.
func RequireCompletedProfile(finder ProfileStatusFinder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ac, ok := helperAuth.FromContext(c)
		if !ok {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Authentication required")
		}

		st, err := finder.ProfileStatus(c.UserContext(), ac.UserID)
		if err != nil {
			log.Printf("[AUTH] profile status for %s: %v", ac.UserID, err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
		}
		if st == nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "User no longer exists")
		}
		if !st.HasProfile || !st.ProfileCompleted {
			return helper.JsonErrorWith(c, fiber.StatusForbidden, "Please complete your profile to access this feature", fiber.Map{
				"redirect":         constants.CompleteProfilePath,
				"profileCompleted": false,
			})
		}

		ac.Role = st.Role
		ac.ProfileCompleted = true
		helperAuth.SetContext(c, ac)
		return c.Next()
	}
}
