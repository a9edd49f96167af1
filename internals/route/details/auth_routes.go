package details

import (
	"github.com/gofiber/fiber/v2"

	authCtrl "teecha_backend/internals/features/users/auth/controller"
	authRoute "teecha_backend/internals/features/users/auth/route"
	profileRepo "teecha_backend/internals/features/users/profiles/repository"
	profileRoute "teecha_backend/internals/features/users/profiles/route"
)

// AccountRoutes mounts /auth and /profile. Neither passes through the profile gate.
func AccountRoutes(api fiber.Router, ctrl *authCtrl.AuthController, profiles *profileRepo.ProfileRepository, jwt fiber.Handler) {
	authRoute.AuthRoutes(api, ctrl, jwt)
	profileRoute.ProfileRoutes(api, profiles, jwt)
}
