package route

import (
	"github.com/gofiber/fiber/v2"

	"teecha_backend/internals/features/users/auth/controller"
	"teecha_backend/internals/middlewares"
)

// AuthRoutes mounts /auth; protected holds the authentication handlers for session endpoints.
func AuthRoutes(r fiber.Router, ctrl *controller.AuthController, protected ...fiber.Handler) {
	with := func(h fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, protected...), h)
	}

	g := r.Group("/auth")

	// Public
	g.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	g.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	g.Post("/school/login", middlewares.LoginRateLimiter(), ctrl.SchoolLogin)
	g.Post("/google", middlewares.LoginRateLimiter(), ctrl.LoginGoogle)
	g.Post("/refresh-token", ctrl.RefreshToken)
	g.Get("/confirm-email/:token", ctrl.ConfirmEmail)
	g.Post("/resend-confirmation", middlewares.ForgotPasswordRateLimiter(), ctrl.ResendConfirmation)
	g.Post("/forgot-password", middlewares.ForgotPasswordRateLimiter(), ctrl.ForgotPassword)
	g.Post("/reset-password", ctrl.ResetPassword)

	// Authenticated
	g.Get("/me", with(ctrl.Me)...)
	g.Post("/logout", with(ctrl.Logout)...)
	g.Post("/change-password", with(ctrl.ChangePassword)...)
}
