package route

import (
	"github.com/gofiber/fiber/v2"

	"teecha_backend/internals/features/users/profiles/controller"
	"teecha_backend/internals/features/users/profiles/repository"
)

// ProfileRoutes mounts /profile behind mw (authentication only, no profile gate).
func ProfileRoutes(r fiber.Router, repo *repository.ProfileRepository, mw ...fiber.Handler) {
	ctrl := controller.NewProfileController(repo)

	g := r.Group("/profile", mw...)
	g.Get("/me", ctrl.GetMyProfile)
	g.Get("/status", ctrl.GetStatus)
	g.Put("/teacher", ctrl.UpsertTeacher)
	g.Put("/student", ctrl.UpsertStudent)
	g.Put("/school", ctrl.UpsertSchool)
	g.Put("/basic", ctrl.UpdateBasic)
	g.Get("/:userId", ctrl.GetPublicProfile)
}
