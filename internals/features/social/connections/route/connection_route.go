package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"teecha_backend/internals/features/social/connections/controller"
)

func ConnectionRoutes(r fiber.Router, db *gorm.DB, mw ...fiber.Handler) {
	ctrl := controller.NewConnectionController(db)

	g := r.Group("/connections", mw...)
	g.Get("/", ctrl.ListAccepted)
	g.Get("/pending", ctrl.ListPending)
	g.Get("/sent", ctrl.ListSent)
	g.Get("/status/:userId", ctrl.Status)
	g.Post("/request/:userId", ctrl.Request)
	g.Put("/:id/accept", ctrl.Accept)
	g.Put("/:id/reject", ctrl.Reject)
	g.Delete("/:id", ctrl.Delete)
}
