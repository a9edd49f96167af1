package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"teecha_backend/internals/features/social/discussions/controller"
)

func DiscussionRoutes(r fiber.Router, db *gorm.DB, mw ...fiber.Handler) {
	ctrl := controller.NewDiscussionController(db)

	g := r.Group("/discussions", mw...)
	g.Post("/", ctrl.Create)
	g.Get("/", ctrl.List)
	g.Delete("/comments/:commentId", ctrl.DeleteComment)
	g.Get("/:id", ctrl.Get)
	g.Put("/:id", ctrl.Update)
	g.Delete("/:id", ctrl.Delete)
	g.Put("/:id/pin", ctrl.TogglePin)
	g.Put("/:id/close", ctrl.ToggleClose)
	g.Post("/:id/comments", ctrl.AddComment)
}
