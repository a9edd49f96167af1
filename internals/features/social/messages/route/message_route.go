package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"teecha_backend/internals/features/social/messages/controller"
)

func MessageRoutes(r fiber.Router, db *gorm.DB, mw ...fiber.Handler) {
	ctrl := controller.NewMessageController(db)

	g := r.Group("/messages", mw...)
	g.Post("/", ctrl.Send)
	g.Get("/conversations", ctrl.Conversations)
	g.Get("/unread-count", ctrl.UnreadCount)
	g.Get("/:userId", ctrl.Thread)
	g.Delete("/:id", ctrl.Delete)
}
