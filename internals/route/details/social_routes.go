package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ConnectionRoutes "teecha_backend/internals/features/social/connections/route"
	DiscussionRoutes "teecha_backend/internals/features/social/discussions/route"
	MessageRoutes "teecha_backend/internals/features/social/messages/route"
	PostRoutes "teecha_backend/internals/features/social/posts/route"
)

// SocialRoutes mounts posts, likes, comments, connections, messages and discussions.
// Example: /api/posts, /api/likes/:postId
func SocialRoutes(api fiber.Router, db *gorm.DB, gated ...fiber.Handler) {
	PostRoutes.PostRoutes(api, db, gated...)
	ConnectionRoutes.ConnectionRoutes(api, db, gated...)
	MessageRoutes.MessageRoutes(api, db, gated...)
	DiscussionRoutes.DiscussionRoutes(api, db, gated...)
}
