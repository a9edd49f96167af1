package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"teecha_backend/internals/features/social/posts/controller"
	"teecha_backend/internals/features/social/posts/repository"
	"teecha_backend/internals/features/social/posts/service"
)

// PostRoutes mounts /posts, /likes and /comments behind mw.
func PostRoutes(r fiber.Router, db *gorm.DB, mw ...fiber.Handler) {
	posts := controller.NewPostController(db)
	p := r.Group("/posts", mw...)
	p.Post("/", posts.Create)
	p.Get("/", posts.Feed)
	p.Get("/user/:userId", posts.ListByUser)
	p.Get("/:id", posts.Get)
	p.Put("/:id", posts.Update)
	p.Delete("/:id", posts.Delete)

	LikeRoutes(r, controller.NewLikeController(db, service.NewLikeService(repository.NewLikeStore(db))), mw...)

	comments := controller.NewCommentController(db)
	cm := r.Group("/comments", mw...)
	cm.Post("/:postId", comments.Create)
	cm.Get("/:postId", comments.List)
	cm.Put("/:id", comments.Update)
	cm.Delete("/:id", comments.Delete)
}

func LikeRoutes(r fiber.Router, likes *controller.LikeController, mw ...fiber.Handler) {
	l := r.Group("/likes", mw...)
	l.Post("/:postId", likes.Like)
	l.Delete("/:postId", likes.Unlike)
	l.Get("/:postId", likes.Likers)
}
