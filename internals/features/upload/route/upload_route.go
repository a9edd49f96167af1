package route

import (
	"github.com/gofiber/fiber/v2"

	"teecha_backend/internals/features/upload/controller"
	helperOSS "teecha_backend/internals/helpers/oss"
)

// UploadRoutes mounts /upload. The avatar endpoint only needs authed so incomplete
// profiles can set a picture; /image also runs the gate handlers.
func UploadRoutes(r fiber.Router, pictures controller.PictureStore, authed, gated []fiber.Handler) {
	ctrl := controller.NewUploadController(helperOSS.DefaultImageHost, pictures)

	g := r.Group("/upload")
	g.Post("/profile-picture", append(append([]fiber.Handler{}, authed...), ctrl.ProfilePicture)...)
	g.Post("/image", append(append([]fiber.Handler{}, gated...), ctrl.Image)...)
}
