package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	directoryRoute "teecha_backend/internals/features/directory/route"
	uploadCtrl "teecha_backend/internals/features/upload/controller"
	uploadRoute "teecha_backend/internals/features/upload/route"
)

// DirectoryRoutes mounts the teacher and school directories plus reviews.
func DirectoryRoutes(api fiber.Router, db *gorm.DB, gated ...fiber.Handler) {
	directoryRoute.DirectoryRoutes(api, db, gated...)
}

// UploadRoutes lets the avatar upload through with authentication only.
func UploadRoutes(api fiber.Router, pictures uploadCtrl.PictureStore, jwt fiber.Handler, gated []fiber.Handler) {
	uploadRoute.UploadRoutes(api, pictures, []fiber.Handler{jwt}, gated)
}
