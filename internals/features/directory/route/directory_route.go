package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"teecha_backend/internals/constants"
	reviewCtrl "teecha_backend/internals/features/directory/reviews/controller"
	schoolCtrl "teecha_backend/internals/features/directory/schools/controller"
	teacherCtrl "teecha_backend/internals/features/directory/teachers/controller"
	authMw "teecha_backend/internals/middlewares/auth"
)

// DirectoryRoutes mounts /teachers, /schools and /reviews behind mw.
func DirectoryRoutes(r fiber.Router, db *gorm.DB, mw ...fiber.Handler) {
	teachers := teacherCtrl.NewTeacherController(db)
	t := r.Group("/teachers", mw...)
	t.Get("/", teachers.List)
	t.Get("/:id", teachers.Get)

	schools := schoolCtrl.NewSchoolController(db)
	s := r.Group("/schools", mw...)
	s.Get("/", schools.List)
	s.Get("/:id", schools.Get)

	reviews := reviewCtrl.NewReviewController(db)
	rv := r.Group("/reviews", mw...)
	rv.Get("/:teacherId", reviews.List)
	rv.Post("/:teacherId", authMw.OnlyRoles("reviews", constants.ReviewerRoles...), reviews.Create)
	rv.Put("/:id", reviews.Update)
	rv.Delete("/:id", reviews.Delete)
}
