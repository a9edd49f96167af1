package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"teecha_backend/internals/features/directory/schools/repository"
	helper "teecha_backend/internals/helpers"
)

type SchoolController struct {
	Repo *repository.SchoolRepository
}

func NewSchoolController(db *gorm.DB) *SchoolController {
	return &SchoolController{Repo: repository.NewSchoolRepository(db)}
}

// GET /api/schools
func (sc *SchoolController) List(c *fiber.Ctx) error {
	f := repository.SchoolFilter{
		City:    c.Query("city"),
		Country: c.Query("country"),
		Type:    c.Query("type"),
		Search:  c.Query("search"),
	}
	paging := helper.ResolvePaging(c, helper.DefaultPerPage, helper.MaxPerPage)
	rows, total, err := sc.Repo.List(c.UserContext(), f, paging)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "ok", rows, helper.BuildPagination(total, paging))
}

// GET /api/schools/:id
func (sc *SchoolController) Get(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	s, err := sc.Repo.Get(c.UserContext(), id)
	if errors.Is(err, repository.ErrSchoolNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "School not found")
	} else if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", s)
}
