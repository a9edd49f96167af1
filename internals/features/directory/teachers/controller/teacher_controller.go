package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"teecha_backend/internals/features/directory/teachers/repository"
	helper "teecha_backend/internals/helpers"
)

type TeacherController struct {
	Repo *repository.TeacherRepository
}

func NewTeacherController(db *gorm.DB) *TeacherController {
	return &TeacherController{Repo: repository.NewTeacherRepository(db)}
}

// GET /api/teachers
func (tc *TeacherController) List(c *fiber.Ctx) error {
	f := repository.TeacherFilter{
		Subject:  c.Query("subject"),
		Location: c.Query("location"),
		Mode:     c.Query("mode"),
		Search:   c.Query("search"),
	}
	if raw := strings.TrimSpace(c.Query("maxRate")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return helper.JsonValidationError(c, map[string][]string{"maxRate": {"maxRate must be a positive number"}})
		}
		f.MaxRate = &v
	}
	paging := helper.ResolvePaging(c, helper.DefaultPerPage, helper.MaxPerPage)
	rows, total, err := tc.Repo.List(c.UserContext(), f, paging)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "ok", rows, helper.BuildPagination(total, paging))
}

// GET /api/teachers/:id
func (tc *TeacherController) Get(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	t, err := tc.Repo.Get(c.UserContext(), id)
	if errors.Is(err, repository.ErrTeacherNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Teacher not found")
	} else if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", t)
}
