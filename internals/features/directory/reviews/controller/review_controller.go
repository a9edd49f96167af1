package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"teecha_backend/internals/features/directory/reviews/dto"
	reviewModel "teecha_backend/internals/features/directory/reviews/model"
	"teecha_backend/internals/features/directory/reviews/repository"
	teacherRepo "teecha_backend/internals/features/directory/teachers/repository"
	userRepo "teecha_backend/internals/features/users/user/repository"
	helper "teecha_backend/internals/helpers"
	helperAuth "teecha_backend/internals/helpers/auth"
)

type ReviewController struct {
	DB   *gorm.DB
	Repo *repository.ReviewRepository
}

func NewReviewController(db *gorm.DB) *ReviewController {
	return &ReviewController{DB: db, Repo: repository.NewReviewRepository(db)}
}

func (rc *ReviewController) one(c *fiber.Ctx, status int, msg string, rv *reviewModel.ReviewModel) error {
	cards, err := userRepo.FindSummaries(c.UserContext(), rc.DB, []uuid.UUID{rv.ReviewerID})
	if err != nil {
		return err
	}
	return c.Status(status).JSON(fiber.Map{"success": true, "message": msg, "data": dto.ToReviewResponse(*rv, cards)})
}

func (rc *ReviewController) loadOwned(c *fiber.Ctx) (*reviewModel.ReviewModel, error) {
	me, err := helperAuth.MustUserID(c)
	if err != nil {
		return nil, err
	}
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return nil, err
	}
	rv, err := rc.Repo.FindByID(c.UserContext(), id)
	if errors.Is(err, repository.ErrReviewNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Review not found")
	} else if err != nil {
		return nil, err
	}
	if rv.ReviewerID != me {
		return nil, fiber.NewError(fiber.StatusForbidden, "Not authorized to modify this review")
	}
	return rv, nil
}

// POST /api/reviews/:teacherId
func (rc *ReviewController) Create(c *fiber.Ctx) error {
	me, err := helperAuth.MustUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	teacherID, err := helper.ParamUUID(c, "teacherId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.ReviewRequest
	if ok, err := helper.ParseBody(c, &req); !ok {
		return err
	}
	role, err := rc.Repo.UserRole(c.UserContext(), teacherID)
	if err != nil {
		return err
	}
	if err := dto.CheckTarget(me, teacherID, role); err != nil {
		return helper.FromFiberError(c, err)
	}
	rv := req.ToModel(teacherID, me)
	if err := rc.Repo.Create(c.UserContext(), rv); err != nil {
		if errors.Is(err, repository.ErrAlreadyReviewed) {
			return helper.JsonError(c, fiber.StatusBadRequest, "You have already reviewed this teacher")
		}
		return err
	}
	return rc.one(c, fiber.StatusCreated, "Review submitted successfully", rv)
}

// GET /api/reviews/:teacherId
func (rc *ReviewController) List(c *fiber.Ctx) error {
	teacherID, err := helper.ParamUUID(c, "teacherId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	paging := helper.ResolvePaging(c, helper.DefaultPerPage, helper.MaxPerPage)
	rows, total, err := rc.Repo.ListForTeacher(c.UserContext(), teacherID, paging)
	if err != nil {
		return err
	}
	avg, err := rc.Repo.Average(c.UserContext(), teacherID)
	if err != nil {
		return err
	}
	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ReviewerID)
	}
	cards, err := userRepo.FindSummaries(c.UserContext(), rc.DB, ids)
	if err != nil {
		return err
	}
	out := make([]dto.ReviewResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ToReviewResponse(r, cards))
	}
	pg := helper.BuildPagination(total, paging)
	pg.Count = len(out)
	return c.JSON(fiber.Map{
		"success":       true,
		"message":       "ok",
		"data":          out,
		"averageRating": teacherRepo.RoundRating(avg),
		"totalReviews":  total,
		"pagination":    pg,
	})
}

// PUT /api/reviews/:id
func (rc *ReviewController) Update(c *fiber.Ctx) error {
	rv, err := rc.loadOwned(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateReviewRequest
	if ok, err := helper.ParseBody(c, &req); !ok {
		return err
	}
	req.Apply(rv)
	if err := rc.Repo.Save(c.UserContext(), rv); err != nil {
		return err
	}
	return rc.one(c, fiber.StatusOK, "Review updated successfully", rv)
}

// DELETE /api/reviews/:id
func (rc *ReviewController) Delete(c *fiber.Ctx) error {
	rv, err := rc.loadOwned(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := rc.Repo.Delete(c.UserContext(), rv.ID); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Review deleted successfully", fiber.Map{"id": rv.ID})
}
