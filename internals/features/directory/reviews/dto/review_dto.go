package dto

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"teecha_backend/internals/constants"
	reviewModel "teecha_backend/internals/features/directory/reviews/model"
	userModel "teecha_backend/internals/features/users/user/model"
)

type ReviewRequest struct {
	Rating  int     `json:"rating" validate:"required,min=1,max=5"`
	Comment *string `json:"comment" validate:"omitempty,max=2000"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment *string `json:"comment" validate:"omitempty,max=2000"`
}

var (
	ErrTeacherNotFound = fiber.NewError(fiber.StatusNotFound, "Teacher not found")
	ErrSelfReview      = fiber.NewError(fiber.StatusBadRequest, "You cannot review yourself")
)

// CheckTarget validates a new review of teacherID (whose role is targetRole, "" if missing).
func CheckTarget(reviewer, teacherID uuid.UUID, targetRole string) error {
	if reviewer == teacherID {
		return ErrSelfReview
	}
	if targetRole != constants.RoleTeacher {
		return ErrTeacherNotFound
	}
	return nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func (r ReviewRequest) ToModel(teacherID, reviewerID uuid.UUID) *reviewModel.ReviewModel {
	return &reviewModel.ReviewModel{
		TeacherID:  teacherID,
		ReviewerID: reviewerID,
		Rating:     r.Rating,
		Comment:    trimmed(r.Comment),
	}
}

func (r UpdateReviewRequest) Apply(rv *reviewModel.ReviewModel) {
	if r.Rating != nil {
		rv.Rating = *r.Rating
	}
	if r.Comment != nil {
		rv.Comment = trimmed(r.Comment)
	}
}

type ReviewResponse struct {
	ID        uuid.UUID             `json:"id"`
	TeacherID uuid.UUID             `json:"teacherId"`
	Rating    int                   `json:"rating"`
	Comment   *string               `json:"comment"`
	Reviewer  userModel.UserSummary `json:"reviewer"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

func ToReviewResponse(rv reviewModel.ReviewModel, cards map[uuid.UUID]userModel.UserSummary) ReviewResponse {
	card := cards[rv.ReviewerID]
	if card.ID == uuid.Nil {
		card.ID = rv.ReviewerID
	}
	return ReviewResponse{
		ID:        rv.ID,
		TeacherID: rv.TeacherID,
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		Reviewer:  card,
		CreatedAt: rv.CreatedAt,
		UpdatedAt: rv.UpdatedAt,
	}
}
