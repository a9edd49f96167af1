package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	reviewModel "teecha_backend/internals/features/directory/reviews/model"
	userModel "teecha_backend/internals/features/users/user/model"
	helper "teecha_backend/internals/helpers"
)

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrAlreadyReviewed = errors.New("already reviewed")
)

type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

// UserRole returns the role of id, or "" when the user does not exist.
func (r *ReviewRepository) UserRole(ctx context.Context, id uuid.UUID) (string, error) {
	var roles []string
	err := r.DB.WithContext(ctx).Model(&userModel.UserModel{}).
		Where("id = ?", id).Limit(1).Pluck("role", &roles).Error
	if err != nil || len(roles) == 0 {
		return "", err
	}
	return roles[0], nil
}

func (r *ReviewRepository) Create(ctx context.Context, rv *reviewModel.ReviewModel) error {
	if err := r.DB.WithContext(ctx).Create(rv).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return ErrAlreadyReviewed
		}
		return err
	}
	return nil
}

func (r *ReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*reviewModel.ReviewModel, error) {
	var rv reviewModel.ReviewModel
	if err := r.DB.WithContext(ctx).First(&rv, "id = ?", id).Error; err != nil {
		if helper.IsNotFound(err) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewRepository) ListForTeacher(ctx context.Context, teacherID uuid.UUID, p helper.Paging) ([]reviewModel.ReviewModel, int64, error) {
	q := r.DB.WithContext(ctx).Model(&reviewModel.ReviewModel{}).Where("teacher_id = ?", teacherID)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []reviewModel.ReviewModel
	if err := q.Order("created_at DESC").Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *ReviewRepository) Average(ctx context.Context, teacherID uuid.UUID) (float64, error) {
	var avg float64
	err := r.DB.WithContext(ctx).Model(&reviewModel.ReviewModel{}).
		Select("COALESCE(AVG(rating), 0)").
		Where("teacher_id = ?", teacherID).
		Scan(&avg).Error
	return avg, err
}

func (r *ReviewRepository) Save(ctx context.Context, rv *reviewModel.ReviewModel) error {
	return r.DB.WithContext(ctx).Model(rv).Select("rating", "comment", "updated_at").Updates(rv).Error
}

func (r *ReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Delete(&reviewModel.ReviewModel{}, "id = ?", id).Error
}
