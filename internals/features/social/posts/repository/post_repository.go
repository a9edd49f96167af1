package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	postModel "teecha_backend/internals/features/social/posts/model"
	helper "teecha_backend/internals/helpers"
)

var ErrPostNotFound = errors.New("post not found")

type PostRepository struct {
	DB *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{DB: db}
}

func (r *PostRepository) Create(ctx context.Context, p *postModel.PostModel) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *PostRepository) FindByID(ctx context.Context, id uuid.UUID) (*postModel.PostModel, error) {
	var p postModel.PostModel
	if err := r.DB.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if helper.IsNotFound(err) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Feed lists posts newest first; userID narrows it to one author when not Nil.
func (r *PostRepository) Feed(ctx context.Context, userID uuid.UUID, p helper.Paging) ([]postModel.PostModel, int64, error) {
	q := r.DB.WithContext(ctx).Model(&postModel.PostModel{})
	if userID != uuid.Nil {
		q = q.Where("user_id = ?", userID)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []postModel.PostModel
	if err := q.Order("created_at DESC").
		Limit(p.Limit).
		Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *PostRepository) Save(ctx context.Context, p *postModel.PostModel) error {
	return r.DB.WithContext(ctx).
		Model(p).
		Select("content", "type", "image_url", "video_url", "updated_at").
		Updates(p).Error
}

// Delete removes the post together with its likes and comments.
func (r *PostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&postModel.LikeModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&postModel.CommentModel{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&postModel.PostModel{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrPostNotFound
		}
		return nil
	})
}

// LikedBy returns the subset of postIDs liked by userID.
func (r *PostRepository) LikedBy(ctx context.Context, userID uuid.UUID, postIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	out := map[uuid.UUID]bool{}
	if userID == uuid.Nil || len(postIDs) == 0 {
		return out, nil
	}
	var liked []uuid.UUID
	if err := r.DB.WithContext(ctx).Model(&postModel.LikeModel{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &liked).Error; err != nil {
		return nil, err
	}
	for _, id := range liked {
		out[id] = true
	}
	return out, nil
}
