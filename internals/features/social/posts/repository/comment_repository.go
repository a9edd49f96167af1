package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	postModel "teecha_backend/internals/features/social/posts/model"
	helper "teecha_backend/internals/helpers"
)

var ErrCommentNotFound = errors.New("comment not found")

type CommentRepository struct {
	DB *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{DB: db}
}

// Create inserts the comment and bumps the post counter in one transaction.
func (r *CommentRepository) Create(ctx context.Context, c *postModel.CommentModel) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&postModel.PostModel{}).Where("id = ?", c.PostID).
			UpdateColumn("comments_count", gorm.Expr("comments_count + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrPostNotFound
		}
		return tx.Create(c).Error
	})
}

func (r *CommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*postModel.CommentModel, error) {
	var c postModel.CommentModel
	if err := r.DB.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if helper.IsNotFound(err) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ListByPost pages comments oldest first.
func (r *CommentRepository) ListByPost(ctx context.Context, postID uuid.UUID, p helper.Paging) ([]postModel.CommentModel, int64, error) {
	q := r.DB.WithContext(ctx).Model(&postModel.CommentModel{}).Where("post_id = ?", postID)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []postModel.CommentModel
	if err := q.Order("created_at ASC").Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *CommentRepository) UpdateContent(ctx context.Context, c *postModel.CommentModel, content string) error {
	c.Content = content
	return r.DB.WithContext(ctx).Model(c).Select("content", "updated_at").Updates(c).Error
}

func (r *CommentRepository) Delete(ctx context.Context, c *postModel.CommentModel) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&postModel.CommentModel{}, "id = ?", c.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrCommentNotFound
		}
		return tx.Model(&postModel.PostModel{}).Where("id = ?", c.PostID).
			UpdateColumn("comments_count", gorm.Expr("GREATEST(comments_count - 1, 0)")).Error
	})
}
