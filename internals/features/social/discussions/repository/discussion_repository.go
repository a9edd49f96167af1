package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	discModel "teecha_backend/internals/features/social/discussions/model"
	helper "teecha_backend/internals/helpers"
)

var (
	ErrDiscussionNotFound = errors.New("discussion not found")
	ErrCommentNotFound    = errors.New("discussion comment not found")
)

const slugMaxLen = 100

type DiscussionFilter struct {
	Category string
	Search   string
	Tag      string
}

type DiscussionRepository struct {
	DB *gorm.DB
}

func NewDiscussionRepository(db *gorm.DB) *DiscussionRepository {
	return &DiscussionRepository{DB: db}
}

// Create assigns a unique slug derived from the title before inserting.
func (r *DiscussionRepository) Create(ctx context.Context, d *discModel.DiscussionModel) error {
	base := helper.Slugify(d.Title, slugMaxLen)
	if base == "" {
		base = "discussion"
	}
	slug, err := helper.EnsureUniqueSlug(ctx, r.DB, d.TableName(), "slug", base, slugMaxLen)
	if err != nil {
		return err
	}
	d.Slug = slug
	return r.DB.WithContext(ctx).Create(d).Error
}

func (r *DiscussionRepository) FindByID(ctx context.Context, id uuid.UUID) (*discModel.DiscussionModel, error) {
	var d discModel.DiscussionModel
	if err := r.DB.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		if helper.IsNotFound(err) {
			return nil, ErrDiscussionNotFound
		}
		return nil, err
	}
	return &d, nil
}

// List returns pinned discussions first, then newest.
func (r *DiscussionRepository) List(ctx context.Context, f DiscussionFilter, p helper.Paging) ([]discModel.DiscussionModel, int64, error) {
	q := r.DB.WithContext(ctx).Model(&discModel.DiscussionModel{})
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := helper.ContainsPattern(s)
		q = q.Where("title ILIKE ? OR content ILIKE ?", like, like)
	}
	if t := strings.TrimSpace(f.Tag); t != "" {
		q = q.Where("? = ANY(tags)", t)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []discModel.DiscussionModel
	if err := q.Order("is_pinned DESC").Order("created_at DESC").
		Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *DiscussionRepository) IncrementViews(ctx context.Context, d *discModel.DiscussionModel) error {
	if err := r.DB.WithContext(ctx).Model(&discModel.DiscussionModel{}).Where("id = ?", d.ID).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error; err != nil {
		return err
	}
	d.ViewsCount++
	return nil
}

func (r *DiscussionRepository) Save(ctx context.Context, d *discModel.DiscussionModel) error {
	return r.DB.WithContext(ctx).Model(d).
		Select("title", "content", "category", "tags", "is_pinned", "is_closed", "updated_at").
		Updates(d).Error
}

func (r *DiscussionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Delete(&discModel.DiscussionModel{}, "id = ?", id).Error
}

/* ===================== Comments ===================== */

func (r *DiscussionRepository) Comments(ctx context.Context, discussionID uuid.UUID) ([]discModel.DiscussionCommentModel, error) {
	var rows []discModel.DiscussionCommentModel
	err := r.DB.WithContext(ctx).
		Where("discussion_id = ?", discussionID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *DiscussionRepository) FindComment(ctx context.Context, id uuid.UUID) (*discModel.DiscussionCommentModel, error) {
	var c discModel.DiscussionCommentModel
	if err := r.DB.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if helper.IsNotFound(err) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &c, nil
}

// AddComment inserts c and bumps the discussion counter in one transaction.
func (r *DiscussionRepository) AddComment(ctx context.Context, c *discModel.DiscussionCommentModel) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		return tx.Model(&discModel.DiscussionModel{}).Where("id = ?", c.DiscussionID).
			UpdateColumn("comments_count", gorm.Expr("comments_count + 1")).Error
	})
}

// DeleteComment removes c with all nested replies and returns how many rows went.
func (r *DiscussionRepository) DeleteComment(ctx context.Context, c *discModel.DiscussionCommentModel) (int64, error) {
	var removed int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(`
			WITH RECURSIVE sub AS (
				SELECT id FROM discussion_comments WHERE id = ?
				UNION ALL
				SELECT dc.id FROM discussion_comments dc JOIN sub ON dc.parent_id = sub.id
			)
			DELETE FROM discussion_comments WHERE id IN (SELECT id FROM sub)`, c.ID)
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected
		if removed == 0 {
			return ErrCommentNotFound
		}
		return tx.Model(&discModel.DiscussionModel{}).Where("id = ?", c.DiscussionID).
			UpdateColumn("comments_count", gorm.Expr("GREATEST(comments_count - ?, 0)", removed)).Error
	})
	return removed, err
}
