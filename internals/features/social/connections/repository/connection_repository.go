package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"teecha_backend/internals/constants"
	connModel "teecha_backend/internals/features/social/connections/model"
	userModel "teecha_backend/internals/features/users/user/model"
	helper "teecha_backend/internals/helpers"
)

var ErrConnectionNotFound = errors.New("connection not found")

type ConnectionRepository struct {
	DB *gorm.DB
}

func NewConnectionRepository(db *gorm.DB) *ConnectionRepository {
	return &ConnectionRepository{DB: db}
}

func (r *ConnectionRepository) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&userModel.UserModel{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

// FindBetween returns the connection between a and b in either direction, or nil.
func (r *ConnectionRepository) FindBetween(ctx context.Context, a, b uuid.UUID) (*connModel.ConnectionModel, error) {
	var rows []connModel.ConnectionModel
	if err := r.DB.WithContext(ctx).
		Where("(requester_id = ? AND receiver_id = ?) OR (requester_id = ? AND receiver_id = ?)", a, b, b, a).
		Order("updated_at DESC").
		Limit(1).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *ConnectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*connModel.ConnectionModel, error) {
	var c connModel.ConnectionModel
	if err := r.DB.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if helper.IsNotFound(err) {
			return nil, ErrConnectionNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *ConnectionRepository) Create(ctx context.Context, c *connModel.ConnectionModel) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *ConnectionRepository) Save(ctx context.Context, c *connModel.ConnectionModel) error {
	return r.DB.WithContext(ctx).Model(c).
		Select("requester_id", "receiver_id", "status", "message", "updated_at").
		Updates(c).Error
}

func (r *ConnectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Delete(&connModel.ConnectionModel{}, "id = ?", id).Error
}

// ListAccepted pages the caller's accepted connections, most recent first.
func (r *ConnectionRepository) ListAccepted(ctx context.Context, me uuid.UUID, p helper.Paging) ([]connModel.ConnectionModel, int64, error) {
	q := r.DB.WithContext(ctx).Model(&connModel.ConnectionModel{}).
		Where("status = ? AND (requester_id = ? OR receiver_id = ?)", constants.ConnectionAccepted, me, me)
	return page(q, p)
}

func (r *ConnectionRepository) ListIncoming(ctx context.Context, me uuid.UUID, p helper.Paging) ([]connModel.ConnectionModel, int64, error) {
	q := r.DB.WithContext(ctx).Model(&connModel.ConnectionModel{}).
		Where("status = ? AND receiver_id = ?", constants.ConnectionPending, me)
	return page(q, p)
}

func (r *ConnectionRepository) ListOutgoing(ctx context.Context, me uuid.UUID, p helper.Paging) ([]connModel.ConnectionModel, int64, error) {
	q := r.DB.WithContext(ctx).Model(&connModel.ConnectionModel{}).
		Where("status = ? AND requester_id = ?", constants.ConnectionPending, me)
	return page(q, p)
}

func page(q *gorm.DB, p helper.Paging) ([]connModel.ConnectionModel, int64, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []connModel.ConnectionModel
	if err := q.Order("updated_at DESC").Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
