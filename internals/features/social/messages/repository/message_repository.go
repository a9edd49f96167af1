package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	msgModel "teecha_backend/internals/features/social/messages/model"
	userModel "teecha_backend/internals/features/users/user/model"
	helper "teecha_backend/internals/helpers"
)

var ErrMessageNotFound = errors.New("message not found")

type MessageRepository struct {
	DB *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{DB: db}
}

func (r *MessageRepository) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&userModel.UserModel{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *MessageRepository) Create(ctx context.Context, m *msgModel.MessageModel) error {
	return r.DB.WithContext(ctx).Create(m).Error
}

func (r *MessageRepository) FindByID(ctx context.Context, id uuid.UUID) (*msgModel.MessageModel, error) {
	var m msgModel.MessageModel
	if err := r.DB.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if helper.IsNotFound(err) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *MessageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Delete(&msgModel.MessageModel{}, "id = ?", id).Error
}

// LastPerPartner returns the newest message exchanged with each partner of me.
func (r *MessageRepository) LastPerPartner(ctx context.Context, me uuid.UUID) ([]msgModel.MessageModel, error) {
	var rows []msgModel.MessageModel
	err := r.DB.WithContext(ctx).Raw(`
		SELECT DISTINCT ON (partner_id) id, sender_id, receiver_id, content, read_at, created_at, updated_at
		FROM (
			SELECT m.*, CASE WHEN m.sender_id = ? THEN m.receiver_id ELSE m.sender_id END AS partner_id
			FROM messages m
			WHERE m.sender_id = ? OR m.receiver_id = ?
		) t
		ORDER BY partner_id, created_at DESC`, me, me, me).
		Scan(&rows).Error
	return rows, err
}

// UnreadBySender counts unread messages addressed to me, grouped by sender.
func (r *MessageRepository) UnreadBySender(ctx context.Context, me uuid.UUID) (map[uuid.UUID]int64, error) {
	var rows []struct {
		SenderID uuid.UUID
		Count    int64
	}
	if err := r.DB.WithContext(ctx).Model(&msgModel.MessageModel{}).
		Select("sender_id, COUNT(*) AS count").
		Where("receiver_id = ? AND read_at IS NULL", me).
		Group("sender_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]int64, len(rows))
	for _, r := range rows {
		out[r.SenderID] = r.Count
	}
	return out, nil
}

func (r *MessageRepository) UnreadCount(ctx context.Context, me uuid.UUID) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&msgModel.MessageModel{}).
		Where("receiver_id = ? AND read_at IS NULL", me).
		Count(&n).Error
	return n, err
}

// Thread pages messages between me and other newest first.
func (r *MessageRepository) Thread(ctx context.Context, me, other uuid.UUID, p helper.Paging) ([]msgModel.MessageModel, int64, error) {
	q := r.DB.WithContext(ctx).Model(&msgModel.MessageModel{}).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", me, other, other, me)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []msgModel.MessageModel
	if err := q.Order("created_at DESC").Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// MarkRead stamps every unread message from other to me.
func (r *MessageRepository) MarkRead(ctx context.Context, me, other uuid.UUID, at time.Time) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&msgModel.MessageModel{}).
		Where("sender_id = ? AND receiver_id = ? AND read_at IS NULL", other, me).
		UpdateColumn("read_at", at)
	return res.RowsAffected, res.Error
}
