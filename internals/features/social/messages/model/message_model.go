package model

import (
	"time"

	"github.com/google/uuid"

	UserModel "teecha_backend/internals/features/users/user/model"
)

type MessageModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SenderID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_messages_pair,priority:1" json:"senderId"`
	ReceiverID uuid.UUID  `gorm:"type:uuid;not null;index:idx_messages_pair,priority:2;index" json:"receiverId"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	ReadAt     *time.Time `gorm:"type:timestamptz" json:"readAt"`
	CreatedAt  time.Time  `gorm:"type:timestamptz;autoCreateTime;index" json:"createdAt"`
	UpdatedAt  time.Time  `gorm:"type:timestamptz;autoUpdateTime" json:"updatedAt"`

	// Relations
	Sender   *UserModel.UserModel `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE" json:"-"`
	Receiver *UserModel.UserModel `gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE" json:"-"`
}

func (MessageModel) TableName() string {
	return "messages"
}
