package model

import (
	"time"

	"github.com/google/uuid"

	UserModel "teecha_backend/internals/features/users/user/model"
)

type CommentModel struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;index" json:"postId"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updatedAt"`

	// Relations
	Post *PostModel          `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	User *UserModel.UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (CommentModel) TableName() string {
	return "comments"
}
