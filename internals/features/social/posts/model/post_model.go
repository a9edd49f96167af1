package model

import (
	"time"

	"github.com/google/uuid"

	UserModel "teecha_backend/internals/features/users/user/model"
)

type PostModel struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	Content       string    `gorm:"type:text;not null;default:''" json:"content"`
	Type          string    `gorm:"type:varchar(20);not null;default:'text'" json:"type"`
	ImageURL      *string   `gorm:"column:image_url;type:text" json:"imageUrl"`
	VideoURL      *string   `gorm:"column:video_url;type:text" json:"videoUrl"`
	LikesCount    int       `gorm:"not null;default:0" json:"likesCount"`
	CommentsCount int       `gorm:"not null;default:0" json:"commentsCount"`
	CreatedAt     time.Time `gorm:"type:timestamptz;autoCreateTime;index" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updatedAt"`

	// Relations
	User *UserModel.UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (PostModel) TableName() string {
	return "posts"
}
