package model

import (
	"time"

	"github.com/google/uuid"

	UserModel "teecha_backend/internals/features/users/user/model"
)

// LikeModel: one row per (post, user); the unique index backs duplicate detection.
type LikeModel struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_likes_post_user,priority:1" json:"postId"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_likes_post_user,priority:2;index" json:"userId"`
	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"createdAt"`

	// Relations
	Post *PostModel          `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	User *UserModel.UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (LikeModel) TableName() string {
	return "likes"
}
