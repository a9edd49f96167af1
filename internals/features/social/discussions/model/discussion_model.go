package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	UserModel "teecha_backend/internals/features/users/user/model"
)

type DiscussionModel struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"userId"`
	Title         string         `gorm:"size:200;not null" json:"title"`
	Slug          string         `gorm:"size:120;not null;uniqueIndex" json:"slug"`
	Content       string         `gorm:"type:text;not null" json:"content"`
	Category      string         `gorm:"type:varchar(20);not null;default:'general';index" json:"category"`
	Tags          pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"tags"`
	IsPinned      bool           `gorm:"not null;default:false" json:"isPinned"`
	IsClosed      bool           `gorm:"not null;default:false" json:"isClosed"`
	ViewsCount    int            `gorm:"not null;default:0" json:"viewsCount"`
	CommentsCount int            `gorm:"not null;default:0" json:"commentsCount"`
	CreatedAt     time.Time      `gorm:"type:timestamptz;autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time      `gorm:"type:timestamptz;autoUpdateTime" json:"updatedAt"`

	// Relations
	User *UserModel.UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (DiscussionModel) TableName() string {
	return "discussions"
}

type DiscussionCommentModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DiscussionID uuid.UUID  `gorm:"type:uuid;not null;index" json:"discussionId"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"userId"`
	ParentID     *uuid.UUID `gorm:"type:uuid;index" json:"parentId"`
	Content      string     `gorm:"type:text;not null" json:"content"`
	CreatedAt    time.Time  `gorm:"type:timestamptz;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"type:timestamptz;autoUpdateTime" json:"updatedAt"`

	// Relations
	Discussion *DiscussionModel        `gorm:"foreignKey:DiscussionID;constraint:OnDelete:CASCADE" json:"-"`
	Parent     *DiscussionCommentModel `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"-"`
	User       *UserModel.UserModel    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (DiscussionCommentModel) TableName() string {
	return "discussion_comments"
}
