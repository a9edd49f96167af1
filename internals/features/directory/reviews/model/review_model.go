package model

import (
	"time"

	"github.com/google/uuid"

	UserModel "teecha_backend/internals/features/users/user/model"
)

type ReviewModel struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TeacherID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_reviews_teacher_reviewer,priority:1" json:"teacherId"`
	ReviewerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_reviews_teacher_reviewer,priority:2;index" json:"reviewerId"`
	Rating     int       `gorm:"not null;check:chk_reviews_rating,rating BETWEEN 1 AND 5" json:"rating"`
	Comment    *string   `gorm:"type:text" json:"comment"`
	CreatedAt  time.Time `gorm:"type:timestamptz;autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updatedAt"`

	// Relations
	Teacher  *UserModel.UserModel `gorm:"foreignKey:TeacherID;constraint:OnDelete:CASCADE" json:"-"`
	Reviewer *UserModel.UserModel `gorm:"foreignKey:ReviewerID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ReviewModel) TableName() string {
	return "reviews"
}
