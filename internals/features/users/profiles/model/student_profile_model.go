package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type StudentProfileModel struct {
	ID                uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID            uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"userId"`
	GradeLevel        string         `gorm:"size:50;not null" json:"gradeLevel"`
	Interests         pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"interests"`
	LearningGoals     pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"learningGoals"`
	PreferredSubjects pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"preferredSubjects"`
	Budget            *float64       `gorm:"type:numeric(10,2)" json:"budget"`
	Location          *string        `gorm:"size:150" json:"location"`
	IsCompleted       bool           `gorm:"not null;default:false" json:"isCompleted"`
	CreatedAt         time.Time      `gorm:"type:timestamptz;autoCreateTime" json:"createdAt"`
	UpdatedAt         time.Time      `gorm:"type:timestamptz;autoUpdateTime" json:"updatedAt"`
}

func (StudentProfileModel) TableName() string {
	return "student_profiles"
}
