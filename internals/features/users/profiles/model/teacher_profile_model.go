package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type TeacherProfileModel struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"userId"`
	Subjects       pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"subjects"`
	Qualifications pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"qualifications"`
	Experience     int            `gorm:"not null;default:0" json:"experience"`
	HourlyRate     *float64       `gorm:"type:numeric(10,2)" json:"hourlyRate"`
	TeachingMode   string         `gorm:"type:varchar(10);not null;default:'both'" json:"teachingMode"`
	Location       *string        `gorm:"size:150" json:"location"`
	Languages      pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"languages"`
	Availability   datatypes.JSON `gorm:"type:jsonb" json:"availability"`
	IsCompleted    bool           `gorm:"not null;default:false" json:"isCompleted"`
	CreatedAt      time.Time      `gorm:"type:timestamptz;autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time      `gorm:"type:timestamptz;autoUpdateTime" json:"updatedAt"`
}

func (TeacherProfileModel) TableName() string {
	return "teacher_profiles"
}
