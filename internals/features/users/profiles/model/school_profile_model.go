package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type SchoolProfileModel struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"userId"`
	SchoolName      string         `gorm:"size:200;not null" json:"schoolName"`
	SchoolType      string         `gorm:"size:50;not null;index" json:"schoolType"`
	Address         *string        `gorm:"type:text" json:"address"`
	City            string         `gorm:"size:100;not null;index" json:"city"`
	Country         string         `gorm:"size:100;not null;index" json:"country"`
	Website         *string        `gorm:"type:text" json:"website"`
	Phone           *string        `gorm:"size:30" json:"phone"`
	Facilities      pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"facilities"`
	Programs        pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"programs"`
	StudentCount    *int           `json:"studentCount"`
	EstablishedYear *int           `json:"establishedYear"`
	SocialLinks     datatypes.JSON `gorm:"type:jsonb" json:"socialLinks"`
	IsCompleted     bool           `gorm:"not null;default:false" json:"isCompleted"`
	CreatedAt       time.Time      `gorm:"type:timestamptz;autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time      `gorm:"type:timestamptz;autoUpdateTime" json:"updatedAt"`
}

func (SchoolProfileModel) TableName() string {
	return "school_profiles"
}
