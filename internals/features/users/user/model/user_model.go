package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserModel represents the users table.
type UserModel struct {
	ID               uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email            string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password         string    `gorm:"not null" json:"-"` // bcrypt hash, written only by BeforeSave
	PlainPassword    string    `gorm:"-" json:"-"`
	Role             string    `gorm:"type:varchar(20);not null;index" json:"role"`
	Name             string    `gorm:"size:100;not null" json:"name"`
	Bio              *string   `gorm:"type:text" json:"bio"`
	ProfilePicture   *string   `gorm:"type:text" json:"profilePicture"`
	EmailConfirmed   bool      `gorm:"not null;default:false" json:"emailConfirmed"`
	ProfileCompleted bool      `gorm:"not null;default:false" json:"profileCompleted"`

	ConfirmationToken    *string    `gorm:"type:text" json:"-"`
	ResetPasswordToken   *string    `gorm:"type:text" json:"-"`
	ResetPasswordExpires *time.Time `gorm:"type:timestamptz" json:"-"`
	RefreshToken         *string    `gorm:"type:text" json:"-"`
	RefreshTokenExpires  *time.Time `gorm:"type:timestamptz" json:"-"`

	GoogleID    *string    `gorm:"size:255;uniqueIndex" json:"-"`
	LastLoginAt *time.Time `gorm:"type:timestamptz" json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `gorm:"type:timestamptz;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"type:timestamptz;autoUpdateTime" json:"updatedAt"`
}

func (UserModel) TableName() string {
	return "users"
}

// BeforeSave normalizes the email and hashes PlainPassword into Password when set.
func (u *UserModel) BeforeSave(tx *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.PlainPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.PlainPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.Password = string(hash)
		u.PlainPassword = ""
	}
	return nil
}

func (u *UserModel) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}

// UserSummary is the author/partner card embedded in lists.
type UserSummary struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	ProfilePicture *string   `json:"profilePicture"`
}

func (u UserModel) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Role: u.Role, ProfilePicture: u.ProfilePicture}
}
