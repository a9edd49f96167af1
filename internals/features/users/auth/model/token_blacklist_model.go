package model

import (
	"time"
)

// TokenBlacklist holds HMAC digests of revoked access tokens.
type TokenBlacklist struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Token     string    `gorm:"type:text;not null;uniqueIndex" json:"-"`
	ExpiredAt time.Time `gorm:"type:timestamptz;not null;index" json:"expiredAt"`
	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"createdAt"`
}

func (TokenBlacklist) TableName() string {
	return "token_blacklist"
}
