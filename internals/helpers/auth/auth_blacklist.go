package helper

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Blacklist stores revoked access tokens until their natural expiry.
type Blacklist interface {
	Add(ctx context.Context, rawToken string, expiresAt time.Time) error
	IsBlacklisted(ctx context.Context, rawToken string) (bool, error)
}

func hmacHex(msg, secret string) string {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(msg))
	return hex.EncodeToString(m.Sum(nil))
}

/* =========================================================
   Postgres (token_blacklist)
   ========================================================= */

type GormBlacklist struct {
	DB     *gorm.DB
	Secret string
}

func NewGormBlacklist(db *gorm.DB, secret string) *GormBlacklist {
	return &GormBlacklist{DB: db, Secret: secret}
}

func (b *GormBlacklist) Add(ctx context.Context, rawToken string, expiresAt time.Time) error {
	if b.DB == nil || strings.TrimSpace(rawToken) == "" {
		return nil
	}
	return b.DB.WithContext(ctx).Exec(`
		INSERT INTO token_blacklist (token, expired_at, created_at)
		VALUES (?, ?, NOW())
		ON CONFLICT (token) DO UPDATE SET expired_at = EXCLUDED.expired_at
	`, hmacHex(rawToken, b.Secret), expiresAt).Error
}

func (b *GormBlacklist) IsBlacklisted(ctx context.Context, rawToken string) (bool, error) {
	if b.DB == nil || strings.TrimSpace(rawToken) == "" {
		return false, nil
	}
	var exists bool
	err := b.DB.WithContext(ctx).Raw(`
		SELECT EXISTS (
		  SELECT 1 FROM token_blacklist
		  WHERE token = ? AND expired_at > NOW()
		)
	`, hmacHex(rawToken, b.Secret)).Scan(&exists).Error
	return exists, err
}

// PurgeExpired removes rows whose token has expired anyway.
func (b *GormBlacklist) PurgeExpired(ctx context.Context) (int64, error) {
	res := b.DB.WithContext(ctx).Exec(`DELETE FROM token_blacklist WHERE expired_at <= NOW()`)
	return res.RowsAffected, res.Error
}

/* =========================================================
   Redis (keys expire on their own)
   ========================================================= */

type RedisBlacklist struct {
	Client *redis.Client
	Secret string
	Prefix string
}

func NewRedisBlacklist(client *redis.Client, secret string) *RedisBlacklist {
	return &RedisBlacklist{Client: client, Secret: secret, Prefix: "teecha:bl:"}
}

func (b *RedisBlacklist) key(raw string) string {
	return b.Prefix + hmacHex(raw, b.Secret)
}

func (b *RedisBlacklist) Add(ctx context.Context, rawToken string, expiresAt time.Time) error {
	if strings.TrimSpace(rawToken) == "" {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return b.Client.Set(ctx, b.key(rawToken), 1, ttl).Err()
}

func (b *RedisBlacklist) IsBlacklisted(ctx context.Context, rawToken string) (bool, error) {
	if strings.TrimSpace(rawToken) == "" {
		return false, nil
	}
	err := b.Client.Get(ctx, b.key(rawToken)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

/* =========================================================
   In-memory (tests and local runs without a DB)
   ========================================================= */

type MemoryBlacklist struct {
	mu    sync.Mutex
	items map[string]time.Time
}

func NewMemoryBlacklist() *MemoryBlacklist {
	return &MemoryBlacklist{items: map[string]time.Time{}}
}

func (b *MemoryBlacklist) Add(_ context.Context, rawToken string, expiresAt time.Time) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items[rawToken] = expiresAt
	return nil
}

func (b *MemoryBlacklist) IsBlacklisted(_ context.Context, rawToken string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	exp, ok := b.items[rawToken]
	return ok && time.Now().Before(exp), nil
}
