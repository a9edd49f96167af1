package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	userModel "teecha_backend/internals/features/users/user/model"
)

const (
	TokenAccess  = "access"
	TokenRefresh = "refresh"
	TokenConfirm = "confirm"
	TokenReset   = "reset"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims carried by every token; Typ keeps the kinds apart.
type Claims struct {
	ID   string `json:"id"`
	Role string `json:"role,omitempty"`
	Typ  string `json:"typ"`
	jwt.RegisteredClaims
}

type TokenService struct {
	Secret        string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	ConfirmTTL    time.Duration
	ResetTTL      time.Duration
	Now           func() time.Time
}

func NewTokenService(secret, refreshSecret string) *TokenService {
	if refreshSecret == "" {
		refreshSecret = secret
	}
	return &TokenService{
		Secret:        secret,
		RefreshSecret: refreshSecret,
		AccessTTL:     24 * time.Hour,
		RefreshTTL:    7 * 24 * time.Hour,
		ConfirmTTL:    24 * time.Hour,
		ResetTTL:      time.Hour,
		Now:           func() time.Time { return time.Now().UTC() },
	}
}

func (s *TokenService) ttl(typ string) time.Duration {
	switch typ {
	case TokenRefresh:
		return s.RefreshTTL
	case TokenConfirm:
		return s.ConfirmTTL
	case TokenReset:
		return s.ResetTTL
	default:
		return s.AccessTTL
	}
}

func (s *TokenService) secret(typ string) []byte {
	if typ == TokenRefresh {
		return []byte(s.RefreshSecret)
	}
	return []byte(s.Secret)
}

// Issue signs a token of the given kind for u and returns it with its expiry.
func (s *TokenService) Issue(typ string, u *userModel.UserModel) (string, time.Time, error) {
	if s.Secret == "" {
		return "", time.Time{}, fmt.Errorf("JWT_SECRET is not configured")
	}
	now := s.Now()
	exp := now.Add(s.ttl(typ))
	claims := Claims{
		ID:   u.ID.String(),
		Role: u.Role,
		Typ:  typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-30 * time.Second)),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret(typ))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Parse verifies signature, expiry and kind.
func (s *TokenService) Parse(raw, typ string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	tok, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return s.secret(typ), nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Typ != typ {
		return nil, ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.ID); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (c *Claims) UserID() uuid.UUID {
	id, _ := uuid.Parse(c.ID)
	return id
}

// ComputeRefreshHash is what gets stored instead of the raw refresh token.
func ComputeRefreshHash(token, secret string) string {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(token))
	return hex.EncodeToString(m.Sum(nil))
}
