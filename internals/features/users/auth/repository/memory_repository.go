package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	userModel "teecha_backend/internals/features/users/user/model"
)

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// MemoryUserRepository keeps users in a map; it runs the model hook like gorm does.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]userModel.UserModel
}

var _ UserRepository = (*MemoryUserRepository)(nil)

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: map[uuid.UUID]userModel.UserModel{}}
}

func (r *MemoryUserRepository) find(match func(userModel.UserModel) bool) (*userModel.UserModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if match(u) {
			cp := u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *MemoryUserRepository) FindByID(_ context.Context, id uuid.UUID) (*userModel.UserModel, error) {
	return r.find(func(u userModel.UserModel) bool { return u.ID == id })
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*userModel.UserModel, error) {
	email = NormalizeEmail(email)
	return r.find(func(u userModel.UserModel) bool { return u.Email == email })
}

func (r *MemoryUserRepository) FindByGoogleID(_ context.Context, googleID string) (*userModel.UserModel, error) {
	return r.find(func(u userModel.UserModel) bool { return u.GoogleID != nil && *u.GoogleID == googleID })
}

func (r *MemoryUserRepository) Create(_ context.Context, u *userModel.UserModel) error {
	if err := u.BeforeSave(nil); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return ErrEmailTaken
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	r.users[u.ID] = *u
	return nil
}

func (r *MemoryUserRepository) Save(_ context.Context, u *userModel.UserModel) error {
	if err := u.BeforeSave(nil); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u.UpdatedAt = time.Now()
	r.users[u.ID] = *u
	return nil
}

func (r *MemoryUserRepository) ClearExpiredTokens(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, u := range r.users {
		changed := false
		if u.ResetPasswordExpires != nil && u.ResetPasswordExpires.Before(now) {
			u.ResetPasswordToken, u.ResetPasswordExpires = nil, nil
			changed = true
		}
		if u.RefreshTokenExpires != nil && u.RefreshTokenExpires.Before(now) {
			u.RefreshToken, u.RefreshTokenExpires = nil, nil
			changed = true
		}
		if changed {
			r.users[id] = u
			n++
		}
	}
	return n, nil
}

// SetProfileCompleted flips the flag the way the profile upsert does.
func (r *MemoryUserRepository) SetProfileCompleted(id uuid.UUID, v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.ProfileCompleted = v
		r.users[id] = u
	}
}
