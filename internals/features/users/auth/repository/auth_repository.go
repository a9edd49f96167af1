package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "teecha_backend/internals/features/users/user/model"
	helper "teecha_backend/internals/helpers"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

// UserRepository is the user-record store used by the auth flows.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error)
	FindByEmail(ctx context.Context, email string) (*userModel.UserModel, error)
	FindByGoogleID(ctx context.Context, googleID string) (*userModel.UserModel, error)
	Create(ctx context.Context, u *userModel.UserModel) error
	Save(ctx context.Context, u *userModel.UserModel) error
	ClearExpiredTokens(ctx context.Context, now time.Time) (int64, error)
}

type gormUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

func (r *gormUserRepository) first(ctx context.Context, query string, args ...any) (*userModel.UserModel, error) {
	var u userModel.UserModel
	if err := r.db.WithContext(ctx).Where(query, args...).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *gormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *gormUserRepository) FindByEmail(ctx context.Context, email string) (*userModel.UserModel, error) {
	return r.first(ctx, "email = ?", NormalizeEmail(email))
}

func (r *gormUserRepository) FindByGoogleID(ctx context.Context, googleID string) (*userModel.UserModel, error) {
	return r.first(ctx, "google_id = ?", googleID)
}

func (r *gormUserRepository) Create(ctx context.Context, u *userModel.UserModel) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *gormUserRepository) Save(ctx context.Context, u *userModel.UserModel) error {
	return r.db.WithContext(ctx).Save(u).Error
}

// ClearExpiredTokens nulls reset and refresh tokens whose expiry passed.
func (r *gormUserRepository) ClearExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	var total int64
	res := r.db.WithContext(ctx).Model(&userModel.UserModel{}).
		Where("reset_password_expires IS NOT NULL AND reset_password_expires < ?", now).
		Updates(map[string]any{"reset_password_token": nil, "reset_password_expires": nil})
	if res.Error != nil {
		return 0, res.Error
	}
	total += res.RowsAffected

	res = r.db.WithContext(ctx).Model(&userModel.UserModel{}).
		Where("refresh_token_expires IS NOT NULL AND refresh_token_expires < ?", now).
		Updates(map[string]any{"refresh_token": nil, "refresh_token_expires": nil})
	if res.Error != nil {
		return total, res.Error
	}
	return total + res.RowsAffected, nil
}
