package dto

import (
	userModel "teecha_backend/internals/features/users/user/model"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=128"`
	Role     string `json:"role" validate:"required,oneof=teacher student school"`
	Name     string `json:"name" validate:"required,min=1,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type EmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=128,nefield=CurrentPassword"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
	Role    string `json:"role" validate:"omitempty,oneof=teacher student school"`
}

// UserResponse never carries secrets; the model hides them with json:"-".
type UserResponse = userModel.UserModel

type LoginResponse struct {
	Token            string        `json:"token"`
	RefreshToken     string        `json:"refreshToken,omitempty"`
	User             *UserResponse `json:"user"`
	ProfileCompleted bool          `json:"profileCompleted"`
}

type MeResponse struct {
	User             *UserResponse `json:"user"`
	ProfileCompleted bool          `json:"profileCompleted"`
}
