package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"teecha_backend/internals/constants"
	authRepo "teecha_backend/internals/features/users/auth/repository"
	userModel "teecha_backend/internals/features/users/user/model"
	helperAuth "teecha_backend/internals/helpers/auth"
	"teecha_backend/internals/helpers/mailer"
)

const ForgotPasswordMessage = "If an account with that email exists, a password reset link has been sent."

var (
	ErrEmailTaken          = fiber.NewError(fiber.StatusBadRequest, "Email already registered")
	ErrInvalidCredentials  = fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
	ErrEmailUnconfirmed    = fiber.NewError(fiber.StatusUnauthorized, "Please confirm your email before logging in. Check your inbox or request a new confirmation email.")
	ErrNotSchoolAccount    = fiber.NewError(fiber.StatusForbidden, "Only school accounts can use this login.")
	ErrInvalidRefresh      = fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired refresh token")
	ErrInvalidConfirmToken = fiber.NewError(fiber.StatusBadRequest, "Invalid or expired confirmation token")
	ErrInvalidResetToken   = fiber.NewError(fiber.StatusBadRequest, "Invalid or expired reset token")
	ErrWrongPassword       = fiber.NewError(fiber.StatusBadRequest, "Current password is incorrect")
	ErrUserGone            = fiber.NewError(fiber.StatusNotFound, "User not found")
	ErrGoogleToken         = fiber.NewError(fiber.StatusUnauthorized, "Invalid Google ID token")
	ErrGoogleRoleRequired  = fiber.NewError(fiber.StatusBadRequest, "role is required for the first Google sign-in")
	ErrGoogleUnverified    = fiber.NewError(fiber.StatusUnauthorized, "Google account email is not verified")
)

// GoogleIdentity is the verified subset of a Google ID token.
type GoogleIdentity struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}

type GoogleVerifier func(ctx context.Context, idToken string) (*GoogleIdentity, error)

type AuthService struct {
	Users       authRepo.UserRepository
	Tokens      *TokenService
	Mailer      mailer.Mailer
	Blacklist   helperAuth.Blacklist
	Google      GoogleVerifier
	FrontendURL string
	MailTimeout time.Duration
}

type LoginResult struct {
	Token            string
	RefreshToken     string
	User             *userModel.UserModel
	ProfileCompleted bool
}

/* =========================================================
   Register & confirmation
   ========================================================= */

type RegisterResult struct {
	User *userModel.UserModel
	// MailErr is set when the account exists but the confirmation email failed.
	MailErr error
}

// Register creates the account and emails a confirmation link.
func (s *AuthService) Register(ctx context.Context, email, password, role, name string) (*RegisterResult, error) {
	if !constants.IsValidRole(role) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid role")
	}
	email = authRepo.NormalizeEmail(email)
	if _, err := s.Users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, authRepo.ErrUserNotFound) {
		return nil, err
	}

	user := &userModel.UserModel{
		ID:            uuid.New(),
		Email:         email,
		PlainPassword: password,
		Role:          role,
		Name:          strings.TrimSpace(name),
	}
	token, _, err := s.Tokens.Issue(TokenConfirm, user)
	if err != nil {
		return nil, err
	}
	user.ConfirmationToken = &token

	if err := s.Users.Create(ctx, user); err != nil {
		if errors.Is(err, authRepo.ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	log.Printf("[AUTH] registered %s (%s)", user.Email, user.Role)

	mailErr := s.sendConfirmation(ctx, user, token)
	if mailErr != nil {
		log.Printf("[MAIL] confirmation to %s failed: %v", user.Email, mailErr)
	}
	return &RegisterResult{User: user, MailErr: mailErr}, nil
}

func (s *AuthService) sendConfirmation(ctx context.Context, u *userModel.UserModel, token string) error {
	return s.send(ctx, &mailer.Message{
		ToEmail:  u.Email,
		ToName:   u.Name,
		Subject:  "Confirm your email",
		Template: mailer.TemplateConfirmEmail,
		Data:     map[string]any{"Link": s.FrontendURL + "/confirm-email/" + token},
	})
}

func (s *AuthService) send(ctx context.Context, msg *mailer.Message) error {
	if s.Mailer == nil {
		return fmt.Errorf("mailer not configured")
	}
	timeout := s.MailTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return s.Mailer.Send(ctx, msg)
}

func (s *AuthService) ConfirmEmail(ctx context.Context, token string) (*userModel.UserModel, error) {
	claims, err := s.Tokens.Parse(token, TokenConfirm)
	if err != nil {
		return nil, ErrInvalidConfirmToken
	}
	user, err := s.Users.FindByID(ctx, claims.UserID())
	if err != nil {
		if errors.Is(err, authRepo.ErrUserNotFound) {
			return nil, ErrInvalidConfirmToken
		}
		return nil, err
	}
	if user.EmailConfirmed {
		return user, nil
	}
	if user.ConfirmationToken == nil || *user.ConfirmationToken != token {
		return nil, ErrInvalidConfirmToken
	}

	user.EmailConfirmed = true
	user.ConfirmationToken = nil
	if err := s.Users.Save(ctx, user); err != nil {
		return nil, err
	}
	_ = s.send(ctx, &mailer.Message{ToEmail: user.Email, ToName: user.Name, Subject: "Welcome", Template: mailer.TemplateWelcome})
	return user, nil
}

// ResendConfirmation never reveals whether the account exists.
func (s *AuthService) ResendConfirmation(ctx context.Context, email string) error {
	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, authRepo.ErrUserNotFound) {
			return nil
		}
		return err
	}
	if user.EmailConfirmed {
		return nil
	}
	token, _, err := s.Tokens.Issue(TokenConfirm, user)
	if err != nil {
		return err
	}
	user.ConfirmationToken = &token
	if err := s.Users.Save(ctx, user); err != nil {
		return err
	}
	if err := s.sendConfirmation(ctx, user, token); err != nil {
		log.Printf("[MAIL] resend confirmation to %s failed: %v", user.Email, err)
	}
	return nil
}

/* =========================================================
   Login & session
   ========================================================= */

func (s *AuthService) authenticate(ctx context.Context, email, password string) (*userModel.UserModel, error) {
	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, authRepo.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	// unconfirmed wins over a wrong password
	if !user.EmailConfirmed {
		return nil, ErrEmailUnconfirmed
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.startSession(ctx, user, false)
}

// SchoolLogin additionally issues a rotating refresh token.
func (s *AuthService) SchoolLogin(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if user.Role != constants.RoleSchool {
		return nil, ErrNotSchoolAccount
	}
	return s.startSession(ctx, user, true)
}

func (s *AuthService) startSession(ctx context.Context, user *userModel.UserModel, withRefresh bool) (*LoginResult, error) {
	access, _, err := s.Tokens.Issue(TokenAccess, user)
	if err != nil {
		return nil, err
	}
	res := &LoginResult{Token: access, User: user, ProfileCompleted: user.ProfileCompleted}

	if withRefresh {
		refresh, exp, err := s.Tokens.Issue(TokenRefresh, user)
		if err != nil {
			return nil, err
		}
		hash := ComputeRefreshHash(refresh, s.Tokens.RefreshSecret)
		user.RefreshToken = &hash
		user.RefreshTokenExpires = &exp
		res.RefreshToken = refresh
	}

	now := s.Tokens.Now()
	user.LastLoginAt = &now
	if err := s.Users.Save(ctx, user); err != nil {
		return nil, err
	}
	return res, nil
}

// Refresh verifies the stored hash and rotates the refresh token.
func (s *AuthService) Refresh(ctx context.Context, raw string) (*LoginResult, error) {
	claims, err := s.Tokens.Parse(raw, TokenRefresh)
	if err != nil {
		return nil, ErrInvalidRefresh
	}
	user, err := s.Users.FindByID(ctx, claims.UserID())
	if err != nil {
		if errors.Is(err, authRepo.ErrUserNotFound) {
			return nil, ErrInvalidRefresh
		}
		return nil, err
	}
	if user.RefreshToken == nil || user.RefreshTokenExpires == nil ||
		*user.RefreshToken != ComputeRefreshHash(raw, s.Tokens.RefreshSecret) ||
		s.Tokens.Now().After(*user.RefreshTokenExpires) {
		return nil, ErrInvalidRefresh
	}
	return s.startSession(ctx, user, true)
}

func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*userModel.UserModel, error) {
	user, err := s.Users.FindByID(ctx, userID)
	if errors.Is(err, authRepo.ErrUserNotFound) {
		return nil, ErrUserGone
	}
	return user, err
}

// Logout revokes the access token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID, rawAccess string) error {
	if s.Blacklist != nil && rawAccess != "" {
		exp := s.Tokens.Now().Add(s.Tokens.AccessTTL)
		if claims, err := s.Tokens.Parse(rawAccess, TokenAccess); err == nil && claims.ExpiresAt != nil {
			exp = claims.ExpiresAt.Time
		}
		if err := s.Blacklist.Add(ctx, rawAccess, exp); err != nil {
			return err
		}
	}
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, authRepo.ErrUserNotFound) {
			return nil
		}
		return err
	}
	if user.RefreshToken != nil {
		user.RefreshToken, user.RefreshTokenExpires = nil, nil
		return s.Users.Save(ctx, user)
	}
	return nil
}

/* =========================================================
   Passwords
   ========================================================= */

// ForgotPassword answers identically for known and unknown emails.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, authRepo.ErrUserNotFound) {
			log.Printf("[AUTH] forgot-password lookup failed: %v", err)
		}
		return nil
	}
	token, exp, err := s.Tokens.Issue(TokenReset, user)
	if err != nil {
		log.Printf("[AUTH] forgot-password token failed: %v", err)
		return nil
	}
	user.ResetPasswordToken = &token
	user.ResetPasswordExpires = &exp
	if err := s.Users.Save(ctx, user); err != nil {
		log.Printf("[AUTH] forgot-password save failed: %v", err)
		return nil
	}
	err = s.send(ctx, &mailer.Message{
		ToEmail:  user.Email,
		ToName:   user.Name,
		Subject:  "Reset your password",
		Template: mailer.TemplateResetPassword,
		Data:     map[string]any{"Link": s.FrontendURL + "/reset-password/" + token},
	})
	if err != nil {
		log.Printf("[MAIL] reset to %s failed: %v", user.Email, err)
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	claims, err := s.Tokens.Parse(token, TokenReset)
	if err != nil {
		return ErrInvalidResetToken
	}
	user, err := s.Users.FindByID(ctx, claims.UserID())
	if err != nil {
		if errors.Is(err, authRepo.ErrUserNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}
	if user.ResetPasswordToken == nil || *user.ResetPasswordToken != token ||
		user.ResetPasswordExpires == nil || s.Tokens.Now().After(*user.ResetPasswordExpires) {
		return ErrInvalidResetToken
	}
	user.PlainPassword = password
	user.ResetPasswordToken, user.ResetPasswordExpires = nil, nil
	user.RefreshToken, user.RefreshTokenExpires = nil, nil
	return s.Users.Save(ctx, user)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	user, err := s.Me(ctx, userID)
	if err != nil {
		return err
	}
	if !user.CheckPassword(current) {
		return ErrWrongPassword
	}
	user.PlainPassword = next
	return s.Users.Save(ctx, user)
}

/* =========================================================
   Google sign-in
   ========================================================= */

func (s *AuthService) LoginGoogle(ctx context.Context, idToken, role string) (*LoginResult, error) {
	if s.Google == nil {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "Google sign-in is not configured")
	}
	ident, err := s.Google(ctx, idToken)
	if err != nil || ident == nil || ident.Subject == "" {
		return nil, ErrGoogleToken
	}

	user, err := s.Users.FindByGoogleID(ctx, ident.Subject)
	if errors.Is(err, authRepo.ErrUserNotFound) {
		// linking or creating by email needs Google to vouch for the address
		if !ident.EmailVerified || ident.Email == "" {
			return nil, ErrGoogleUnverified
		}
		user, err = s.Users.FindByEmail(ctx, ident.Email)
		if err == nil {
			user.GoogleID = &ident.Subject
			user.EmailConfirmed = true
			if user.ProfilePicture == nil && ident.Picture != "" {
				user.ProfilePicture = &ident.Picture
			}
		}
	}
	if errors.Is(err, authRepo.ErrUserNotFound) {
		if !constants.IsValidRole(role) {
			return nil, ErrGoogleRoleRequired
		}
		user = &userModel.UserModel{
			ID:             uuid.New(),
			Email:          ident.Email,
			PlainPassword:  uuid.NewString(),
			Role:           role,
			Name:           ident.Name,
			GoogleID:       &ident.Subject,
			EmailConfirmed: true,
		}
		if ident.Picture != "" {
			user.ProfilePicture = &ident.Picture
		}
		if err := s.Users.Create(ctx, user); err != nil {
			return nil, err
		}
		log.Printf("[AUTH] google account created %s", user.Email)
	} else if err != nil {
		return nil, err
	}
	return s.startSession(ctx, user, false)
}
