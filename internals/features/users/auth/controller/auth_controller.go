package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"teecha_backend/internals/configs"
	"teecha_backend/internals/features/users/auth/dto"
	"teecha_backend/internals/features/users/auth/service"
	helper "teecha_backend/internals/helpers"
	helperAuth "teecha_backend/internals/helpers/auth"
)

type AuthController struct {
	Svc *service.AuthService
}

func NewAuthController(svc *service.AuthService) *AuthController {
	return &AuthController{Svc: svc}
}

func setAccessCookie(c *fiber.Ctx, token string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   configs.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(ttl),
	})
}

func (ac *AuthController) loginResponse(c *fiber.Ctx, res *service.LoginResult, msg string) error {
	setAccessCookie(c, res.Token, ac.Svc.Tokens.AccessTTL)
	return helper.JsonOK(c, msg, dto.LoginResponse{
		Token:            res.Token,
		RefreshToken:     res.RefreshToken,
		User:             res.User,
		ProfileCompleted: res.ProfileCompleted,
	})
}

/* ===================== Register & confirm ===================== */

// POST /api/auth/register
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if ok, err := helper.ParseBody(c, &req); !ok {
		return err
	}
	res, err := ac.Svc.Register(c.UserContext(), req.Email, req.Password, req.Role, req.Name)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	data := fiber.Map{"user": res.User}
	msg := "Registration successful. Please check your email to confirm your account."
	if res.MailErr != nil {
		return helper.JsonOKWith(c, fiber.StatusCreated, msg, data, fiber.Map{
			"warning": "Account created, but the confirmation email could not be sent. Use resend confirmation to try again.",
		})
	}
	return helper.JsonCreated(c, msg, data)
}

// GET /api/auth/confirm-email/:token
func (ac *AuthController) ConfirmEmail(c *fiber.Ctx) error {
	user, err := ac.Svc.ConfirmEmail(c.UserContext(), c.Params("token"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Email confirmed successfully. You can now log in.", fiber.Map{"user": user})
}

// POST /api/auth/resend-confirmation
func (ac *AuthController) ResendConfirmation(c *fiber.Ctx) error {
	var req dto.EmailRequest
	if ok, err := helper.ParseBody(c, &req); !ok {
		return err
	}
	if err := ac.Svc.ResendConfirmation(c.UserContext(), req.Email); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "If the account exists and is not confirmed yet, a new confirmation email has been sent.", nil)
}

/* ===================== Login & session ===================== */

func (ac *AuthController) loginError(c *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrEmailUnconfirmed) {
		return helper.JsonErrorWith(c, fiber.StatusUnauthorized, service.ErrEmailUnconfirmed.Message, fiber.Map{
			"isEmailUnconfirmed": true,
		})
	}
	return helper.FromFiberError(c, err)
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if ok, err := helper.ParseBody(c, &req); !ok {
		return err
	}
	res, err := ac.Svc.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return ac.loginError(c, err)
	}
	return ac.loginResponse(c, res, "Login successful")
}

// POST /api/auth/school/login
func (ac *AuthController) SchoolLogin(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if ok, err := helper.ParseBody(c, &req); !ok {
		return err
	}
	res, err := ac.Svc.SchoolLogin(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return ac.loginError(c, err)
	}
	return ac.loginResponse(c, res, "Login successful")
}

// POST /api/auth/refresh-token
func (ac *AuthController) RefreshToken(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if ok, err := helper.ParseBody(c, &req); !ok {
		return err
	}
	res, err := ac.Svc.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return ac.loginResponse(c, res, "Token refreshed")
}

// POST /api/auth/google
func (ac *AuthController) LoginGoogle(c *fiber.Ctx) error {
	var req dto.GoogleLoginRequest
	if ok, err := helper.ParseBody(c, &req); !ok {
		return err
	}
	res, err := ac.Svc.LoginGoogle(c.UserContext(), req.IDToken, req.Role)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return ac.loginResponse(c, res, "Login successful")
}

// GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helperAuth.MustUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	user, err := ac.Svc.Me(c.UserContext(), userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.MeResponse{User: user, ProfileCompleted: user.ProfileCompleted})
}

// POST /api/auth/logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	userID, err := helperAuth.MustUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ac.Svc.Logout(c.UserContext(), userID, helper.GetRawAccessToken(c)); err != nil {
		return err
	}
	c.ClearCookie("access_token")
	return helper.JsonOK(c, "Logged out successfully", nil)
}

/* ===================== Passwords ===================== */

// POST /api/auth/forgot-password
func (ac *AuthController) ForgotPassword(c *fiber.Ctx) error {
	var req dto.EmailRequest
	if ok, err := helper.ParseBody(c, &req); !ok {
		return err
	}
	_ = ac.Svc.ForgotPassword(c.UserContext(), req.Email)
	return helper.JsonOK(c, service.ForgotPasswordMessage, nil)
}

// POST /api/auth/reset-password
func (ac *AuthController) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if ok, err := helper.ParseBody(c, &req); !ok {
		return err
	}
	if err := ac.Svc.ResetPassword(c.UserContext(), req.Token, req.Password); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Password has been reset. You can now log in.", nil)
}

// POST /api/auth/change-password
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	userID, err := helperAuth.MustUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.ChangePasswordRequest
	if ok, err := helper.ParseBody(c, &req); !ok {
		return err
	}
	if err := ac.Svc.ChangePassword(c.UserContext(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Password changed successfully", nil)
}
