package route

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teecha_backend/internals/features/users/auth/controller"
	authRepo "teecha_backend/internals/features/users/auth/repository"
	"teecha_backend/internals/features/users/auth/service"
	helperAuth "teecha_backend/internals/helpers/auth"
	"teecha_backend/internals/helpers/mailer"
	authMw "teecha_backend/internals/middlewares/auth"
)

const secret = "route-test-secret"

// repoFinder treats the user flag as the profile row for gate purposes.
type repoFinder struct {
	users *authRepo.MemoryUserRepository
}

func (f repoFinder) ProfileStatus(ctx context.Context, id uuid.UUID) (*authMw.ProfileStatus, error) {
	u, err := f.users.FindByID(ctx, id)
	if err != nil {
		return nil, nil
	}
	return &authMw.ProfileStatus{Role: u.Role, HasProfile: u.ProfileCompleted, ProfileCompleted: u.ProfileCompleted}, nil
}

type harness struct {
	app   *fiber.App
	users *authRepo.MemoryUserRepository
	mail  *mailer.ConsoleMailer
}

func newHarness() *harness {
	users := authRepo.NewMemoryUserRepository()
	mail := mailer.NewConsole("Teecha", "no-reply@teecha.test")
	mail.DisableOutput = true
	bl := helperAuth.NewMemoryBlacklist()
	svc := &service.AuthService{
		Users:       users,
		Tokens:      service.NewTokenService(secret, ""),
		Mailer:      mail,
		Blacklist:   bl,
		FrontendURL: "http://app.test",
	}

	app := fiber.New()
	api := app.Group("/api")
	jwt := authMw.AuthJWT(authMw.AuthJWTOpts{Secret: secret, Blacklist: bl})
	AuthRoutes(api, controller.NewAuthController(svc), jwt)

	gated := api.Group("/posts", jwt, authMw.RequireCompletedProfile(repoFinder{users: users}))
	gated.Get("/", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"success": true}) })

	return &harness{app: app, users: users, mail: mail}
}

func (h *harness) do(t *testing.T, method, path string, body any, token string) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := h.app.Test(req)
	require.NoError(t, err)
	out := map[string]any{}
	_ = json.NewDecoder(res.Body).Decode(&out)
	return res.StatusCode, out
}

func (h *harness) confirmToken(t *testing.T, email string) string {
	t.Helper()
	msg, ok := h.mail.Last(email)
	require.True(t, ok)
	link := msg.Data["Link"].(string)
	return link[strings.LastIndex(link, "/")+1:]
}

func register(email, password, role, name string) fiber.Map {
	return fiber.Map{"email": email, "password": password, "role": role, "name": name}
}

func TestRegisterLoginConfirmScenario(t *testing.T) {
	h := newHarness()

	code, body := h.do(t, "POST", "/api/auth/register", register("a@x.com", "pass123", "student", "A"), "")
	require.Equal(t, 201, code)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["message"])

	creds := fiber.Map{"email": "a@x.com", "password": "pass123"}
	code, body = h.do(t, "POST", "/api/auth/login", creds, "")
	assert.Equal(t, 401, code)
	assert.Equal(t, true, body["isEmailUnconfirmed"])

	code, _ = h.do(t, "GET", "/api/auth/confirm-email/"+h.confirmToken(t, "a@x.com"), nil, "")
	assert.Equal(t, 200, code)

	code, body = h.do(t, "POST", "/api/auth/login", creds, "")
	require.Equal(t, 200, code)
	data := body["data"].(map[string]any)
	assert.NotEmpty(t, data["token"])
	assert.Equal(t, false, data["profileCompleted"])
	user := data["user"].(map[string]any)
	assert.NotContains(t, user, "password")
}

func TestRegisterTwiceRejected(t *testing.T) {
	h := newHarness()
	code, _ := h.do(t, "POST", "/api/auth/register", register("dup@x.com", "pass123", "teacher", "D"), "")
	require.Equal(t, 201, code)

	code, body := h.do(t, "POST", "/api/auth/register", register("DUP@x.com", "pass456", "student", "E"), "")
	assert.Equal(t, 400, code)
	assert.Equal(t, false, body["success"])
}

func TestRegisterValidation(t *testing.T) {
	h := newHarness()
	code, body := h.do(t, "POST", "/api/auth/register", register("not-an-email", "123", "admin", ""), "")
	assert.Equal(t, 400, code)
	errs := body["errors"].(map[string]any)
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

func TestUnconfirmedLoginIgnoresPassword(t *testing.T) {
	h := newHarness()
	h.do(t, "POST", "/api/auth/register", register("u@x.com", "pass123", "school", "U"), "")

	code, body := h.do(t, "POST", "/api/auth/login", fiber.Map{"email": "u@x.com", "password": "totally-wrong"}, "")
	assert.Equal(t, 401, code)
	assert.Equal(t, true, body["isEmailUnconfirmed"])
}

func TestForgotPasswordDoesNotEnumerate(t *testing.T) {
	h := newHarness()
	h.do(t, "POST", "/api/auth/register", register("known@x.com", "pass123", "teacher", "K"), "")

	c1, known := h.do(t, "POST", "/api/auth/forgot-password", fiber.Map{"email": "known@x.com"}, "")
	c2, unknown := h.do(t, "POST", "/api/auth/forgot-password", fiber.Map{"email": "ghost@x.com"}, "")
	assert.Equal(t, 200, c1)
	assert.Equal(t, 200, c2)
	assert.Equal(t, known["message"], unknown["message"])
	assert.Equal(t, service.ForgotPasswordMessage, known["message"])
}

func TestGateUntilProfileCompleted(t *testing.T) {
	h := newHarness()
	code, _ := h.do(t, "GET", "/api/posts/", nil, "")
	assert.Equal(t, 401, code)

	h.do(t, "POST", "/api/auth/register", register("g@x.com", "pass123", "teacher", "G"), "")
	h.do(t, "GET", "/api/auth/confirm-email/"+h.confirmToken(t, "g@x.com"), nil, "")
	_, body := h.do(t, "POST", "/api/auth/login", fiber.Map{"email": "g@x.com", "password": "pass123"}, "")
	token := body["data"].(map[string]any)["token"].(string)

	code, body = h.do(t, "GET", "/api/posts/", nil, token)
	assert.Equal(t, 403, code)
	assert.Equal(t, "/complete-profile", body["redirect"])
	assert.Equal(t, false, body["profileCompleted"])

	// /api/auth/me is not gated
	code, _ = h.do(t, "GET", "/api/auth/me", nil, token)
	assert.Equal(t, 200, code)

	u, err := h.users.FindByEmail(context.Background(), "g@x.com")
	require.NoError(t, err)
	h.users.SetProfileCompleted(u.ID, true)

	code, _ = h.do(t, "GET", "/api/posts/", nil, token)
	assert.Equal(t, 200, code)
}

func TestLogoutRevokesToken(t *testing.T) {
	h := newHarness()
	h.do(t, "POST", "/api/auth/register", register("l@x.com", "pass123", "student", "L"), "")
	h.do(t, "GET", "/api/auth/confirm-email/"+h.confirmToken(t, "l@x.com"), nil, "")
	_, body := h.do(t, "POST", "/api/auth/login", fiber.Map{"email": "l@x.com", "password": "pass123"}, "")
	token := body["data"].(map[string]any)["token"].(string)

	code, _ := h.do(t, "POST", "/api/auth/logout", nil, token)
	assert.Equal(t, 200, code)

	code, body = h.do(t, "GET", "/api/auth/me", nil, token)
	assert.Equal(t, 401, code)
	assert.Equal(t, "Token has been revoked", body["message"])
}
