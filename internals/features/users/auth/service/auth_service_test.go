package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authRepo "teecha_backend/internals/features/users/auth/repository"
	helperAuth "teecha_backend/internals/helpers/auth"
	"teecha_backend/internals/helpers/mailer"
)

type fixture struct {
	svc   *AuthService
	users *authRepo.MemoryUserRepository
	mail  *mailer.ConsoleMailer
	bl    *helperAuth.MemoryBlacklist
}

func newFixture() *fixture {
	users := authRepo.NewMemoryUserRepository()
	mail := mailer.NewConsole("Teecha", "no-reply@teecha.test")
	mail.DisableOutput = true
	bl := helperAuth.NewMemoryBlacklist()
	return &fixture{
		svc: &AuthService{
			Users:       users,
			Tokens:      NewTokenService("test-secret", "test-refresh"),
			Mailer:      mail,
			Blacklist:   bl,
			FrontendURL: "http://app.test",
		},
		users: users,
		mail:  mail,
		bl:    bl,
	}
}

// linkToken pulls the token off the last link mailed to email.
func (f *fixture) linkToken(t *testing.T, email string) string {
	t.Helper()
	msg, ok := f.mail.Last(email)
	require.True(t, ok, "no mail sent to %s", email)
	link, _ := msg.Data["Link"].(string)
	require.NotEmpty(t, link)
	return link[strings.LastIndex(link, "/")+1:]
}

func (f *fixture) registerConfirmed(t *testing.T, email, role string) {
	t.Helper()
	ctx := context.Background()
	_, err := f.svc.Register(ctx, email, "pass123", role, "User")
	require.NoError(t, err)
	_, err = f.svc.ConfirmEmail(ctx, f.linkToken(t, email))
	require.NoError(t, err)
}

func TestRegisterDuplicate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	res, err := f.svc.Register(ctx, "A@x.com", "pass123", "student", "A")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", res.User.Email)
	assert.NoError(t, res.MailErr)

	_, err = f.svc.Register(ctx, "a@x.com", "other1", "teacher", "B")
	assert.Equal(t, ErrEmailTaken, err)
}

func TestRegisterMailFailureIsWarning(t *testing.T) {
	f := newFixture()
	f.mail.FailWith = errors.New("smtp down")

	res, err := f.svc.Register(context.Background(), "b@x.com", "pass123", "teacher", "B")
	require.NoError(t, err)
	assert.Error(t, res.MailErr)

	_, err = f.users.FindByEmail(context.Background(), "b@x.com")
	assert.NoError(t, err)
}

func TestLoginUnconfirmedBeforePassword(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.svc.Register(ctx, "a@x.com", "pass123", "student", "A")
	require.NoError(t, err)

	_, err = f.svc.Login(ctx, "a@x.com", "pass123")
	assert.Equal(t, ErrEmailUnconfirmed, err)
	_, err = f.svc.Login(ctx, "a@x.com", "wrong-password")
	assert.Equal(t, ErrEmailUnconfirmed, err)

	_, err = f.svc.Login(ctx, "nobody@x.com", "pass123")
	assert.Equal(t, ErrInvalidCredentials, err)
}

func TestConfirmThenLogin(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.registerConfirmed(t, "a@x.com", "student")

	res, err := f.svc.Login(ctx, "a@x.com", "pass123")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.False(t, res.ProfileCompleted)
	assert.Empty(t, res.RefreshToken)

	_, err = f.svc.Login(ctx, "a@x.com", "nope")
	assert.Equal(t, ErrInvalidCredentials, err)

	_, err = f.svc.ConfirmEmail(ctx, "garbage")
	assert.Equal(t, ErrInvalidConfirmToken, err)
}

func TestSchoolLoginAndRefresh(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.registerConfirmed(t, "s@x.com", "school")
	f.registerConfirmed(t, "t@x.com", "teacher")

	_, err := f.svc.SchoolLogin(ctx, "t@x.com", "pass123")
	assert.Equal(t, ErrNotSchoolAccount, err)

	res, err := f.svc.SchoolLogin(ctx, "s@x.com", "pass123")
	require.NoError(t, err)
	require.NotEmpty(t, res.RefreshToken)

	next, err := f.svc.Refresh(ctx, res.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, res.RefreshToken, next.RefreshToken)

	// the rotated-out token no longer matches the stored hash
	_, err = f.svc.Refresh(ctx, res.RefreshToken)
	assert.Equal(t, ErrInvalidRefresh, err)

	// an access token is not a refresh token
	_, err = f.svc.Refresh(ctx, next.Token)
	assert.Equal(t, ErrInvalidRefresh, err)
}

func TestRefreshExpired(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.registerConfirmed(t, "s@x.com", "school")
	res, err := f.svc.SchoolLogin(ctx, "s@x.com", "pass123")
	require.NoError(t, err)

	f.svc.Tokens.Now = func() time.Time { return time.Now().UTC().Add(8 * 24 * time.Hour) }
	_, err = f.svc.Refresh(ctx, res.RefreshToken)
	assert.Equal(t, ErrInvalidRefresh, err)
}

func TestForgotAndResetPassword(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.registerConfirmed(t, "a@x.com", "student")
	sentBefore := len(f.mail.Sent())

	assert.NoError(t, f.svc.ForgotPassword(ctx, "ghost@x.com"))
	assert.Len(t, f.mail.Sent(), sentBefore)

	require.NoError(t, f.svc.ForgotPassword(ctx, "a@x.com"))
	token := f.linkToken(t, "a@x.com")

	assert.Equal(t, ErrInvalidResetToken, f.svc.ResetPassword(ctx, "bad", "newpass1"))
	require.NoError(t, f.svc.ResetPassword(ctx, token, "newpass1"))
	assert.Equal(t, ErrInvalidResetToken, f.svc.ResetPassword(ctx, token, "again12"))

	_, err := f.svc.Login(ctx, "a@x.com", "pass123")
	assert.Equal(t, ErrInvalidCredentials, err)
	_, err = f.svc.Login(ctx, "a@x.com", "newpass1")
	assert.NoError(t, err)
}

func TestChangePassword(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.registerConfirmed(t, "a@x.com", "student")
	u, err := f.users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)

	assert.Equal(t, ErrWrongPassword, f.svc.ChangePassword(ctx, u.ID, "nope", "newpass1"))
	require.NoError(t, f.svc.ChangePassword(ctx, u.ID, "pass123", "newpass1"))
	_, err = f.svc.Login(ctx, "a@x.com", "newpass1")
	assert.NoError(t, err)
}

func TestLogoutRevokesAccessToken(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.registerConfirmed(t, "s@x.com", "school")
	res, err := f.svc.SchoolLogin(ctx, "s@x.com", "pass123")
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, res.User.ID, res.Token))
	revoked, err := f.bl.IsBlacklisted(ctx, res.Token)
	require.NoError(t, err)
	assert.True(t, revoked)

	_, err = f.svc.Refresh(ctx, res.RefreshToken)
	assert.Equal(t, ErrInvalidRefresh, err)
}

func TestLoginGoogle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.LoginGoogle(ctx, "tok", "student")
	assert.Error(t, err)

	f.svc.Google = func(_ context.Context, idToken string) (*GoogleIdentity, error) {
		if idToken != "good" {
			return nil, errors.New("bad token")
		}
		return &GoogleIdentity{Subject: "g-1", Email: "g@x.com", EmailVerified: true, Name: "G", Picture: "https://img/g.png"}, nil
	}
	_, err = f.svc.LoginGoogle(ctx, "bad", "student")
	assert.Equal(t, ErrGoogleToken, err)
	_, err = f.svc.LoginGoogle(ctx, "good", "")
	assert.Equal(t, ErrGoogleRoleRequired, err)

	res, err := f.svc.LoginGoogle(ctx, "good", "teacher")
	require.NoError(t, err)
	assert.True(t, res.User.EmailConfirmed)
	assert.Equal(t, "teacher", res.User.Role)
	require.NotNil(t, res.User.ProfilePicture)
	assert.Equal(t, "https://img/g.png", *res.User.ProfilePicture)

	// second sign-in finds the linked account without a role
	again, err := f.svc.LoginGoogle(ctx, "good", "")
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, again.User.ID)
}

func TestLoginGoogleUnverifiedEmailCannotLinkOrCreate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.registerConfirmed(t, "victim@x.com", "student")
	victim, err := f.users.FindByEmail(ctx, "victim@x.com")
	require.NoError(t, err)

	verified := false
	f.svc.Google = func(_ context.Context, _ string) (*GoogleIdentity, error) {
		return &GoogleIdentity{Subject: "g-evil", Email: "victim@x.com", EmailVerified: verified}, nil
	}

	_, err = f.svc.LoginGoogle(ctx, "tok", "student")
	assert.Equal(t, ErrGoogleUnverified, err)
	stored, err := f.users.FindByEmail(ctx, "victim@x.com")
	require.NoError(t, err)
	assert.Nil(t, stored.GoogleID)
	assert.Equal(t, victim.ID, stored.ID)

	f.svc.Google = func(_ context.Context, _ string) (*GoogleIdentity, error) {
		return &GoogleIdentity{Subject: "g-new", Email: "new@x.com"}, nil
	}
	_, err = f.svc.LoginGoogle(ctx, "tok", "teacher")
	assert.Equal(t, ErrGoogleUnverified, err)
	_, err = f.users.FindByEmail(ctx, "new@x.com")
	assert.Error(t, err)

	// a verified token links the existing account
	verified = true
	f.svc.Google = func(_ context.Context, _ string) (*GoogleIdentity, error) {
		return &GoogleIdentity{Subject: "g-evil", Email: "victim@x.com", EmailVerified: verified}, nil
	}
	res, err := f.svc.LoginGoogle(ctx, "tok", "")
	require.NoError(t, err)
	assert.Equal(t, victim.ID, res.User.ID)
	require.NotNil(t, res.User.GoogleID)
	assert.Equal(t, "g-evil", *res.User.GoogleID)
}

func TestTokenKindsDoNotMix(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.registerConfirmed(t, "a@x.com", "student")
	res, err := f.svc.Login(ctx, "a@x.com", "pass123")
	require.NoError(t, err)

	_, err = f.svc.Tokens.Parse(res.Token, TokenConfirm)
	assert.ErrorIs(t, err, ErrInvalidToken)
	claims, err := f.svc.Tokens.Parse(res.Token, TokenAccess)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID())
	assert.Equal(t, "student", claims.Role)
}
