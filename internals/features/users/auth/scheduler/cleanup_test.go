package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authRepo "teecha_backend/internals/features/users/auth/repository"
	userModel "teecha_backend/internals/features/users/user/model"
)

type countingPurger struct {
	calls int
	err   error
}

func (p *countingPurger) PurgeExpired(context.Context) (int64, error) {
	p.calls++
	return 3, p.err
}

func TestCleanupRun(t *testing.T) {
	ctx := context.Background()
	users := authRepo.NewMemoryUserRepository()
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)
	tok := "reset-token"

	stale := &userModel.UserModel{ID: uuid.New(), Email: "old@x.com", PlainPassword: "pass123", Role: "student", Name: "O",
		ResetPasswordToken: &tok, ResetPasswordExpires: &past}
	fresh := &userModel.UserModel{ID: uuid.New(), Email: "new@x.com", PlainPassword: "pass123", Role: "student", Name: "N",
		ResetPasswordToken: &tok, ResetPasswordExpires: &future}
	require.NoError(t, users.Create(ctx, stale))
	require.NoError(t, users.Create(ctx, fresh))

	ok, failing := &countingPurger{}, &countingPurger{err: errors.New("db down")}
	(&Cleanup{Users: users, Purgers: []Purger{ok, nil, failing}}).Run(ctx)

	got, err := users.FindByID(ctx, stale.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ResetPasswordToken)

	got, err = users.FindByID(ctx, fresh.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.ResetPasswordToken)

	assert.Equal(t, 1, ok.calls)
	assert.Equal(t, 1, failing.calls)
}

func TestStartCleanupSchedulerRejectsBadSpec(t *testing.T) {
	t.Setenv("CLEANUP_CRON", "not a cron spec")
	_, err := StartCleanupScheduler(&Cleanup{})
	assert.Error(t, err)

	t.Setenv("CLEANUP_CRON", "@every 1h")
	c, err := StartCleanupScheduler(&Cleanup{})
	require.NoError(t, err)
	c.Stop()
}
