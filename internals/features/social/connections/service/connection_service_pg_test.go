package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teecha_backend/internals/constants"
	"teecha_backend/internals/databases/testdb"
	"teecha_backend/internals/features/social/connections/repository"
)

func TestConnectionRejectedCanBeRequestedAgain(t *testing.T) {
	db := testdb.Open(t)
	svc := NewConnectionService(repository.NewConnectionRepository(db))
	ctx := context.Background()
	student := testdb.User(t, db, "student")
	teacher := testdb.User(t, db, "teacher")
	stranger := testdb.User(t, db, "school")

	req, err := svc.Request(ctx, student.ID, teacher.ID, " hello ")
	require.NoError(t, err)
	require.NotNil(t, req.Message)
	assert.Equal(t, "hello", *req.Message)

	_, err = svc.Request(ctx, student.ID, teacher.ID, "")
	assert.Equal(t, ErrAlreadyPending, err)
	_, err = svc.Respond(ctx, student.ID, req.ID, true)
	assert.Equal(t, ErrNotReceiver, err)

	rejected, err := svc.Respond(ctx, teacher.ID, req.ID, false)
	require.NoError(t, err)
	assert.Equal(t, constants.ConnectionRejected, rejected.Status)
	status, _, err := svc.Status(ctx, student.ID, teacher.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, status)

	// the rejected row is reused, now in the other direction
	again, err := svc.Request(ctx, teacher.ID, student.ID, "")
	require.NoError(t, err)
	assert.Equal(t, req.ID, again.ID)
	assert.Nil(t, again.Message)
	status, _, err = svc.Status(ctx, student.ID, teacher.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPendingReceived, status)

	_, err = svc.Respond(ctx, student.ID, again.ID, true)
	require.NoError(t, err)
	_, err = svc.Request(ctx, student.ID, teacher.ID, "")
	assert.Equal(t, ErrAlreadyConnected, err)

	assert.Equal(t, ErrNotParty, svc.Remove(ctx, stranger.ID, again.ID))
	require.NoError(t, svc.Remove(ctx, student.ID, again.ID))
	status, _, err = svc.Status(ctx, student.ID, teacher.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusNone, status)
}
