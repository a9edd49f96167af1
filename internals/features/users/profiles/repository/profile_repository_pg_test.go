package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teecha_backend/internals/databases/testdb"
	profileModel "teecha_backend/internals/features/users/profiles/model"
	userModel "teecha_backend/internals/features/users/user/model"
)

func TestProfileStatusFollowsUpsert(t *testing.T) {
	db := testdb.Open(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()
	u := testdb.User(t, db, "student")
	t.Cleanup(func() { db.Delete(&profileModel.StudentProfileModel{}, "user_id = ?", u.ID) })

	st, err := repo.ProfileStatus(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, st)
	assert.Equal(t, "student", st.Role)
	assert.False(t, st.HasProfile)
	assert.False(t, st.ProfileCompleted)

	p := &profileModel.StudentProfileModel{
		UserID:            u.ID,
		GradeLevel:        "Grade 10",
		Interests:         pq.StringArray{"physics"},
		PreferredSubjects: pq.StringArray{"math"},
	}
	require.NoError(t, repo.UpsertStudent(ctx, p))

	var stored profileModel.StudentProfileModel
	require.NoError(t, db.First(&stored, "user_id = ?", u.ID).Error)
	assert.True(t, stored.IsCompleted)
	var user userModel.UserModel
	require.NoError(t, db.First(&user, "id = ?", u.ID).Error)
	assert.True(t, user.ProfileCompleted)

	st, err = repo.ProfileStatus(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, st.HasProfile)
	assert.True(t, st.ProfileCompleted)

	// a second upsert updates the same row
	require.NoError(t, repo.UpsertStudent(ctx, &profileModel.StudentProfileModel{UserID: u.ID, GradeLevel: "Grade 11"}))
	var rows []profileModel.StudentProfileModel
	require.NoError(t, db.Where("user_id = ?", u.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "Grade 11", rows[0].GradeLevel)
	assert.Equal(t, stored.ID, rows[0].ID)
}

func TestProfileUpsertRollsBackTogether(t *testing.T) {
	db := testdb.Open(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()
	u := testdb.User(t, db, "student")

	// grade_level is varchar(50): the insert fails and the user flag must stay false
	err := repo.UpsertStudent(ctx, &profileModel.StudentProfileModel{UserID: u.ID, GradeLevel: strings.Repeat("x", 60)})
	require.Error(t, err)

	var user userModel.UserModel
	require.NoError(t, db.First(&user, "id = ?", u.ID).Error)
	assert.False(t, user.ProfileCompleted)
	st, err := repo.ProfileStatus(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, st.HasProfile)
}

func TestProfileStatusUnknownUser(t *testing.T) {
	db := testdb.Open(t)
	st, err := NewProfileRepository(db).ProfileStatus(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, st)
}
