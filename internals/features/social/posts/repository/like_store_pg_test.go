package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"teecha_backend/internals/databases/testdb"
	postModel "teecha_backend/internals/features/social/posts/model"
	userModel "teecha_backend/internals/features/users/user/model"
	helper "teecha_backend/internals/helpers"
)

func seedPost(t *testing.T, db *gorm.DB) (*userModel.UserModel, *postModel.PostModel) {
	t.Helper()
	u := testdb.User(t, db, "student")
	p := &postModel.PostModel{UserID: u.ID, Content: "hello", Type: "text"}
	require.NoError(t, db.Create(p).Error)
	return u, p
}

func TestGormLikeStoreCounterFollowsRows(t *testing.T) {
	db := testdb.Open(t)
	store := NewLikeStore(db)
	ctx := context.Background()
	u, p := seedPost(t, db)

	n, err := store.Like(ctx, p.ID, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = store.Like(ctx, p.ID, u.ID)
	assert.ErrorIs(t, err, ErrAlreadyLiked)

	ids, total, err := store.Likers(ctx, p.ID, helper.Paging{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, []uuid.UUID{u.ID}, ids)

	n, err = store.Unlike(ctx, p.ID, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = store.Unlike(ctx, p.ID, u.ID)
	assert.ErrorIs(t, err, ErrLikeNotFound)

	_, err = store.Like(ctx, uuid.New(), u.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestGormLikeStoreLikersUnknownPost(t *testing.T) {
	db := testdb.Open(t)
	store := NewLikeStore(db)
	ctx := context.Background()

	_, _, err := store.Likers(ctx, uuid.New(), helper.Paging{Page: 1, Limit: 10})
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, p := seedPost(t, db)
	ids, total, err := store.Likers(ctx, p.ID, helper.Paging{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, ids)
}

func TestGormLikeStoreConcurrentLikes(t *testing.T) {
	db := testdb.Open(t)
	store := NewLikeStore(db)
	ctx := context.Background()
	_, p := seedPost(t, db)

	const likers = 8
	var wg sync.WaitGroup
	for i := 0; i < likers; i++ {
		u, _ := seedPost(t, db)
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			_, err := store.Like(ctx, p.ID, id)
			assert.NoError(t, err)
		}(u.ID)
	}
	wg.Wait()

	var got postModel.PostModel
	require.NoError(t, db.First(&got, "id = ?", p.ID).Error)
	assert.Equal(t, likers, got.LikesCount)
}
