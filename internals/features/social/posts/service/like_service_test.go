package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teecha_backend/internals/features/social/posts/repository"
	helper "teecha_backend/internals/helpers"
)

func TestLikeTwiceRejected(t *testing.T) {
	post, user := uuid.New(), uuid.New()
	store := repository.NewMemoryLikeStore(post)
	svc := NewLikeService(store)
	ctx := context.Background()

	n, err := svc.Like(ctx, post, user)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = svc.Like(ctx, post, user)
	assert.Equal(t, ErrAlreadyLiked, err)
	assert.Equal(t, 1, store.Count(post))
}

func TestUnlikeMissing(t *testing.T) {
	post := uuid.New()
	svc := NewLikeService(repository.NewMemoryLikeStore(post))

	_, err := svc.Unlike(context.Background(), post, uuid.New())
	assert.Equal(t, ErrLikeNotFound, err)

	_, err = svc.Unlike(context.Background(), uuid.New(), uuid.New())
	assert.Equal(t, ErrPostNotFound, err)
}

func TestLikeUnlikeCounter(t *testing.T) {
	post := uuid.New()
	store := repository.NewMemoryLikeStore(post)
	svc := NewLikeService(store)
	ctx := context.Background()

	users := make([]uuid.UUID, 20)
	var wg sync.WaitGroup
	for i := range users {
		users[i] = uuid.New()
		wg.Add(1)
		go func(u uuid.UUID) {
			defer wg.Done()
			_, _ = svc.Like(ctx, post, u)
		}(users[i])
	}
	wg.Wait()
	assert.Equal(t, 20, store.Count(post))

	n, err := svc.Unlike(ctx, post, users[0])
	require.NoError(t, err)
	assert.Equal(t, 19, n)

	ids, total, err := svc.Likers(ctx, post, helper.Paging{Page: 1, Limit: 5})
	require.NoError(t, err)
	assert.Len(t, ids, 5)
	assert.EqualValues(t, 19, total)
	assert.NotContains(t, ids, users[0])
}

func TestLikeMissingPost(t *testing.T) {
	svc := NewLikeService(repository.NewMemoryLikeStore())
	_, err := svc.Like(context.Background(), uuid.New(), uuid.New())
	assert.Equal(t, ErrPostNotFound, err)
}
