package dto

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	discModel "teecha_backend/internals/features/social/discussions/model"
	userModel "teecha_backend/internals/features/users/user/model"
)

func TestBuildCommentTree(t *testing.T) {
	u := uuid.New()
	root1, root2, reply, nested := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	orphanParent := uuid.New()
	now := time.Now()
	rows := []discModel.DiscussionCommentModel{
		{ID: root1, UserID: u, Content: "first", CreatedAt: now},
		{ID: reply, UserID: u, ParentID: &root1, Content: "reply", CreatedAt: now.Add(time.Second)},
		{ID: root2, UserID: u, Content: "second", CreatedAt: now.Add(2 * time.Second)},
		{ID: nested, UserID: u, ParentID: &reply, Content: "nested", CreatedAt: now.Add(3 * time.Second)},
		{ID: uuid.New(), UserID: u, ParentID: &orphanParent, Content: "orphan", CreatedAt: now.Add(4 * time.Second)},
	}
	cards := map[uuid.UUID]userModel.UserSummary{u: {ID: u, Name: "T"}}

	tree := BuildCommentTree(rows, cards)
	require.Len(t, tree, 3)
	assert.Equal(t, root1, tree[0].ID)
	require.Len(t, tree[0].Replies, 1)
	assert.Equal(t, reply, tree[0].Replies[0].ID)
	require.Len(t, tree[0].Replies[0].Replies, 1)
	assert.Equal(t, nested, tree[0].Replies[0].Replies[0].ID)
	assert.Equal(t, root2, tree[1].ID)
	assert.Equal(t, "orphan", tree[2].Content)
	assert.Equal(t, "T", tree[0].Author.Name)
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" Math ", "#math", "", "Science"})
	assert.Equal(t, []string{"math", "science"}, []string(got))
}

func TestCreateDiscussionDefaults(t *testing.T) {
	d := CreateDiscussionRequest{Title: " Hello ", Content: "x"}.ToModel(uuid.New())
	assert.Equal(t, "general", d.Category)
	assert.Equal(t, "Hello", d.Title)
	assert.Empty(t, d.Tags)
}
