package dto

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	msgModel "teecha_backend/internals/features/social/messages/model"
	userModel "teecha_backend/internals/features/users/user/model"
)

func TestBuildConversations(t *testing.T) {
	me, a, b := uuid.New(), uuid.New(), uuid.New()
	now := time.Now()
	last := []msgModel.MessageModel{
		{ID: uuid.New(), SenderID: me, ReceiverID: a, Content: "hi a", CreatedAt: now.Add(-time.Hour)},
		{ID: uuid.New(), SenderID: b, ReceiverID: me, Content: "hi me", CreatedAt: now},
	}
	unread := map[uuid.UUID]int64{b: 3}
	cards := map[uuid.UUID]userModel.UserSummary{a: {ID: a, Name: "A"}}

	out := BuildConversations(me, last, unread, cards)
	require.Len(t, out, 2)
	assert.Equal(t, b, out[0].Partner.ID)
	assert.EqualValues(t, 3, out[0].UnreadCount)
	assert.False(t, out[0].LastMessage.IsMine)
	assert.Equal(t, "A", out[1].Partner.Name)
	assert.True(t, out[1].LastMessage.IsMine)

	assert.Equal(t, []uuid.UUID{a, b}, Partners(me, last))
}

func TestSendMessageNormalize(t *testing.T) {
	r := SendMessageRequest{ReceiverID: uuid.New(), Content: "  "}
	assert.Contains(t, r.Normalize(), "content")
	r.Content = " hey "
	assert.Nil(t, r.Normalize())
	assert.Equal(t, "hey", r.Content)
}
