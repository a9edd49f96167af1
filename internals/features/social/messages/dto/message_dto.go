package dto

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	msgModel "teecha_backend/internals/features/social/messages/model"
	userModel "teecha_backend/internals/features/users/user/model"
)

type SendMessageRequest struct {
	ReceiverID uuid.UUID `json:"receiverId" validate:"required"`
	Content    string    `json:"content" validate:"required,max=5000"`
}

func (r *SendMessageRequest) Normalize() map[string][]string {
	r.Content = strings.TrimSpace(r.Content)
	if r.Content == "" {
		return map[string][]string{"content": {"content is required"}}
	}
	if r.ReceiverID == uuid.Nil {
		return map[string][]string{"receiverId": {"receiverId is required"}}
	}
	return nil
}

type MessageResponse struct {
	ID         uuid.UUID  `json:"id"`
	SenderID   uuid.UUID  `json:"senderId"`
	ReceiverID uuid.UUID  `json:"receiverId"`
	Content    string     `json:"content"`
	ReadAt     *time.Time `json:"readAt"`
	IsMine     bool       `json:"isMine"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func ToMessageResponse(m msgModel.MessageModel, me uuid.UUID) MessageResponse {
	return MessageResponse{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.Content,
		ReadAt:     m.ReadAt,
		IsMine:     m.SenderID == me,
		CreatedAt:  m.CreatedAt,
	}
}

type ConversationResponse struct {
	Partner     userModel.UserSummary `json:"partner"`
	LastMessage MessageResponse       `json:"lastMessage"`
	UnreadCount int64                 `json:"unreadCount"`
}

// BuildConversations turns the newest message per partner into inbox rows, newest first.
func BuildConversations(me uuid.UUID, last []msgModel.MessageModel, unread map[uuid.UUID]int64, cards map[uuid.UUID]userModel.UserSummary) []ConversationResponse {
	out := make([]ConversationResponse, 0, len(last))
	for _, m := range last {
		partner := m.SenderID
		if partner == me {
			partner = m.ReceiverID
		}
		card := cards[partner]
		if card.ID == uuid.Nil {
			card.ID = partner
		}
		out = append(out, ConversationResponse{
			Partner:     card,
			LastMessage: ToMessageResponse(m, me),
			UnreadCount: unread[partner],
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastMessage.CreatedAt.After(out[j].LastMessage.CreatedAt)
	})
	return out
}

// Partners lists the counterpart of each message.
func Partners(me uuid.UUID, msgs []msgModel.MessageModel) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(msgs))
	for _, m := range msgs {
		if m.SenderID == me {
			ids = append(ids, m.ReceiverID)
		} else {
			ids = append(ids, m.SenderID)
		}
	}
	return ids
}
