package dto

import (
	"time"

	"github.com/google/uuid"

	connModel "teecha_backend/internals/features/social/connections/model"
	userModel "teecha_backend/internals/features/users/user/model"
)

type ConnectionRequest struct {
	Message string `json:"message" validate:"max=500"`
}

type ConnectionResponse struct {
	ID          uuid.UUID             `json:"id"`
	RequesterID uuid.UUID             `json:"requesterId"`
	ReceiverID  uuid.UUID             `json:"receiverId"`
	Status      string                `json:"status"`
	Message     *string               `json:"message"`
	User        userModel.UserSummary `json:"user"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

// ToConnectionResponse embeds the party opposite me as User.
func ToConnectionResponse(c connModel.ConnectionModel, me uuid.UUID, cards map[uuid.UUID]userModel.UserSummary) ConnectionResponse {
	other := c.OtherParty(me)
	card := cards[other]
	if card.ID == uuid.Nil {
		card.ID = other
	}
	return ConnectionResponse{
		ID:          c.ID,
		RequesterID: c.RequesterID,
		ReceiverID:  c.ReceiverID,
		Status:      c.Status,
		Message:     c.Message,
		User:        card,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

type ConnectionStatusResponse struct {
	Status       string     `json:"status"`
	ConnectionID *uuid.UUID `json:"connectionId"`
}
