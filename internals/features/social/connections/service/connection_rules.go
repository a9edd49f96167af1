package service

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"teecha_backend/internals/constants"
	connModel "teecha_backend/internals/features/social/connections/model"
)

// Relation states reported by GET /status/:userId.
const (
	StatusNone            = "none"
	StatusConnected       = "connected"
	StatusPendingSent     = "pending_sent"
	StatusPendingReceived = "pending_received"
	StatusRejected        = "rejected"
)

var (
	ErrSelfConnect      = fiber.NewError(fiber.StatusBadRequest, "You cannot connect with yourself")
	ErrAlreadyConnected = fiber.NewError(fiber.StatusBadRequest, "You are already connected with this user")
	ErrAlreadyPending   = fiber.NewError(fiber.StatusBadRequest, "A connection request is already pending")
	ErrNotReceiver      = fiber.NewError(fiber.StatusForbidden, "Only the receiver can respond to this request")
	ErrNotPending       = fiber.NewError(fiber.StatusBadRequest, "This request is no longer pending")
	ErrNotParty         = fiber.NewError(fiber.StatusForbidden, "Not authorized to modify this connection")
	ErrUserNotFound     = fiber.NewError(fiber.StatusNotFound, "User not found")
	ErrNotFound         = fiber.NewError(fiber.StatusNotFound, "Connection not found")
)

// CheckRequest decides whether me may send a request to target given the existing row.
// A rejected row may be reused.
func CheckRequest(me, target uuid.UUID, existing *connModel.ConnectionModel) error {
	if me == target {
		return ErrSelfConnect
	}
	if existing == nil {
		return nil
	}
	switch existing.Status {
	case constants.ConnectionAccepted:
		return ErrAlreadyConnected
	case constants.ConnectionPending:
		return ErrAlreadyPending
	}
	return nil
}

func CheckRespond(me uuid.UUID, c *connModel.ConnectionModel) error {
	if c.ReceiverID != me {
		return ErrNotReceiver
	}
	if c.Status != constants.ConnectionPending {
		return ErrNotPending
	}
	return nil
}

func StatusFor(me uuid.UUID, c *connModel.ConnectionModel) string {
	if c == nil {
		return StatusNone
	}
	switch c.Status {
	case constants.ConnectionAccepted:
		return StatusConnected
	case constants.ConnectionRejected:
		return StatusRejected
	case constants.ConnectionPending:
		if c.RequesterID == me {
			return StatusPendingSent
		}
		return StatusPendingReceived
	}
	return StatusNone
}
