package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"teecha_backend/internals/features/social/messages/dto"
	msgModel "teecha_backend/internals/features/social/messages/model"
	"teecha_backend/internals/features/social/messages/repository"
	userRepo "teecha_backend/internals/features/users/user/repository"
	helper "teecha_backend/internals/helpers"
	helperAuth "teecha_backend/internals/helpers/auth"
)

type MessageController struct {
	DB   *gorm.DB
	Repo *repository.MessageRepository
}

func NewMessageController(db *gorm.DB) *MessageController {
	return &MessageController{DB: db, Repo: repository.NewMessageRepository(db)}
}

// POST /api/messages
func (mc *MessageController) Send(c *fiber.Ctx) error {
	me, err := helperAuth.MustUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.SendMessageRequest
	if ok, err := helper.ParseBody(c, &req); !ok {
		return err
	}
	if fe := req.Normalize(); fe != nil {
		return helper.JsonValidationError(c, fe)
	}
	if req.ReceiverID == me {
		return helper.JsonError(c, fiber.StatusBadRequest, "You cannot message yourself")
	}
	ok, err := mc.Repo.UserExists(c.UserContext(), req.ReceiverID)
	if err != nil {
		return err
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "Receiver not found")
	}
	m := &msgModel.MessageModel{SenderID: me, ReceiverID: req.ReceiverID, Content: req.Content}
	if err := mc.Repo.Create(c.UserContext(), m); err != nil {
		return err
	}
	return helper.JsonCreated(c, "Message sent", dto.ToMessageResponse(*m, me))
}

// GET /api/messages/conversations
func (mc *MessageController) Conversations(c *fiber.Ctx) error {
	me, err := helperAuth.MustUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	last, err := mc.Repo.LastPerPartner(c.UserContext(), me)
	if err != nil {
		return err
	}
	unread, err := mc.Repo.UnreadBySender(c.UserContext(), me)
	if err != nil {
		return err
	}
	cards, err := userRepo.FindSummaries(c.UserContext(), mc.DB, dto.Partners(me, last))
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.BuildConversations(me, last, unread, cards))
}

// GET /api/messages/unread-count
func (mc *MessageController) UnreadCount(c *fiber.Ctx) error {
	me, err := helperAuth.MustUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	n, err := mc.Repo.UnreadCount(c.UserContext(), me)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", fiber.Map{"unreadCount": n})
}

// GET /api/messages/:userId
func (mc *MessageController) Thread(c *fiber.Ctx) error {
	me, err := helperAuth.MustUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	other, err := helper.ParamUUID(c, "userId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	paging := helper.ResolvePaging(c, helper.DefaultPerPage, helper.MaxPerPage)
	if _, err := mc.Repo.MarkRead(c.UserContext(), me, other, time.Now()); err != nil {
		return err
	}
	rows, total, err := mc.Repo.Thread(c.UserContext(), me, other, paging)
	if err != nil {
		return err
	}
	out := make([]dto.MessageResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, dto.ToMessageResponse(m, me))
	}
	return helper.JsonList(c, "ok", out, helper.BuildPagination(total, paging))
}

// DELETE /api/messages/:id
func (mc *MessageController) Delete(c *fiber.Ctx) error {
	me, err := helperAuth.MustUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	m, err := mc.Repo.FindByID(c.UserContext(), id)
	if errors.Is(err, repository.ErrMessageNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Message not found")
	} else if err != nil {
		return err
	}
	if m.SenderID != me {
		return helper.JsonError(c, fiber.StatusForbidden, "Not authorized to delete this message")
	}
	if err := mc.Repo.Delete(c.UserContext(), m.ID); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Message deleted", fiber.Map{"id": m.ID})
}
