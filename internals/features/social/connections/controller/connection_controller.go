package controller

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"teecha_backend/internals/features/social/connections/dto"
	connModel "teecha_backend/internals/features/social/connections/model"
	"teecha_backend/internals/features/social/connections/repository"
	"teecha_backend/internals/features/social/connections/service"
	userRepo "teecha_backend/internals/features/users/user/repository"
	helper "teecha_backend/internals/helpers"
	helperAuth "teecha_backend/internals/helpers/auth"
)

type ConnectionController struct {
	DB  *gorm.DB
	Svc *service.ConnectionService
}

func NewConnectionController(db *gorm.DB) *ConnectionController {
	return &ConnectionController{DB: db, Svc: service.NewConnectionService(repository.NewConnectionRepository(db))}
}

func (cc *ConnectionController) render(ctx context.Context, me uuid.UUID, rows []connModel.ConnectionModel) ([]dto.ConnectionResponse, error) {
	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.OtherParty(me))
	}
	cards, err := userRepo.FindSummaries(ctx, cc.DB, ids)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ConnectionResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ToConnectionResponse(r, me, cards))
	}
	return out, nil
}

func (cc *ConnectionController) one(c *fiber.Ctx, me uuid.UUID, status int, msg string, row *connModel.ConnectionModel) error {
	out, err := cc.render(c.UserContext(), me, []connModel.ConnectionModel{*row})
	if err != nil {
		return err
	}
	return c.Status(status).JSON(fiber.Map{"success": true, "message": msg, "data": out[0]})
}

// POST /api/connections/request/:userId
func (cc *ConnectionController) Request(c *fiber.Ctx) error {
	me, err := helperAuth.MustUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	target, err := helper.ParamUUID(c, "userId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.ConnectionRequest
	if len(c.Body()) > 0 {
		if ok, err := helper.ParseBody(c, &req); !ok {
			return err
		}
	}
	row, err := cc.Svc.Request(c.UserContext(), me, target, req.Message)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return cc.one(c, me, fiber.StatusCreated, "Connection request sent", row)
}

func (cc *ConnectionController) respond(c *fiber.Ctx, accept bool) error {
	me, err := helperAuth.MustUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	row, err := cc.Svc.Respond(c.UserContext(), me, id, accept)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	msg := "Connection request rejected"
	if accept {
		msg = "Connection request accepted"
	}
	return cc.one(c, me, fiber.StatusOK, msg, row)
}

// PUT /api/connections/:id/accept
func (cc *ConnectionController) Accept(c *fiber.Ctx) error { return cc.respond(c, true) }

// PUT /api/connections/:id/reject
func (cc *ConnectionController) Reject(c *fiber.Ctx) error { return cc.respond(c, false) }

type lister func(ctx context.Context, me uuid.UUID, p helper.Paging) ([]connModel.ConnectionModel, int64, error)

func (cc *ConnectionController) list(c *fiber.Ctx, fetch lister) error {
	me, err := helperAuth.MustUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	paging := helper.ResolvePaging(c, helper.DefaultPerPage, helper.MaxPerPage)
	rows, total, err := fetch(c.UserContext(), me, paging)
	if err != nil {
		return err
	}
	out, err := cc.render(c.UserContext(), me, rows)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "ok", out, helper.BuildPagination(total, paging))
}

// GET /api/connections
func (cc *ConnectionController) ListAccepted(c *fiber.Ctx) error {
	return cc.list(c, cc.Svc.Repo.ListAccepted)
}

// GET /api/connections/pending
func (cc *ConnectionController) ListPending(c *fiber.Ctx) error {
	return cc.list(c, cc.Svc.Repo.ListIncoming)
}

// GET /api/connections/sent
func (cc *ConnectionController) ListSent(c *fiber.Ctx) error {
	return cc.list(c, cc.Svc.Repo.ListOutgoing)
}

// GET /api/connections/status/:userId
func (cc *ConnectionController) Status(c *fiber.Ctx) error {
	me, err := helperAuth.MustUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	other, err := helper.ParamUUID(c, "userId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	status, row, err := cc.Svc.Status(c.UserContext(), me, other)
	if err != nil {
		return err
	}
	resp := dto.ConnectionStatusResponse{Status: status}
	if row != nil {
		resp.ConnectionID = &row.ID
	}
	return helper.JsonOK(c, "ok", resp)
}

// DELETE /api/connections/:id
func (cc *ConnectionController) Delete(c *fiber.Ctx) error {
	me, err := helperAuth.MustUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := cc.Svc.Remove(c.UserContext(), me, id); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Connection removed", fiber.Map{"id": id})
}
