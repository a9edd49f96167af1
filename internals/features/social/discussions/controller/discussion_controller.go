package controller

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"teecha_backend/internals/features/social/discussions/dto"
	discModel "teecha_backend/internals/features/social/discussions/model"
	"teecha_backend/internals/features/social/discussions/repository"
	userRepo "teecha_backend/internals/features/users/user/repository"
	helper "teecha_backend/internals/helpers"
	helperAuth "teecha_backend/internals/helpers/auth"
)

type DiscussionController struct {
	DB   *gorm.DB
	Repo *repository.DiscussionRepository
}

func NewDiscussionController(db *gorm.DB) *DiscussionController {
	return &DiscussionController{DB: db, Repo: repository.NewDiscussionRepository(db)}
}

func (dc *DiscussionController) withAuthors(ctx context.Context, rows []discModel.DiscussionModel) ([]dto.DiscussionResponse, error) {
	ids := make([]uuid.UUID, 0, len(rows))
	for _, d := range rows {
		ids = append(ids, d.UserID)
	}
	cards, err := userRepo.FindSummaries(ctx, dc.DB, ids)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DiscussionResponse, 0, len(rows))
	for _, d := range rows {
		card := cards[d.UserID]
		if card.ID == uuid.Nil {
			card.ID = d.UserID
		}
		out = append(out, dto.DiscussionResponse{DiscussionModel: d, Author: card})
	}
	return out, nil
}

func (dc *DiscussionController) load(c *fiber.Ctx) (*discModel.DiscussionModel, error) {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return nil, err
	}
	d, err := dc.Repo.FindByID(c.UserContext(), id)
	if errors.Is(err, repository.ErrDiscussionNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Discussion not found")
	}
	return d, err
}

func (dc *DiscussionController) loadOwned(c *fiber.Ctx) (*discModel.DiscussionModel, error) {
	me, err := helperAuth.MustUserID(c)
	if err != nil {
		return nil, err
	}
	d, err := dc.load(c)
	if err != nil {
		return nil, err
	}
	if d.UserID != me {
		return nil, fiber.NewError(fiber.StatusForbidden, "Not authorized to modify this discussion")
	}
	return d, nil
}

func (dc *DiscussionController) respond(c *fiber.Ctx, msg string, d *discModel.DiscussionModel) error {
	out, err := dc.withAuthors(c.UserContext(), []discModel.DiscussionModel{*d})
	if err != nil {
		return err
	}
	return helper.JsonOK(c, msg, out[0])
}

// POST /api/discussions
func (dc *DiscussionController) Create(c *fiber.Ctx) error {
	me, err := helperAuth.MustUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.CreateDiscussionRequest
	if ok, err := helper.ParseBody(c, &req); !ok {
		return err
	}
	d := req.ToModel(me)
	if err := dc.Repo.Create(c.UserContext(), d); err != nil {
		return err
	}
	out, err := dc.withAuthors(c.UserContext(), []discModel.DiscussionModel{*d})
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Discussion created successfully", out[0])
}

// GET /api/discussions
func (dc *DiscussionController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, helper.DefaultPerPage, helper.MaxPerPage)
	filter := repository.DiscussionFilter{
		Category: strings.ToLower(strings.TrimSpace(c.Query("category"))),
		Search:   c.Query("search"),
		Tag:      strings.ToLower(strings.TrimSpace(c.Query("tag"))),
	}
	rows, total, err := dc.Repo.List(c.UserContext(), filter, paging)
	if err != nil {
		return err
	}
	out, err := dc.withAuthors(c.UserContext(), rows)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "ok", out, helper.BuildPagination(total, paging))
}

// GET /api/discussions/:id
func (dc *DiscussionController) Get(c *fiber.Ctx) error {
	d, err := dc.load(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := dc.Repo.IncrementViews(c.UserContext(), d); err != nil {
		return err
	}
	comments, err := dc.Repo.Comments(c.UserContext(), d.ID)
	if err != nil {
		return err
	}
	ids := []uuid.UUID{d.UserID}
	for _, cm := range comments {
		ids = append(ids, cm.UserID)
	}
	cards, err := userRepo.FindSummaries(c.UserContext(), dc.DB, ids)
	if err != nil {
		return err
	}
	author := cards[d.UserID]
	if author.ID == uuid.Nil {
		author.ID = d.UserID
	}
	return helper.JsonOK(c, "ok", dto.DiscussionDetailResponse{
		DiscussionResponse: dto.DiscussionResponse{DiscussionModel: *d, Author: author},
		Comments:           dto.BuildCommentTree(comments, cards),
	})
}

// PUT /api/discussions/:id
func (dc *DiscussionController) Update(c *fiber.Ctx) error {
	d, err := dc.loadOwned(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateDiscussionRequest
	if ok, err := helper.ParseBody(c, &req); !ok {
		return err
	}
	req.Apply(d)
	if err := dc.Repo.Save(c.UserContext(), d); err != nil {
		return err
	}
	return dc.respond(c, "Discussion updated successfully", d)
}

// DELETE /api/discussions/:id
func (dc *DiscussionController) Delete(c *fiber.Ctx) error {
	d, err := dc.loadOwned(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := dc.Repo.Delete(c.UserContext(), d.ID); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Discussion deleted successfully", fiber.Map{"id": d.ID})
}

// PUT /api/discussions/:id/pin
func (dc *DiscussionController) TogglePin(c *fiber.Ctx) error {
	d, err := dc.loadOwned(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	d.IsPinned = !d.IsPinned
	if err := dc.Repo.Save(c.UserContext(), d); err != nil {
		return err
	}
	msg := "Discussion unpinned"
	if d.IsPinned {
		msg = "Discussion pinned"
	}
	return dc.respond(c, msg, d)
}

// PUT /api/discussions/:id/close
func (dc *DiscussionController) ToggleClose(c *fiber.Ctx) error {
	d, err := dc.loadOwned(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	d.IsClosed = !d.IsClosed
	if err := dc.Repo.Save(c.UserContext(), d); err != nil {
		return err
	}
	msg := "Discussion reopened"
	if d.IsClosed {
		msg = "Discussion closed"
	}
	return dc.respond(c, msg, d)
}

// POST /api/discussions/:id/comments
func (dc *DiscussionController) AddComment(c *fiber.Ctx) error {
	me, err := helperAuth.MustUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	d, err := dc.load(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if d.IsClosed {
		return helper.JsonError(c, fiber.StatusForbidden, "This discussion is closed")
	}
	var req dto.CommentRequest
	if ok, err := helper.ParseBody(c, &req); !ok {
		return err
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return helper.JsonValidationError(c, map[string][]string{"content": {"content is required"}})
	}
	if req.ParentID != nil {
		parent, err := dc.Repo.FindComment(c.UserContext(), *req.ParentID)
		if errors.Is(err, repository.ErrCommentNotFound) || (err == nil && parent.DiscussionID != d.ID) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Parent comment does not belong to this discussion")
		} else if err != nil {
			return err
		}
	}
	cm := &discModel.DiscussionCommentModel{
		DiscussionID: d.ID,
		UserID:       me,
		ParentID:     req.ParentID,
		Content:      content,
	}
	if err := dc.Repo.AddComment(c.UserContext(), cm); err != nil {
		return err
	}
	cards, err := userRepo.FindSummaries(c.UserContext(), dc.DB, []uuid.UUID{me})
	if err != nil {
		return err
	}
	node := dto.BuildCommentTree([]discModel.DiscussionCommentModel{*cm}, cards)[0]
	return helper.JsonCreated(c, "Comment added successfully", node)
}

// DELETE /api/discussions/comments/:commentId
func (dc *DiscussionController) DeleteComment(c *fiber.Ctx) error {
	me, err := helperAuth.MustUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParamUUID(c, "commentId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	cm, err := dc.Repo.FindComment(c.UserContext(), id)
	if errors.Is(err, repository.ErrCommentNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Comment not found")
	} else if err != nil {
		return err
	}
	if cm.UserID != me {
		return helper.JsonError(c, fiber.StatusForbidden, "Not authorized to delete this comment")
	}
	removed, err := dc.Repo.DeleteComment(c.UserContext(), cm)
	if errors.Is(err, repository.ErrCommentNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Comment not found")
	} else if err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Comment deleted successfully", fiber.Map{"id": cm.ID, "removed": removed})
}
