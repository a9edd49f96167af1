package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"teecha_backend/internals/features/social/posts/dto"
	postModel "teecha_backend/internals/features/social/posts/model"
	"teecha_backend/internals/features/social/posts/repository"
	userRepo "teecha_backend/internals/features/users/user/repository"
	helper "teecha_backend/internals/helpers"
	helperAuth "teecha_backend/internals/helpers/auth"
)

type CommentController struct {
	DB       *gorm.DB
	Comments *repository.CommentRepository
}

func NewCommentController(db *gorm.DB) *CommentController {
	return &CommentController{DB: db, Comments: repository.NewCommentRepository(db)}
}

func (cc *CommentController) findOwned(c *fiber.Ctx, me uuid.UUID) (*postModel.CommentModel, error) {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return nil, err
	}
	cm, err := cc.Comments.FindByID(c.UserContext(), id)
	if errors.Is(err, repository.ErrCommentNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Comment not found")
	} else if err != nil {
		return nil, err
	}
	if cm.UserID != me {
		return nil, fiber.NewError(fiber.StatusForbidden, "Not authorized to modify this comment")
	}
	return cm, nil
}

// POST /api/comments/:postId
func (cc *CommentController) Create(c *fiber.Ctx) error {
	me, err := helperAuth.MustUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	postID, err := helper.ParamUUID(c, "postId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.CommentRequest
	if ok, err := helper.ParseBody(c, &req); !ok {
		return err
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return helper.JsonValidationError(c, map[string][]string{"content": {"content is required"}})
	}
	cm := &postModel.CommentModel{PostID: postID, UserID: me, Content: content}
	if err := cc.Comments.Create(c.UserContext(), cm); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Post not found")
		}
		return err
	}
	authors, err := userRepo.FindSummaries(c.UserContext(), cc.DB, []uuid.UUID{me})
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Comment added successfully", dto.ToCommentResponse(*cm, authors[me]))
}

// GET /api/comments/:postId
func (cc *CommentController) List(c *fiber.Ctx) error {
	postID, err := helper.ParamUUID(c, "postId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	paging := helper.ResolvePaging(c, helper.DefaultPerPage, helper.MaxPerPage)
	rows, total, err := cc.Comments.ListByPost(c.UserContext(), postID, paging)
	if err != nil {
		return err
	}
	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.UserID)
	}
	authors, err := userRepo.FindSummaries(c.UserContext(), cc.DB, ids)
	if err != nil {
		return err
	}
	out := make([]dto.CommentResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ToCommentResponse(r, authors[r.UserID]))
	}
	return helper.JsonList(c, "ok", out, helper.BuildPagination(total, paging))
}

// PUT /api/comments/:id
func (cc *CommentController) Update(c *fiber.Ctx) error {
	me, err := helperAuth.MustUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.CommentRequest
	if ok, err := helper.ParseBody(c, &req); !ok {
		return err
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return helper.JsonValidationError(c, map[string][]string{"content": {"content is required"}})
	}
	cm, err := cc.findOwned(c, me)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := cc.Comments.UpdateContent(c.UserContext(), cm, content); err != nil {
		return err
	}
	authors, err := userRepo.FindSummaries(c.UserContext(), cc.DB, []uuid.UUID{me})
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Comment updated successfully", dto.ToCommentResponse(*cm, authors[me]))
}

// DELETE /api/comments/:id
func (cc *CommentController) Delete(c *fiber.Ctx) error {
	me, err := helperAuth.MustUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	cm, err := cc.findOwned(c, me)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := cc.Comments.Delete(c.UserContext(), cm); err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Comment not found")
		}
		return err
	}
	return helper.JsonDeleted(c, "Comment deleted successfully", fiber.Map{"id": cm.ID})
}
