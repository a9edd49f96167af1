package controller

import (
	"context"
	"errors"

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

type PostController struct {
	DB    *gorm.DB
	Posts *repository.PostRepository
}

func NewPostController(db *gorm.DB) *PostController {
	return &PostController{DB: db, Posts: repository.NewPostRepository(db)}
}

// decorate attaches author cards and likedByMe to each post.
func (pc *PostController) decorate(ctx context.Context, me uuid.UUID, posts []postModel.PostModel) ([]dto.PostResponse, error) {
	ids := make([]uuid.UUID, 0, len(posts))
	postIDs := make([]uuid.UUID, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.UserID)
		postIDs = append(postIDs, p.ID)
	}
	authors, err := userRepo.FindSummaries(ctx, pc.DB, ids)
	if err != nil {
		return nil, err
	}
	liked, err := pc.Posts.LikedBy(ctx, me, postIDs)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, dto.ToPostResponse(p, authors[p.UserID], liked[p.ID]))
	}
	return out, nil
}

func (pc *PostController) findOwned(c *fiber.Ctx, me uuid.UUID) (*postModel.PostModel, error) {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return nil, err
	}
	p, err := pc.Posts.FindByID(c.UserContext(), id)
	if errors.Is(err, repository.ErrPostNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Post not found")
	} else if err != nil {
		return nil, err
	}
	if p.UserID != me {
		return nil, fiber.NewError(fiber.StatusForbidden, "Not authorized to modify this post")
	}
	return p, nil
}

// POST /api/posts
func (pc *PostController) Create(c *fiber.Ctx) error {
	me, err := helperAuth.MustUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.CreatePostRequest
	if ok, err := helper.ParseBody(c, &req); !ok {
		return err
	}
	if fe := req.Check(); fe != nil {
		return helper.JsonValidationError(c, fe)
	}
	p := req.ToModel(me)
	if err := pc.Posts.Create(c.UserContext(), p); err != nil {
		return err
	}
	out, err := pc.decorate(c.UserContext(), me, []postModel.PostModel{*p})
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Post created successfully", out[0])
}

// GET /api/posts
func (pc *PostController) Feed(c *fiber.Ctx) error {
	return pc.list(c, uuid.Nil)
}

// GET /api/posts/user/:userId
func (pc *PostController) ListByUser(c *fiber.Ctx) error {
	uid, err := helper.ParamUUID(c, "userId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return pc.list(c, uid)
}

func (pc *PostController) list(c *fiber.Ctx, author uuid.UUID) error {
	me, err := helperAuth.MustUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	paging := helper.ResolvePaging(c, helper.DefaultPerPage, helper.MaxPerPage)
	rows, total, err := pc.Posts.Feed(c.UserContext(), author, paging)
	if err != nil {
		return err
	}
	out, err := pc.decorate(c.UserContext(), me, rows)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "ok", out, helper.BuildPagination(total, paging))
}

// GET /api/posts/:id
func (pc *PostController) Get(c *fiber.Ctx) error {
	me, err := helperAuth.MustUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	p, err := pc.Posts.FindByID(c.UserContext(), id)
	if errors.Is(err, repository.ErrPostNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Post not found")
	} else if err != nil {
		return err
	}
	out, err := pc.decorate(c.UserContext(), me, []postModel.PostModel{*p})
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", out[0])
}

// PUT /api/posts/:id
func (pc *PostController) Update(c *fiber.Ctx) error {
	me, err := helperAuth.MustUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	p, err := pc.findOwned(c, me)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdatePostRequest
	if ok, err := helper.ParseBody(c, &req); !ok {
		return err
	}
	if fe := req.Apply(p); fe != nil {
		return helper.JsonValidationError(c, fe)
	}
	if err := pc.Posts.Save(c.UserContext(), p); err != nil {
		return err
	}
	out, err := pc.decorate(c.UserContext(), me, []postModel.PostModel{*p})
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Post updated successfully", out[0])
}

// DELETE /api/posts/:id
func (pc *PostController) Delete(c *fiber.Ctx) error {
	me, err := helperAuth.MustUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	p, err := pc.findOwned(c, me)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := pc.Posts.Delete(c.UserContext(), p.ID); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Post not found")
		}
		return err
	}
	return helper.JsonDeleted(c, "Post deleted successfully", fiber.Map{"id": p.ID})
}
