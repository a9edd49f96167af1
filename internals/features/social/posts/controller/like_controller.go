package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"teecha_backend/internals/features/social/posts/dto"
	"teecha_backend/internals/features/social/posts/service"
	userModel "teecha_backend/internals/features/users/user/model"
	userRepo "teecha_backend/internals/features/users/user/repository"
	helper "teecha_backend/internals/helpers"
	helperAuth "teecha_backend/internals/helpers/auth"
)

type LikeController struct {
	DB  *gorm.DB
	Svc *service.LikeService
}

func NewLikeController(db *gorm.DB, svc *service.LikeService) *LikeController {
	return &LikeController{DB: db, Svc: svc}
}

// POST /api/likes/:postId
func (lc *LikeController) Like(c *fiber.Ctx) error {
	me, err := helperAuth.MustUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	postID, err := helper.ParamUUID(c, "postId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	n, err := lc.Svc.Like(c.UserContext(), postID, me)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Post liked", dto.LikeResponse{PostID: postID, Liked: true, LikesCount: n})
}

// DELETE /api/likes/:postId
func (lc *LikeController) Unlike(c *fiber.Ctx) error {
	me, err := helperAuth.MustUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	postID, err := helper.ParamUUID(c, "postId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	n, err := lc.Svc.Unlike(c.UserContext(), postID, me)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Post unliked", dto.LikeResponse{PostID: postID, Liked: false, LikesCount: n})
}

// GET /api/likes/:postId
func (lc *LikeController) Likers(c *fiber.Ctx) error {
	postID, err := helper.ParamUUID(c, "postId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	paging := helper.ResolvePaging(c, helper.DefaultPerPage, helper.MaxPerPage)
	ids, total, err := lc.Svc.Likers(c.UserContext(), postID, paging)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	users := make([]userModel.UserSummary, 0, len(ids))
	if len(ids) > 0 {
		cards, err := userRepo.FindSummaries(c.UserContext(), lc.DB, ids)
		if err != nil {
			return err
		}
		for _, id := range ids {
			if s, ok := cards[id]; ok {
				users = append(users, s)
			}
		}
	}
	return helper.JsonList(c, "ok", users, helper.BuildPagination(total, paging))
}
