package service

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"teecha_backend/internals/features/social/posts/repository"
	helper "teecha_backend/internals/helpers"
)

var (
	ErrPostNotFound = fiber.NewError(fiber.StatusNotFound, "Post not found")
	ErrAlreadyLiked = fiber.NewError(fiber.StatusBadRequest, "Post already liked")
	ErrLikeNotFound = fiber.NewError(fiber.StatusNotFound, "Like not found")
)

type LikeService struct {
	Store repository.LikeStore
}

func NewLikeService(store repository.LikeStore) *LikeService {
	return &LikeService{Store: store}
}

func (s *LikeService) Like(ctx context.Context, postID, userID uuid.UUID) (int, error) {
	n, err := s.Store.Like(ctx, postID, userID)
	return n, mapLikeErr(err)
}

func (s *LikeService) Unlike(ctx context.Context, postID, userID uuid.UUID) (int, error) {
	n, err := s.Store.Unlike(ctx, postID, userID)
	return n, mapLikeErr(err)
}

func (s *LikeService) Likers(ctx context.Context, postID uuid.UUID, p helper.Paging) ([]uuid.UUID, int64, error) {
	ids, total, err := s.Store.Likers(ctx, postID, p)
	return ids, total, mapLikeErr(err)
}

func mapLikeErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrPostNotFound):
		return ErrPostNotFound
	case errors.Is(err, repository.ErrAlreadyLiked):
		return ErrAlreadyLiked
	case errors.Is(err, repository.ErrLikeNotFound):
		return ErrLikeNotFound
	}
	return err
}
