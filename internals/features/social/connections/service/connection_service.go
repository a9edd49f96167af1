package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"teecha_backend/internals/constants"
	connModel "teecha_backend/internals/features/social/connections/model"
	"teecha_backend/internals/features/social/connections/repository"
)

type ConnectionService struct {
	Repo *repository.ConnectionRepository
}

func NewConnectionService(repo *repository.ConnectionRepository) *ConnectionService {
	return &ConnectionService{Repo: repo}
}

func (s *ConnectionService) Request(ctx context.Context, me, target uuid.UUID, message string) (*connModel.ConnectionModel, error) {
	if me == target {
		return nil, ErrSelfConnect
	}
	ok, err := s.Repo.UserExists(ctx, target)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUserNotFound
	}
	existing, err := s.Repo.FindBetween(ctx, me, target)
	if err != nil {
		return nil, err
	}
	if err := CheckRequest(me, target, existing); err != nil {
		return nil, err
	}

	var msg *string
	if m := strings.TrimSpace(message); m != "" {
		msg = &m
	}
	if existing != nil {
		existing.RequesterID = me
		existing.ReceiverID = target
		existing.Status = constants.ConnectionPending
		existing.Message = msg
		return existing, s.Repo.Save(ctx, existing)
	}
	c := &connModel.ConnectionModel{
		RequesterID: me,
		ReceiverID:  target,
		Status:      constants.ConnectionPending,
		Message:     msg,
	}
	return c, s.Repo.Create(ctx, c)
}

func (s *ConnectionService) find(ctx context.Context, id uuid.UUID) (*connModel.ConnectionModel, error) {
	c, err := s.Repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrConnectionNotFound) {
		return nil, ErrNotFound
	}
	return c, err
}

// Respond moves a pending request to accepted or rejected.
func (s *ConnectionService) Respond(ctx context.Context, me, id uuid.UUID, accept bool) (*connModel.ConnectionModel, error) {
	c, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := CheckRespond(me, c); err != nil {
		return nil, err
	}
	c.Status = constants.ConnectionRejected
	if accept {
		c.Status = constants.ConnectionAccepted
	}
	return c, s.Repo.Save(ctx, c)
}

func (s *ConnectionService) Remove(ctx context.Context, me, id uuid.UUID) error {
	c, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if !c.Involves(me) {
		return ErrNotParty
	}
	return s.Repo.Delete(ctx, c.ID)
}

func (s *ConnectionService) Status(ctx context.Context, me, other uuid.UUID) (string, *connModel.ConnectionModel, error) {
	c, err := s.Repo.FindBetween(ctx, me, other)
	if err != nil {
		return "", nil, err
	}
	return StatusFor(me, c), c, nil
}
