package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "teecha_backend/internals/features/users/user/model"
)

// FindSummaries loads author cards for ids in one query.
func FindSummaries(ctx context.Context, db *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]userModel.UserSummary, error) {
	out := make(map[uuid.UUID]userModel.UserSummary, len(ids))
	ids = UniqueIDs(ids)
	if len(ids) == 0 {
		return out, nil
	}
	var rows []userModel.UserSummary
	if err := db.WithContext(ctx).Model(&userModel.UserModel{}).
		Select("id", "name", "role", "profile_picture").
		Where("id IN ?", ids).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.ID] = r
	}
	return out, nil
}

func FindSummary(ctx context.Context, db *gorm.DB, id uuid.UUID) (*userModel.UserSummary, error) {
	m, err := FindSummaries(ctx, db, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	s, ok := m[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func UniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
