package repository

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	postModel "teecha_backend/internals/features/social/posts/model"
	helper "teecha_backend/internals/helpers"
)

var (
	ErrAlreadyLiked = errors.New("post already liked")
	ErrLikeNotFound = errors.New("like not found")
)

// LikeStore keeps like rows and the post counter in step.
type LikeStore interface {
	Like(ctx context.Context, postID, userID uuid.UUID) (int, error)
	Unlike(ctx context.Context, postID, userID uuid.UUID) (int, error)
	Likers(ctx context.Context, postID uuid.UUID, p helper.Paging) ([]uuid.UUID, int64, error)
}

/* ===================== Gorm ===================== */

type gormLikeStore struct {
	db *gorm.DB
}

func NewLikeStore(db *gorm.DB) LikeStore {
	return &gormLikeStore{db: db}
}

// lockPost takes a row lock on the post so concurrent likes serialise on the counter.
func lockPost(tx *gorm.DB, postID uuid.UUID) (*postModel.PostModel, error) {
	var p postModel.PostModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id", "likes_count").
		First(&p, "id = ?", postID).Error
	if helper.IsNotFound(err) {
		return nil, ErrPostNotFound
	}
	return &p, err
}

func (s *gormLikeStore) Like(ctx context.Context, postID, userID uuid.UUID) (int, error) {
	var count int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := lockPost(tx, postID)
		if err != nil {
			return err
		}
		if err := tx.Create(&postModel.LikeModel{PostID: postID, UserID: userID}).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return ErrAlreadyLiked
			}
			return err
		}
		if err := tx.Model(&postModel.PostModel{}).Where("id = ?", postID).
			UpdateColumn("likes_count", gorm.Expr("likes_count + 1")).Error; err != nil {
			return err
		}
		count = p.LikesCount + 1
		return nil
	})
	return count, err
}

func (s *gormLikeStore) Unlike(ctx context.Context, postID, userID uuid.UUID) (int, error) {
	var count int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := lockPost(tx, postID)
		if err != nil {
			return err
		}
		res := tx.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&postModel.LikeModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrLikeNotFound
		}
		if err := tx.Model(&postModel.PostModel{}).Where("id = ?", postID).
			UpdateColumn("likes_count", gorm.Expr("GREATEST(likes_count - 1, 0)")).Error; err != nil {
			return err
		}
		count = max(p.LikesCount-1, 0)
		return nil
	})
	return count, err
}

func (s *gormLikeStore) Likers(ctx context.Context, postID uuid.UUID, p helper.Paging) ([]uuid.UUID, int64, error) {
	var exists int64
	if err := s.db.WithContext(ctx).Model(&postModel.PostModel{}).
		Where("id = ?", postID).Limit(1).Count(&exists).Error; err != nil {
		return nil, 0, err
	}
	if exists == 0 {
		return nil, 0, ErrPostNotFound
	}

	q := s.db.WithContext(ctx).Model(&postModel.LikeModel{}).Where("post_id = ?", postID)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var ids []uuid.UUID
	if err := q.Order("created_at DESC").Limit(p.Limit).Offset(p.Offset).
		Pluck("user_id", &ids).Error; err != nil {
		return nil, 0, err
	}
	return ids, total, nil
}

/* ===================== Memory ===================== */

type memoryLike struct {
	userID uuid.UUID
	at     time.Time
}

// MemoryLikeStore is an in-process LikeStore for tests and local runs.
type MemoryLikeStore struct {
	mu     sync.Mutex
	counts map[uuid.UUID]int
	likes  map[uuid.UUID][]memoryLike
}

func NewMemoryLikeStore(postIDs ...uuid.UUID) *MemoryLikeStore {
	s := &MemoryLikeStore{
		counts: map[uuid.UUID]int{},
		likes:  map[uuid.UUID][]memoryLike{},
	}
	for _, id := range postIDs {
		s.counts[id] = 0
	}
	return s
}

func (s *MemoryLikeStore) AddPost(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.counts[id]; !ok {
		s.counts[id] = 0
	}
}

func (s *MemoryLikeStore) Like(_ context.Context, postID, userID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.counts[postID]
	if !ok {
		return 0, ErrPostNotFound
	}
	for _, l := range s.likes[postID] {
		if l.userID == userID {
			return n, ErrAlreadyLiked
		}
	}
	s.likes[postID] = append(s.likes[postID], memoryLike{userID: userID, at: time.Now()})
	s.counts[postID] = n + 1
	return n + 1, nil
}

func (s *MemoryLikeStore) Unlike(_ context.Context, postID, userID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.counts[postID]
	if !ok {
		return 0, ErrPostNotFound
	}
	rows := s.likes[postID]
	for i, l := range rows {
		if l.userID == userID {
			s.likes[postID] = append(rows[:i:i], rows[i+1:]...)
			s.counts[postID] = max(n-1, 0)
			return s.counts[postID], nil
		}
	}
	return n, ErrLikeNotFound
}

func (s *MemoryLikeStore) Likers(_ context.Context, postID uuid.UUID, p helper.Paging) ([]uuid.UUID, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.counts[postID]; !ok {
		return nil, 0, ErrPostNotFound
	}
	rows := append([]memoryLike(nil), s.likes[postID]...)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].at.After(rows[j].at) })
	total := int64(len(rows))
	if p.Offset >= len(rows) {
		return []uuid.UUID{}, total, nil
	}
	end := min(p.Offset+p.Limit, len(rows))
	ids := make([]uuid.UUID, 0, end-p.Offset)
	for _, l := range rows[p.Offset:end] {
		ids = append(ids, l.userID)
	}
	return ids, total, nil
}

func (s *MemoryLikeStore) Count(postID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[postID]
}
