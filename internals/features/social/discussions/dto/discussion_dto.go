package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"teecha_backend/internals/constants"
	discModel "teecha_backend/internals/features/social/discussions/model"
	userModel "teecha_backend/internals/features/users/user/model"
)

type CreateDiscussionRequest struct {
	Title    string   `json:"title" validate:"required,min=3,max=200"`
	Content  string   `json:"content" validate:"required,min=1"`
	Category string   `json:"category" validate:"omitempty,oneof=general teaching learning career resources help"`
	Tags     []string `json:"tags" validate:"omitempty,max=10,dive,max=30"`
}

type UpdateDiscussionRequest struct {
	Title    *string  `json:"title" validate:"omitempty,min=3,max=200"`
	Content  *string  `json:"content" validate:"omitempty,min=1"`
	Category *string  `json:"category" validate:"omitempty,oneof=general teaching learning career resources help"`
	Tags     []string `json:"tags" validate:"omitempty,max=10,dive,max=30"`
}

type CommentRequest struct {
	Content  string     `json:"content" validate:"required,min=1,max=5000"`
	ParentID *uuid.UUID `json:"parentId"`
}

// NormalizeTags lower-cases, trims and de-duplicates tags.
func NormalizeTags(in []string) pq.StringArray {
	seen := map[string]struct{}{}
	out := pq.StringArray{}
	for _, t := range in {
		t = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(t), "#")))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func (r CreateDiscussionRequest) ToModel(userID uuid.UUID) *discModel.DiscussionModel {
	cat := r.Category
	if cat == "" {
		cat = constants.DiscussionGeneral
	}
	return &discModel.DiscussionModel{
		UserID:   userID,
		Title:    strings.TrimSpace(r.Title),
		Content:  strings.TrimSpace(r.Content),
		Category: cat,
		Tags:     NormalizeTags(r.Tags),
	}
}

func (r UpdateDiscussionRequest) Apply(d *discModel.DiscussionModel) {
	if r.Title != nil {
		d.Title = strings.TrimSpace(*r.Title)
	}
	if r.Content != nil {
		d.Content = strings.TrimSpace(*r.Content)
	}
	if r.Category != nil {
		d.Category = *r.Category
	}
	if r.Tags != nil {
		d.Tags = NormalizeTags(r.Tags)
	}
}

type DiscussionResponse struct {
	discModel.DiscussionModel
	Author userModel.UserSummary `json:"author"`
}

type CommentNode struct {
	ID        uuid.UUID             `json:"id"`
	ParentID  *uuid.UUID            `json:"parentId"`
	Content   string                `json:"content"`
	Author    userModel.UserSummary `json:"author"`
	CreatedAt time.Time             `json:"createdAt"`
	Replies   []*CommentNode        `json:"replies"`
}

type DiscussionDetailResponse struct {
	DiscussionResponse
	Comments []*CommentNode `json:"comments"`
}

// BuildCommentTree nests replies under their parents, keeping input order.
// Comments whose parent is missing are promoted to the top level.
func BuildCommentTree(rows []discModel.DiscussionCommentModel, cards map[uuid.UUID]userModel.UserSummary) []*CommentNode {
	nodes := make(map[uuid.UUID]*CommentNode, len(rows))
	for _, r := range rows {
		card := cards[r.UserID]
		if card.ID == uuid.Nil {
			card.ID = r.UserID
		}
		nodes[r.ID] = &CommentNode{
			ID:        r.ID,
			ParentID:  r.ParentID,
			Content:   r.Content,
			Author:    card,
			CreatedAt: r.CreatedAt,
			Replies:   []*CommentNode{},
		}
	}
	roots := []*CommentNode{}
	for _, r := range rows {
		n := nodes[r.ID]
		if r.ParentID != nil {
			if parent, ok := nodes[*r.ParentID]; ok && parent != n {
				parent.Replies = append(parent.Replies, n)
				continue
			}
		}
		roots = append(roots, n)
	}
	return roots
}
