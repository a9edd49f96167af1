package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"teecha_backend/internals/constants"
	postModel "teecha_backend/internals/features/social/posts/model"
	userModel "teecha_backend/internals/features/users/user/model"
)

type CreatePostRequest struct {
	Content  string  `json:"content" validate:"max=5000"`
	Type     string  `json:"type" validate:"omitempty,oneof=text image video article achievement"`
	ImageURL *string `json:"imageUrl" validate:"omitempty,url"`
	VideoURL *string `json:"videoUrl" validate:"omitempty,url"`
}

type UpdatePostRequest struct {
	Content  *string `json:"content" validate:"omitempty,max=5000"`
	Type     *string `json:"type" validate:"omitempty,oneof=text image video article achievement"`
	ImageURL *string `json:"imageUrl" validate:"omitempty,url"`
	VideoURL *string `json:"videoUrl" validate:"omitempty,url"`
}

// Check enforces rules the tags cannot: content is needed unless media is attached.
func (r *CreatePostRequest) Check() map[string][]string {
	r.Content = strings.TrimSpace(r.Content)
	if r.Type == "" {
		r.Type = constants.PostTypeText
		if r.ImageURL != nil {
			r.Type = constants.PostTypeImage
		} else if r.VideoURL != nil {
			r.Type = constants.PostTypeVideo
		}
	}
	if r.Content == "" && r.ImageURL == nil && r.VideoURL == nil {
		return map[string][]string{"content": {"content is required"}}
	}
	return checkMedia(r.ImageURL, r.VideoURL)
}

// checkMedia rejects URLs whose extension contradicts the field; extension-less URLs pass.
func checkMedia(imageURL, videoURL *string) map[string][]string {
	errs := map[string][]string{}
	if imageURL != nil {
		if t := constants.DetectFileTypeFromExt(*imageURL); t != constants.FileTypeImage && t != constants.FileTypeUnknown {
			errs["imageUrl"] = []string{"imageUrl must point to an image"}
		}
	}
	if videoURL != nil {
		if t := constants.DetectFileTypeFromExt(*videoURL); t != constants.FileTypeVideo && t != constants.FileTypeUnknown {
			errs["videoUrl"] = []string{"videoUrl must point to a video"}
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (r CreatePostRequest) ToModel(userID uuid.UUID) *postModel.PostModel {
	return &postModel.PostModel{
		UserID:   userID,
		Content:  r.Content,
		Type:     r.Type,
		ImageURL: r.ImageURL,
		VideoURL: r.VideoURL,
	}
}

// Apply copies the set fields onto p and reports field errors.
func (r UpdatePostRequest) Apply(p *postModel.PostModel) map[string][]string {
	if r.Content != nil {
		p.Content = strings.TrimSpace(*r.Content)
	}
	if r.Type != nil {
		p.Type = *r.Type
	}
	if r.ImageURL != nil {
		p.ImageURL = emptyToNil(*r.ImageURL)
	}
	if r.VideoURL != nil {
		p.VideoURL = emptyToNil(*r.VideoURL)
	}
	if p.Content == "" && p.ImageURL == nil && p.VideoURL == nil {
		return map[string][]string{"content": {"content is required"}}
	}
	return checkMedia(p.ImageURL, p.VideoURL)
}

func emptyToNil(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}

type PostResponse struct {
	ID            uuid.UUID             `json:"id"`
	Content       string                `json:"content"`
	Type          string                `json:"type"`
	ImageURL      *string               `json:"imageUrl"`
	VideoURL      *string               `json:"videoUrl"`
	LikesCount    int                   `json:"likesCount"`
	CommentsCount int                   `json:"commentsCount"`
	LikedByMe     bool                  `json:"likedByMe"`
	Author        userModel.UserSummary `json:"author"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

func ToPostResponse(p postModel.PostModel, author userModel.UserSummary, liked bool) PostResponse {
	if author.ID == uuid.Nil {
		author.ID = p.UserID
	}
	return PostResponse{
		ID:            p.ID,
		Content:       p.Content,
		Type:          p.Type,
		ImageURL:      p.ImageURL,
		VideoURL:      p.VideoURL,
		LikesCount:    p.LikesCount,
		CommentsCount: p.CommentsCount,
		LikedByMe:     liked,
		Author:        author,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

/* ===================== Comments ===================== */

type CommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

type CommentResponse struct {
	ID        uuid.UUID             `json:"id"`
	PostID    uuid.UUID             `json:"postId"`
	Content   string                `json:"content"`
	Author    userModel.UserSummary `json:"author"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

func ToCommentResponse(c postModel.CommentModel, author userModel.UserSummary) CommentResponse {
	if author.ID == uuid.Nil {
		author.ID = c.UserID
	}
	return CommentResponse{
		ID:        c.ID,
		PostID:    c.PostID,
		Content:   c.Content,
		Author:    author,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

/* ===================== Likes ===================== */

type LikeResponse struct {
	PostID     uuid.UUID `json:"postId"`
	Liked      bool      `json:"liked"`
	LikesCount int       `json:"likesCount"`
}
