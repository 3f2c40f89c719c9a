package dto

import (
	"time"

	"github.com/google/uuid"

	model "kelasku_backend/internals/features/home/posts/model"
)

/* ===================== REQUESTS ===================== */

type CreatePostRequest struct {
	PostTitle   string     `json:"post_title" form:"post_title" validate:"required,min=3,max=200"`
	PostContent string     `json:"post_content" form:"post_content" validate:"required,min=3"`
	EntityType  *string    `json:"entity_type" form:"entity_type" validate:"omitempty"`
	EntityID    *uuid.UUID `json:"entity_id" form:"entity_id" validate:"omitempty"`
}

// Update: entity_type/entity_id yang TIDAK dikirim berarti "lepaskan tautan".
type UpdatePostRequest struct {
	PostTitle   *string    `json:"post_title" form:"post_title" validate:"omitempty,min=3,max=200"`
	PostContent *string    `json:"post_content" form:"post_content" validate:"omitempty,min=3"`
	EntityType  *string    `json:"entity_type" form:"entity_type" validate:"omitempty"`
	EntityID    *uuid.UUID `json:"entity_id" form:"entity_id" validate:"omitempty"`
}

type SetPostLinkRequest struct {
	EntityType string    `json:"entity_type" validate:"required"`
	EntityID   uuid.UUID `json:"entity_id" validate:"required"`
}

type CreateCommentRequest struct {
	PostCommentContent string `json:"post_comment_content" validate:"required,min=1,max=2000"`
}

/* ===================== RESPONSES ===================== */

type PostResponse struct {
	PostID            uuid.UUID `json:"post_id"`
	PostTitle         string    `json:"post_title"`
	PostContent       string    `json:"post_content"`
	PostImageURL      *string   `json:"post_image_url,omitempty"`
	PostCreatedBy     uuid.UUID `json:"post_created_by"`
	PostCreatedByName string    `json:"post_created_by_name,omitempty"`
	PostCreatedAt     time.Time `json:"post_created_at"`
	PostUpdatedAt     time.Time `json:"post_updated_at"`

	LinkedType  *string    `json:"linked_type,omitempty"`
	LinkedID    *uuid.UUID `json:"linked_id,omitempty"`
	LinkedTitle *string    `json:"linked_title,omitempty"`

	CommentCount int64 `json:"comment_count"`
}

func NewPostResponse(m *model.PostModel) *PostResponse {
	if m == nil {
		return nil
	}
	return &PostResponse{
		PostID:        m.PostID,
		PostTitle:     m.PostTitle,
		PostContent:   m.PostContent,
		PostImageURL:  m.PostImageURL,
		PostCreatedBy: m.PostCreatedBy,
		PostCreatedAt: m.PostCreatedAt,
		PostUpdatedAt: m.PostUpdatedAt,
	}
}

type CommentResponse struct {
	PostCommentID            uuid.UUID `json:"post_comment_id"`
	PostCommentPostID        uuid.UUID `json:"post_comment_post_id"`
	PostCommentContent       string    `json:"post_comment_content"`
	PostCommentCreatedBy     uuid.UUID `json:"post_comment_created_by"`
	PostCommentCreatedByName string    `json:"post_comment_created_by_name,omitempty"`
	PostCommentCreatedAt     time.Time `json:"post_comment_created_at"`
}

func NewCommentResponse(m *model.PostCommentModel) *CommentResponse {
	if m == nil {
		return nil
	}
	return &CommentResponse{
		PostCommentID:        m.PostCommentID,
		PostCommentPostID:    m.PostCommentPostID,
		PostCommentContent:   m.PostCommentContent,
		PostCommentCreatedBy: m.PostCommentCreatedBy,
		PostCommentCreatedAt: m.PostCommentCreatedAt,
	}
}
