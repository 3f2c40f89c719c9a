package dto

import (
	"time"

	"github.com/google/uuid"

	model "kelasku_backend/internals/features/home/news/model"
)

/* ===================== REQUESTS ===================== */

// Create: created_by diambil dari token, bukan body.
// entity_type + entity_id opsional; bila diisi, berita ditautkan ke entity itu.
type CreateNewsRequest struct {
	NewsTitle   string     `json:"news_title" form:"news_title" validate:"required,min=3,max=200"`
	NewsContent string     `json:"news_content" form:"news_content" validate:"required,min=3"`
	EntityType  *string    `json:"entity_type" form:"entity_type" validate:"omitempty"`
	EntityID    *uuid.UUID `json:"entity_id" form:"entity_id" validate:"omitempty"`
}

// Update: entity_type/entity_id yang TIDAK dikirim berarti "lepaskan tautan",
// bukan "biarkan seperti semula".
type UpdateNewsRequest struct {
	NewsTitle   *string    `json:"news_title" form:"news_title" validate:"omitempty,min=3,max=200"`
	NewsContent *string    `json:"news_content" form:"news_content" validate:"omitempty,min=3"`
	EntityType  *string    `json:"entity_type" form:"entity_type" validate:"omitempty"`
	EntityID    *uuid.UUID `json:"entity_id" form:"entity_id" validate:"omitempty"`
}

type SetLinkRequest struct {
	EntityType string    `json:"entity_type" validate:"required"`
	EntityID   uuid.UUID `json:"entity_id" validate:"required"`
}

/* ===================== RESPONSES ===================== */

type NewsResponse struct {
	NewsID            uuid.UUID `json:"news_id"`
	NewsTitle         string    `json:"news_title"`
	NewsContent       string    `json:"news_content"`
	NewsImageURL      *string   `json:"news_image_url,omitempty"`
	NewsCreatedBy     uuid.UUID `json:"news_created_by"`
	NewsCreatedByName string    `json:"news_created_by_name,omitempty"`
	NewsCreatedAt     time.Time `json:"news_created_at"`
	NewsUpdatedAt     time.Time `json:"news_updated_at"`

	LinkedType  *string    `json:"linked_type,omitempty"`
	LinkedID    *uuid.UUID `json:"linked_id,omitempty"`
	LinkedTitle *string    `json:"linked_title,omitempty"`
}

func NewNewsResponse(m *model.NewsModel) *NewsResponse {
	if m == nil {
		return nil
	}
	return &NewsResponse{
		NewsID:        m.NewsID,
		NewsTitle:     m.NewsTitle,
		NewsContent:   m.NewsContent,
		NewsImageURL:  m.NewsImageURL,
		NewsCreatedBy: m.NewsCreatedBy,
		NewsCreatedAt: m.NewsCreatedAt,
		NewsUpdatedAt: m.NewsUpdatedAt,
	}
}
