package model

import (
	"time"

	"github.com/google/uuid"
)

// PostLinkModel: padanan news_links untuk posts. Primary key = post_id,
// jadi satu post maksimal menaut satu entity.
type PostLinkModel struct {
	PostLinkPostID     uuid.UUID `gorm:"column:post_link_post_id;type:uuid;primaryKey" json:"post_link_post_id"`
	PostLinkEntityKind string    `gorm:"column:post_link_entity_kind;type:varchar(20);not null" json:"post_link_entity_kind"`
	PostLinkEntityID   uuid.UUID `gorm:"column:post_link_entity_id;type:uuid;not null;index" json:"post_link_entity_id"`

	PostLinkCreatedAt time.Time `gorm:"column:post_link_created_at;type:timestamptz;not null;autoCreateTime" json:"post_link_created_at"`
}

func (PostLinkModel) TableName() string { return "post_links" }
