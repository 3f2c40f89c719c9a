package model

import (
	"time"

	"github.com/google/uuid"
)

// NewsLinkModel: tabel samping polimorfik. Primary key = news_id, sehingga
// satu berita maksimal menaut satu entity (class/module/assignment).
type NewsLinkModel struct {
	NewsLinkNewsID     uuid.UUID `gorm:"column:news_link_news_id;type:uuid;primaryKey" json:"news_link_news_id"`
	NewsLinkEntityKind string    `gorm:"column:news_link_entity_kind;type:varchar(20);not null" json:"news_link_entity_kind"`
	NewsLinkEntityID   uuid.UUID `gorm:"column:news_link_entity_id;type:uuid;not null;index" json:"news_link_entity_id"`

	NewsLinkCreatedAt time.Time `gorm:"column:news_link_created_at;type:timestamptz;not null;autoCreateTime" json:"news_link_created_at"`
}

func (NewsLinkModel) TableName() string { return "news_links" }
