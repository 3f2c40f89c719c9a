package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NewsModel struct {
	NewsID        uuid.UUID `gorm:"column:news_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"news_id"`
	NewsTitle     string    `gorm:"column:news_title;type:varchar(200);not null" json:"news_title"`
	NewsContent   string    `gorm:"column:news_content;type:text;not null" json:"news_content"`
	NewsImageURL  *string   `gorm:"column:news_image_url;type:text" json:"news_image_url,omitempty"`
	NewsCreatedBy uuid.UUID `gorm:"column:news_created_by;type:uuid;not null" json:"news_created_by"`

	NewsCreatedAt time.Time `gorm:"column:news_created_at;type:timestamptz;not null;autoCreateTime" json:"news_created_at"`
	NewsUpdatedAt time.Time `gorm:"column:news_updated_at;type:timestamptz;not null;autoUpdateTime" json:"news_updated_at"`
}

func (NewsModel) TableName() string { return "news" }

func (m *NewsModel) BeforeCreate(tx *gorm.DB) error {
	if m.NewsID == uuid.Nil {
		m.NewsID = uuid.New()
	}
	return nil
}
