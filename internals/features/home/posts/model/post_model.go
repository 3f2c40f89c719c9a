package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostModel struct {
	PostID        uuid.UUID `gorm:"column:post_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"post_id"`
	PostTitle     string    `gorm:"column:post_title;type:varchar(200);not null" json:"post_title"`
	PostContent   string    `gorm:"column:post_content;type:text;not null" json:"post_content"`
	PostImageURL  *string   `gorm:"column:post_image_url;type:text" json:"post_image_url,omitempty"`
	PostCreatedBy uuid.UUID `gorm:"column:post_created_by;type:uuid;not null" json:"post_created_by"`

	PostCreatedAt time.Time `gorm:"column:post_created_at;type:timestamptz;not null;autoCreateTime" json:"post_created_at"`
	PostUpdatedAt time.Time `gorm:"column:post_updated_at;type:timestamptz;not null;autoUpdateTime" json:"post_updated_at"`
}

func (PostModel) TableName() string { return "posts" }

func (m *PostModel) BeforeCreate(tx *gorm.DB) error {
	if m.PostID == uuid.Nil {
		m.PostID = uuid.New()
	}
	return nil
}
