package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostCommentModel struct {
	PostCommentID        uuid.UUID `gorm:"column:post_comment_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"post_comment_id"`
	PostCommentPostID    uuid.UUID `gorm:"column:post_comment_post_id;type:uuid;not null;index" json:"post_comment_post_id"`
	PostCommentContent   string    `gorm:"column:post_comment_content;type:text;not null" json:"post_comment_content"`
	PostCommentCreatedBy uuid.UUID `gorm:"column:post_comment_created_by;type:uuid;not null" json:"post_comment_created_by"`

	PostCommentCreatedAt time.Time `gorm:"column:post_comment_created_at;type:timestamptz;not null;autoCreateTime" json:"post_comment_created_at"`
}

func (PostCommentModel) TableName() string { return "post_comments" }

func (m *PostCommentModel) BeforeCreate(tx *gorm.DB) error {
	if m.PostCommentID == uuid.Nil {
		m.PostCommentID = uuid.New()
	}
	return nil
}
