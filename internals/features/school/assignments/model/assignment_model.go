package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssignmentModel struct {
	AssignmentID            uuid.UUID  `gorm:"column:assignment_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"assignment_id"`
	AssignmentModuleID      uuid.UUID  `gorm:"column:assignment_module_id;type:uuid;not null;index" json:"assignment_module_id"`
	AssignmentTitle         string     `gorm:"column:assignment_title;type:varchar(200);not null" json:"assignment_title"`
	AssignmentDescription   string     `gorm:"column:assignment_description;type:text;not null" json:"assignment_description"`
	AssignmentDeadline      *time.Time `gorm:"column:assignment_deadline;type:timestamptz" json:"assignment_deadline,omitempty"`
	AssignmentAttachmentURL *string    `gorm:"column:assignment_attachment_url;type:text" json:"assignment_attachment_url,omitempty"`
	AssignmentCreatedBy     uuid.UUID  `gorm:"column:assignment_created_by;type:uuid;not null" json:"assignment_created_by"`

	AssignmentCreatedAt time.Time `gorm:"column:assignment_created_at;type:timestamptz;not null;autoCreateTime" json:"assignment_created_at"`
	AssignmentUpdatedAt time.Time `gorm:"column:assignment_updated_at;type:timestamptz;not null;autoUpdateTime" json:"assignment_updated_at"`
}

func (AssignmentModel) TableName() string { return "assignments" }

func (m *AssignmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.AssignmentID == uuid.Nil {
		m.AssignmentID = uuid.New()
	}
	return nil
}
