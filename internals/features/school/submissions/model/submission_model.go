package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SubmissionModel struct {
	SubmissionID           uuid.UUID      `gorm:"column:submission_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"submission_id"`
	SubmissionAssignmentID uuid.UUID      `gorm:"column:submission_assignment_id;type:uuid;not null;uniqueIndex:uq_submission_assignment_user" json:"submission_assignment_id"`
	SubmissionUserID       uuid.UUID      `gorm:"column:submission_user_id;type:uuid;not null;uniqueIndex:uq_submission_assignment_user" json:"submission_user_id"`
	SubmissionFileURL      string         `gorm:"column:submission_file_url;type:text;not null" json:"submission_file_url"`
	SubmissionFileMeta     datatypes.JSON `gorm:"column:submission_file_meta;type:jsonb" json:"submission_file_meta,omitempty"`
	SubmissionIsLate       bool           `gorm:"column:submission_is_late;not null;default:false" json:"submission_is_late"`

	SubmissionSubmittedAt time.Time `gorm:"column:submission_submitted_at;type:timestamptz;not null;autoCreateTime" json:"submission_submitted_at"`
	SubmissionUpdatedAt   time.Time `gorm:"column:submission_updated_at;type:timestamptz;not null;autoUpdateTime" json:"submission_updated_at"`
}

func (SubmissionModel) TableName() string { return "submissions" }

func (m *SubmissionModel) BeforeCreate(tx *gorm.DB) error {
	if m.SubmissionID == uuid.Nil {
		m.SubmissionID = uuid.New()
	}
	return nil
}
