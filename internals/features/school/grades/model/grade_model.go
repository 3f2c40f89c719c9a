package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GradeModel struct {
	GradeID           uuid.UUID `gorm:"column:grade_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"grade_id"`
	GradeSubmissionID uuid.UUID `gorm:"column:grade_submission_id;type:uuid;not null;uniqueIndex" json:"grade_submission_id"`
	GradeGradedBy     uuid.UUID `gorm:"column:grade_graded_by;type:uuid;not null" json:"grade_graded_by"`
	GradeScore        int       `gorm:"column:grade_score;not null" json:"grade_score"`
	GradeFeedback     *string   `gorm:"column:grade_feedback;type:text" json:"grade_feedback,omitempty"`

	GradeCreatedAt time.Time `gorm:"column:grade_created_at;type:timestamptz;not null;autoCreateTime" json:"grade_created_at"`
	GradeUpdatedAt time.Time `gorm:"column:grade_updated_at;type:timestamptz;not null;autoUpdateTime" json:"grade_updated_at"`
}

func (GradeModel) TableName() string { return "grades" }

func (m *GradeModel) BeforeCreate(tx *gorm.DB) error {
	if m.GradeID == uuid.Nil {
		m.GradeID = uuid.New()
	}
	return nil
}
