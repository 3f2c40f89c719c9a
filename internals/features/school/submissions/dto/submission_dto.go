package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	model "kelasku_backend/internals/features/school/submissions/model"
)

type SubmissionResponse struct {
	SubmissionID           uuid.UUID      `json:"submission_id"`
	SubmissionAssignmentID uuid.UUID      `json:"submission_assignment_id"`
	SubmissionUserID       uuid.UUID      `json:"submission_user_id"`
	SubmissionUserName     string         `json:"submission_user_name,omitempty"`
	SubmissionFileURL      string         `json:"submission_file_url"`
	SubmissionFileMeta     datatypes.JSON `json:"submission_file_meta,omitempty"`
	SubmissionIsLate       bool           `json:"submission_is_late"`
	SubmissionSubmittedAt  time.Time      `json:"submission_submitted_at"`
	SubmissionUpdatedAt    time.Time      `json:"submission_updated_at"`
}

func NewSubmissionResponse(m *model.SubmissionModel) *SubmissionResponse {
	if m == nil {
		return nil
	}
	return &SubmissionResponse{
		SubmissionID:           m.SubmissionID,
		SubmissionAssignmentID: m.SubmissionAssignmentID,
		SubmissionUserID:       m.SubmissionUserID,
		SubmissionFileURL:      m.SubmissionFileURL,
		SubmissionFileMeta:     m.SubmissionFileMeta,
		SubmissionIsLate:       m.SubmissionIsLate,
		SubmissionSubmittedAt:  m.SubmissionSubmittedAt,
		SubmissionUpdatedAt:    m.SubmissionUpdatedAt,
	}
}
