package dto

import (
	"time"

	"github.com/google/uuid"

	model "kelasku_backend/internals/features/school/grades/model"
)

type SetGradeRequest struct {
	GradeScore    int     `json:"grade_score" validate:"min=0,max=100"`
	GradeFeedback *string `json:"grade_feedback" validate:"omitempty"`
}

type GradeResponse struct {
	GradeID           uuid.UUID `json:"grade_id"`
	GradeSubmissionID uuid.UUID `json:"grade_submission_id"`
	GradeGradedBy     uuid.UUID `json:"grade_graded_by"`
	GradeScore        int       `json:"grade_score"`
	GradeFeedback     *string   `json:"grade_feedback,omitempty"`
	GradeCreatedAt    time.Time `json:"grade_created_at"`
	GradeUpdatedAt    time.Time `json:"grade_updated_at"`
}

func NewGradeResponse(m *model.GradeModel) *GradeResponse {
	if m == nil {
		return nil
	}
	return &GradeResponse{
		GradeID:           m.GradeID,
		GradeSubmissionID: m.GradeSubmissionID,
		GradeGradedBy:     m.GradeGradedBy,
		GradeScore:        m.GradeScore,
		GradeFeedback:     m.GradeFeedback,
		GradeCreatedAt:    m.GradeCreatedAt,
		GradeUpdatedAt:    m.GradeUpdatedAt,
	}
}
