package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "kelasku_backend/internals/features/school/assignments/model"
)

/* ===================== REQUESTS ===================== */

type CreateAssignmentRequest struct {
	AssignmentModuleID    uuid.UUID `json:"assignment_module_id" form:"assignment_module_id" validate:"required"`
	AssignmentTitle       string    `json:"assignment_title" form:"assignment_title" validate:"required,min=3,max=200"`
	AssignmentDescription string    `json:"assignment_description" form:"assignment_description" validate:"required,min=3"`
	AssignmentDeadline    *string   `json:"assignment_deadline" form:"assignment_deadline" validate:"omitempty"` // RFC3339
}

func (r CreateAssignmentRequest) ToModel(createdBy uuid.UUID) (*model.AssignmentModel, error) {
	m := &model.AssignmentModel{
		AssignmentModuleID:    r.AssignmentModuleID,
		AssignmentTitle:       strings.TrimSpace(r.AssignmentTitle),
		AssignmentDescription: strings.TrimSpace(r.AssignmentDescription),
		AssignmentCreatedBy:   createdBy,
	}
	if r.AssignmentDeadline != nil && strings.TrimSpace(*r.AssignmentDeadline) != "" {
		t, err := time.Parse(time.RFC3339, strings.TrimSpace(*r.AssignmentDeadline))
		if err != nil {
			return nil, err
		}
		m.AssignmentDeadline = &t
	}
	return m, nil
}

type UpdateAssignmentRequest struct {
	AssignmentTitle       *string `json:"assignment_title" form:"assignment_title" validate:"omitempty,min=3,max=200"`
	AssignmentDescription *string `json:"assignment_description" form:"assignment_description" validate:"omitempty,min=3"`
	AssignmentDeadline    *string `json:"assignment_deadline" form:"assignment_deadline" validate:"omitempty"` // RFC3339, "" = hapus deadline
}

/* ===================== RESPONSES ===================== */

type AssignmentResponse struct {
	AssignmentID            uuid.UUID  `json:"assignment_id"`
	AssignmentModuleID      uuid.UUID  `json:"assignment_module_id"`
	AssignmentTitle         string     `json:"assignment_title"`
	AssignmentDescription   string     `json:"assignment_description"`
	AssignmentDeadline      *time.Time `json:"assignment_deadline,omitempty"`
	AssignmentAttachmentURL *string    `json:"assignment_attachment_url,omitempty"`
	AssignmentCreatedBy     uuid.UUID  `json:"assignment_created_by"`
	AssignmentCreatedAt     time.Time  `json:"assignment_created_at"`
	AssignmentUpdatedAt     time.Time  `json:"assignment_updated_at"`
	IsPastDeadline          bool       `json:"is_past_deadline"`
}

func NewAssignmentResponse(m *model.AssignmentModel) *AssignmentResponse {
	if m == nil {
		return nil
	}
	past := false
	if m.AssignmentDeadline != nil {
		past = time.Now().After(*m.AssignmentDeadline)
	}
	return &AssignmentResponse{
		AssignmentID:            m.AssignmentID,
		AssignmentModuleID:      m.AssignmentModuleID,
		AssignmentTitle:         m.AssignmentTitle,
		AssignmentDescription:   m.AssignmentDescription,
		AssignmentDeadline:      m.AssignmentDeadline,
		AssignmentAttachmentURL: m.AssignmentAttachmentURL,
		AssignmentCreatedBy:     m.AssignmentCreatedBy,
		AssignmentCreatedAt:     m.AssignmentCreatedAt,
		AssignmentUpdatedAt:     m.AssignmentUpdatedAt,
		IsPastDeadline:          past,
	}
}
