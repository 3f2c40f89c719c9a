package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "kelasku_backend/internals/features/school/classes/model"
)

/* ===================== REQUESTS ===================== */

type CreateClassRequest struct {
	ClassName        string  `json:"class_name" validate:"required,min=3,max=150"`
	ClassDescription *string `json:"class_description" validate:"omitempty"`
	ClassSchedule    *string `json:"class_schedule" validate:"omitempty,max=150"`
}

func (r CreateClassRequest) ToModel(createdBy uuid.UUID) *model.ClassModel {
	return &model.ClassModel{
		ClassName:        strings.TrimSpace(r.ClassName),
		ClassDescription: r.ClassDescription,
		ClassSchedule:    r.ClassSchedule,
		ClassCreatedBy:   createdBy,
	}
}

type UpdateClassRequest struct {
	ClassName        *string `json:"class_name" validate:"omitempty,min=3,max=150"`
	ClassDescription *string `json:"class_description" validate:"omitempty"`
	ClassSchedule    *string `json:"class_schedule" validate:"omitempty,max=150"`
}

/* ===================== RESPONSES ===================== */

type ClassResponse struct {
	ClassID          uuid.UUID `json:"class_id"`
	ClassName        string    `json:"class_name"`
	ClassDescription *string   `json:"class_description,omitempty"`
	ClassSchedule    *string   `json:"class_schedule,omitempty"`
	ClassCreatedBy   uuid.UUID `json:"class_created_by"`
	ClassCreatedAt   time.Time `json:"class_created_at"`
	ClassUpdatedAt   time.Time `json:"class_updated_at"`
}

func NewClassResponse(m *model.ClassModel) *ClassResponse {
	if m == nil {
		return nil
	}
	return &ClassResponse{
		ClassID:          m.ClassID,
		ClassName:        m.ClassName,
		ClassDescription: m.ClassDescription,
		ClassSchedule:    m.ClassSchedule,
		ClassCreatedBy:   m.ClassCreatedBy,
		ClassCreatedAt:   m.ClassCreatedAt,
		ClassUpdatedAt:   m.ClassUpdatedAt,
	}
}
