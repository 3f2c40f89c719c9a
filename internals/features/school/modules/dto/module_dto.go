package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "kelasku_backend/internals/features/school/modules/model"
)

/* ===================== REQUESTS ===================== */

type CreateModuleRequest struct {
	ModuleClassID     uuid.UUID `json:"module_class_id" form:"module_class_id" validate:"required"`
	ModuleTitle       string    `json:"module_title" form:"module_title" validate:"required,min=3,max=200"`
	ModuleDescription *string   `json:"module_description" form:"module_description" validate:"omitempty"`
	ModuleOrderNo     *int      `json:"module_order_no" form:"module_order_no" validate:"omitempty,min=0"`
}

func (r CreateModuleRequest) ToModel() *model.ModuleModel {
	m := &model.ModuleModel{
		ModuleClassID:     r.ModuleClassID,
		ModuleTitle:       strings.TrimSpace(r.ModuleTitle),
		ModuleDescription: r.ModuleDescription,
	}
	if r.ModuleOrderNo != nil {
		m.ModuleOrderNo = *r.ModuleOrderNo
	}
	return m
}

type UpdateModuleRequest struct {
	ModuleTitle       *string `json:"module_title" form:"module_title" validate:"omitempty,min=3,max=200"`
	ModuleDescription *string `json:"module_description" form:"module_description" validate:"omitempty"`
	ModuleOrderNo     *int    `json:"module_order_no" form:"module_order_no" validate:"omitempty,min=0"`
}

/* ===================== RESPONSES ===================== */

type ModuleResponse struct {
	ModuleID          uuid.UUID `json:"module_id"`
	ModuleClassID     uuid.UUID `json:"module_class_id"`
	ModuleTitle       string    `json:"module_title"`
	ModuleDescription *string   `json:"module_description,omitempty"`
	ModuleOrderNo     int       `json:"module_order_no"`
	ModuleMaterialURL *string   `json:"module_material_url,omitempty"`
	ModuleCreatedAt   time.Time `json:"module_created_at"`
	ModuleUpdatedAt   time.Time `json:"module_updated_at"`
}

func NewModuleResponse(m *model.ModuleModel) *ModuleResponse {
	if m == nil {
		return nil
	}
	return &ModuleResponse{
		ModuleID:          m.ModuleID,
		ModuleClassID:     m.ModuleClassID,
		ModuleTitle:       m.ModuleTitle,
		ModuleDescription: m.ModuleDescription,
		ModuleOrderNo:     m.ModuleOrderNo,
		ModuleMaterialURL: m.ModuleMaterialURL,
		ModuleCreatedAt:   m.ModuleCreatedAt,
		ModuleUpdatedAt:   m.ModuleUpdatedAt,
	}
}
