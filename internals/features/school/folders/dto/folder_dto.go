package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "kelasku_backend/internals/features/school/folders/model"
)

type CreateFolderRequest struct {
	FolderModuleID    uuid.UUID `json:"folder_module_id" validate:"required"`
	FolderName        string    `json:"folder_name" validate:"required,min=1,max=150"`
	FolderDescription *string   `json:"folder_description" validate:"omitempty"`
}

func (r CreateFolderRequest) ToModel() *model.FolderModel {
	return &model.FolderModel{
		FolderModuleID:    r.FolderModuleID,
		FolderName:        strings.TrimSpace(r.FolderName),
		FolderDescription: r.FolderDescription,
	}
}

type UpdateFolderRequest struct {
	FolderName        *string `json:"folder_name" validate:"omitempty,min=1,max=150"`
	FolderDescription *string `json:"folder_description" validate:"omitempty"`
}

type FolderResponse struct {
	FolderID          uuid.UUID `json:"folder_id"`
	FolderModuleID    uuid.UUID `json:"folder_module_id"`
	FolderName        string    `json:"folder_name"`
	FolderDescription *string   `json:"folder_description,omitempty"`
	FolderCreatedAt   time.Time `json:"folder_created_at"`
	FolderUpdatedAt   time.Time `json:"folder_updated_at"`
}

func NewFolderResponse(m *model.FolderModel) *FolderResponse {
	if m == nil {
		return nil
	}
	return &FolderResponse{
		FolderID:          m.FolderID,
		FolderModuleID:    m.FolderModuleID,
		FolderName:        m.FolderName,
		FolderDescription: m.FolderDescription,
		FolderCreatedAt:   m.FolderCreatedAt,
		FolderUpdatedAt:   m.FolderUpdatedAt,
	}
}
