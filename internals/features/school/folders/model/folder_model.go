package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FolderModel struct {
	FolderID          uuid.UUID `gorm:"column:folder_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"folder_id"`
	FolderModuleID    uuid.UUID `gorm:"column:folder_module_id;type:uuid;not null;index" json:"folder_module_id"`
	FolderName        string    `gorm:"column:folder_name;type:varchar(150);not null" json:"folder_name"`
	FolderDescription *string   `gorm:"column:folder_description;type:text" json:"folder_description,omitempty"`

	FolderCreatedAt time.Time `gorm:"column:folder_created_at;type:timestamptz;not null;autoCreateTime" json:"folder_created_at"`
	FolderUpdatedAt time.Time `gorm:"column:folder_updated_at;type:timestamptz;not null;autoUpdateTime" json:"folder_updated_at"`
}

func (FolderModel) TableName() string { return "folders" }

func (m *FolderModel) BeforeCreate(tx *gorm.DB) error {
	if m.FolderID == uuid.Nil {
		m.FolderID = uuid.New()
	}
	return nil
}
