package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ModuleModel struct {
	ModuleID          uuid.UUID `gorm:"column:module_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"module_id"`
	ModuleClassID     uuid.UUID `gorm:"column:module_class_id;type:uuid;not null;index" json:"module_class_id"`
	ModuleTitle       string    `gorm:"column:module_title;type:varchar(200);not null" json:"module_title"`
	ModuleDescription *string   `gorm:"column:module_description;type:text" json:"module_description,omitempty"`
	ModuleOrderNo     int       `gorm:"column:module_order_no;not null;default:0" json:"module_order_no"`
	ModuleMaterialURL *string   `gorm:"column:module_material_url;type:text" json:"module_material_url,omitempty"`

	ModuleCreatedAt time.Time `gorm:"column:module_created_at;type:timestamptz;not null;autoCreateTime" json:"module_created_at"`
	ModuleUpdatedAt time.Time `gorm:"column:module_updated_at;type:timestamptz;not null;autoUpdateTime" json:"module_updated_at"`
}

func (ModuleModel) TableName() string { return "modules" }

func (m *ModuleModel) BeforeCreate(tx *gorm.DB) error {
	if m.ModuleID == uuid.Nil {
		m.ModuleID = uuid.New()
	}
	return nil
}
