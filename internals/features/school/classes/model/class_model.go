package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClassModel struct {
	ClassID          uuid.UUID `gorm:"column:class_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"class_id"`
	ClassName        string    `gorm:"column:class_name;type:varchar(150);not null" json:"class_name"`
	ClassDescription *string   `gorm:"column:class_description;type:text" json:"class_description,omitempty"`
	ClassSchedule    *string   `gorm:"column:class_schedule;type:varchar(150)" json:"class_schedule,omitempty"`
	ClassCreatedBy   uuid.UUID `gorm:"column:class_created_by;type:uuid;not null" json:"class_created_by"`

	ClassCreatedAt time.Time `gorm:"column:class_created_at;type:timestamptz;not null;autoCreateTime" json:"class_created_at"`
	ClassUpdatedAt time.Time `gorm:"column:class_updated_at;type:timestamptz;not null;autoUpdateTime" json:"class_updated_at"`
}

func (ClassModel) TableName() string { return "classes" }

func (m *ClassModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassID == uuid.Nil {
		m.ClassID = uuid.New()
	}
	return nil
}
