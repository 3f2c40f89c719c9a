package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	UserName     string    `gorm:"column:user_name;type:varchar(100);not null" json:"user_name"`
	UserUsername string    `gorm:"column:user_username;type:varchar(50);not null;uniqueIndex" json:"user_username"`
	UserPassword string    `gorm:"column:user_password;type:text;not null" json:"-"`
	UserRole     string    `gorm:"column:user_role;type:varchar(20);not null;default:'praktikan'" json:"user_role"`
	UserIsActive bool      `gorm:"column:user_is_active;not null;default:true" json:"user_is_active"`

	UserCreatedAt time.Time `gorm:"column:user_created_at;type:timestamptz;not null;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt time.Time `gorm:"column:user_updated_at;type:timestamptz;not null;autoUpdateTime" json:"user_updated_at"`
}

func (UserModel) TableName() string { return "users" }

func (m *UserModel) BeforeCreate(tx *gorm.DB) error {
	if m.UserID == uuid.Nil {
		m.UserID = uuid.New()
	}
	return nil
}
