package dto

import (
	"time"

	"github.com/google/uuid"

	model "kelasku_backend/internals/features/users/model"
)

/* ===================== REQUESTS ===================== */

type RegisterRequest struct {
	UserName     string `json:"user_name" validate:"required,min=3,max=100"`
	UserUsername string `json:"user_username" validate:"required,min=3,max=50,alphanum"`
	UserPassword string `json:"user_password" validate:"required,min=6"`
}

type LoginRequest struct {
	UserUsername string `json:"user_username" validate:"required"`
	UserPassword string `json:"user_password" validate:"required"`
}

// CreateUserRequest: khusus aslab, boleh menentukan role.
type CreateUserRequest struct {
	UserName     string `json:"user_name" validate:"required,min=3,max=100"`
	UserUsername string `json:"user_username" validate:"required,min=3,max=50,alphanum"`
	UserPassword string `json:"user_password" validate:"required,min=6"`
	UserRole     string `json:"user_role" validate:"required,oneof=aslab praktikan"`
}

/* ===================== RESPONSES ===================== */

type UserResponse struct {
	UserID        uuid.UUID `json:"user_id"`
	UserName      string    `json:"user_name"`
	UserUsername  string    `json:"user_username"`
	UserRole      string    `json:"user_role"`
	UserIsActive  bool      `json:"user_is_active"`
	UserCreatedAt time.Time `json:"user_created_at"`
}

func NewUserResponse(m *model.UserModel) *UserResponse {
	if m == nil {
		return nil
	}
	return &UserResponse{
		UserID:        m.UserID,
		UserName:      m.UserName,
		UserUsername:  m.UserUsername,
		UserRole:      m.UserRole,
		UserIsActive:  m.UserIsActive,
		UserCreatedAt: m.UserCreatedAt,
	}
}

type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	User        *UserResponse `json:"user"`
}
