package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	userDTO "kelasku_backend/internals/features/users/dto"
	userModel "kelasku_backend/internals/features/users/model"
	helper "kelasku_backend/internals/helpers"
)

// UserController: manajemen akun oleh aslab (route group /api/a).
type UserController struct{ DB *gorm.DB }

func NewUserController(db *gorm.DB) *UserController { return &UserController{DB: db} }

// ===================== CREATE =====================
// POST /api/a/users — aslab membuat akun (boleh role aslab/praktikan).
func (h *UserController) CreateUser(c *fiber.Ctx) error {
	var req userDTO.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateAuth.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.UserPassword), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses password")
	}

	m := &userModel.UserModel{
		UserName:     strings.TrimSpace(req.UserName),
		UserUsername: strings.ToLower(strings.TrimSpace(req.UserUsername)),
		UserPassword: string(hashed),
		UserRole:     req.UserRole,
		UserIsActive: true,
	}
	if err := h.DB.Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.JsonError(c, fiber.StatusConflict, "Username sudah dipakai")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat akun")
	}
	return helper.JsonCreated(c, "Akun berhasil dibuat", userDTO.NewUserResponse(m))
}

// ===================== LIST =====================
// GET /api/a/users
func (h *UserController) ListUsers(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	tx := h.DB.Model(&userModel.UserModel{})
	if role := strings.TrimSpace(c.Query("role")); role != "" {
		tx = tx.Where("user_role = ?", role)
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("(LOWER(user_name) LIKE ? OR LOWER(user_username) LIKE ?)", like, like)
	}

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}

	var rows []userModel.UserModel
	if err := tx.Order("user_created_at DESC").
		Limit(p.Limit).
		Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	items := make([]*userDTO.UserResponse, 0, len(rows))
	for i := range rows {
		items = append(items, userDTO.NewUserResponse(&rows[i]))
	}
	return helper.JsonList(c, "ok", items, helper.BuildPagination(total, p))
}

// ===================== DEACTIVATE =====================
// PUT /api/a/users/:id/deactivate
func (h *UserController) DeactivateUser(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	res := h.DB.Model(&userModel.UserModel{}).
		Where("user_id = ?", id).
		Update("user_is_active", false)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menonaktifkan akun")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
	}
	return helper.JsonUpdated(c, "Akun dinonaktifkan", fiber.Map{"user_id": id})
}
