package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"kelasku_backend/internals/configs"
	"kelasku_backend/internals/constants"
	userDTO "kelasku_backend/internals/features/users/dto"
	userModel "kelasku_backend/internals/features/users/model"
	helper "kelasku_backend/internals/helpers"
)

type AuthController struct{ DB *gorm.DB }

func NewAuthController(db *gorm.DB) *AuthController { return &AuthController{DB: db} }

var validateAuth = validator.New()

// ===================== REGISTER =====================
// POST /api/auth/register — pendaftaran mandiri, selalu role praktikan.
func (h *AuthController) Register(c *fiber.Ctx) error {
	var req userDTO.RegisterRequest
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
		UserRole:     constants.RolePraktikan,
		UserIsActive: true,
	}
	if err := h.DB.Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.JsonError(c, fiber.StatusConflict, "Username sudah dipakai")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat akun")
	}

	return helper.JsonCreated(c, "Pendaftaran berhasil", userDTO.NewUserResponse(m))
}

// ===================== LOGIN =====================
// POST /api/auth/login
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req userDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateAuth.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var u userModel.UserModel
	err := h.DB.Where("user_username = ?", strings.ToLower(strings.TrimSpace(req.UserUsername))).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Username atau password salah")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses login")
	}
	if !u.UserIsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.UserPassword), []byte(req.UserPassword)) != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Username atau password salah")
	}

	token, err := signAccessToken(&u)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}

	return helper.JsonOK(c, "Login berhasil", userDTO.LoginResponse{
		AccessToken: token,
		User:        userDTO.NewUserResponse(&u),
	})
}

// ===================== ME =====================
// GET /api/u/me
func (h *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var u userModel.UserModel
	if err := h.DB.Where("user_id = ?", userID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil profil")
	}
	return helper.JsonOK(c, "ok", userDTO.NewUserResponse(&u))
}

func signAccessToken(u *userModel.UserModel) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":   u.UserID.String(),
		"user_name": u.UserName,
		"role":      u.UserRole,
		"iat":       now.Unix(),
		"exp":       now.Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}
