// file: internals/helpers/token.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"kelasku_backend/internals/constants"
)

// GetUserIDFromToken membaca user_id yang sudah disimpan AuthMiddleware di locals.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok || strings.TrimSpace(raw) == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User ID tidak valid")
	}
	return id, nil
}

func GetRoleFromToken(c *fiber.Ctx) (string, error) {
	role, ok := c.Locals("userRole").(string)
	if !ok || role == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Role tidak ditemukan di token")
	}
	return role, nil
}

func GetUserNameFromToken(c *fiber.Ctx) string {
	if name, ok := c.Locals("user_name").(string); ok {
		return name
	}
	return ""
}

// IsAslab: true bila role di token adalah aslab.
func IsAslab(c *fiber.Ctx) bool {
	role, _ := c.Locals("userRole").(string)
	return role == constants.RoleAslab
}
