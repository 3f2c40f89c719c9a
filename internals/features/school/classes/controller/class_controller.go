package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	classDTO "kelasku_backend/internals/features/school/classes/dto"
	classModel "kelasku_backend/internals/features/school/classes/model"
	helper "kelasku_backend/internals/helpers"
)

type ClassController struct{ DB *gorm.DB }

func NewClassController(db *gorm.DB) *ClassController { return &ClassController{DB: db} }

var validateClass = validator.New()

// ===================== LIST =====================
// GET /api/u/classes
func (h *ClassController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	tx := h.DB.Model(&classModel.ClassModel{})
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		tx = tx.Where("LOWER(class_name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}

	var rows []classModel.ClassModel
	if err := tx.Order("class_created_at DESC").
		Limit(p.Limit).
		Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	items := make([]*classDTO.ClassResponse, 0, len(rows))
	for i := range rows {
		items = append(items, classDTO.NewClassResponse(&rows[i]))
	}
	return helper.JsonList(c, "ok", items, helper.BuildPagination(total, p))
}

// ===================== DETAIL =====================
// GET /api/u/classes/:id
func (h *ClassController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	var m classModel.ClassModel
	if err := h.DB.Where("class_id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return helper.JsonOK(c, "ok", classDTO.NewClassResponse(&m))
}

// ===================== CREATE =====================
// POST /api/a/classes
func (h *ClassController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var req classDTO.CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateClass.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m := req.ToModel(userID)
	if err := h.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat kelas")
	}
	return helper.JsonCreated(c, "Kelas berhasil dibuat", classDTO.NewClassResponse(m))
}

// ===================== UPDATE =====================
// PUT /api/a/classes/:id
func (h *ClassController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var existing classModel.ClassModel
	if err := h.DB.Where("class_id = ?", id).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	var req classDTO.UpdateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateClass.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	// Build updates map agar nilai falsy juga ter-update
	updates := map[string]interface{}{}
	if req.ClassName != nil {
		updates["class_name"] = strings.TrimSpace(*req.ClassName)
	}
	if req.ClassDescription != nil {
		updates["class_description"] = req.ClassDescription
	}
	if req.ClassSchedule != nil {
		updates["class_schedule"] = req.ClassSchedule
	}
	if len(updates) == 0 {
		return helper.JsonUpdated(c, "Tidak ada perubahan", classDTO.NewClassResponse(&existing))
	}

	if err := h.DB.Model(&classModel.ClassModel{}).
		Where("class_id = ?", id).
		Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui kelas")
	}

	var after classModel.ClassModel
	if err := h.DB.Where("class_id = ?", id).First(&after).Error; err == nil {
		return helper.JsonUpdated(c, "Kelas diperbarui", classDTO.NewClassResponse(&after))
	}
	return helper.JsonUpdated(c, "Kelas diperbarui", classDTO.NewClassResponse(&existing))
}

// ===================== DELETE =====================
// DELETE /api/a/classes/:id
func (h *ClassController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	res := h.DB.Where("class_id = ?", id).Delete(&classModel.ClassModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus kelas")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Kelas dihapus", fiber.Map{"class_id": id})
}
