package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	moduleDTO "kelasku_backend/internals/features/school/modules/dto"
	moduleModel "kelasku_backend/internals/features/school/modules/model"
	helper "kelasku_backend/internals/helpers"
	ossHelper "kelasku_backend/internals/helpers/oss"
)

type ModuleController struct{ DB *gorm.DB }

func NewModuleController(db *gorm.DB) *ModuleController { return &ModuleController{DB: db} }

var validateModule = validator.New()

// Pastikan kelas target ada
func (h *ModuleController) ensureClassExists(classID uuid.UUID) error {
	var cnt int64
	if err := h.DB.Table("classes").
		Where("class_id = ?", classID).
		Count(&cnt).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal validasi kelas")
	}
	if cnt == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Kelas tidak ditemukan")
	}
	return nil
}

// ===================== LIST BY CLASS =====================
// GET /api/u/classes/:class_id/modules
func (h *ModuleController) ListByClass(c *fiber.Ctx) error {
	classID, err := uuid.Parse(strings.TrimSpace(c.Params("class_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "class_id tidak valid")
	}
	if err := h.ensureClassExists(classID); err != nil {
		return helper.JsonFromError(c, err)
	}

	var rows []moduleModel.ModuleModel
	if err := h.DB.Where("module_class_id = ?", classID).
		Order("module_order_no ASC, module_created_at ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	items := make([]*moduleDTO.ModuleResponse, 0, len(rows))
	for i := range rows {
		items = append(items, moduleDTO.NewModuleResponse(&rows[i]))
	}
	return helper.JsonList(c, "ok", items, nil)
}

// ===================== DETAIL =====================
// GET /api/u/modules/:id
func (h *ModuleController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	var m moduleModel.ModuleModel
	if err := h.DB.Where("module_id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Modul tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return helper.JsonOK(c, "ok", moduleDTO.NewModuleResponse(&m))
}

// ===================== CREATE =====================
// POST /api/a/modules (JSON atau multipart dengan file materi)
func (h *ModuleController) Create(c *fiber.Ctx) error {
	var req moduleDTO.CreateModuleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateModule.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if err := h.ensureClassExists(req.ModuleClassID); err != nil {
		return helper.JsonFromError(c, err)
	}

	m := req.ToModel()

	// Upload materi opsional (multipart field: module_material / file)
	if fh := ossHelper.TryGetFile(c, "module_material", "file"); fh != nil {
		svc, err := ossHelper.NewOSSServiceFromEnv("uploads")
		if err != nil {
			log.Printf("[ERROR] oss init: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Storage belum dikonfigurasi")
		}
		url, err := svc.UploadToDir(c.UserContext(), "modules", fh)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal upload materi")
		}
		m.ModuleMaterialURL = &url
	}

	if err := h.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat modul")
	}
	return helper.JsonCreated(c, "Modul berhasil dibuat", moduleDTO.NewModuleResponse(m))
}

// ===================== UPDATE =====================
// PUT /api/a/modules/:id
func (h *ModuleController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var existing moduleModel.ModuleModel
	if err := h.DB.Where("module_id = ?", id).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Modul tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	var req moduleDTO.UpdateModuleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateModule.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.ModuleTitle != nil {
		updates["module_title"] = strings.TrimSpace(*req.ModuleTitle)
	}
	if req.ModuleDescription != nil {
		updates["module_description"] = req.ModuleDescription
	}
	if req.ModuleOrderNo != nil {
		updates["module_order_no"] = *req.ModuleOrderNo
	}

	// Ganti materi opsional
	if fh := ossHelper.TryGetFile(c, "module_material", "file"); fh != nil {
		svc, err := ossHelper.NewOSSServiceFromEnv("uploads")
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Storage belum dikonfigurasi")
		}
		url, err := svc.UploadToDir(c.UserContext(), "modules", fh)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal upload materi")
		}
		updates["module_material_url"] = url
	}

	if len(updates) == 0 {
		return helper.JsonUpdated(c, "Tidak ada perubahan", moduleDTO.NewModuleResponse(&existing))
	}

	if err := h.DB.Model(&moduleModel.ModuleModel{}).
		Where("module_id = ?", id).
		Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui modul")
	}

	var after moduleModel.ModuleModel
	if err := h.DB.Where("module_id = ?", id).First(&after).Error; err == nil {
		return helper.JsonUpdated(c, "Modul diperbarui", moduleDTO.NewModuleResponse(&after))
	}
	return helper.JsonUpdated(c, "Modul diperbarui", moduleDTO.NewModuleResponse(&existing))
}

// ===================== DELETE =====================
// DELETE /api/a/modules/:id
func (h *ModuleController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	res := h.DB.Where("module_id = ?", id).Delete(&moduleModel.ModuleModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus modul")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Modul tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Modul dihapus", fiber.Map{"module_id": id})
}
