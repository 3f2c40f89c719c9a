package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	folderDTO "kelasku_backend/internals/features/school/folders/dto"
	folderModel "kelasku_backend/internals/features/school/folders/model"
	helper "kelasku_backend/internals/helpers"
)

type FolderController struct{ DB *gorm.DB }

func NewFolderController(db *gorm.DB) *FolderController { return &FolderController{DB: db} }

var validateFolder = validator.New()

func (h *FolderController) ensureModuleExists(moduleID uuid.UUID) error {
	var cnt int64
	if err := h.DB.Table("modules").
		Where("module_id = ?", moduleID).
		Count(&cnt).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal validasi modul")
	}
	if cnt == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Modul tidak ditemukan")
	}
	return nil
}

// ===================== LIST BY MODULE =====================
// GET /api/u/modules/:module_id/folders
func (h *FolderController) ListByModule(c *fiber.Ctx) error {
	moduleID, err := uuid.Parse(strings.TrimSpace(c.Params("module_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "module_id tidak valid")
	}
	if err := h.ensureModuleExists(moduleID); err != nil {
		return helper.JsonFromError(c, err)
	}

	var rows []folderModel.FolderModel
	if err := h.DB.Where("folder_module_id = ?", moduleID).
		Order("folder_created_at ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	items := make([]*folderDTO.FolderResponse, 0, len(rows))
	for i := range rows {
		items = append(items, folderDTO.NewFolderResponse(&rows[i]))
	}
	return helper.JsonList(c, "ok", items, nil)
}

// ===================== CREATE =====================
// POST /api/a/folders
func (h *FolderController) Create(c *fiber.Ctx) error {
	var req folderDTO.CreateFolderRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateFolder.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if err := h.ensureModuleExists(req.FolderModuleID); err != nil {
		return helper.JsonFromError(c, err)
	}

	m := req.ToModel()
	if err := h.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat folder")
	}
	return helper.JsonCreated(c, "Folder berhasil dibuat", folderDTO.NewFolderResponse(m))
}

// ===================== UPDATE =====================
// PUT /api/a/folders/:id
func (h *FolderController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var existing folderModel.FolderModel
	if err := h.DB.Where("folder_id = ?", id).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Folder tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	var req folderDTO.UpdateFolderRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateFolder.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.FolderName != nil {
		updates["folder_name"] = strings.TrimSpace(*req.FolderName)
	}
	if req.FolderDescription != nil {
		updates["folder_description"] = req.FolderDescription
	}
	if len(updates) == 0 {
		return helper.JsonUpdated(c, "Tidak ada perubahan", folderDTO.NewFolderResponse(&existing))
	}

	if err := h.DB.Model(&folderModel.FolderModel{}).
		Where("folder_id = ?", id).
		Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui folder")
	}

	var after folderModel.FolderModel
	if err := h.DB.Where("folder_id = ?", id).First(&after).Error; err == nil {
		return helper.JsonUpdated(c, "Folder diperbarui", folderDTO.NewFolderResponse(&after))
	}
	return helper.JsonUpdated(c, "Folder diperbarui", folderDTO.NewFolderResponse(&existing))
}

// ===================== DELETE =====================
// DELETE /api/a/folders/:id
func (h *FolderController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	res := h.DB.Where("folder_id = ?", id).Delete(&folderModel.FolderModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus folder")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Folder tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Folder dihapus", fiber.Map{"folder_id": id})
}
