package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	assignmentDTO "kelasku_backend/internals/features/school/assignments/dto"
	assignmentModel "kelasku_backend/internals/features/school/assignments/model"
	helper "kelasku_backend/internals/helpers"
	ossHelper "kelasku_backend/internals/helpers/oss"
)

type AssignmentController struct{ DB *gorm.DB }

func NewAssignmentController(db *gorm.DB) *AssignmentController {
	return &AssignmentController{DB: db}
}

var validateAssignment = validator.New()

func (h *AssignmentController) ensureModuleExists(moduleID uuid.UUID) error {
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
// GET /api/u/modules/:module_id/assignments
func (h *AssignmentController) ListByModule(c *fiber.Ctx) error {
	moduleID, err := uuid.Parse(strings.TrimSpace(c.Params("module_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "module_id tidak valid")
	}
	if err := h.ensureModuleExists(moduleID); err != nil {
		return helper.JsonFromError(c, err)
	}

	var rows []assignmentModel.AssignmentModel
	if err := h.DB.Where("assignment_module_id = ?", moduleID).
		Order("assignment_created_at DESC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	items := make([]*assignmentDTO.AssignmentResponse, 0, len(rows))
	for i := range rows {
		items = append(items, assignmentDTO.NewAssignmentResponse(&rows[i]))
	}
	return helper.JsonList(c, "ok", items, nil)
}

// ===================== DETAIL =====================
// GET /api/u/assignments/:id
func (h *AssignmentController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	var m assignmentModel.AssignmentModel
	if err := h.DB.Where("assignment_id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Tugas tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return helper.JsonOK(c, "ok", assignmentDTO.NewAssignmentResponse(&m))
}

// ===================== CREATE =====================
// POST /api/a/assignments (JSON atau multipart dengan lampiran)
func (h *AssignmentController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var req assignmentDTO.CreateAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateAssignment.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if err := h.ensureModuleExists(req.AssignmentModuleID); err != nil {
		return helper.JsonFromError(c, err)
	}

	m, err := req.ToModel(userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "assignment_deadline tidak valid (RFC3339)")
	}

	if fh := ossHelper.TryGetFile(c, "assignment_attachment", "file"); fh != nil {
		svc, err := ossHelper.NewOSSServiceFromEnv("uploads")
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Storage belum dikonfigurasi")
		}
		url, err := svc.UploadToDir(c.UserContext(), "assignments", fh)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal upload lampiran")
		}
		m.AssignmentAttachmentURL = &url
	}

	if err := h.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat tugas")
	}
	return helper.JsonCreated(c, "Tugas berhasil dibuat", assignmentDTO.NewAssignmentResponse(m))
}

// ===================== UPDATE =====================
// PUT /api/a/assignments/:id
func (h *AssignmentController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var existing assignmentModel.AssignmentModel
	if err := h.DB.Where("assignment_id = ?", id).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Tugas tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	var req assignmentDTO.UpdateAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateAssignment.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.AssignmentTitle != nil {
		updates["assignment_title"] = strings.TrimSpace(*req.AssignmentTitle)
	}
	if req.AssignmentDescription != nil {
		updates["assignment_description"] = strings.TrimSpace(*req.AssignmentDescription)
	}
	if req.AssignmentDeadline != nil {
		if dl := strings.TrimSpace(*req.AssignmentDeadline); dl == "" {
			updates["assignment_deadline"] = gorm.Expr("NULL")
		} else {
			t, err := time.Parse(time.RFC3339, dl)
			if err != nil {
				return helper.JsonError(c, fiber.StatusBadRequest, "assignment_deadline tidak valid (RFC3339)")
			}
			updates["assignment_deadline"] = t
		}
	}

	if fh := ossHelper.TryGetFile(c, "assignment_attachment", "file"); fh != nil {
		svc, err := ossHelper.NewOSSServiceFromEnv("uploads")
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Storage belum dikonfigurasi")
		}
		url, err := svc.UploadToDir(c.UserContext(), "assignments", fh)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal upload lampiran")
		}
		updates["assignment_attachment_url"] = url
	}

	if len(updates) == 0 {
		return helper.JsonUpdated(c, "Tidak ada perubahan", assignmentDTO.NewAssignmentResponse(&existing))
	}

	if err := h.DB.Model(&assignmentModel.AssignmentModel{}).
		Where("assignment_id = ?", id).
		Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui tugas")
	}

	var after assignmentModel.AssignmentModel
	if err := h.DB.Where("assignment_id = ?", id).First(&after).Error; err == nil {
		return helper.JsonUpdated(c, "Tugas diperbarui", assignmentDTO.NewAssignmentResponse(&after))
	}
	return helper.JsonUpdated(c, "Tugas diperbarui", assignmentDTO.NewAssignmentResponse(&existing))
}

// ===================== DELETE =====================
// DELETE /api/a/assignments/:id
func (h *AssignmentController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	res := h.DB.Where("assignment_id = ?", id).Delete(&assignmentModel.AssignmentModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus tugas")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Tugas tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Tugas dihapus", fiber.Map{"assignment_id": id})
}
