package controller

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	assignmentModel "kelasku_backend/internals/features/school/assignments/model"
	submissionDTO "kelasku_backend/internals/features/school/submissions/dto"
	submissionModel "kelasku_backend/internals/features/school/submissions/model"
	helper "kelasku_backend/internals/helpers"
	ossHelper "kelasku_backend/internals/helpers/oss"
)

type SubmissionController struct{ DB *gorm.DB }

func NewSubmissionController(db *gorm.DB) *SubmissionController {
	return &SubmissionController{DB: db}
}

// ===================== SUBMIT =====================
// POST /api/u/assignments/:assignment_id/submissions (multipart, file wajib)
// Satu submission per (assignment, user) — submit ulang = replace (upsert).
func (h *SubmissionController) Submit(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	assignmentID, err := uuid.Parse(strings.TrimSpace(c.Params("assignment_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "assignment_id tidak valid")
	}

	var assignment assignmentModel.AssignmentModel
	if err := h.DB.Where("assignment_id = ?", assignmentID).First(&assignment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Tugas tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil tugas")
	}

	fh := ossHelper.TryGetFile(c, "submission_file", "file")
	if fh == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File jawaban wajib diunggah")
	}

	svc, err := ossHelper.NewOSSServiceFromEnv("uploads")
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Storage belum dikonfigurasi")
	}
	fileURL, err := svc.UploadToDir(c.UserContext(), "submissions", fh)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal upload file jawaban")
	}

	meta, _ := json.Marshal(fiber.Map{
		"original_name": fh.Filename,
		"size":          fh.Size,
		"content_type":  fh.Header.Get("Content-Type"),
	})

	isLate := assignment.AssignmentDeadline != nil && time.Now().After(*assignment.AssignmentDeadline)

	m := &submissionModel.SubmissionModel{
		SubmissionAssignmentID: assignmentID,
		SubmissionUserID:       userID,
		SubmissionFileURL:      fileURL,
		SubmissionFileMeta:     datatypes.JSON(meta),
		SubmissionIsLate:       isLate,
	}

	// Replace bila sudah pernah submit
	if err := h.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "submission_assignment_id"}, {Name: "submission_user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"submission_file_url":  fileURL,
			"submission_file_meta": datatypes.JSON(meta),
			"submission_is_late":   isLate,
			"submission_updated_at": time.Now(),
		}),
	}).Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan submission")
	}

	return helper.JsonCreated(c, "Jawaban terkumpul", submissionDTO.NewSubmissionResponse(m))
}

// ===================== LIST BY ASSIGNMENT =====================
// GET /api/a/assignments/:assignment_id/submissions
func (h *SubmissionController) ListByAssignment(c *fiber.Ctx) error {
	assignmentID, err := uuid.Parse(strings.TrimSpace(c.Params("assignment_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "assignment_id tidak valid")
	}

	var rows []submissionModel.SubmissionModel
	if err := h.DB.Where("submission_assignment_id = ?", assignmentID).
		Order("submission_submitted_at DESC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	// Batch-load nama user
	userIDs := make([]uuid.UUID, 0, len(rows))
	for i := range rows {
		userIDs = append(userIDs, rows[i].SubmissionUserID)
	}
	names := map[uuid.UUID]string{}
	if len(userIDs) > 0 {
		var users []struct {
			UserID   uuid.UUID
			UserName string
		}
		if err := h.DB.Table("users").
			Select("user_id, user_name").
			Where("user_id IN ?", userIDs).
			Scan(&users).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat user")
		}
		for _, u := range users {
			names[u.UserID] = u.UserName
		}
	}

	items := make([]*submissionDTO.SubmissionResponse, 0, len(rows))
	for i := range rows {
		resp := submissionDTO.NewSubmissionResponse(&rows[i])
		resp.SubmissionUserName = names[rows[i].SubmissionUserID]
		items = append(items, resp)
	}
	return helper.JsonList(c, "ok", items, nil)
}

// ===================== MINE =====================
// GET /api/u/submissions/mine
func (h *SubmissionController) Mine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var rows []submissionModel.SubmissionModel
	if err := h.DB.Where("submission_user_id = ?", userID).
		Order("submission_submitted_at DESC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	items := make([]*submissionDTO.SubmissionResponse, 0, len(rows))
	for i := range rows {
		items = append(items, submissionDTO.NewSubmissionResponse(&rows[i]))
	}
	return helper.JsonList(c, "ok", items, nil)
}
