package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	gradeDTO "kelasku_backend/internals/features/school/grades/dto"
	gradeModel "kelasku_backend/internals/features/school/grades/model"
	helper "kelasku_backend/internals/helpers"
)

type GradeController struct{ DB *gorm.DB }

func NewGradeController(db *gorm.DB) *GradeController { return &GradeController{DB: db} }

var validateGrade = validator.New()

// ===================== SET GRADE =====================
// PUT /api/a/submissions/:submission_id/grade — set atau update nilai (upsert).
func (h *GradeController) SetGrade(c *fiber.Ctx) error {
	graderID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	submissionID, err := uuid.Parse(strings.TrimSpace(c.Params("submission_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "submission_id tidak valid")
	}

	var cnt int64
	if err := h.DB.Table("submissions").
		Where("submission_id = ?", submissionID).
		Count(&cnt).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal validasi submission")
	}
	if cnt == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Submission tidak ditemukan")
	}

	var req gradeDTO.SetGradeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateGrade.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m := &gradeModel.GradeModel{
		GradeSubmissionID: submissionID,
		GradeGradedBy:     graderID,
		GradeScore:        req.GradeScore,
		GradeFeedback:     req.GradeFeedback,
	}

	if err := h.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "grade_submission_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"grade_graded_by":  graderID,
			"grade_score":      req.GradeScore,
			"grade_feedback":   req.GradeFeedback,
			"grade_updated_at": time.Now(),
		}),
	}).Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan nilai")
	}

	return helper.JsonUpdated(c, "Nilai tersimpan", gradeDTO.NewGradeResponse(m))
}

// ===================== BY SUBMISSION =====================
// GET /api/a/submissions/:submission_id/grade
func (h *GradeController) GetBySubmission(c *fiber.Ctx) error {
	submissionID, err := uuid.Parse(strings.TrimSpace(c.Params("submission_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "submission_id tidak valid")
	}
	var m gradeModel.GradeModel
	if err := h.DB.Where("grade_submission_id = ?", submissionID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Nilai belum ada")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil nilai")
	}
	return helper.JsonOK(c, "ok", gradeDTO.NewGradeResponse(&m))
}

// ===================== MINE =====================
// GET /api/u/grades/mine — nilai milik praktikan yang login.
func (h *GradeController) Mine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var rows []gradeModel.GradeModel
	if err := h.DB.
		Joins("JOIN submissions ON submissions.submission_id = grades.grade_submission_id").
		Where("submissions.submission_user_id = ?", userID).
		Order("grades.grade_updated_at DESC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil nilai")
	}

	items := make([]*gradeDTO.GradeResponse, 0, len(rows))
	for i := range rows {
		items = append(items, gradeDTO.NewGradeResponse(&rows[i]))
	}
	return helper.JsonList(c, "ok", items, nil)
}
