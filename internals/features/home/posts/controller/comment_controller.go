package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	postDTO "kelasku_backend/internals/features/home/posts/dto"
	postModel "kelasku_backend/internals/features/home/posts/model"
	"kelasku_backend/internals/features/linking"
	helper "kelasku_backend/internals/helpers"
)

type CommentController struct{ DB *gorm.DB }

func NewCommentController(db *gorm.DB) *CommentController {
	return &CommentController{DB: db}
}

func (h *CommentController) ensurePostExists(postID uuid.UUID) error {
	var cnt int64
	if err := h.DB.Model(&postModel.PostModel{}).
		Where("post_id = ?", postID).
		Count(&cnt).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal validasi post")
	}
	if cnt == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Post tidak ditemukan")
	}
	return nil
}

// ===================== CREATE =====================
// POST /api/u/posts/:post_id/comments — semua user login.
func (h *CommentController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	postID, err := uuid.Parse(strings.TrimSpace(c.Params("post_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "post_id tidak valid")
	}
	if err := h.ensurePostExists(postID); err != nil {
		return helper.JsonFromError(c, err)
	}

	var req postDTO.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validatePost.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m := &postModel.PostCommentModel{
		PostCommentPostID:    postID,
		PostCommentContent:   strings.TrimSpace(req.PostCommentContent),
		PostCommentCreatedBy: userID,
	}
	if err := h.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan komentar")
	}

	resp := postDTO.NewCommentResponse(m)
	resp.PostCommentCreatedByName = helper.GetUserNameFromToken(c)
	return helper.JsonCreated(c, "Komentar berhasil dibuat", resp)
}

// ===================== LIST =====================
// GET /api/public/posts/:post_id/comments — terlama dulu.
func (h *CommentController) ListByPost(c *fiber.Ctx) error {
	postID, err := uuid.Parse(strings.TrimSpace(c.Params("post_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "post_id tidak valid")
	}
	if err := h.ensurePostExists(postID); err != nil {
		return helper.JsonFromError(c, err)
	}

	var rows []postModel.PostCommentModel
	if err := h.DB.Where("post_comment_post_id = ?", postID).
		Order("post_comment_created_at ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil komentar")
	}

	// Nama pembuat, batch
	userIDs := make([]uuid.UUID, 0, len(rows))
	for i := range rows {
		userIDs = append(userIDs, rows[i].PostCommentCreatedBy)
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
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat data pendukung")
		}
		for _, u := range users {
			names[u.UserID] = u.UserName
		}
	}

	items := make([]*postDTO.CommentResponse, 0, len(rows))
	for i := range rows {
		resp := postDTO.NewCommentResponse(&rows[i])
		resp.PostCommentCreatedByName = names[rows[i].PostCommentCreatedBy]
		items = append(items, resp)
	}
	return helper.JsonList(c, "ok", items, nil)
}

// ===================== DELETE =====================
// DELETE /api/u/comments/:id — pembuat komentar atau aslab. Hard delete.
func (h *CommentController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var m postModel.PostCommentModel
	if err := h.DB.Where("post_comment_id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Komentar tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil komentar")
	}

	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	role, _ := helper.GetRoleFromToken(c)
	if !linking.CanMutate(userID, role, m.PostCommentCreatedBy) {
		return helper.JsonError(c, fiber.StatusForbidden, "Hanya pembuat atau aslab yang boleh menghapus komentar ini")
	}

	if err := h.DB.Where("post_comment_id = ?", id).
		Delete(&postModel.PostCommentModel{}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus komentar")
	}
	return helper.JsonDeleted(c, "Komentar dihapus", fiber.Map{"post_comment_id": id})
}
