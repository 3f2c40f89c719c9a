package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	postDTO "kelasku_backend/internals/features/home/posts/dto"
	postModel "kelasku_backend/internals/features/home/posts/model"
	"kelasku_backend/internals/features/linking"
	helper "kelasku_backend/internals/helpers"
	ossHelper "kelasku_backend/internals/helpers/oss"
)

// PostController: post dibuat siapa saja yang login (beda dengan berita yang
// khusus aslab); mekanisme tautan sama persis dengan berita.
type PostController struct {
	DB    *gorm.DB
	Links *linking.LinkStore
}

func NewPostController(db *gorm.DB) *PostController {
	return &PostController{
		DB: db,
		Links: linking.NewLinkStore(linking.StoreConfig{
			LinkTable:      "post_links",
			OwnerIDColumn:  "post_link_post_id",
			KindColumn:     "post_link_entity_kind",
			EntityIDColumn: "post_link_entity_id",
			CreatedAtCol:   "post_link_created_at",

			OwnerTable:           "posts",
			OwnerIDRefColumn:     "post_id",
			OwnerCreatedAtColumn: "post_created_at",
		}, linking.DefaultRegistry()),
	}
}

var validatePost = validator.New()

func postLinkErrToFiber(err error) error {
	switch {
	case errors.Is(err, linking.ErrInvalidEntityKind):
		return fiber.NewError(fiber.StatusBadRequest, "entity_type tidak valid")
	case errors.Is(err, linking.ErrEntityNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Entity target tidak ditemukan")
	default:
		return err
	}
}

func (h *PostController) findPost(id uuid.UUID) (*postModel.PostModel, error) {
	var m postModel.PostModel
	if err := h.DB.Where("post_id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Post tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil post")
	}
	return &m, nil
}

// Eksistensi dulu (404), baru kepemilikan (403).
func (h *PostController) requireCanMutate(c *fiber.Ctx, id uuid.UUID) (*postModel.PostModel, error) {
	existing, err := h.findPost(id)
	if err != nil {
		return nil, err
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return nil, err
	}
	role, _ := helper.GetRoleFromToken(c)
	if !linking.CanMutate(userID, role, existing.PostCreatedBy) {
		return nil, fiber.NewError(fiber.StatusForbidden, "Hanya pembuat atau aslab yang boleh mengubah post ini")
	}
	return existing, nil
}

// ===================== CREATE =====================
// POST /api/u/posts — semua user login.
func (h *PostController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var req postDTO.CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validatePost.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if req.EntityType != nil && req.EntityID == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "entity_id wajib diisi bila entity_type dikirim")
	}

	m := &postModel.PostModel{
		PostTitle:     strings.TrimSpace(req.PostTitle),
		PostContent:   strings.TrimSpace(req.PostContent),
		PostCreatedBy: userID,
	}

	if fh := ossHelper.TryGetFile(c, "post_image", "file"); fh != nil {
		svc, err := ossHelper.NewOSSServiceFromEnv("uploads")
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Storage belum dikonfigurasi")
		}
		url, err := svc.UploadToDir(c.UserContext(), "posts", fh)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal upload gambar")
		}
		m.PostImageURL = &url
	}

	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		if req.EntityType != nil {
			kind, err := h.Links.Registry().Parse(*req.EntityType)
			if err != nil {
				return postLinkErrToFiber(err)
			}
			if err := h.Links.SetLink(tx, m.PostID, kind, *req.EntityID); err != nil {
				return postLinkErrToFiber(err)
			}
		}
		return nil
	})
	if txErr != nil {
		return helper.JsonFromError(c, txErr)
	}

	resp := postDTO.NewPostResponse(m)
	resp.PostCreatedByName = helper.GetUserNameFromToken(c)
	h.attachLink(resp)
	return helper.JsonCreated(c, "Post berhasil dibuat", resp)
}

// ===================== UPDATE =====================
// PUT /api/u/posts/:id — pembuat atau aslab.
func (h *PostController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	existing, err := h.requireCanMutate(c, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var req postDTO.UpdatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validatePost.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if req.EntityType != nil && req.EntityID == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "entity_id wajib diisi bila entity_type dikirim")
	}

	updates := map[string]interface{}{}
	if req.PostTitle != nil {
		updates["post_title"] = strings.TrimSpace(*req.PostTitle)
	}
	if req.PostContent != nil {
		updates["post_content"] = strings.TrimSpace(*req.PostContent)
	}

	if fh := ossHelper.TryGetFile(c, "post_image", "file"); fh != nil {
		svc, err := ossHelper.NewOSSServiceFromEnv("uploads")
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Storage belum dikonfigurasi")
		}
		url, err := svc.UploadToDir(c.UserContext(), "posts", fh)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal upload gambar")
		}
		updates["post_image_url"] = url
	}

	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&postModel.PostModel{}).
				Where("post_id = ?", existing.PostID).
				Updates(updates).Error; err != nil {
				return err
			}
		}
		if req.EntityType != nil {
			kind, err := h.Links.Registry().Parse(*req.EntityType)
			if err != nil {
				return postLinkErrToFiber(err)
			}
			return postLinkErrToFiber(h.Links.SetLink(tx, existing.PostID, kind, *req.EntityID))
		}
		return h.Links.ClearLink(tx, existing.PostID)
	})
	if txErr != nil {
		return helper.JsonFromError(c, txErr)
	}

	after, err := h.findPost(existing.PostID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	resp := postDTO.NewPostResponse(after)
	h.attachLink(resp)
	return helper.JsonUpdated(c, "Post diperbarui", resp)
}

// ===================== DELETE =====================
// DELETE /api/u/posts/:id — link dan komentar ikut terhapus.
func (h *PostController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	existing, err := h.requireCanMutate(c, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := h.Links.ClearLink(tx, existing.PostID); err != nil {
			return err
		}
		if err := tx.Where("post_comment_post_id = ?", existing.PostID).
			Delete(&postModel.PostCommentModel{}).Error; err != nil {
			return err
		}
		return tx.Where("post_id = ?", existing.PostID).
			Delete(&postModel.PostModel{}).Error
	})
	if txErr != nil {
		return helper.JsonFromError(c, txErr)
	}
	return helper.JsonDeleted(c, "Post dihapus", fiber.Map{"post_id": existing.PostID})
}

// ===================== LINK / UNLINK =====================
// PUT /api/u/posts/:id/link
func (h *PostController) Link(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	existing, err := h.requireCanMutate(c, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var req postDTO.SetPostLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validatePost.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	kind, err := h.Links.Registry().Parse(req.EntityType)
	if err != nil {
		return helper.JsonFromError(c, postLinkErrToFiber(err))
	}
	if err := h.Links.SetLink(h.DB, existing.PostID, kind, req.EntityID); err != nil {
		return helper.JsonFromError(c, postLinkErrToFiber(err))
	}

	resp := postDTO.NewPostResponse(existing)
	h.attachLink(resp)
	return helper.JsonUpdated(c, "Post ditautkan", resp)
}

// DELETE /api/u/posts/:id/link
func (h *PostController) Unlink(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	existing, err := h.requireCanMutate(c, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := h.Links.ClearLink(h.DB, existing.PostID); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal melepas tautan")
	}
	return helper.JsonUpdated(c, "Tautan dilepas", postDTO.NewPostResponse(existing))
}

// ===================== LIST =====================
// GET /api/public/posts
func (h *PostController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := h.DB.Model(&postModel.PostModel{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}

	var rows []postModel.PostModel
	if err := h.DB.Order("post_created_at DESC").
		Limit(p.Limit).
		Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	items, err := h.decorate(rows)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat data pendukung")
	}
	return helper.JsonList(c, "ok", items, helper.BuildPagination(total, p))
}

// ===================== DETAIL =====================
// GET /api/public/posts/:id
func (h *PostController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	m, err := h.findPost(id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	items, err := h.decorate([]postModel.PostModel{*m})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat data pendukung")
	}
	return helper.JsonOK(c, "ok", items[0])
}

// ===================== BY ENTITY =====================
// GET /api/public/posts/by-entity/:kind/:entity_id
func (h *PostController) ListByEntity(c *fiber.Ctx) error {
	kind, err := h.Links.Registry().Parse(strings.TrimSpace(c.Params("kind")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "entity_type tidak valid")
	}
	entityID, err := uuid.Parse(strings.TrimSpace(c.Params("entity_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "entity_id tidak valid")
	}

	ids, err := h.Links.ListOwnersLinkedTo(h.DB, kind, entityID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	if len(ids) == 0 {
		return helper.JsonList(c, "ok", []*postDTO.PostResponse{}, nil)
	}

	var rows []postModel.PostModel
	if err := h.DB.Where("post_id IN ?", ids).
		Order("post_created_at DESC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	items, err := h.decorate(rows)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat data pendukung")
	}
	return helper.JsonList(c, "ok", items, nil)
}

/* ===================== Decorator ===================== */

// decorate melengkapi rows dengan nama pembuat, info tautan, dan jumlah
// komentar (semuanya batch).
func (h *PostController) decorate(rows []postModel.PostModel) ([]*postDTO.PostResponse, error) {
	items := make([]*postDTO.PostResponse, 0, len(rows))
	if len(rows) == 0 {
		return items, nil
	}

	postIDs := make([]uuid.UUID, 0, len(rows))
	userIDs := make([]uuid.UUID, 0, len(rows))
	for i := range rows {
		postIDs = append(postIDs, rows[i].PostID)
		userIDs = append(userIDs, rows[i].PostCreatedBy)
	}

	names := map[uuid.UUID]string{}
	var users []struct {
		UserID   uuid.UUID
		UserName string
	}
	if err := h.DB.Table("users").
		Select("user_id, user_name").
		Where("user_id IN ?", userIDs).
		Scan(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		names[u.UserID] = u.UserName
	}

	links, err := h.Links.GetLinks(h.DB, postIDs)
	if err != nil {
		return nil, err
	}

	byKind := map[linking.EntityKind][]uuid.UUID{}
	for _, l := range links {
		byKind[l.Kind] = append(byKind[l.Kind], l.EntityID)
	}
	titles := map[linking.EntityKind]map[uuid.UUID]string{}
	for kind, ids := range byKind {
		t, err := h.Links.Registry().TitlesOf(h.DB, kind, ids)
		if err != nil {
			return nil, err
		}
		titles[kind] = t
	}

	counts := map[uuid.UUID]int64{}
	var rowsCnt []struct {
		PostCommentPostID uuid.UUID
		Cnt               int64
	}
	if err := h.DB.Table("post_comments").
		Select("post_comment_post_id, COUNT(*) AS cnt").
		Where("post_comment_post_id IN ?", postIDs).
		Group("post_comment_post_id").
		Scan(&rowsCnt).Error; err != nil {
		return nil, err
	}
	for _, r := range rowsCnt {
		counts[r.PostCommentPostID] = r.Cnt
	}

	for i := range rows {
		resp := postDTO.NewPostResponse(&rows[i])
		resp.PostCreatedByName = names[rows[i].PostCreatedBy]
		resp.CommentCount = counts[rows[i].PostID]
		if l, ok := links[rows[i].PostID]; ok {
			kindStr := string(l.Kind)
			entityID := l.EntityID
			resp.LinkedType = &kindStr
			resp.LinkedID = &entityID
			if title, ok := titles[l.Kind][l.EntityID]; ok {
				resp.LinkedTitle = &title
			}
		}
		items = append(items, resp)
	}
	return items, nil
}

func (h *PostController) attachLink(resp *postDTO.PostResponse) {
	l, err := h.Links.GetLink(h.DB, resp.PostID)
	if err != nil || l == nil {
		return
	}
	kindStr := string(l.Kind)
	entityID := l.EntityID
	resp.LinkedType = &kindStr
	resp.LinkedID = &entityID
	if title, ok, err := h.Links.Registry().TitleOf(h.DB, l.Kind, l.EntityID); err == nil && ok {
		resp.LinkedTitle = &title
	}
}
