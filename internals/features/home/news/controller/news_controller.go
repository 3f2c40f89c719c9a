package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	newsDTO "kelasku_backend/internals/features/home/news/dto"
	newsModel "kelasku_backend/internals/features/home/news/model"
	"kelasku_backend/internals/features/linking"
	helper "kelasku_backend/internals/helpers"
	ossHelper "kelasku_backend/internals/helpers/oss"
)

type NewsController struct {
	DB    *gorm.DB
	Links *linking.LinkStore
}

func NewNewsController(db *gorm.DB) *NewsController {
	return &NewsController{
		DB: db,
		Links: linking.NewLinkStore(linking.StoreConfig{
			LinkTable:      "news_links",
			OwnerIDColumn:  "news_link_news_id",
			KindColumn:     "news_link_entity_kind",
			EntityIDColumn: "news_link_entity_id",
			CreatedAtCol:   "news_link_created_at",

			OwnerTable:           "news",
			OwnerIDRefColumn:     "news_id",
			OwnerCreatedAtColumn: "news_created_at",
		}, linking.DefaultRegistry()),
	}
}

var validateNews = validator.New()

// Terjemahkan error linking → *fiber.Error agar keluar dari Transaction rapi.
func linkErrToFiber(err error) error {
	switch {
	case errors.Is(err, linking.ErrInvalidEntityKind):
		return fiber.NewError(fiber.StatusBadRequest, "entity_type tidak valid")
	case errors.Is(err, linking.ErrEntityNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Entity target tidak ditemukan")
	default:
		return err
	}
}

func (h *NewsController) findNews(id uuid.UUID) (*newsModel.NewsModel, error) {
	var m newsModel.NewsModel
	if err := h.DB.Where("news_id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Berita tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil berita")
	}
	return &m, nil
}

// requireCanMutate: cek eksistensi dulu (404), baru kepemilikan (403).
func (h *NewsController) requireCanMutate(c *fiber.Ctx, id uuid.UUID) (*newsModel.NewsModel, error) {
	existing, err := h.findNews(id)
	if err != nil {
		return nil, err
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return nil, err
	}
	role, _ := helper.GetRoleFromToken(c)
	if !linking.CanMutate(userID, role, existing.NewsCreatedBy) {
		return nil, fiber.NewError(fiber.StatusForbidden, "Hanya pembuat atau aslab yang boleh mengubah berita ini")
	}
	return existing, nil
}

// ===================== CREATE =====================
// POST /api/a/news — hanya aslab.
func (h *NewsController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if !helper.IsAslab(c) {
		return helper.JsonError(c, fiber.StatusForbidden, "Hanya aslab yang boleh membuat berita")
	}

	var req newsDTO.CreateNewsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateNews.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if req.EntityType != nil && req.EntityID == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "entity_id wajib diisi bila entity_type dikirim")
	}

	m := &newsModel.NewsModel{
		NewsTitle:     strings.TrimSpace(req.NewsTitle),
		NewsContent:   strings.TrimSpace(req.NewsContent),
		NewsCreatedBy: userID,
	}

	// Upload gambar opsional (multipart field: news_image / file)
	if fh := ossHelper.TryGetFile(c, "news_image", "file"); fh != nil {
		svc, err := ossHelper.NewOSSServiceFromEnv("uploads")
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Storage belum dikonfigurasi")
		}
		url, err := svc.UploadToDir(c.UserContext(), "news", fh)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal upload gambar")
		}
		m.NewsImageURL = &url
	}

	// Berita + link ditulis dalam satu transaksi: gagal validasi target
	// tidak boleh meninggalkan berita yatim.
	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		if req.EntityType != nil {
			kind, err := h.Links.Registry().Parse(*req.EntityType)
			if err != nil {
				return linkErrToFiber(err)
			}
			if err := h.Links.SetLink(tx, m.NewsID, kind, *req.EntityID); err != nil {
				return linkErrToFiber(err)
			}
		}
		return nil
	})
	if txErr != nil {
		return helper.JsonFromError(c, txErr)
	}

	resp := newsDTO.NewNewsResponse(m)
	resp.NewsCreatedByName = helper.GetUserNameFromToken(c)
	h.attachLink(resp)
	return helper.JsonCreated(c, "Berita berhasil dibuat", resp)
}

// ===================== UPDATE =====================
// PUT /api/a/news/:id — pembuat atau aslab.
// entity_type yang tidak dikirim = lepaskan tautan yang ada.
func (h *NewsController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	existing, err := h.requireCanMutate(c, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var req newsDTO.UpdateNewsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateNews.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if req.EntityType != nil && req.EntityID == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "entity_id wajib diisi bila entity_type dikirim")
	}

	updates := map[string]interface{}{}
	if req.NewsTitle != nil {
		updates["news_title"] = strings.TrimSpace(*req.NewsTitle)
	}
	if req.NewsContent != nil {
		updates["news_content"] = strings.TrimSpace(*req.NewsContent)
	}

	if fh := ossHelper.TryGetFile(c, "news_image", "file"); fh != nil {
		svc, err := ossHelper.NewOSSServiceFromEnv("uploads")
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Storage belum dikonfigurasi")
		}
		url, err := svc.UploadToDir(c.UserContext(), "news", fh)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal upload gambar")
		}
		updates["news_image_url"] = url
	}

	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&newsModel.NewsModel{}).
				Where("news_id = ?", existing.NewsID).
				Updates(updates).Error; err != nil {
				return err
			}
		}
		if req.EntityType != nil {
			kind, err := h.Links.Registry().Parse(*req.EntityType)
			if err != nil {
				return linkErrToFiber(err)
			}
			return linkErrToFiber(h.Links.SetLink(tx, existing.NewsID, kind, *req.EntityID))
		}
		return h.Links.ClearLink(tx, existing.NewsID)
	})
	if txErr != nil {
		return helper.JsonFromError(c, txErr)
	}

	after, err := h.findNews(existing.NewsID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	resp := newsDTO.NewNewsResponse(after)
	h.attachLink(resp)
	return helper.JsonUpdated(c, "Berita diperbarui", resp)
}

// ===================== DELETE =====================
// DELETE /api/a/news/:id — pembuat atau aslab; baris link ikut terhapus.
func (h *NewsController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	existing, err := h.requireCanMutate(c, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := h.Links.ClearLink(tx, existing.NewsID); err != nil {
			return err
		}
		return tx.Where("news_id = ?", existing.NewsID).
			Delete(&newsModel.NewsModel{}).Error
	})
	if txErr != nil {
		return helper.JsonFromError(c, txErr)
	}
	return helper.JsonDeleted(c, "Berita dihapus", fiber.Map{"news_id": existing.NewsID})
}

// ===================== LINK / UNLINK =====================
// PUT /api/a/news/:id/link
func (h *NewsController) Link(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	existing, err := h.requireCanMutate(c, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var req newsDTO.SetLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateNews.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	kind, err := h.Links.Registry().Parse(req.EntityType)
	if err != nil {
		return helper.JsonFromError(c, linkErrToFiber(err))
	}
	if err := h.Links.SetLink(h.DB, existing.NewsID, kind, req.EntityID); err != nil {
		return helper.JsonFromError(c, linkErrToFiber(err))
	}

	resp := newsDTO.NewNewsResponse(existing)
	h.attachLink(resp)
	return helper.JsonUpdated(c, "Berita ditautkan", resp)
}

// DELETE /api/a/news/:id/link
func (h *NewsController) Unlink(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	existing, err := h.requireCanMutate(c, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := h.Links.ClearLink(h.DB, existing.NewsID); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal melepas tautan")
	}
	return helper.JsonUpdated(c, "Tautan dilepas", newsDTO.NewNewsResponse(existing))
}

// ===================== LIST =====================
// GET /api/public/news
func (h *NewsController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := h.DB.Model(&newsModel.NewsModel{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}

	var rows []newsModel.NewsModel
	if err := h.DB.Order("news_created_at DESC").
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
// GET /api/public/news/:id
func (h *NewsController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	m, err := h.findNews(id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	items, err := h.decorate([]newsModel.NewsModel{*m})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat data pendukung")
	}
	return helper.JsonOK(c, "ok", items[0])
}

// ===================== BY ENTITY =====================
// GET /api/public/news/by-entity/:kind/:entity_id — semua berita tentang entity X.
func (h *NewsController) ListByEntity(c *fiber.Ctx) error {
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
		return helper.JsonList(c, "ok", []*newsDTO.NewsResponse{}, nil)
	}

	var rows []newsModel.NewsModel
	if err := h.DB.Where("news_id IN ?", ids).
		Order("news_created_at DESC").
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

// decorate melengkapi rows dengan nama pembuat + info tautan (batch, tanpa N+1).
func (h *NewsController) decorate(rows []newsModel.NewsModel) ([]*newsDTO.NewsResponse, error) {
	items := make([]*newsDTO.NewsResponse, 0, len(rows))
	if len(rows) == 0 {
		return items, nil
	}

	newsIDs := make([]uuid.UUID, 0, len(rows))
	userIDs := make([]uuid.UUID, 0, len(rows))
	for i := range rows {
		newsIDs = append(newsIDs, rows[i].NewsID)
		userIDs = append(userIDs, rows[i].NewsCreatedBy)
	}

	// 1) Nama pembuat
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

	// 2) Baris link
	links, err := h.Links.GetLinks(h.DB, newsIDs)
	if err != nil {
		return nil, err
	}

	// 3) Judul target, batch per kind
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

	for i := range rows {
		resp := newsDTO.NewNewsResponse(&rows[i])
		resp.NewsCreatedByName = names[rows[i].NewsCreatedBy]
		if l, ok := links[rows[i].NewsID]; ok {
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

// attachLink mengisi info tautan untuk satu response (dipakai create/update/link).
func (h *NewsController) attachLink(resp *newsDTO.NewsResponse) {
	l, err := h.Links.GetLink(h.DB, resp.NewsID)
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
