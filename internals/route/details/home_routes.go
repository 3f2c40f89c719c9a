package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	newsController "kelasku_backend/internals/features/home/news/controller"
	postController "kelasku_backend/internals/features/home/posts/controller"
)

// HomePublicRoutes: berita & post bisa dibaca tanpa login.
func HomePublicRoutes(r fiber.Router, db *gorm.DB) {
	newsCtrl := newsController.NewNewsController(db)
	postCtrl := postController.NewPostController(db)
	commentCtrl := postController.NewCommentController(db)

	r.Get("/news", newsCtrl.List)
	r.Get("/news/by-entity/:kind/:entity_id", newsCtrl.ListByEntity)
	r.Get("/news/:id", newsCtrl.GetByID)

	r.Get("/posts", postCtrl.List)
	r.Get("/posts/by-entity/:kind/:entity_id", postCtrl.ListByEntity)
	r.Get("/posts/:id", postCtrl.GetByID)
	r.Get("/posts/:post_id/comments", commentCtrl.ListByPost)
}

// HomeUserRoutes: post & komentar boleh dibuat semua user login.
func HomeUserRoutes(r fiber.Router, db *gorm.DB) {
	postCtrl := postController.NewPostController(db)
	commentCtrl := postController.NewCommentController(db)

	r.Post("/posts", postCtrl.Create)
	r.Put("/posts/:id", postCtrl.Update)
	r.Delete("/posts/:id", postCtrl.Delete)
	r.Put("/posts/:id/link", postCtrl.Link)
	r.Delete("/posts/:id/link", postCtrl.Unlink)

	r.Post("/posts/:post_id/comments", commentCtrl.Create)
	r.Delete("/comments/:id", commentCtrl.Delete)
}

// HomeAdminRoutes: berita hanya dikelola aslab.
func HomeAdminRoutes(r fiber.Router, db *gorm.DB) {
	newsCtrl := newsController.NewNewsController(db)

	r.Post("/news", newsCtrl.Create)
	r.Put("/news/:id", newsCtrl.Update)
	r.Delete("/news/:id", newsCtrl.Delete)
	r.Put("/news/:id/link", newsCtrl.Link)
	r.Delete("/news/:id/link", newsCtrl.Unlink)
}
