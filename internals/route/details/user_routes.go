package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "kelasku_backend/internals/features/users/controller"
)

// UserPrivateRoutes: profil user yang sedang login.
func UserPrivateRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := userController.NewAuthController(db)

	r.Get("/me", ctrl.Me)
}

// UserAdminRoutes: manajemen akun oleh aslab.
func UserAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := userController.NewUserController(db)

	r.Post("/users", ctrl.CreateUser)
	r.Get("/users", ctrl.ListUsers)
	r.Put("/users/:id/deactivate", ctrl.DeactivateUser)
}
