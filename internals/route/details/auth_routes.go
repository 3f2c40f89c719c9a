package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "kelasku_backend/internals/features/users/controller"
	"kelasku_backend/internals/middlewares"
)

// AuthRoutes: register/login dengan rate limiter khusus.
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := userController.NewAuthController(db)

	auth := app.Group("/api/auth")
	auth.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
}
