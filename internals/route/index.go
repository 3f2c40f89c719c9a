package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kelasku_backend/internals/constants"
	authMiddleware "kelasku_backend/internals/middlewares/auth"
	routeDetails "kelasku_backend/internals/route/details"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// ===================== AUTH BASE =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db)

	// ===================== GROUPS =====================

	// PUBLIC → tanpa JWT (berita & post bisa dibaca siapa saja)
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")

	// PRIVATE (USER) → wajib login
	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api/u", authMiddleware.AuthMiddleware(db))

	// ADMIN → wajib login + role aslab
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorAslab("admin"), constants.RoleAslab),
	)

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting School routes...")
	routeDetails.SchoolUserRoutes(private, db)
	routeDetails.SchoolAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Home routes...")
	routeDetails.HomePublicRoutes(public, db)
	routeDetails.HomeUserRoutes(private, db)
	routeDetails.HomeAdminRoutes(admin, db)

	log.Println("[INFO] Mounting User routes...")
	routeDetails.UserPrivateRoutes(private, db)
	routeDetails.UserAdminRoutes(admin, db)
}
