// file: internals/route/routes.go
package routes

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	database "schoolku_backend/internals/databases"
	feeRoutes "schoolku_backend/internals/features/finance/fees/routes"
	schoolAuth "schoolku_backend/internals/middlewares/auth_school"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app)

	// PUBLIC → tanpa JWT (webhook gateway)
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")
	feeRoutes.FeePublicRoutes(public, db)

	// ADMIN → JWT + school scope dari token
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a", schoolAuth.AuthJWT(schoolAuth.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		AllowCookieFallback: true,
	}))
	feeRoutes.FeeAdminRoutes(admin, db)
}

func BaseRoutes(app *fiber.App) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Schoolku fee ledger API 🚀")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		if err := database.Ping(); err != nil {
			dbStatus = "Database connection error"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
			"environment":    os.Getenv("RAILWAY_ENVIRONMENT"),
		})
	})
}
