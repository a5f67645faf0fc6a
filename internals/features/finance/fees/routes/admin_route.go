// file: internals/features/finance/fees/routes/admin_route.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	feeController "schoolku_backend/internals/features/finance/fees/controller"
	"schoolku_backend/internals/middlewares"
)

// FeeAdminRoutes: semua operasi ledger untuk admin sekolah.
// Group sudah dibungkus AuthJWT di SetupRoutes; scope sekolah
// diambil dari token, bukan dari path/body.
func FeeAdminRoutes(admin fiber.Router, db *gorm.DB) {
	fees := feeController.NewFeeController(db)
	payments := feeController.NewFeePaymentController(db)
	settings := feeController.NewFinanceSettingController(db)

	grp := admin.Group("/fees")

	// settings dulu supaya tidak ketangkap :id
	grp.Get("/settings", settings.Get)
	grp.Put("/settings", settings.Upsert)

	// ledger writes dibatasi rate limiter lebih ketat
	grp.Post("/payments", middlewares.WriteRateLimiter(), payments.RecordPayment)
	grp.Post("/payments/checkout", middlewares.WriteRateLimiter(), payments.Checkout)
	grp.Post("/refunds", middlewares.WriteRateLimiter(), payments.RecordRefund)

	grp.Post("/", fees.Create)
	grp.Get("/", fees.List)
	grp.Get("/:id", fees.GetByID)
	grp.Patch("/:id", fees.Update)
	grp.Delete("/:id", fees.Delete)

	grp.Put("/:id/installments", fees.SetInstallments)
	grp.Get("/:id/late-fee", fees.LateFeePreview)
	grp.Get("/:id/payments", payments.ListByFee)
}

// FeePublicRoutes: endpoint yang dipanggil pihak luar (gateway webhook).
func FeePublicRoutes(public fiber.Router, db *gorm.DB) {
	payments := feeController.NewFeePaymentController(db)
	public.Post("/fees/payments/midtrans/webhook", payments.MidtransWebhook)
}
