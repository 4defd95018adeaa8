package main

import (
	"log"
	"strings"

	"schoolfin-backend/internal/audit"
	"schoolfin-backend/internal/auth"
	"schoolfin-backend/internal/bank"
	"schoolfin-backend/internal/config"
	"schoolfin-backend/internal/database"
	"schoolfin-backend/internal/dropdown"
	"schoolfin-backend/internal/models"
	"schoolfin-backend/internal/reports"
	"schoolfin-backend/internal/transaction"
	"schoolfin-backend/internal/vendor"
	"schoolfin-backend/internal/voucher"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(corsOrigins, ","),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowCredentials: true,
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/login", auth.LoginHandler(cfg))
	api.Post("/auth/logout", auth.LogoutHandler())

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())
	protected.Get("/auth/roles", auth.RolesHandler())

	// Dropdown reference data, same shape for every form
	protected.Get("/dropdown/:resource", dropdown.ListHandler())

	// Banks
	protected.Get("/bank/check-account/:accountNumber", bank.CheckAccountHandler())
	protected.Post("/bank/add", bank.AddBankHandler())

	// Vendors
	protected.Post("/vendor/add", vendor.AddVendorHandler())
	protected.Get("/vendor/list", vendor.ListVendorsHandler())
	protected.Put("/vendor/:id", vendor.UpdateVendorHandler())
	protected.Delete("/vendor/:id", vendor.DeleteVendorHandler())

	// Vouchers
	protected.Post("/generate/purchase-voucher", voucher.CreateVoucherHandler())
	protected.Get("/voucher-details", voucher.ListVouchersHandler())

	// Transactions
	protected.Post("/request/transaction", transaction.CreateTransactionHandler())
	protected.Get("/trns-info", transaction.ListTransactionsHandler())

	// Decisions are one-shot; only supervisors and admins may commit them
	decisions := protected.Group("")
	decisions.Use(auth.RequireRole(models.RoleSuperviser, models.RoleAdmin))
	decisions.Patch("/update/voucher/:id", voucher.DecideVoucherHandler())
	decisions.Patch("/update/transaction/:id", transaction.DecideTransactionHandler())

	// Banker money movement
	banker := protected.Group("")
	banker.Use(auth.RequireRole(models.RoleBanker, models.RoleAdmin))
	banker.Post("/deposit", transaction.CreateDepositHandler())
	banker.Get("/deposit/list", transaction.ListDepositsHandler())
	banker.Post("/transaction/peticash", transaction.CreatePettyCashHandler())
	banker.Get("/transaction/peticash", transaction.ListPettyCashHandler())

	// Admin only
	adminRoutes := protected.Group("")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))
	adminRoutes.Post("/auth/register", auth.RegisterHandler())
	adminRoutes.Get("/reports/:name", reports.ReportHandler())
	adminRoutes.Get("/reports/:name/export", reports.ExportHandler())
	adminRoutes.Get("/audit-logs", audit.ListAuditLogsHandler())

	// Legacy bank listing routes live outside the /api group
	bankGroup := app.Group("/bank")
	bankGroup.Use(auth.JWTMiddleware(cfg))
	bankGroup.Get("/self", bank.ListSelfHandler())
	bankGroup.Get("/list", bank.ListAllHandler())

	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
