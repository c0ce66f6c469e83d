package main

import (
	"log"
	"strings"
	"time"

	"cafe-pos-backend/internal/audit"
	"cafe-pos-backend/internal/auth"
	"cafe-pos-backend/internal/bill"
	"cafe-pos-backend/internal/config"
	"cafe-pos-backend/internal/database"
	"cafe-pos-backend/internal/menu"
	"cafe-pos-backend/internal/models"
	"cafe-pos-backend/internal/order"
	"cafe-pos-backend/internal/report"
	"cafe-pos-backend/internal/seed"
	"cafe-pos-backend/internal/session"
	"cafe-pos-backend/internal/table"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)
	session.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	app.Use(logger.New())

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth (brute-force'a karşı rate limit)
	authRoutes := api.Group("/auth", limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Minute,
	}))
	authRoutes.Post("/register-cafe", auth.RegisterCafeHandler(cfg))
	authRoutes.Post("/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Post("/auth/logout", auth.LogoutHandler())
	protected.Get("/auth/me", auth.MeHandler())

	// Admin routes
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	// Personel yönetimi
	adminRoutes.Post("/staff", auth.CreateStaffHandler())

	// Masa yönetimi
	adminRoutes.Post("/tables", table.CreateTableHandler())
	adminRoutes.Put("/tables/:id", table.UpdateTableHandler())
	adminRoutes.Delete("/tables/:id", table.DeleteTableHandler())

	// Kategori yönetimi
	adminRoutes.Post("/categories", menu.CreateCategoryHandler())
	adminRoutes.Put("/categories/:id", menu.UpdateCategoryHandler())
	adminRoutes.Delete("/categories/:id", menu.DeleteCategoryHandler())

	// Menü yönetimi
	adminRoutes.Post("/menu-items", menu.CreateMenuItemHandler())
	adminRoutes.Put("/menu-items/:id", menu.UpdateMenuItemHandler())
	adminRoutes.Delete("/menu-items/:id", menu.DeleteMenuItemHandler())

	// Örnek veri
	adminRoutes.Post("/seed", seed.SeedHandler())

	// Ortak (auth gerektiren) route'lar

	// Masalar
	protected.Get("/tables", table.ListTablesHandler())
	protected.Get("/tables/:id", table.GetTableHandler())

	// Menü
	protected.Get("/categories", menu.ListCategoriesHandler())
	protected.Get("/menu-items", menu.ListMenuItemsHandler())
	protected.Get("/menu-items/:id", menu.GetMenuItemHandler())

	// Siparişler
	protected.Post("/orders", order.CreateOrderHandler())
	protected.Get("/orders", order.ListOrdersHandler())
	protected.Get("/orders/:id", order.GetOrderHandler())
	protected.Post("/orders/:id/complete", order.CompleteOrderHandler())
	protected.Post("/orders/:id/cancel", order.CancelOrderHandler())
	protected.Patch("/order-items/:id/status", order.UpdateOrderItemStatusHandler())

	// Adisyonlar
	protected.Get("/bills", bill.ListBillsHandler())
	protected.Get("/bills/:id", bill.GetBillHandler())
	protected.Get("/bills/:id/receipt", bill.ReceiptHandler())
	protected.Post("/bills/:id/pay", bill.PayBillHandler())

	// Satış raporları
	protected.Get("/reports/sales/daily", report.DailySalesHandler())
	protected.Get("/reports/sales/monthly", report.MonthlySalesHandler())

	// Audit logs
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
