package main

import (
	"strings"

	"envanter-backend/internal/audit"
	"envanter-backend/internal/auth"
	"envanter-backend/internal/config"
	"envanter-backend/internal/contact"
	"envanter-backend/internal/contacts"
	"envanter-backend/internal/dashboard"
	"envanter-backend/internal/database"
	"envanter-backend/internal/inventory"
	"envanter-backend/internal/logger"
	"envanter-backend/internal/trade"

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
			logger.LogError("main", "ErrorHandler", c.Path(), err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	// Yüklenen ürün görselleri
	app.Static("/product-images", cfg.ProductImagePath)

	api := app.Group("/api")

	// Public
	api.Post("/auth/register", auth.RegisterHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))
	api.Get("/home", dashboard.HomeHandler())
	api.Post("/contact", contact.CreateContactMessageHandler())

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Post("/auth/logout", auth.LogoutHandler())
	protected.Get("/auth/me", auth.MeHandler())

	// Dashboard
	protected.Get("/dashboard", dashboard.DashboardHandler())
	protected.Get("/dashboard/sales-chart", dashboard.SalesChartHandler())

	// Ürünler
	protected.Get("/products", inventory.ListProductsHandler())
	protected.Post("/products", inventory.CreateProductHandler(cfg))
	protected.Get("/products/:id", inventory.GetProductHandler())
	protected.Put("/products/:id", inventory.UpdateProductHandler(cfg))
	protected.Delete("/products/:id", inventory.DeleteProductHandler(cfg))

	// Tedarikçiler & müşteriler
	protected.Get("/suppliers", contacts.ListSuppliersHandler())
	protected.Post("/suppliers", contacts.CreateSupplierHandler())
	protected.Put("/suppliers/:id", contacts.UpdateSupplierHandler())
	protected.Delete("/suppliers/:id", contacts.DeleteSupplierHandler())
	protected.Get("/customers", contacts.ListCustomersHandler())
	protected.Post("/customers", contacts.CreateCustomerHandler())
	protected.Put("/customers/:id", contacts.UpdateCustomerHandler())

	// Satış & alım
	protected.Get("/sales", trade.ListSalesHandler())
	protected.Post("/sales", trade.CreateSaleHandler())
	protected.Get("/purchases", trade.ListPurchasesHandler())
	protected.Post("/purchases", trade.CreatePurchaseHandler())

	// Audit logs
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())

	logger.Get().Info("Server çalışıyor port: " + cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		logger.Get().Fatal(err)
	}
}
