package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-barcode-archive/internal/handler"
	"go-barcode-archive/internal/middleware"
	"go-barcode-archive/internal/model"
	"go-barcode-archive/internal/repository"
	"go-barcode-archive/internal/service"
	"go-barcode-archive/internal/ws"
	"go-barcode-archive/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(&model.User{}, &model.CatalogRow{}, &model.Entry{}, &model.EntryImage{}, &model.PendingEntry{})

	// 3. Seed default admin account
	seedAdmin(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	catalogRepo := repository.NewCatalogRepo(db)
	entryRepo := repository.NewEntryRepo(db)
	pendingRepo := repository.NewPendingRepo(db)

	authService := service.NewAuthService(userRepo, wsHub)
	userService := service.NewUserService(userRepo)
	catalogService := service.NewCatalogService(catalogRepo, entryRepo, wsHub)
	entryService := service.NewEntryService(entryRepo, pendingRepo, catalogRepo, wsHub)
	exportService := service.NewExportService(entryRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	entryHandler := handler.NewEntryHandler(entryService)
	pendingHandler := handler.NewPendingHandler(entryService)
	exportHandler := handler.NewExportHandler(exportService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName:   "Barcode Archive Pro v1.0",
		BodyLimit: 50 * 1024 * 1024, // Encoded image payloads travel in request bodies
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)
	auth.Post("/heartbeat", middleware.RequireAuth(userRepo), authHandler.Heartbeat)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Archive entries
	protected.Get("/entries", entryHandler.GetEntries)
	protected.Get("/entries/:id", entryHandler.GetEntry)
	protected.Post("/entries", entryHandler.CreateEntry)
	protected.Delete("/entries/:id", middleware.RequireAdmin(), entryHandler.DeleteEntry)

	// Pending queue
	protected.Get("/pending", pendingHandler.GetPending)
	protected.Post("/pending/bulk", pendingHandler.BulkUpload)
	protected.Post("/pending/:id/promote", pendingHandler.PromotePending)
	protected.Delete("/pending/:id", pendingHandler.DiscardPending)
	protected.Delete("/pending", pendingHandler.DiscardAllPending)

	// Master catalog
	protected.Get("/catalog", catalogHandler.GetCatalog)
	protected.Post("/catalog/import", catalogHandler.ImportCatalog)
	protected.Delete("/catalog", middleware.RequireAdmin(), catalogHandler.ClearCatalog)

	// Exports
	protected.Post("/exports/xlsx", exportHandler.ExportXLSX)
	protected.Post("/exports/pdf", exportHandler.ExportPDF)

	// Account management
	protected.Put("/users/me/theme", userHandler.SetTheme)
	protected.Get("/users", middleware.RequireAdmin(), userHandler.GetUsers)
	protected.Get("/users/:id", middleware.RequireAdmin(), userHandler.GetUser)
	protected.Post("/users", middleware.RequireAdmin(), userHandler.CreateUser)
	protected.Put("/users/:id", middleware.RequireAdmin(), userHandler.UpdateUser)
	protected.Delete("/users/:id", middleware.RequireAdmin(), userHandler.DeleteUser)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedAdmin creates the default admin/admin account if no admin exists yet
func seedAdmin(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)

	if _, err := userRepo.FindByName("admin"); err == nil {
		return
	}

	admin := &model.User{
		Name:     "admin",
		Role:     model.RoleAdmin,
		IsActive: true,
	}
	if err := admin.SetPassword("admin"); err != nil {
		log.Printf("Warning: Failed to hash admin password: %v", err)
		return
	}

	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
	} else {
		log.Println("Admin user created: admin / admin")
	}
}
