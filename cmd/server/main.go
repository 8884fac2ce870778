package main

import (
	"log"
	"time"

	"dar_almal_go/config"
	"dar_almal_go/console"
	"dar_almal_go/db"
	"dar_almal_go/handlers"
	"dar_almal_go/middleware"
	"dar_almal_go/models"
	"dar_almal_go/services"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database (Turso when configured, local sqlite otherwise)
	if err := db.Initialize(cfg.DBPath, cfg.TursoDatabaseURL, cfg.TursoAuthToken, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(&models.Branch{}, &models.User{}, &models.Session{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed data
	if err := services.SeedAdminFromEnv(db.DB); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}
	if cfg.SeedBranchData {
		if err := services.SeedBranches(db.DB); err != nil {
			log.Fatalf("Failed to seed branches: %v", err)
		}
	}

	// Initialize image storage (R2 when configured, local uploads otherwise)
	services.InitializeStorage(cfg)

	// Admin console state, one per authenticated session
	geocoder := services.NewNominatimGeocoder(cfg.NominatimURL, cfg.GeocodeTimeout)
	handlers.InitConsoles(console.NewManager(db.DB, geocoder))

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Locale resolution for the public surface
	e.Use(middleware.Locale(cfg))

	// Static files (governorate fallback images, local uploads)
	e.Static("/static", "static")
	e.Static("/images", "static/images")

	// Public routes (no authentication required)
	e.GET("/api/branches", handlers.GetPublicBranchesHandler)
	e.POST("/api/contact", handlers.ContactHandler)
	e.POST("/api/agents", handlers.AgentApplicationHandler)
	e.POST("/admin/login", handlers.LoginHandler)
	e.POST("/admin/logout", handlers.LogoutHandler, middleware.RequireAdmin())

	// Admin routes
	admin := e.Group("/api/admin")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/branches", handlers.GetBranchesHandler)
		admin.POST("/branches", handlers.CreateBranchHandler)
		admin.GET("/branches/:id", handlers.GetBranchHandler)
		admin.PATCH("/branches/:id", handlers.UpdateBranchHandler)
		admin.DELETE("/branches/:id", handlers.DeleteBranchHandler)
		admin.DELETE("/branches", handlers.DeleteAllBranchesHandler)
		admin.GET("/export", handlers.ExportBranchesHandler)
		admin.POST("/upload", handlers.UploadBranchImageHandler)

		// Session-scoped console workflow
		consoleRoutes := admin.Group("/console")
		{
			consoleRoutes.GET("", handlers.ConsoleViewHandler)
			consoleRoutes.PUT("/filter", handlers.ConsoleFilterHandler)
			consoleRoutes.POST("/create", handlers.ConsoleOpenCreateHandler)
			consoleRoutes.POST("/edit/:id", handlers.ConsoleOpenEditHandler)
			consoleRoutes.POST("/close", handlers.ConsoleCloseHandler)
			consoleRoutes.PUT("/draft", handlers.ConsoleDraftHandler)
			consoleRoutes.POST("/geocode", handlers.ConsoleGeocodeHandler)
			consoleRoutes.POST("/image", handlers.ConsoleUploadHandler)
			consoleRoutes.POST("/save", handlers.ConsoleSaveHandler)
			consoleRoutes.PUT("/status/:id", handlers.ConsoleStatusHandler)
			consoleRoutes.POST("/delete/:id/arm", handlers.ConsoleArmDeleteHandler)
			consoleRoutes.POST("/delete/:id/confirm", handlers.ConsoleConfirmDeleteHandler)
			consoleRoutes.POST("/delete-all/arm", handlers.ConsoleArmDeleteAllHandler)
			consoleRoutes.POST("/delete-all/confirm", handlers.ConsoleConfirmDeleteAllHandler)
			consoleRoutes.POST("/disarm", handlers.ConsoleDisarmHandler)
		}
	}

	// Expired session cleanup (runs every hour)
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			if err := services.CleanupExpiredSessions(db.DB); err != nil {
				log.Printf("Error cleaning up expired sessions: %v", err)
			}
		}
	}()

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
