package main

import (
	"log"
	"time"

	"github.com/ankirsydii/Orderly/internal/config"
	"github.com/ankirsydii/Orderly/internal/database"
	"github.com/ankirsydii/Orderly/internal/handlers"
	"github.com/ankirsydii/Orderly/internal/migrations"
	"github.com/ankirsydii/Orderly/internal/realtime"
	"github.com/ankirsydii/Orderly/internal/redis"
	"github.com/ankirsydii/Orderly/internal/repository"
	"github.com/ankirsydii/Orderly/internal/services"
	"github.com/ankirsydii/Orderly/pkg/share"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Seed default admin and starter menu on first run
	if err := migrations.Seed(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Printf("Warning: failed to seed default data: %v", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	// Initialize share client for report export
	shareClient := share.NewClient(cfg.ShareWebhookURL)

	// Initialize repositories
	credentialRepo := repository.NewCredentialRepository(db)
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Initialize services
	sessionTTL := time.Duration(cfg.SessionTimeout) * time.Second
	resetTTL := time.Duration(cfg.ResetTokenTTL) * time.Second
	cartTTL := time.Duration(cfg.CartTimeout) * time.Second

	authService := services.NewAuthService(credentialRepo, userRepo, redisClient, sessionTTL, resetTTL)
	catalogService := services.NewCatalogService(productRepo, redisClient)
	checkoutService := services.NewCheckoutService(orderRepo, redisClient)
	reportService := services.NewReportService(orderRepo, productRepo, shareClient)

	// Realtime feeds
	productFeed := realtime.NewProductFeed(productRepo, redisClient)
	orderFeed := realtime.NewOrderFeed(orderRepo, redisClient)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	posHandler := handlers.NewPosHandler(redisClient, catalogService, checkoutService, cartTTL)
	reportHandler := handlers.NewReportHandler(reportService)
	streamHandler := handlers.NewStreamHandler(productFeed, orderFeed)

	// Setup routes
	router := gin.Default()

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/reset-password", authHandler.RequestPasswordReset)
			auth.POST("/reset-password/confirm", authHandler.ConfirmPasswordReset)
		}

		authed := api.Group("")
		authed.Use(handlers.AuthRequired(redisClient))
		{
			authed.POST("/auth/logout", authHandler.Logout)

			authed.GET("/products", catalogHandler.List)
			authed.GET("/orders", posHandler.ListOrders)

			authed.GET("/cart", posHandler.GetCart)
			authed.POST("/cart/items", posHandler.AddItem)
			authed.DELETE("/cart/items/:product_id", posHandler.RemoveItem)
			authed.DELETE("/cart", posHandler.ClearCart)
			authed.POST("/checkout", posHandler.Checkout)

			authed.GET("/stream/products", streamHandler.Products)

			admin := authed.Group("")
			admin.Use(handlers.AdminOnly())
			{
				admin.POST("/products", catalogHandler.Create)
				admin.PUT("/products/:id", catalogHandler.Update)
				admin.PATCH("/products/:id/availability", catalogHandler.SetAvailability)
				admin.DELETE("/products/:id", catalogHandler.Delete)

				admin.POST("/employees", authHandler.CreateEmployee)

				admin.GET("/reports/daily", reportHandler.Daily)
				admin.GET("/reports/detailed", reportHandler.Detailed)
				admin.GET("/reports/overview", reportHandler.Overview)
				admin.GET("/reports/export", reportHandler.Export)
				admin.POST("/reports/share", reportHandler.Share)

				admin.GET("/stream/orders", streamHandler.Orders)
			}
		}
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
