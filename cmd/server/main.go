package main

import (
	"log"
	"time"

	"eventeasy/internal/config"
	"eventeasy/internal/database"
	"eventeasy/internal/handlers"
	"eventeasy/internal/redis"
	"eventeasy/internal/repository"
	"eventeasy/internal/services"
	"eventeasy/pkg/mpesa"

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

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	// Payment verification is optional; without a gateway the pay endpoint
	// records the reference without external confirmation.
	var payments services.PaymentVerifier
	if cfg.MpesaAPIURL != "" {
		payments = mpesa.NewClient(cfg.MpesaAPIURL, cfg.MpesaAppKey, cfg.MpesaAppSecret)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Initialize services
	userService := services.NewUserService(userRepo)
	catalogService := services.NewCatalogService(categoryRepo, serviceRepo)
	orderService := services.NewOrderService(orderRepo, serviceRepo, payments)

	// Initialize handlers
	sessionTTL := time.Duration(cfg.SessionTimeout) * time.Second
	authHandler := handlers.NewAuthHandler(userService, redisClient, sessionTTL)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	orderHandler := handlers.NewOrderHandler(orderService)

	// Setup routes
	router := gin.Default()

	api := router.Group("/api")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// Catalog reads are open
		api.GET("/categories", catalogHandler.ListCategories)
		api.GET("/categories/:id", catalogHandler.GetCategory)
		api.GET("/categories/:id/services", catalogHandler.ListServicesByCategory)
		api.GET("/services", catalogHandler.ListServices)
		api.GET("/services/:id", catalogHandler.GetService)

		authed := api.Group("")
		authed.Use(handlers.RequireAuth(redisClient, userService))
		{
			authed.POST("/auth/logout", authHandler.Logout)
			authed.GET("/users/me", authHandler.Me)
			authed.PUT("/users/me", authHandler.UpdateMe)

			// Catalog writes require authentication
			authed.POST("/categories", catalogHandler.CreateCategory)
			authed.PUT("/categories/:id", catalogHandler.UpdateCategory)
			authed.DELETE("/categories/:id", catalogHandler.DeleteCategory)
			authed.POST("/services", catalogHandler.CreateService)
			authed.PUT("/services/:id", catalogHandler.UpdateService)
			authed.DELETE("/services/:id", catalogHandler.DeleteService)

			// Orders are always caller-scoped
			authed.GET("/orders", orderHandler.List)
			authed.POST("/orders", orderHandler.Create)
			authed.GET("/orders/:id", orderHandler.Get)
			authed.POST("/orders/:id/claim", orderHandler.Claim)
			authed.POST("/orders/:id/release", orderHandler.Release)
			authed.POST("/orders/:id/pay", orderHandler.Pay)
		}
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
