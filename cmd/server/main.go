package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library

	"localmart/internal/api"        // Custom package for API handlers
	"localmart/internal/auth"       // Custom package for the session manager
	"localmart/internal/config"     // Custom package for configuration
	"localmart/internal/domain"     // Custom package for domain models
	"localmart/internal/middleware" // Custom package for middleware
	"localmart/internal/store"      // Custom package for the credential store
	"localmart/internal/utils"      // Custom package for cache helpers
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Data Source Name (DSN) and connect to the database.
	// TranslateError lets the store detect duplicate mobile numbers portably.
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}
	cache := utils.NewCache(redisClient) // JSON cache over Redis

	// Session manager over the MySQL-backed credential store
	authSvc := auth.NewService(store.NewGormStore(db), cfg.JWTSecret, cfg.TokenTTL, cfg.BcryptCost)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Auth routes
	r.POST("/auth/signup", api.SignUpHandler(authSvc)) // Registration endpoint
	r.POST("/auth/signin", api.SignInHandler(authSvc)) // Sign-in endpoint

	// Public marketplace routes
	r.GET("/vendors", api.ListVendorsHandler(db, cache))              // Online vendor listing
	r.GET("/vendors/:id/products", api.ListVendorProductsHandler(db)) // Vendor product listing
	r.GET("/stats", api.CommunityStatsHandler(db, cache))             // Community stats

	// Authenticated routes (protected by JWT)
	authed := r.Group("")
	authed.Use(middleware.JWTAuthMiddleware(authSvc))           // Protect with JWT middleware
	authed.GET("/auth/session", api.SessionHandler())           // Session restore endpoint
	authed.GET("/chats/:peer", api.ListConversationHandler(db)) // Conversation endpoint
	authed.POST("/chats", api.SendChatHandler(db))              // Send message endpoint

	// Customer routes (protected, customer only)
	customerGroup := authed.Group("")
	customerGroup.Use(middleware.RequireRole(domain.RoleCustomer))
	customerGroup.POST("/orders", api.PlaceOrderHandler(db))  // Place order endpoint
	customerGroup.GET("/orders", api.ListMyOrdersHandler(db)) // Customer order history

	// Vendor routes (protected, vendor only)
	vendorGroup := authed.Group("/vendor")
	vendorGroup.Use(middleware.RequireRole(domain.RoleVendor))
	vendorGroup.GET("/profile", api.VendorProfileHandler(db))                                 // Own profile endpoint
	vendorGroup.PATCH("/profile", api.UpdateVendorProfileHandler(db, cache))                  // Profile update endpoint
	vendorGroup.PATCH("/status", api.UpdateVendorStatusHandler(db, cache))                    // Online toggle endpoint
	vendorGroup.POST("/products", api.CreateProductHandler(db))                               // Create product endpoint
	vendorGroup.GET("/products", api.ListMyProductsHandler(db))                               // Own catalog endpoint
	vendorGroup.PATCH("/products/:id/availability", api.UpdateProductAvailabilityHandler(db)) // Availability toggle
	vendorGroup.GET("/orders", api.ListVendorOrdersHandler(db))                               // Incoming orders endpoint
	vendorGroup.PATCH("/orders/:id/status", api.UpdateOrderStatusHandler(db, cache))          // Order status endpoint

	// Admin routes (protected, admin only)
	adminGroup := authed.Group("/admin")
	adminGroup.Use(middleware.RequireRole(domain.RoleAdmin))
	adminGroup.GET("/users", api.ListUsersHandler(db, cache)) // List users endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
