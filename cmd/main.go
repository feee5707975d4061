package main

import (
	"context"
	"log"
	"time"

	"nawi-delivery-backend/configs"
	"nawi-delivery-backend/internal/handlers"
	"nawi-delivery-backend/internal/middleware"
	"nawi-delivery-backend/internal/models"
	"nawi-delivery-backend/internal/repositories"
	"nawi-delivery-backend/internal/services"
	"nawi-delivery-backend/pkg/auth"
	"nawi-delivery-backend/pkg/cache"
	"nawi-delivery-backend/pkg/database"
	"nawi-delivery-backend/pkg/messaging"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	config := configs.LoadConfig()

	// Set Gin mode
	gin.SetMode(config.Server.Mode)

	// Initialize database connections
	db, err := database.NewDatabase(config.Database.PostgresURL, config.Database.MongoURL, config.Database.MongoDBName)
	if err != nil {
		log.Fatal("Failed to connect to databases:", err)
	}
	defer db.Close()

	// Auto-migrate PostgreSQL tables
	if err := autoMigratePostgres(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis cache
	redisCache := cache.NewRedisCache(config.Redis.URL, config.Redis.Password, config.Redis.DB)
	if redisCache == nil {
		log.Fatal("Failed to connect to Redis")
	}
	defer redisCache.Close()

	// Initialize Kafka
	kafkaProducer := messaging.NewKafkaProducer(config.Kafka.Brokers)
	defer kafkaProducer.Close()

	// Initialize JWT manager (access: configured hours, refresh: 30 days)
	jwtManager := auth.NewJWTManager(config.JWT.SecretKey, config.JWT.ExpiryHours, 30)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db.Postgres)
	profileRepo := repositories.NewProfileRepository(db.Postgres)
	restaurantRepo := repositories.NewRestaurantRepository(db.Postgres)
	orderRepo := repositories.NewOrderRepository(db.Postgres)
	couponRepo := repositories.NewCouponRepository(db.Postgres)
	favouriteRepo := repositories.NewFavouriteRepository(db.Postgres)
	notificationRepo := repositories.NewNotificationRepository(db.Postgres)

	// MongoDB repositories
	menuRepo := repositories.NewMenuRepository(db.MongoDB)
	categoryRepo := repositories.NewMenuCategoryRepository(db.MongoDB)

	// Initialize services
	resetTokenTTL := time.Duration(config.Checkout.ResetTokenTTL) * time.Minute
	authService := services.NewAuthService(userRepo, profileRepo, jwtManager, redisCache, resetTokenTTL)
	couponService := services.NewCouponService(couponRepo)
	cartService := services.NewCartService(menuRepo, couponService, config.Checkout.DeliveryFee)
	orderService := services.NewOrderService(
		orderRepo, notificationRepo, cartService, couponService,
		redisCache, kafkaProducer, config.Kafka.Brokers,
		time.Duration(config.Checkout.OrderCacheTTL)*time.Minute,
	)
	restaurantService := services.NewRestaurantService(restaurantRepo, menuRepo, categoryRepo, redisCache)
	favouriteService := services.NewFavouriteService(favouriteRepo)
	notificationService := services.NewNotificationService(notificationRepo)

	// Make sure a fresh database recognizes the launch coupon
	if err := couponService.SeedLaunchCoupon(context.Background(), config.Checkout.CouponCode, config.Checkout.CouponPercent); err != nil {
		log.Printf("Failed to seed launch coupon: %v", err)
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager)
	rateLimiter := middleware.NewRateLimiter()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	restaurantHandler := handlers.NewRestaurantHandler(restaurantService)
	cartHandler := handlers.NewCartHandler(cartService, orderService)
	orderHandler := handlers.NewOrderHandler(orderService)
	couponHandler := handlers.NewCouponHandler(couponService)
	favouriteHandler := handlers.NewFavouriteHandler(favouriteService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Initialize Gin router
	router := gin.New()

	// Global middleware
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORSMiddleware(config.Server.AllowedOrigins))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(rateLimiter.General())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "nawi-delivery-backend",
		})
	})

	// API routes
	api := router.Group("/api/v1")

	// Register routes
	authHandler.RegisterRoutes(api, authMiddleware, rateLimiter)
	restaurantHandler.RegisterRoutes(api)
	cartHandler.RegisterRoutes(api, authMiddleware, rateLimiter)
	orderHandler.RegisterRoutes(api, authMiddleware)
	couponHandler.RegisterRoutes(api)
	favouriteHandler.RegisterRoutes(api, authMiddleware)
	notificationHandler.RegisterRoutes(api, authMiddleware)

	log.Printf("Server starting on port %s", config.Server.Port)
	log.Fatal(router.Run(":" + config.Server.Port))
}

func autoMigratePostgres(db *database.Database) error {
	return db.Postgres.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Restaurant{},
		&models.Order{},
		&models.OrderItem{},
		&models.Coupon{},
		&models.Favourite{},
		&models.Notification{},
	)
}
