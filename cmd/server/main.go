package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aionlab/aion-backend/config"
	"github.com/aionlab/aion-backend/internal/app/controller"
	"github.com/aionlab/aion-backend/internal/app/repository"
	"github.com/aionlab/aion-backend/internal/app/service"
	"github.com/aionlab/aion-backend/internal/db"
	"github.com/aionlab/aion-backend/internal/middleware"
	"github.com/aionlab/aion-backend/internal/router"
	"github.com/aionlab/aion-backend/internal/scheduler"
	"github.com/aionlab/aion-backend/internal/storage"
	"github.com/aionlab/aion-backend/internal/websocket"
	"github.com/aionlab/aion-backend/pkg/logger"
	"github.com/aionlab/aion-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting AION Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Seed database (optional)
	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Initialize Redis (token blacklist + active content cache)
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, running without cache", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close redis connection", err)
		}
	}()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	contentRepo := repository.NewContentRepository(db.GetDB())
	perfumeRepo := repository.NewPerfumeRepository(db.GetDB())
	brandRepo := repository.NewBrandRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())
	wishlistRepo := repository.NewWishlistRepository(db.GetDB())
	couponRepo := repository.NewCouponRepository(db.GetDB())
	eventRepo := repository.NewEventRepository(db.GetDB())
	announcementRepo := repository.NewAnnouncementRepository(db.GetDB())
	inquiryRepo := repository.NewInquiryRepository(db.GetDB())
	pointRepo := repository.NewPointRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	contentService := service.NewContentService(contentRepo)
	perfumeService := service.NewPerfumeService(perfumeRepo, brandRepo)
	brandService := service.NewBrandService(brandRepo)
	cartService := service.NewCartService(cartRepo, perfumeRepo)
	orderService := service.NewOrderService(orderRepo, cartRepo, perfumeRepo, couponRepo, pointRepo, db.GetDB())
	wishlistService := service.NewWishlistService(wishlistRepo, perfumeRepo)
	couponService := service.NewCouponService(couponRepo)
	pointService := service.NewPointService(pointRepo)
	eventService := service.NewEventService(eventRepo, pointService)
	announcementService := service.NewAnnouncementService(announcementRepo)
	inquiryService := service.NewInquiryService(inquiryRepo)

	// Initialize S3 storage
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize WebSocket hub and content rotator
	hub := websocket.NewHub()
	go hub.Run()

	rotator := websocket.NewRotator(contentService, hub)
	rotatorCtx, cancelRotator := context.WithCancel(context.Background())
	go rotator.Run(rotatorCtx)

	// Initialize controllers
	authController := controller.NewAuthController(authService, cfg.JWT.AccessTokenExpiry)
	contentController := controller.NewContentController(contentService)
	perfumeController := controller.NewPerfumeController(perfumeService, wishlistService)
	brandController := controller.NewBrandController(brandService)
	cartController := controller.NewCartController(cartService)
	orderController := controller.NewOrderController(orderService)
	wishlistController := controller.NewWishlistController(wishlistService)
	couponController := controller.NewCouponController(couponService)
	eventController := controller.NewEventController(eventService)
	announcementController := controller.NewAnnouncementController(announcementService)
	inquiryController := controller.NewInquiryController(inquiryService)
	pointController := controller.NewPointController(pointService)
	uploadController := controller.NewUploadController(s3Storage)
	wsController := controller.NewWSController(hub, cfg.CORS.AllowedOrigins)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Start housekeeping scheduler
	housekeeping := scheduler.NewHousekeepingScheduler(couponService, eventService)
	if err := housekeeping.Start(); err != nil {
		logger.Error("Failed to start housekeeping scheduler", err)
	}
	defer housekeeping.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		contentController,
		perfumeController,
		brandController,
		cartController,
		orderController,
		wishlistController,
		couponController,
		eventController,
		announcementController,
		inquiryController,
		pointController,
		uploadController,
		wsController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	rotator.Stop()
	cancelRotator()
	logger.Info("Server stopped successfully")
}
