// Package main is the entry point for the auth service.
package main

import (
	"fmt"
	"log"

	"github.com/coopworks/auth-service/internal/config"
	"github.com/coopworks/auth-service/internal/handlers"
	"github.com/coopworks/auth-service/internal/metrics"
	"github.com/coopworks/auth-service/internal/models"
	"github.com/coopworks/auth-service/internal/repository"
	"github.com/coopworks/auth-service/internal/routes"
	"github.com/coopworks/auth-service/internal/service"
	redisclient "github.com/coopworks/auth-service/pkg/redis"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// @title Cooperative Auth Service API
// @version 1.0
// @description Authentication service for the cooperative portal and employee dashboard
// @host localhost:5001
// @BasePath /api
func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient, err := redisclient.NewClient(cfg)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	// Initialize repository
	userRepo := repository.NewUserRepository(db)

	// Initialize services
	tokenService, err := service.NewTokenService(cfg.JWTSecret, cfg.TokenExpiry)
	if err != nil {
		log.Fatal("Failed to create token service:", err)
	}
	attemptTracker := service.NewAttemptTracker(redisClient)
	passwordHasher := service.NewPasswordHasher()
	authService := service.NewAuthService(userRepo, passwordHasher, tokenService, attemptTracker)

	// Initialize handlers
	serviceMetrics := metrics.New(prometheus.DefaultRegisterer)
	cookieHelper := handlers.NewCookieHelper(handlers.CookieConfig{
		Secure: cfg.IsProduction(),
	}, cfg.TokenExpiry)
	authHandler := handlers.NewAuthHandler(authService, cookieHelper, serviceMetrics)
	healthHandler := handlers.NewHealthHandler(db, redisClient)

	// Setup router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// Setup routes
	routes.Setup(router, authHandler, healthHandler, cfg)

	// Start server
	log.Printf("Starting auth service on port %s", cfg.Port)
	if err := router.Run(fmt.Sprintf(":%s", cfg.Port)); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
