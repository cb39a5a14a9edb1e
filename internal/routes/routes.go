// Package routes defines HTTP routes for the auth service.
package routes

import (
	"github.com/coopworks/auth-service/internal/config"
	"github.com/coopworks/auth-service/internal/handlers"
	"github.com/coopworks/auth-service/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Setup configures all HTTP routes for the application.
func Setup(router *gin.Engine, authHandler *handlers.AuthHandler, healthHandler *handlers.HealthHandler, cfg *config.Config) {
	router.Use(middleware.Security(middleware.SecurityConfig{
		AllowedOrigins: cfg.AllowedOrigins,
	}))

	// Health check
	router.GET("/health", healthHandler.Check)
	// Metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Auth routes
	auth := router.Group("/api/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.PUT("/update", authHandler.Update)
	}

	// Simulated federated sign-in stays out of production deployments.
	if !cfg.IsProduction() {
		auth.POST("/demo/google", authHandler.DemoGoogleLogin)
	}
}
