// Package config handles configuration loading for the auth service.
package config

import (
	"log"
	"os"
	"strings"
	"time"
)

// Config holds all configuration for the auth service.
type Config struct {
	DatabaseURL    string
	RedisHost      string
	RedisPort      string
	RedisPassword  string
	JWTSecret      string
	TokenExpiry    time.Duration
	Port           string
	Environment    string
	AllowedOrigins []string
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		DatabaseURL:    getEnvRequired("DATABASE_URL"),
		RedisHost:      getEnvRequired("REDIS_HOST"),
		RedisPort:      getEnvRequired("REDIS_PORT"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		JWTSecret:      getEnvRequired("JWT_SECRET"),
		TokenExpiry:    parseDuration(getEnv("TOKEN_EXPIRY", "8h"), 8*time.Hour),
		Port:           getEnv("PORT", "5001"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
	}
}

// IsProduction reports whether the service runs in a production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvRequired(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("required environment variable %s is not set", key)
	}
	return value
}

func parseDuration(value string, defaultValue time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
