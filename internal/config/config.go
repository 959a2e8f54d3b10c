// Package config provides configuration for the application
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	Mongo   MongoConfig
	Logging LoggingConfig
	CORS    CORSConfig
	JWT     JWTConfig
	Feed    FeedConfig
	Seed    SeedConfig
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port int
}

// MongoConfig holds document database connection settings
type MongoConfig struct {
	URI    string
	DBName string
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// JWTConfig holds JWT token configuration
type JWTConfig struct {
	Secret            string
	AccessTokenExpiry time.Duration
}

// FeedConfig holds external news feed settings
type FeedConfig struct {
	URL          string
	FetchTimeout time.Duration
}

// SeedConfig holds the admin account created on first start
type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	godotenv.Load()

	cfg := &Config{}

	// Mongo configuration
	mongoURI := os.Getenv("MONGO_URL")
	if mongoURI == "" {
		return nil, fmt.Errorf("MONGO_URL is required")
	}
	cfg.Mongo.URI = mongoURI

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		return nil, fmt.Errorf("DB_NAME is required")
	}
	cfg.Mongo.DBName = dbName

	// Server configuration
	serverPortStr := os.Getenv("SERVER_PORT")
	if serverPortStr == "" {
		serverPortStr = "8080" // default port
	}
	serverPort, err := strconv.Atoi(serverPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}
	cfg.Server.Port = serverPort

	// Logging configuration
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info" // default level
	}
	cfg.Logging.Level = logLevel

	// CORS configuration
	corsOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
	if corsOrigins == "" {
		// Default to allow all origins if not specified (for development)
		cfg.CORS.AllowedOrigins = []string{"*"}
	} else {
		// Parse comma-separated origins
		origins := strings.Split(corsOrigins, ",")
		cfg.CORS.AllowedOrigins = make([]string, 0, len(origins))
		for _, origin := range origins {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				cfg.CORS.AllowedOrigins = append(cfg.CORS.AllowedOrigins, origin)
			}
		}
		if len(cfg.CORS.AllowedOrigins) == 0 {
			cfg.CORS.AllowedOrigins = []string{"*"}
		}
	}

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	cfg.JWT.Secret = jwtSecret

	// Access token expiry (default: 7 days, sessions extend by re-login only)
	accessExpiryStr := os.Getenv("JWT_ACCESS_TOKEN_EXPIRY")
	if accessExpiryStr == "" {
		accessExpiryStr = "168h"
	}
	accessExpiry, err := time.ParseDuration(accessExpiryStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_EXPIRY: %w", err)
	}
	cfg.JWT.AccessTokenExpiry = accessExpiry

	// External feed configuration
	feedURL := os.Getenv("NEWS_FEED_URL")
	if feedURL == "" {
		feedURL = "https://armyinform.com.ua/category/news/feed/"
	}
	cfg.Feed.URL = feedURL

	feedTimeoutStr := os.Getenv("NEWS_FEED_TIMEOUT")
	if feedTimeoutStr == "" {
		feedTimeoutStr = "10s"
	}
	feedTimeout, err := time.ParseDuration(feedTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid NEWS_FEED_TIMEOUT: %w", err)
	}
	cfg.Feed.FetchTimeout = feedTimeout

	// Seed admin configuration (optional; no admin is created when unset)
	cfg.Seed.AdminEmail = os.Getenv("SEED_ADMIN_EMAIL")
	cfg.Seed.AdminPassword = os.Getenv("SEED_ADMIN_PASSWORD")
	if cfg.Seed.AdminEmail != "" && cfg.Seed.AdminPassword == "" {
		return nil, fmt.Errorf("SEED_ADMIN_PASSWORD is required when SEED_ADMIN_EMAIL is set")
	}

	return cfg, nil
}
