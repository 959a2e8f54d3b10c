package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bsheremet/unit-info-backend/internal/auth/middleware"
	"github.com/bsheremet/unit-info-backend/internal/auth/service"
	"github.com/bsheremet/unit-info-backend/internal/config"
	"github.com/bsheremet/unit-info-backend/internal/feed"
	"github.com/bsheremet/unit-info-backend/internal/handlers"
	"github.com/bsheremet/unit-info-backend/internal/logger"
	"github.com/bsheremet/unit-info-backend/internal/middlewares"
	"github.com/bsheremet/unit-info-backend/internal/models"
	"github.com/bsheremet/unit-info-backend/internal/repositories"
	"github.com/bsheremet/unit-info-backend/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting Unit Info Backend")

	// Connect to the document database
	client, err := connectMongo(cfg.Mongo.URI)
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			logger.Logger.Error("Failed to disconnect from database", zap.Error(err))
		}
	}()

	db := client.Database(cfg.Mongo.DBName)

	// Initialize JWT token generator
	tokenGenerator := service.NewTokenGenerator(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
	)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, logger.Logger)
	newsRepo := repositories.NewNewsRepository(db, logger.Logger)
	dutyRepo := repositories.NewDutyRepository(db, logger.Logger)
	groupRepo := repositories.NewGroupRepository(db, logger.Logger)
	settingsRepo := repositories.NewSettingsRepository(db, logger.Logger)

	// Seed the admin account and default settings on first start
	if err := seedData(cfg, userRepo, settingsRepo); err != nil {
		logger.Logger.Fatal("Failed to seed initial data", zap.Error(err))
	}

	// Initialize the external feed client
	feedClient := feed.NewClient(cfg.Feed.URL, cfg.Feed.FetchTimeout, logger.Logger)

	// Initialize services
	authService := services.NewAuthService(userRepo, tokenGenerator, logger.Logger)
	userService := services.NewUserService(userRepo)
	newsService := services.NewNewsService(newsRepo)
	newsSyncService := services.NewNewsSyncService(newsRepo, feedClient, logger.Logger)
	dutyService := services.NewDutyService(dutyRepo, userRepo)
	groupService := services.NewGroupService(groupRepo, userRepo)
	settingsService := services.NewSettingsService(settingsRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, logger.Logger)
	userHandler := handlers.NewUserHandler(userService, logger.Logger)
	newsHandler := handlers.NewNewsHandler(newsService, newsSyncService, logger.Logger)
	dutyHandler := handlers.NewDutyHandler(dutyService, logger.Logger)
	groupHandler := handlers.NewGroupHandler(groupService, logger.Logger)
	settingsHandler := handlers.NewSettingsHandler(settingsService, logger.Logger)

	// Initialize auth middleware
	authMiddleware := middleware.AuthMiddleware(tokenGenerator, userRepo)
	adminMiddleware := middleware.AdminMiddleware

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middlewares.RequestIDMiddleware)
	r.Use(middlewares.LoggerMiddleware(logger.Logger))
	r.Use(middlewares.RecoveryMiddleware(logger.Logger))
	r.Use(middlewares.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(middlewares.RequestSizeLimitMiddleware(10 * 1024 * 1024)) // 10MB

	// Scope router to /api
	r.Route("/api", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authMiddleware)
		userHandler.RegisterRoutes(r, authMiddleware, adminMiddleware)
		newsHandler.RegisterRoutes(r, authMiddleware, adminMiddleware)
		dutyHandler.RegisterRoutes(r, authMiddleware, adminMiddleware)
		groupHandler.RegisterRoutes(r, authMiddleware, adminMiddleware)
		settingsHandler.RegisterRoutes(r, authMiddleware, adminMiddleware)
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectMongo connects to the document database and verifies the connection
func connectMongo(uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return client, nil
}

// seedUserRepository covers the user lookups and writes seeding needs.
type seedUserRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

// seedSettingsRepository covers the settings lookups and writes seeding needs.
type seedSettingsRepository interface {
	Get(ctx context.Context) (*models.Settings, error)
	Create(ctx context.Context, settings *models.Settings) error
}

// seedData creates the configured admin account and the default unit settings
// when they do not exist yet
func seedData(cfg *config.Config, userRepo seedUserRepository, settingsRepo seedSettingsRepository) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if cfg.Seed.AdminEmail != "" {
		_, err := userRepo.GetByEmail(ctx, cfg.Seed.AdminEmail)
		switch {
		case err == nil:
			// Admin already exists
		case errors.Is(err, models.ErrNotFound):
			passwordHash, err := service.HashPassword(cfg.Seed.AdminPassword)
			if err != nil {
				return fmt.Errorf("failed to hash seed admin password: %w", err)
			}
			admin := &models.User{
				ID:           uuid.New().String(),
				Email:        cfg.Seed.AdminEmail,
				FullName:     "Administrator",
				Role:         models.RoleAdmin,
				Verified:     true,
				CreatedAt:    time.Now().UTC(),
				PasswordHash: passwordHash,
			}
			if err := userRepo.Create(ctx, admin); err != nil {
				return fmt.Errorf("failed to create seed admin: %w", err)
			}
			logger.Logger.Info("Seeded admin account", zap.String("email", cfg.Seed.AdminEmail))
		default:
			return fmt.Errorf("failed to look up seed admin: %w", err)
		}
	}

	_, err := settingsRepo.Get(ctx)
	switch {
	case err == nil:
		// Settings already exist
	case errors.Is(err, models.ErrNotFound):
		if err := settingsRepo.Create(ctx, models.DefaultSettings()); err != nil {
			return fmt.Errorf("failed to create default settings: %w", err)
		}
		logger.Logger.Info("Seeded default unit settings")
	default:
		return fmt.Errorf("failed to look up unit settings: %w", err)
	}

	return nil
}
