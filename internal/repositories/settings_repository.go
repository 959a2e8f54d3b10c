package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/bsheremet/unit-info-backend/internal/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"
)

// settingsRepository implements access to the singleton settings document
type settingsRepository struct {
	col    *mongo.Collection
	logger *zap.Logger
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *mongo.Database, logger *zap.Logger) *settingsRepository {
	return &settingsRepository{
		col:    db.Collection("settings"),
		logger: logger,
	}
}

// Get retrieves the singleton settings document
func (r *settingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	settings := &models.Settings{}
	err := r.col.FindOne(ctx, bson.M{"id": models.SettingsID},
		options.FindOne().SetProjection(bson.M{"_id": 0}),
	).Decode(settings)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("settings %w", models.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get settings", zap.Error(err))
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	return settings, nil
}

// Create inserts the settings document
func (r *settingsRepository) Create(ctx context.Context, settings *models.Settings) error {
	if _, err := r.col.InsertOne(ctx, settings); err != nil {
		r.logger.Error("failed to create settings", zap.Error(err))
		return fmt.Errorf("failed to create settings: %w", err)
	}
	return nil
}

// Update applies a partial field set to the settings document
func (r *settingsRepository) Update(ctx context.Context, fields map[string]any) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"id": models.SettingsID}, bson.M{"$set": bson.M(fields)})
	if err != nil {
		r.logger.Error("failed to update settings", zap.Error(err))
		return fmt.Errorf("failed to update settings: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("settings %w", models.ErrNotFound)
	}
	return nil
}
