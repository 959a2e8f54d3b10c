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

// newsRepository implements news data access over the news collection
type newsRepository struct {
	col    *mongo.Collection
	logger *zap.Logger
}

// NewNewsRepository creates a new news repository
func NewNewsRepository(db *mongo.Database, logger *zap.Logger) *newsRepository {
	return &newsRepository{
		col:    db.Collection("news"),
		logger: logger,
	}
}

// List retrieves news items newest first, capped at 100
func (r *newsRepository) List(ctx context.Context) ([]models.News, error) {
	cursor, err := r.col.Find(ctx, bson.M{},
		options.Find().
			SetProjection(bson.M{"_id": 0}).
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetLimit(100),
	)
	if err != nil {
		r.logger.Error("failed to list news", zap.Error(err))
		return nil, fmt.Errorf("failed to list news: %w", err)
	}
	defer cursor.Close(ctx)

	news := []models.News{}
	if err := cursor.All(ctx, &news); err != nil {
		return nil, fmt.Errorf("failed to decode news: %w", err)
	}
	return news, nil
}

// GetByID retrieves a single news item
func (r *newsRepository) GetByID(ctx context.Context, id string) (*models.News, error) {
	item := &models.News{}
	err := r.col.FindOne(ctx, bson.M{"id": id},
		options.FindOne().SetProjection(bson.M{"_id": 0}),
	).Decode(item)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("news %w", models.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get news", zap.Error(err), zap.String("news_id", id))
		return nil, fmt.Errorf("failed to get news: %w", err)
	}

	return item, nil
}

// Create inserts a new news document
func (r *newsRepository) Create(ctx context.Context, item *models.News) error {
	if _, err := r.col.InsertOne(ctx, item); err != nil {
		r.logger.Error("failed to create news", zap.Error(err))
		return fmt.Errorf("failed to create news: %w", err)
	}
	return nil
}

// Update applies a partial field set to a news document
func (r *newsRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M(fields)})
	if err != nil {
		r.logger.Error("failed to update news", zap.Error(err), zap.String("news_id", id))
		return fmt.Errorf("failed to update news: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("news %w", models.ErrNotFound)
	}
	return nil
}

// Delete removes a news document and returns the number of deleted documents
func (r *newsRepository) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		r.logger.Error("failed to delete news", zap.Error(err), zap.String("news_id", id))
		return 0, fmt.Errorf("failed to delete news: %w", err)
	}
	return res.DeletedCount, nil
}

// ExistsByExternalURL reports whether an external item with this URL was
// already ingested; it is the dedup key of the feed sync
func (r *newsRepository) ExistsByExternalURL(ctx context.Context, url string) (bool, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"external_url": url})
	if err != nil {
		r.logger.Error("failed to check external url", zap.Error(err))
		return false, fmt.Errorf("failed to check external url: %w", err)
	}
	return count > 0, nil
}
