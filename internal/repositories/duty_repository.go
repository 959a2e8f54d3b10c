package repositories

import (
	"context"
	"fmt"

	"github.com/bsheremet/unit-info-backend/internal/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"
)

// dutyDateSort orders roster reads ascending by calendar date; duty_date is
// stored as YYYY-MM-DD so string order is date order
var dutyDateSort = bson.D{{Key: "duty_date", Value: 1}}

// dutyRepository implements duty roster data access over the duties collection
type dutyRepository struct {
	col    *mongo.Collection
	logger *zap.Logger
}

// NewDutyRepository creates a new duty repository
func NewDutyRepository(db *mongo.Database, logger *zap.Logger) *dutyRepository {
	return &dutyRepository{
		col:    db.Collection("duties"),
		logger: logger,
	}
}

// Create inserts a new duty entry
func (r *dutyRepository) Create(ctx context.Context, duty *models.Duty) error {
	if _, err := r.col.InsertOne(ctx, duty); err != nil {
		r.logger.Error("failed to create duty", zap.Error(err))
		return fmt.Errorf("failed to create duty: %w", err)
	}
	return nil
}

// ListAll retrieves every duty entry sorted ascending by duty date
func (r *dutyRepository) ListAll(ctx context.Context) ([]models.Duty, error) {
	return r.list(ctx, bson.M{})
}

// ListByUser retrieves one user's duty entries sorted ascending by duty date
func (r *dutyRepository) ListByUser(ctx context.Context, userID string) ([]models.Duty, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *dutyRepository) list(ctx context.Context, filter bson.M) ([]models.Duty, error) {
	cursor, err := r.col.Find(ctx, filter,
		options.Find().
			SetProjection(bson.M{"_id": 0}).
			SetSort(dutyDateSort).
			SetLimit(1000),
	)
	if err != nil {
		r.logger.Error("failed to list duties", zap.Error(err))
		return nil, fmt.Errorf("failed to list duties: %w", err)
	}
	defer cursor.Close(ctx)

	duties := []models.Duty{}
	if err := cursor.All(ctx, &duties); err != nil {
		return nil, fmt.Errorf("failed to decode duties: %w", err)
	}
	return duties, nil
}

// Exists reports whether a duty entry is already stored for (user, date)
func (r *dutyRepository) Exists(ctx context.Context, userID, date string) (bool, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"user_id": userID, "duty_date": date})
	if err != nil {
		r.logger.Error("failed to check duty", zap.Error(err))
		return false, fmt.Errorf("failed to check duty: %w", err)
	}
	return count > 0, nil
}

// DeleteByUser removes every duty entry of a user and returns how many
// documents were removed; zero is not an error
func (r *dutyRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		r.logger.Error("failed to delete duties", zap.Error(err), zap.String("user_id", userID))
		return 0, fmt.Errorf("failed to delete duties: %w", err)
	}
	return res.DeletedCount, nil
}
