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

// groupRepository implements group data access over the groups collection
type groupRepository struct {
	col    *mongo.Collection
	logger *zap.Logger
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(db *mongo.Database, logger *zap.Logger) *groupRepository {
	return &groupRepository{
		col:    db.Collection("groups"),
		logger: logger,
	}
}

// List retrieves all groups
func (r *groupRepository) List(ctx context.Context) ([]models.Group, error) {
	return r.list(ctx, bson.M{})
}

// ListByMember retrieves the groups a user belongs to
func (r *groupRepository) ListByMember(ctx context.Context, userID string) ([]models.Group, error) {
	return r.list(ctx, bson.M{"member_ids": userID})
}

func (r *groupRepository) list(ctx context.Context, filter bson.M) ([]models.Group, error) {
	cursor, err := r.col.Find(ctx, filter,
		options.Find().SetProjection(bson.M{"_id": 0}).SetLimit(1000),
	)
	if err != nil {
		r.logger.Error("failed to list groups", zap.Error(err))
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer cursor.Close(ctx)

	groups := []models.Group{}
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, fmt.Errorf("failed to decode groups: %w", err)
	}
	return groups, nil
}

// GetByID retrieves a single group
func (r *groupRepository) GetByID(ctx context.Context, id string) (*models.Group, error) {
	group := &models.Group{}
	err := r.col.FindOne(ctx, bson.M{"id": id},
		options.FindOne().SetProjection(bson.M{"_id": 0}),
	).Decode(group)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("group %w", models.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get group", zap.Error(err), zap.String("group_id", id))
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	return group, nil
}

// Create inserts a new group document
func (r *groupRepository) Create(ctx context.Context, group *models.Group) error {
	if _, err := r.col.InsertOne(ctx, group); err != nil {
		r.logger.Error("failed to create group", zap.Error(err))
		return fmt.Errorf("failed to create group: %w", err)
	}
	return nil
}

// Update applies a partial field set to a group document
func (r *groupRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M(fields)})
	if err != nil {
		r.logger.Error("failed to update group", zap.Error(err), zap.String("group_id", id))
		return fmt.Errorf("failed to update group: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("group %w", models.ErrNotFound)
	}
	return nil
}

// Delete removes a group document and returns the number of deleted documents
func (r *groupRepository) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		r.logger.Error("failed to delete group", zap.Error(err), zap.String("group_id", id))
		return 0, fmt.Errorf("failed to delete group: %w", err)
	}
	return res.DeletedCount, nil
}
