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

// publicUserProjection strips the Mongo object id and the password hash from
// every read that can end up in a response
var publicUserProjection = bson.M{"_id": 0, "password_hash": 0}

// userRepository implements user data access over the users collection
type userRepository struct {
	col    *mongo.Collection
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *mongo.Database, logger *zap.Logger) *userRepository {
	return &userRepository{
		col:    db.Collection("users"),
		logger: logger,
	}
}

// Create inserts a new user document
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if _, err := r.col.InsertOne(ctx, user); err != nil {
		r.logger.Error("failed to create user", zap.Error(err))
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByEmail retrieves a user by email including the password hash; it is
// the only read used for credential checks
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	err := r.col.FindOne(ctx, bson.M{"email": email},
		options.FindOne().SetProjection(bson.M{"_id": 0}),
	).Decode(user)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("user %w", models.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get user by email", zap.Error(err))
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by id without the password hash
func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	user := &models.User{}
	err := r.col.FindOne(ctx, bson.M{"id": id},
		options.FindOne().SetProjection(publicUserProjection),
	).Decode(user)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("user %w", models.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get user by id", zap.Error(err), zap.String("user_id", id))
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// List retrieves all users without password hashes
func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	cursor, err := r.col.Find(ctx, bson.M{},
		options.Find().SetProjection(publicUserProjection).SetLimit(1000),
	)
	if err != nil {
		r.logger.Error("failed to list users", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// EmailTaken reports whether a different user already owns the given email
func (r *userRepository) EmailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{
		"email": email,
		"id":    bson.M{"$ne": excludeID},
	})
	if err != nil {
		r.logger.Error("failed to check email", zap.Error(err))
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}

// Update applies a partial field set to a user document
func (r *userRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M(fields)})
	if err != nil {
		r.logger.Error("failed to update user", zap.Error(err), zap.String("user_id", id))
		return fmt.Errorf("failed to update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("user %w", models.ErrNotFound)
	}
	return nil
}

// Delete removes a user document and returns the number of deleted documents
func (r *userRepository) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		r.logger.Error("failed to delete user", zap.Error(err), zap.String("user_id", id))
		return 0, fmt.Errorf("failed to delete user: %w", err)
	}
	return res.DeletedCount, nil
}
