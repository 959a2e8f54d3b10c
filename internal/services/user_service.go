package services

import (
	"context"
	"fmt"

	"github.com/bsheremet/unit-info-backend/internal/auth/service"
	"github.com/bsheremet/unit-info-backend/internal/models"
)

// UserAdminRepository is the interface that wraps methods for users
// collection data access needed by the admin user management.
type UserAdminRepository interface {
	// Method List retrieves all users without password hashes.
	List(ctx context.Context) ([]models.User, error)
	// Method GetByID retrieves a user by id without the password hash.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// Method EmailTaken reports whether a user other than excludeID already
	// owns the given email.
	EmailTaken(ctx context.Context, email, excludeID string) (bool, error)
	// Method Update applies a partial field set to a user document.
	Update(ctx context.Context, id string, fields map[string]any) error
	// Method Delete removes a user document and returns the deleted count.
	Delete(ctx context.Context, id string) (int64, error)
}

// userService implements the admin-only user management
type userService struct {
	userRepo UserAdminRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo UserAdminRepository) *userService {
	return &userService{userRepo: userRepo}
}

// List retrieves all users
func (s *userService) List(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

// Update applies a partial update to any user, including role changes
func (s *userService) Update(ctx context.Context, id string, upd *models.UserUpdate) (*models.User, error) {
	// Resolve first so a bad id is a 404, not a silent no-op
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	fields := map[string]any{}

	if upd.FullName != nil && *upd.FullName != "" {
		fields["full_name"] = *upd.FullName
	}
	if upd.Rank != nil {
		fields["rank"] = *upd.Rank
	}
	if upd.Email != nil && *upd.Email != "" {
		taken, err := s.userRepo.EmailTaken(ctx, *upd.Email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("email already in use: %w", models.ErrValidation)
		}
		fields["email"] = *upd.Email
	}
	if upd.Password != nil && *upd.Password != "" {
		passwordHash, err := service.HashPassword(*upd.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		fields["password_hash"] = passwordHash
	}
	if upd.Role != nil && *upd.Role != "" {
		if *upd.Role != models.RoleUser && *upd.Role != models.RoleAdmin {
			return nil, fmt.Errorf("unknown role %q: %w", *upd.Role, models.ErrValidation)
		}
		fields["role"] = *upd.Role
	}

	if len(fields) > 0 {
		if err := s.userRepo.Update(ctx, id, fields); err != nil {
			return nil, err
		}
	}

	return s.userRepo.GetByID(ctx, id)
}

// Delete removes a user. Their duty entries are left in place with a
// dangling user_id, which is the accepted tradeoff of the denormalized
// roster model.
func (s *userService) Delete(ctx context.Context, id string) error {
	count, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("user %w", models.ErrNotFound)
	}
	return nil
}
