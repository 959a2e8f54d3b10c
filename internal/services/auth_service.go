package services

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/bsheremet/unit-info-backend/internal/auth/service"
	"github.com/bsheremet/unit-info-backend/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserRepository is the interface that wraps methods for users collection
// data access needed by authentication and profile management.
type UserRepository interface {
	// Method Create inserts a new user document.
	Create(ctx context.Context, user *models.User) error
	// Method GetByEmail retrieves a user by email including the password
	// hash. It is the only read allowed to see the hash.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Method GetByID retrieves a user by id without the password hash.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// Method EmailTaken reports whether a user other than excludeID already
	// owns the given email.
	EmailTaken(ctx context.Context, email, excludeID string) (bool, error)
	// Method Update applies a partial field set to a user document.
	Update(ctx context.Context, id string, fields map[string]any) error
}

// authService implements registration, login and own-profile updates
type authService struct {
	userRepo       UserRepository
	tokenGenerator *service.TokenGenerator
	logger         *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo UserRepository, tokenGenerator *service.TokenGenerator, logger *zap.Logger) *authService {
	return &authService{
		userRepo:       userRepo,
		tokenGenerator: tokenGenerator,
		logger:         logger,
	}
}

// emailRegex validates email format
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Register creates a new user account. New accounts always get the plain
// user role; admins are promoted through the user admin endpoints.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	if req.Email == "" || req.Password == "" || req.FullName == "" {
		return nil, fmt.Errorf("email, password and full_name are required: %w", models.ErrValidation)
	}
	if !emailRegex.MatchString(req.Email) {
		return nil, fmt.Errorf("invalid email format: %w", models.ErrValidation)
	}

	taken, err := s.userRepo.EmailTaken(ctx, req.Email, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("email already registered: %w", models.ErrValidation)
	}

	passwordHash, err := service.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		FullName:     req.FullName,
		Rank:         req.Rank,
		Role:         models.RoleUser,
		Verified:     true, // auto-verify, there is no e-mail confirmation flow
		CreatedAt:    time.Now().UTC(),
		PasswordHash: passwordHash,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))

	user.PasswordHash = ""
	return user, nil
}

// Login verifies credentials and issues an access token. Unknown email and
// wrong password fail identically.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, models.ErrInvalidCredentials
	}

	if !service.CheckPassword(req.Password, user.PasswordHash) {
		return nil, models.ErrInvalidCredentials
	}

	token, err := s.tokenGenerator.GenerateToken(user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	user.PasswordHash = ""
	return &models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	}, nil
}

// UpdateProfile applies the caller's own profile changes. Only name, rank,
// email and password can be changed here; the role stays untouched.
func (s *authService) UpdateProfile(ctx context.Context, caller *models.User, upd *models.UserUpdate) (*models.User, error) {
	fields := map[string]any{}

	if upd.FullName != nil && *upd.FullName != "" {
		fields["full_name"] = *upd.FullName
	}
	if upd.Rank != nil {
		fields["rank"] = *upd.Rank
	}
	if upd.Email != nil && *upd.Email != "" {
		if !emailRegex.MatchString(*upd.Email) {
			return nil, fmt.Errorf("invalid email format: %w", models.ErrValidation)
		}
		taken, err := s.userRepo.EmailTaken(ctx, *upd.Email, caller.ID)
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

	if len(fields) > 0 {
		if err := s.userRepo.Update(ctx, caller.ID, fields); err != nil {
			return nil, err
		}
	}

	return s.userRepo.GetByID(ctx, caller.ID)
}
