package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/bsheremet/unit-info-backend/internal/auth/service"
	"github.com/bsheremet/unit-info-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockUserRepository is a mock implementation of UserRepository
type mockUserRepository struct {
	user          *models.User
	getByEmailErr error
	getByIDUser   *models.User
	emailTaken    bool
	emailTakenErr error
	createErr     error
	updateErr     error

	createdUser   *models.User
	updatedFields map[string]any
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.createdUser = user
	return nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.getByEmailErr != nil {
		return nil, m.getByEmailErr
	}
	return m.user, nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.getByIDUser != nil {
		return m.getByIDUser, nil
	}
	return nil, fmt.Errorf("user %w", models.ErrNotFound)
}

func (m *mockUserRepository) EmailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	if m.emailTakenErr != nil {
		return false, m.emailTakenErr
	}
	return m.emailTaken, nil
}

func (m *mockUserRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updatedFields = fields
	return nil
}

func newTestAuthService(userRepo *mockUserRepository) *authService {
	logger, _ := zap.NewDevelopment()
	tokenGen := service.NewTokenGenerator("test-secret", 0)
	return NewAuthService(userRepo, tokenGen, logger)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		req           *models.RegisterRequest
		userRepo      *mockUserRepository
		expectedError bool
		errorContains string
	}{
		{
			name: "success",
			req: &models.RegisterRequest{
				Email:    "petrenko@example.com",
				Password: "secret123",
				FullName: "Петренко Іван",
				Rank:     "сержант",
			},
			userRepo: &mockUserRepository{},
		},
		{
			name: "missing full name",
			req: &models.RegisterRequest{
				Email:    "petrenko@example.com",
				Password: "secret123",
			},
			userRepo:      &mockUserRepository{},
			expectedError: true,
			errorContains: "required",
		},
		{
			name: "invalid email format",
			req: &models.RegisterRequest{
				Email:    "not-an-email",
				Password: "secret123",
				FullName: "Петренко Іван",
			},
			userRepo:      &mockUserRepository{},
			expectedError: true,
			errorContains: "invalid email format",
		},
		{
			name: "email already registered",
			req: &models.RegisterRequest{
				Email:    "petrenko@example.com",
				Password: "secret123",
				FullName: "Петренко Іван",
			},
			userRepo:      &mockUserRepository{emailTaken: true},
			expectedError: true,
			errorContains: "already registered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestAuthService(tt.userRepo)

			user, err := svc.Register(context.Background(), tt.req)

			if tt.expectedError {
				require.Error(t, err)
				assert.ErrorIs(t, err, models.ErrValidation)
				assert.Contains(t, err.Error(), tt.errorContains)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, user.ID)
			assert.Equal(t, tt.req.Email, user.Email)
			assert.Equal(t, tt.req.FullName, user.FullName)
			assert.Equal(t, tt.req.Rank, user.Rank)
			assert.Equal(t, models.RoleUser, user.Role)
			assert.True(t, user.Verified)
			assert.Empty(t, user.PasswordHash)

			// The stored document carries a bcrypt hash, never the password
			require.NotNil(t, tt.userRepo.createdUser)
			assert.NotEmpty(t, tt.userRepo.createdUser.PasswordHash)
			assert.NotEqual(t, tt.req.Password, tt.userRepo.createdUser.PasswordHash)
		})
	}
}

func TestAuthService_Register_RoleCannotBeChosen(t *testing.T) {
	userRepo := &mockUserRepository{}
	svc := newTestAuthService(userRepo)

	user, err := svc.Register(context.Background(), &models.RegisterRequest{
		Email:    "kovalenko@example.com",
		Password: "secret123",
		FullName: "Коваленко Олег",
	})

	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
}

func TestAuthService_Login(t *testing.T) {
	hash, err := service.HashPassword("secret123")
	require.NoError(t, err)

	stored := &models.User{
		ID:           "u1",
		Email:        "petrenko@example.com",
		FullName:     "Петренко Іван",
		Role:         models.RoleUser,
		PasswordHash: hash,
	}

	tests := []struct {
		name     string
		req      *models.LoginRequest
		userRepo *mockUserRepository
		wantErr  error
	}{
		{
			name:     "success",
			req:      &models.LoginRequest{Email: "petrenko@example.com", Password: "secret123"},
			userRepo: &mockUserRepository{user: stored},
		},
		{
			name:     "unknown email",
			req:      &models.LoginRequest{Email: "ghost@example.com", Password: "secret123"},
			userRepo: &mockUserRepository{getByEmailErr: fmt.Errorf("user %w", models.ErrNotFound)},
			wantErr:  models.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			req:      &models.LoginRequest{Email: "petrenko@example.com", Password: "wrong"},
			userRepo: &mockUserRepository{user: stored},
			wantErr:  models.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestAuthService(tt.userRepo)

			token, err := svc.Login(context.Background(), tt.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, token.AccessToken)
			assert.Equal(t, "bearer", token.TokenType)
			require.NotNil(t, token.User)
			assert.Equal(t, "u1", token.User.ID)
			assert.Empty(t, token.User.PasswordHash)
		})
	}
}

func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	hash, err := service.HashPassword("secret123")
	require.NoError(t, err)

	unknownRepo := &mockUserRepository{getByEmailErr: fmt.Errorf("user %w", models.ErrNotFound)}
	wrongRepo := &mockUserRepository{user: &models.User{Email: "petrenko@example.com", PasswordHash: hash}}

	_, unknownErr := newTestAuthService(unknownRepo).Login(context.Background(),
		&models.LoginRequest{Email: "ghost@example.com", Password: "secret123"})
	_, wrongErr := newTestAuthService(wrongRepo).Login(context.Background(),
		&models.LoginRequest{Email: "petrenko@example.com", Password: "wrong"})

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestAuthService_UpdateProfile(t *testing.T) {
	caller := &models.User{ID: "u1", Email: "petrenko@example.com", FullName: "Петренко Іван"}

	newName := "Петренко Іван Васильович"
	newRank := "старший сержант"
	newEmail := "petrenko.iv@example.com"
	newPassword := "newsecret"
	badEmail := "not-an-email"

	tests := []struct {
		name           string
		upd            *models.UserUpdate
		userRepo       *mockUserRepository
		expectedFields []string
		expectedError  bool
	}{
		{
			name: "name rank and email",
			upd:  &models.UserUpdate{FullName: &newName, Rank: &newRank, Email: &newEmail},
			userRepo: &mockUserRepository{
				getByIDUser: &models.User{ID: "u1", FullName: newName},
			},
			expectedFields: []string{"full_name", "rank", "email"},
		},
		{
			name: "password is stored as a hash",
			upd:  &models.UserUpdate{Password: &newPassword},
			userRepo: &mockUserRepository{
				getByIDUser: &models.User{ID: "u1"},
			},
			expectedFields: []string{"password_hash"},
		},
		{
			name:          "invalid email",
			upd:           &models.UserUpdate{Email: &badEmail},
			userRepo:      &mockUserRepository{},
			expectedError: true,
		},
		{
			name:          "email taken by another user",
			upd:           &models.UserUpdate{Email: &newEmail},
			userRepo:      &mockUserRepository{emailTaken: true},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestAuthService(tt.userRepo)

			updated, err := svc.UpdateProfile(context.Background(), caller, tt.upd)

			if tt.expectedError {
				require.Error(t, err)
				assert.ErrorIs(t, err, models.ErrValidation)
				return
			}

			require.NoError(t, err)
			assert.NotNil(t, updated)
			for _, field := range tt.expectedFields {
				assert.Contains(t, tt.userRepo.updatedFields, field)
			}
			if hash, ok := tt.userRepo.updatedFields["password_hash"]; ok {
				assert.NotEqual(t, newPassword, hash)
			}
		})
	}
}

func TestAuthService_UpdateProfile_EmptyUpdateSkipsWrite(t *testing.T) {
	userRepo := &mockUserRepository{getByIDUser: &models.User{ID: "u1"}}
	svc := newTestAuthService(userRepo)

	_, err := svc.UpdateProfile(context.Background(), &models.User{ID: "u1"}, &models.UserUpdate{})

	require.NoError(t, err)
	assert.Nil(t, userRepo.updatedFields)
}
