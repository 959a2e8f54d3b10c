package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/bsheremet/unit-info-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockUserAdminRepository is a mock implementation of UserAdminRepository
type mockUserAdminRepository struct {
	users         map[string]*models.User
	emailTaken    bool
	updateErr     error
	deletedCount  int64
	deleteErr     error
	updatedFields map[string]any
}

func (m *mockUserAdminRepository) List(ctx context.Context) ([]models.User, error) {
	result := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		result = append(result, *u)
	}
	return result, nil
}

func (m *mockUserAdminRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("user %w", models.ErrNotFound)
	}
	return user, nil
}

func (m *mockUserAdminRepository) EmailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	return m.emailTaken, nil
}

func (m *mockUserAdminRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updatedFields = fields
	return nil
}

func (m *mockUserAdminRepository) Delete(ctx context.Context, id string) (int64, error) {
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	return m.deletedCount, nil
}

func TestUserService_Update(t *testing.T) {
	adminRole := models.RoleAdmin
	badRole := "commander"
	newEmail := "kovalenko.new@example.com"
	newPassword := "newsecret"

	tests := []struct {
		name           string
		id             string
		upd            *models.UserUpdate
		repo           *mockUserAdminRepository
		expectedFields []string
		expectedError  bool
		errorIs        error
	}{
		{
			name: "promote to admin",
			id:   "u1",
			upd:  &models.UserUpdate{Role: &adminRole},
			repo: &mockUserAdminRepository{users: map[string]*models.User{
				"u1": {ID: "u1", Role: models.RoleUser},
			}},
			expectedFields: []string{"role"},
		},
		{
			name: "password is stored as a hash",
			id:   "u1",
			upd:  &models.UserUpdate{Password: &newPassword},
			repo: &mockUserAdminRepository{users: map[string]*models.User{
				"u1": {ID: "u1"},
			}},
			expectedFields: []string{"password_hash"},
		},
		{
			name: "unknown role",
			id:   "u1",
			upd:  &models.UserUpdate{Role: &badRole},
			repo: &mockUserAdminRepository{users: map[string]*models.User{
				"u1": {ID: "u1"},
			}},
			expectedError: true,
			errorIs:       models.ErrValidation,
		},
		{
			name:          "unknown user",
			id:            "ghost",
			upd:           &models.UserUpdate{Role: &adminRole},
			repo:          &mockUserAdminRepository{users: map[string]*models.User{}},
			expectedError: true,
			errorIs:       models.ErrNotFound,
		},
		{
			name: "email taken by another user",
			id:   "u1",
			upd:  &models.UserUpdate{Email: &newEmail},
			repo: &mockUserAdminRepository{
				users:      map[string]*models.User{"u1": {ID: "u1"}},
				emailTaken: true,
			},
			expectedError: true,
			errorIs:       models.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewUserService(tt.repo)

			user, err := svc.Update(context.Background(), tt.id, tt.upd)

			if tt.expectedError {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.errorIs)
				return
			}

			require.NoError(t, err)
			assert.NotNil(t, user)
			for _, field := range tt.expectedFields {
				assert.Contains(t, tt.repo.updatedFields, field)
			}
			if hash, ok := tt.repo.updatedFields["password_hash"]; ok {
				assert.NotEqual(t, newPassword, hash)
			}
		})
	}
}

func TestUserService_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := &mockUserAdminRepository{deletedCount: 1}
		svc := NewUserService(repo)

		assert.NoError(t, svc.Delete(context.Background(), "u1"))
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := &mockUserAdminRepository{deletedCount: 0}
		svc := NewUserService(repo)

		err := svc.Delete(context.Background(), "ghost")
		require.Error(t, err)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}
