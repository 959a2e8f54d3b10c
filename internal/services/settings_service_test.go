package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bsheremet/unit-info-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSettingsRepository is a stateful mock implementation of SettingsRepository
type mockSettingsRepository struct {
	settings *models.Settings
	getErr   error
}

func (m *mockSettingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.settings == nil {
		return nil, fmt.Errorf("settings %w", models.ErrNotFound)
	}
	return m.settings, nil
}

func (m *mockSettingsRepository) Create(ctx context.Context, settings *models.Settings) error {
	m.settings = settings
	return nil
}

func (m *mockSettingsRepository) Update(ctx context.Context, fields map[string]any) error {
	if m.settings == nil {
		return fmt.Errorf("settings %w", models.ErrNotFound)
	}
	if name, ok := fields["unit_name"].(string); ok {
		m.settings.UnitName = name
	}
	if subtitle, ok := fields["unit_subtitle"].(string); ok {
		m.settings.UnitSubtitle = subtitle
	}
	if icon, ok := fields["unit_icon"].(string); ok {
		m.settings.UnitIcon = icon
	}
	if title, ok := fields["news_title"].(string); ok {
		m.settings.NewsTitle = title
	}
	if subtitle, ok := fields["news_subtitle"].(string); ok {
		m.settings.NewsSubtitle = subtitle
	}
	return nil
}

func TestSettingsService_Get(t *testing.T) {
	t.Run("returns defaults when nothing stored", func(t *testing.T) {
		repo := &mockSettingsRepository{}
		svc := NewSettingsService(repo)

		settings, err := svc.Get(context.Background())

		require.NoError(t, err)
		assert.Equal(t, models.SettingsID, settings.ID)
		assert.Equal(t, "Військова Частина", settings.UnitName)

		// Reading must not persist the defaults
		assert.Nil(t, repo.settings)
	})

	t.Run("returns stored settings", func(t *testing.T) {
		repo := &mockSettingsRepository{settings: &models.Settings{
			ID:       models.SettingsID,
			UnitName: "A0000",
		}}
		svc := NewSettingsService(repo)

		settings, err := svc.Get(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "A0000", settings.UnitName)
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		repo := &mockSettingsRepository{getErr: errors.New("connection reset")}
		svc := NewSettingsService(repo)

		_, err := svc.Get(context.Background())
		assert.Error(t, err)
	})
}

func TestSettingsService_Update(t *testing.T) {
	newName := "A0000"

	t.Run("patches stored settings", func(t *testing.T) {
		repo := &mockSettingsRepository{settings: &models.Settings{
			ID:        models.SettingsID,
			UnitName:  "Військова Частина",
			NewsTitle: "Новини Частини",
		}}
		svc := NewSettingsService(repo)

		settings, err := svc.Update(context.Background(), &models.SettingsUpdate{UnitName: &newName})

		require.NoError(t, err)
		assert.Equal(t, "A0000", settings.UnitName)
		assert.Equal(t, "Новини Частини", settings.NewsTitle)
	})

	t.Run("first write creates defaults with the patch applied", func(t *testing.T) {
		repo := &mockSettingsRepository{}
		svc := NewSettingsService(repo)

		settings, err := svc.Update(context.Background(), &models.SettingsUpdate{UnitName: &newName})

		require.NoError(t, err)
		assert.Equal(t, "A0000", settings.UnitName)
		assert.Equal(t, "Новини Частини", settings.NewsTitle)
		require.NotNil(t, repo.settings)
		assert.Equal(t, models.SettingsID, repo.settings.ID)
	})

	t.Run("empty patch is rejected", func(t *testing.T) {
		repo := &mockSettingsRepository{}
		svc := NewSettingsService(repo)

		_, err := svc.Update(context.Background(), &models.SettingsUpdate{})

		require.Error(t, err)
		assert.ErrorIs(t, err, models.ErrValidation)
	})
}
