package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/bsheremet/unit-info-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockNewsRepository is a stateful mock implementation of NewsRepository
type mockNewsRepository struct {
	items     []models.News
	createErr error
	existsErr error
}

func (m *mockNewsRepository) List(ctx context.Context) ([]models.News, error) {
	return m.items, nil
}

func (m *mockNewsRepository) GetByID(ctx context.Context, id string) (*models.News, error) {
	for i := range m.items {
		if m.items[i].ID == id {
			return &m.items[i], nil
		}
	}
	return nil, fmt.Errorf("news %w", models.ErrNotFound)
}

func (m *mockNewsRepository) Create(ctx context.Context, item *models.News) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.items = append(m.items, *item)
	return nil
}

func (m *mockNewsRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	for i := range m.items {
		if m.items[i].ID != id {
			continue
		}
		if title, ok := fields["title"].(string); ok {
			m.items[i].Title = title
		}
		if content, ok := fields["content"].(string); ok {
			m.items[i].Content = content
		}
		if imageURL, ok := fields["image_url"].(string); ok {
			m.items[i].ImageURL = imageURL
		}
		return nil
	}
	return fmt.Errorf("news %w", models.ErrNotFound)
}

func (m *mockNewsRepository) Delete(ctx context.Context, id string) (int64, error) {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *mockNewsRepository) ExistsByExternalURL(ctx context.Context, url string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	for _, item := range m.items {
		if item.ExternalURL == url {
			return true, nil
		}
	}
	return false, nil
}

func TestNewsService_Create(t *testing.T) {
	author := &models.User{ID: "u1", FullName: "Петренко Іван", Role: models.RoleAdmin}

	tests := []struct {
		name          string
		req           *models.NewsCreate
		expectedError bool
	}{
		{
			name: "success",
			req: &models.NewsCreate{
				Title:    "Наказ по частині",
				Content:  "Зміст наказу",
				ImageURL: "https://example.com/image.jpg",
			},
		},
		{
			name:          "missing title",
			req:           &models.NewsCreate{Content: "Зміст"},
			expectedError: true,
		},
		{
			name:          "missing content",
			req:           &models.NewsCreate{Title: "Наказ"},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockNewsRepository{}
			svc := NewNewsService(repo)

			item, err := svc.Create(context.Background(), author, tt.req)

			if tt.expectedError {
				require.Error(t, err)
				assert.ErrorIs(t, err, models.ErrValidation)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, item.ID)
			assert.Equal(t, tt.req.Title, item.Title)
			assert.Equal(t, "u1", item.AuthorID)
			assert.Equal(t, "Петренко Іван", item.AuthorName)
			assert.False(t, item.IsExternal)
			assert.Len(t, repo.items, 1)
		})
	}
}

func TestNewsService_Update(t *testing.T) {
	newTitle := "Оновлений наказ"

	t.Run("partial update keeps other fields", func(t *testing.T) {
		repo := &mockNewsRepository{items: []models.News{
			{ID: "n1", Title: "Наказ", Content: "Зміст", ImageURL: "https://example.com/a.jpg"},
		}}
		svc := NewNewsService(repo)

		item, err := svc.Update(context.Background(), "n1", &models.NewsUpdate{Title: &newTitle})

		require.NoError(t, err)
		assert.Equal(t, newTitle, item.Title)
		assert.Equal(t, "Зміст", item.Content)
		assert.Equal(t, "https://example.com/a.jpg", item.ImageURL)
	})

	t.Run("unknown id", func(t *testing.T) {
		repo := &mockNewsRepository{}
		svc := NewNewsService(repo)

		_, err := svc.Update(context.Background(), "missing", &models.NewsUpdate{Title: &newTitle})

		require.Error(t, err)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestNewsService_Delete(t *testing.T) {
	repo := &mockNewsRepository{items: []models.News{{ID: "n1", Title: "Наказ"}}}
	svc := NewNewsService(repo)

	require.NoError(t, svc.Delete(context.Background(), "n1"))
	assert.Empty(t, repo.items)

	err := svc.Delete(context.Background(), "n1")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
