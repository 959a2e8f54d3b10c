package services

import (
	"context"
	"fmt"
	"time"

	"github.com/bsheremet/unit-info-backend/internal/models"
	"github.com/google/uuid"
)

// NewsRepository is the interface that wraps methods for news collection
// data access.
type NewsRepository interface {
	// Method List retrieves news items newest first.
	List(ctx context.Context) ([]models.News, error)
	// Method GetByID retrieves a single news item.
	GetByID(ctx context.Context, id string) (*models.News, error)
	// Method Create inserts a new news document.
	Create(ctx context.Context, item *models.News) error
	// Method Update applies a partial field set to a news document.
	Update(ctx context.Context, id string, fields map[string]any) error
	// Method Delete removes a news document and returns the deleted count.
	Delete(ctx context.Context, id string) (int64, error)
}

// newsService implements the news feed management
type newsService struct {
	newsRepo NewsRepository
}

// NewNewsService creates a new news service
func NewNewsService(newsRepo NewsRepository) *newsService {
	return &newsService{newsRepo: newsRepo}
}

// List returns the news feed, newest first
func (s *newsService) List(ctx context.Context) ([]models.News, error) {
	return s.newsRepo.List(ctx)
}

// Create publishes a news item authored by the given admin. The author name
// is snapshotted onto the item.
func (s *newsService) Create(ctx context.Context, author *models.User, req *models.NewsCreate) (*models.News, error) {
	if req.Title == "" || req.Content == "" {
		return nil, fmt.Errorf("title and content are required: %w", models.ErrValidation)
	}

	item := &models.News{
		ID:         uuid.New().String(),
		Title:      req.Title,
		Content:    req.Content,
		ImageURL:   req.ImageURL,
		AuthorID:   author.ID,
		AuthorName: author.FullName,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.newsRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Update applies a partial update to a news item
func (s *newsService) Update(ctx context.Context, id string, upd *models.NewsUpdate) (*models.News, error) {
	fields := map[string]any{}
	if upd.Title != nil {
		fields["title"] = *upd.Title
	}
	if upd.Content != nil {
		fields["content"] = *upd.Content
	}
	if upd.ImageURL != nil {
		fields["image_url"] = *upd.ImageURL
	}

	if len(fields) > 0 {
		if err := s.newsRepo.Update(ctx, id, fields); err != nil {
			return nil, err
		}
	}

	return s.newsRepo.GetByID(ctx, id)
}

// Delete removes a news item
func (s *newsService) Delete(ctx context.Context, id string) error {
	count, err := s.newsRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("news %w", models.ErrNotFound)
	}
	return nil
}
