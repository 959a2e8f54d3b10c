package services

import (
	"context"
	"time"

	"github.com/bsheremet/unit-info-backend/internal/feed"
	"github.com/bsheremet/unit-info-backend/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// syncBatchLimit is how many of the newest feed entries one run considers
const syncBatchLimit = 10

// Author recorded on every ingested external item
const (
	externalAuthorID   = "armyinform"
	externalAuthorName = "ArmyInform"
)

// NewsSyncRepository is the subset of news data access the feed sync needs
type NewsSyncRepository interface {
	// Method ExistsByExternalURL reports whether the URL was already ingested.
	ExistsByExternalURL(ctx context.Context, url string) (bool, error)
	// Method Create inserts a new news document.
	Create(ctx context.Context, item *models.News) error
}

// FeedClient pulls the external feed and article thumbnails
type FeedClient interface {
	// Method Fetch returns up to limit newest feed entries.
	Fetch(ctx context.Context, limit int) ([]feed.Item, error)
	// Method FetchThumbnail returns the thumbnail URL of an article page,
	// or an empty string when the page has none.
	FetchThumbnail(ctx context.Context, pageURL string) (string, error)
	// Method Source returns the feed's domain.
	Source() string
}

// newsSyncService ingests external feed entries as news items. The whole
// run is best-effort: a failing item is logged and skipped, a failing feed
// yields an empty result, and the caller always gets whatever count made it
// into storage.
type newsSyncService struct {
	newsRepo NewsSyncRepository
	feed     FeedClient
	logger   *zap.Logger
}

// NewNewsSyncService creates a new news sync service
func NewNewsSyncService(newsRepo NewsSyncRepository, feedClient FeedClient, logger *zap.Logger) *newsSyncService {
	return &newsSyncService{
		newsRepo: newsRepo,
		feed:     feedClient,
		logger:   logger,
	}
}

// Sync pulls the feed once and inserts the entries not seen before, keyed
// by external URL. Returns the number of items actually inserted.
func (s *newsSyncService) Sync(ctx context.Context) int {
	items, err := s.feed.Fetch(ctx, syncBatchLimit)
	if err != nil {
		s.logger.Error("failed to fetch external feed", zap.Error(err))
		return 0
	}

	created := 0
	for _, item := range items {
		if item.Link == "" {
			continue
		}

		exists, err := s.newsRepo.ExistsByExternalURL(ctx, item.Link)
		if err != nil {
			s.logger.Error("failed to check external url", zap.Error(err), zap.String("url", item.Link))
			continue
		}
		if exists {
			continue
		}

		// Thumbnail is best-effort; an item without an image is still news
		imageURL, err := s.feed.FetchThumbnail(ctx, item.Link)
		if err != nil {
			s.logger.Warn("failed to fetch thumbnail", zap.Error(err), zap.String("url", item.Link))
			imageURL = ""
		}

		news := &models.News{
			ID:          uuid.New().String(),
			Title:       item.Title,
			Content:     item.Summary,
			ImageURL:    imageURL,
			AuthorID:    externalAuthorID,
			AuthorName:  externalAuthorName,
			IsExternal:  true,
			ExternalURL: item.Link,
			Source:      s.feed.Source(),
			CreatedAt:   time.Now().UTC(),
		}

		if err := s.newsRepo.Create(ctx, news); err != nil {
			s.logger.Error("failed to store external news", zap.Error(err), zap.String("url", item.Link))
			continue
		}
		created++
	}

	s.logger.Info("external news sync finished", zap.Int("created", created))
	return created
}
