package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsheremet/unit-info-backend/internal/models"
)

// SettingsRepository is the interface that wraps access to the singleton
// settings document.
type SettingsRepository interface {
	// Method Get retrieves the settings document.
	Get(ctx context.Context) (*models.Settings, error)
	// Method Create inserts the settings document.
	Create(ctx context.Context, settings *models.Settings) error
	// Method Update applies a partial field set to the settings document.
	Update(ctx context.Context, fields map[string]any) error
}

// settingsService serves the unit-wide display settings
type settingsService struct {
	settingsRepo SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo SettingsRepository) *settingsService {
	return &settingsService{settingsRepo: settingsRepo}
}

// Get returns the stored settings, or the defaults when nothing was ever
// saved. Reading does not persist anything.
func (s *settingsService) Get(ctx context.Context) (*models.Settings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if errors.Is(err, models.ErrNotFound) {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return nil, err
	}
	return settings, nil
}

// Update patches the settings document, creating it from the defaults when
// it does not exist yet
func (s *settingsService) Update(ctx context.Context, upd *models.SettingsUpdate) (*models.Settings, error) {
	fields := map[string]any{}
	if upd.UnitName != nil {
		fields["unit_name"] = *upd.UnitName
	}
	if upd.UnitSubtitle != nil {
		fields["unit_subtitle"] = *upd.UnitSubtitle
	}
	if upd.UnitIcon != nil {
		fields["unit_icon"] = *upd.UnitIcon
	}
	if upd.NewsTitle != nil {
		fields["news_title"] = *upd.NewsTitle
	}
	if upd.NewsSubtitle != nil {
		fields["news_subtitle"] = *upd.NewsSubtitle
	}

	if len(fields) == 0 {
		return nil, fmt.Errorf("no data to update: %w", models.ErrValidation)
	}
	fields["updated_at"] = time.Now().UTC()

	err := s.settingsRepo.Update(ctx, fields)
	if errors.Is(err, models.ErrNotFound) {
		// First write ever; start from defaults and apply the patch
		settings := models.DefaultSettings()
		applySettingsPatch(settings, upd)
		if err := s.settingsRepo.Create(ctx, settings); err != nil {
			return nil, err
		}
		return settings, nil
	}
	if err != nil {
		return nil, err
	}

	return s.settingsRepo.Get(ctx)
}

func applySettingsPatch(settings *models.Settings, upd *models.SettingsUpdate) {
	if upd.UnitName != nil {
		settings.UnitName = *upd.UnitName
	}
	if upd.UnitSubtitle != nil {
		settings.UnitSubtitle = *upd.UnitSubtitle
	}
	if upd.UnitIcon != nil {
		settings.UnitIcon = *upd.UnitIcon
	}
	if upd.NewsTitle != nil {
		settings.NewsTitle = *upd.NewsTitle
	}
	if upd.NewsSubtitle != nil {
		settings.NewsSubtitle = *upd.NewsSubtitle
	}
	settings.UpdatedAt = time.Now().UTC()
}
