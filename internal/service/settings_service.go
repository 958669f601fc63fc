package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/yourorg/smart-bookmarks/internal/model"
)

// SettingsRepository defines the storage operations the settings service needs
type SettingsRepository interface {
	Get(ctx context.Context, userID int64) (*model.UserSettings, error)
	SetSection(ctx context.Context, userID int64, section string, value json.RawMessage) error
}

// SettingsService handles per-user UI settings
type SettingsService struct {
	settingsRepo SettingsRepository
	logger       *zap.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo SettingsRepository, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// GetSettings returns the user's settings with defaults filled in for
// sections that were never written
func (s *SettingsService) GetSettings(ctx context.Context, userID int64) (*model.UserSettings, error) {
	settings, err := s.settingsRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if settings == nil {
		settings = &model.UserSettings{}
	}

	if settings.VideoTable == nil {
		settings.VideoTable = defaultSection(model.VideoTableSettings{
			SortBy:         "created_at",
			SortDirection:  "desc",
			PageSize:       20,
			ShowThumbnails: true,
		})
	}
	if settings.Filters == nil {
		settings.Filters = defaultSection(model.FilterSettings{MatchAll: true})
	}
	if settings.Appearance == nil {
		settings.Appearance = defaultSection(model.AppearanceSettings{Theme: "system"})
	}

	return settings, nil
}

// UpdateSection validates and replaces one settings section
func (s *SettingsService) UpdateSection(ctx context.Context, userID int64, section string, value json.RawMessage) error {
	if len(value) == 0 {
		return errors.New("settings payload is required")
	}

	// Validate the payload against the section's shape before persisting
	switch section {
	case model.SettingsSectionVideoTable:
		var v model.VideoTableSettings
		if err := json.Unmarshal(value, &v); err != nil {
			return errors.New("invalid video table settings format")
		}
		if v.SortDirection != "" && v.SortDirection != "asc" && v.SortDirection != "desc" {
			return errors.New("sort_direction must be asc or desc")
		}
		// A zero page_size means the client left it unset
		if v.PageSize != 0 && (v.PageSize < 1 || v.PageSize > 100) {
			return errors.New("page_size must be between 1 and 100")
		}
	case model.SettingsSectionFilters:
		var v model.FilterSettings
		if err := json.Unmarshal(value, &v); err != nil {
			return errors.New("invalid filter settings format")
		}
	case model.SettingsSectionAppearance:
		var v model.AppearanceSettings
		if err := json.Unmarshal(value, &v); err != nil {
			return errors.New("invalid appearance settings format")
		}
		if v.Theme != "" && v.Theme != "light" && v.Theme != "dark" && v.Theme != "system" {
			return errors.New("theme must be light, dark or system")
		}
	default:
		return fmt.Errorf("unknown settings section: %s", section)
	}

	return s.settingsRepo.SetSection(ctx, userID, section, value)
}

func defaultSection(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage("{}")
	}
	return data
}
