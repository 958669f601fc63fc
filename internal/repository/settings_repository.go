package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/yourorg/smart-bookmarks/internal/model"
)

// SettingsRepository handles database operations for per-user UI settings
type SettingsRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *sqlx.DB, logger *zap.Logger) *SettingsRepository {
	return &SettingsRepository{
		db:     db,
		logger: logger,
	}
}

// Get retrieves a user's settings, returning nil when none are stored yet
func (r *SettingsRepository) Get(ctx context.Context, userID int64) (*model.UserSettings, error) {
	query := `
		SELECT video_table, filters, appearance
		FROM user_settings
		WHERE user_id = $1
	`

	var settings model.UserSettings
	if err := r.db.GetContext(ctx, &settings, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get settings", zap.Error(err), zap.Int64("user_id", userID))
		return nil, err
	}

	return &settings, nil
}

// SetSection replaces one settings section for a user, creating the
// settings row on first write
func (r *SettingsRepository) SetSection(ctx context.Context, userID int64, section string, value json.RawMessage) error {
	var column string
	switch section {
	case model.SettingsSectionVideoTable:
		column = "video_table"
	case model.SettingsSectionFilters:
		column = "filters"
	case model.SettingsSectionAppearance:
		column = "appearance"
	default:
		return fmt.Errorf("unknown settings section: %s", section)
	}

	// Section names map to fixed columns, so the interpolation is safe
	query := fmt.Sprintf(`
		INSERT INTO user_settings (user_id, %s)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET %s = EXCLUDED.%s
	`, column, column, column)

	if _, err := r.db.ExecContext(ctx, query, userID, value); err != nil {
		r.logger.Error("Failed to set settings section", zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("section", section))
		return err
	}

	return nil
}
