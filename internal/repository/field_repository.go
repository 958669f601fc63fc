package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/yourorg/smart-bookmarks/internal/model"
)

// FieldRepository handles database operations for custom fields
type FieldRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewFieldRepository creates a new custom field repository
func NewFieldRepository(db *sqlx.DB, logger *zap.Logger) *FieldRepository {
	return &FieldRepository{
		db:     db,
		logger: logger,
	}
}

// GetByList retrieves all custom fields of a list in creation order
func (r *FieldRepository) GetByList(ctx context.Context, listID int64) ([]model.CustomField, error) {
	query := `
		SELECT id, list_id, name, type, config, created_at
		FROM custom_fields
		WHERE list_id = $1
		ORDER BY created_at
	`

	fields := []model.CustomField{}
	if err := r.db.SelectContext(ctx, &fields, query, listID); err != nil {
		r.logger.Error("Failed to get custom fields", zap.Error(err), zap.Int64("list_id", listID))
		return nil, err
	}

	return fields, nil
}

// GetByID retrieves a custom field owned by the given user, returning
// nil when not found
func (r *FieldRepository) GetByID(ctx context.Context, id, userID int64) (*model.CustomField, error) {
	query := `
		SELECT f.id, f.list_id, f.name, f.type, f.config, f.created_at
		FROM custom_fields f
		JOIN lists l ON l.id = f.list_id
		WHERE f.id = $1 AND l.user_id = $2
	`

	var field model.CustomField
	if err := r.db.GetContext(ctx, &field, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get custom field", zap.Error(err), zap.Int64("id", id))
		return nil, err
	}

	return &field, nil
}

// FindByName looks a field up within a list by case-insensitive name,
// optionally excluding one field ID. Returns nil when no match exists.
func (r *FieldRepository) FindByName(ctx context.Context, listID int64, name string, excludeID int64) (*model.CustomField, error) {
	query := `
		SELECT id, list_id, name, type, config, created_at
		FROM custom_fields
		WHERE list_id = $1
		  AND LOWER(name) = LOWER($2)
		  AND ($3 = 0 OR id <> $3)
	`

	var field model.CustomField
	if err := r.db.GetContext(ctx, &field, query, listID, name, excludeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to find field by name", zap.Error(err), zap.Int64("list_id", listID))
		return nil, err
	}

	return &field, nil
}

// Create inserts a new custom field and returns its ID
func (r *FieldRepository) Create(ctx context.Context, listID int64, name, fieldType string, config json.RawMessage) (int64, error) {
	query := `
		INSERT INTO custom_fields (list_id, name, type, config, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, listID, name, fieldType, config).Scan(&id)
	if err != nil {
		r.logger.Error("Failed to create custom field", zap.Error(err), zap.Int64("list_id", listID))
		return 0, err
	}

	return id, nil
}

// Update changes a field's name and/or config. The type is immutable.
func (r *FieldRepository) Update(ctx context.Context, id int64, name *string, config json.RawMessage) error {
	query := `
		UPDATE custom_fields
		SET name = COALESCE($2, name),
		    config = COALESCE($3, config)
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, name, config)
	if err != nil {
		r.logger.Error("Failed to update custom field", zap.Error(err), zap.Int64("id", id))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.New("custom field not found")
	}

	return nil
}

// Delete removes a field, cascading its values and schema memberships
// inside a single transaction
func (r *FieldRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM field_values WHERE field_id = $1`, id); err != nil {
		r.logger.Error("Failed to delete field values", zap.Error(err), zap.Int64("field_id", id))
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM schema_fields WHERE field_id = $1`, id); err != nil {
		r.logger.Error("Failed to remove field from schemas", zap.Error(err), zap.Int64("field_id", id))
		return err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM custom_fields WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete custom field", zap.Error(err), zap.Int64("id", id))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.New("custom field not found")
	}

	return tx.Commit()
}
