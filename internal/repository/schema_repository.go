package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/yourorg/smart-bookmarks/internal/model"
)

// SchemaRepository handles database operations for field schemas
type SchemaRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewSchemaRepository creates a new field schema repository
func NewSchemaRepository(db *sqlx.DB, logger *zap.Logger) *SchemaRepository {
	return &SchemaRepository{
		db:     db,
		logger: logger,
	}
}

// GetByList retrieves all field schemas of a list, each with its ordered
// field IDs
func (r *SchemaRepository) GetByList(ctx context.Context, listID int64) ([]model.FieldSchema, error) {
	query := `
		SELECT id, list_id, name, created_at
		FROM field_schemas
		WHERE list_id = $1
		ORDER BY created_at
	`

	schemas := []model.FieldSchema{}
	if err := r.db.SelectContext(ctx, &schemas, query, listID); err != nil {
		r.logger.Error("Failed to get schemas", zap.Error(err), zap.Int64("list_id", listID))
		return nil, err
	}

	for i := range schemas {
		fieldIDs, err := r.getFieldIDs(ctx, schemas[i].ID)
		if err != nil {
			return nil, err
		}
		schemas[i].FieldIDs = fieldIDs
	}

	return schemas, nil
}

// GetByID retrieves a schema owned by the given user, returning nil
// when not found
func (r *SchemaRepository) GetByID(ctx context.Context, id, userID int64) (*model.FieldSchema, error) {
	query := `
		SELECT s.id, s.list_id, s.name, s.created_at
		FROM field_schemas s
		JOIN lists l ON l.id = s.list_id
		WHERE s.id = $1 AND l.user_id = $2
	`

	var schema model.FieldSchema
	if err := r.db.GetContext(ctx, &schema, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get schema", zap.Error(err), zap.Int64("id", id))
		return nil, err
	}

	fieldIDs, err := r.getFieldIDs(ctx, schema.ID)
	if err != nil {
		return nil, err
	}
	schema.FieldIDs = fieldIDs

	return &schema, nil
}

// FindByName looks a schema up within a list by case-insensitive name,
// optionally excluding one schema ID. Returns nil when no match exists.
func (r *SchemaRepository) FindByName(ctx context.Context, listID int64, name string, excludeID int64) (*model.FieldSchema, error) {
	query := `
		SELECT id, list_id, name, created_at
		FROM field_schemas
		WHERE list_id = $1
		  AND LOWER(name) = LOWER($2)
		  AND ($3 = 0 OR id <> $3)
	`

	var schema model.FieldSchema
	if err := r.db.GetContext(ctx, &schema, query, listID, name, excludeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to find schema by name", zap.Error(err), zap.Int64("list_id", listID))
		return nil, err
	}

	return &schema, nil
}

// Create inserts a new schema with its field order and returns its ID
func (r *SchemaRepository) Create(ctx context.Context, listID int64, name string, fieldIDs []int64) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO field_schemas (list_id, name, created_at) VALUES ($1, $2, NOW()) RETURNING id`,
		listID, name,
	).Scan(&id)
	if err != nil {
		r.logger.Error("Failed to create schema", zap.Error(err), zap.Int64("list_id", listID))
		return 0, err
	}

	if err := insertSchemaFields(ctx, tx, id, fieldIDs); err != nil {
		r.logger.Error("Failed to set schema fields", zap.Error(err), zap.Int64("schema_id", id))
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return id, nil
}

// Rename changes a schema's name
func (r *SchemaRepository) Rename(ctx context.Context, id int64, name string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE field_schemas SET name = $2 WHERE id = $1`, id, name)
	if err != nil {
		r.logger.Error("Failed to rename schema", zap.Error(err), zap.Int64("id", id))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.New("schema not found")
	}

	return nil
}

// ReplaceFields replaces a schema's ordered field list inside a single
// transaction
func (r *SchemaRepository) ReplaceFields(ctx context.Context, id int64, fieldIDs []int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM schema_fields WHERE schema_id = $1`, id); err != nil {
		r.logger.Error("Failed to clear schema fields", zap.Error(err), zap.Int64("schema_id", id))
		return err
	}

	if err := insertSchemaFields(ctx, tx, id, fieldIDs); err != nil {
		r.logger.Error("Failed to set schema fields", zap.Error(err), zap.Int64("schema_id", id))
		return err
	}

	return tx.Commit()
}

// Delete removes a schema and its field order
func (r *SchemaRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM schema_fields WHERE schema_id = $1`, id); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM field_schemas WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete schema", zap.Error(err), zap.Int64("id", id))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.New("schema not found")
	}

	return tx.Commit()
}

func (r *SchemaRepository) getFieldIDs(ctx context.Context, schemaID int64) ([]int64, error) {
	query := `
		SELECT field_id
		FROM schema_fields
		WHERE schema_id = $1
		ORDER BY position
	`

	fieldIDs := []int64{}
	if err := r.db.SelectContext(ctx, &fieldIDs, query, schemaID); err != nil {
		r.logger.Error("Failed to get schema field order", zap.Error(err), zap.Int64("schema_id", schemaID))
		return nil, err
	}

	return fieldIDs, nil
}

func insertSchemaFields(ctx context.Context, tx *sqlx.Tx, schemaID int64, fieldIDs []int64) error {
	for position, fieldID := range fieldIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO schema_fields (schema_id, field_id, position) VALUES ($1, $2, $3)`,
			schemaID, fieldID, position,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
