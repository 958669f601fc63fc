package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/yourorg/smart-bookmarks/internal/model"
)

// ListRepository handles database operations for bookmark lists
type ListRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewListRepository creates a new list repository
func NewListRepository(db *sqlx.DB, logger *zap.Logger) *ListRepository {
	return &ListRepository{
		db:     db,
		logger: logger,
	}
}

// GetAll retrieves all lists owned by a user, newest first
func (r *ListRepository) GetAll(ctx context.Context, userID int64) ([]model.List, error) {
	query := `
		SELECT l.id, l.user_id, l.name, l.description, l.created_at, l.updated_at,
		       COUNT(v.id) AS video_count
		FROM lists l
		LEFT JOIN videos v ON v.list_id = l.id
		WHERE l.user_id = $1
		GROUP BY l.id
		ORDER BY l.created_at DESC
	`

	lists := []model.List{}
	if err := r.db.SelectContext(ctx, &lists, query, userID); err != nil {
		r.logger.Error("Failed to get lists", zap.Error(err), zap.Int64("user_id", userID))
		return nil, err
	}

	return lists, nil
}

// GetByID retrieves a list owned by the given user, returning nil when
// not found or owned by someone else
func (r *ListRepository) GetByID(ctx context.Context, id, userID int64) (*model.List, error) {
	query := `
		SELECT l.id, l.user_id, l.name, l.description, l.created_at, l.updated_at,
		       COUNT(v.id) AS video_count
		FROM lists l
		LEFT JOIN videos v ON v.list_id = l.id
		WHERE l.id = $1 AND l.user_id = $2
		GROUP BY l.id
	`

	var list model.List
	if err := r.db.GetContext(ctx, &list, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get list", zap.Error(err), zap.Int64("id", id))
		return nil, err
	}

	return &list, nil
}

// Create inserts a new list and returns its ID
func (r *ListRepository) Create(ctx context.Context, userID int64, create *model.ListCreate) (int64, error) {
	query := `
		INSERT INTO lists (user_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, userID, create.Name, create.Description).Scan(&id)
	if err != nil {
		r.logger.Error("Failed to create list", zap.Error(err), zap.Int64("user_id", userID))
		return 0, err
	}

	return id, nil
}

// Update changes a list's name and/or description
func (r *ListRepository) Update(ctx context.Context, id, userID int64, update *model.ListUpdate) error {
	query := `
		UPDATE lists
		SET name = COALESCE($3, name),
		    description = COALESCE($4, description),
		    updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.db.ExecContext(ctx, query, id, userID, update.Name, update.Description)
	if err != nil {
		r.logger.Error("Failed to update list", zap.Error(err), zap.Int64("id", id))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.New("list not found")
	}

	return nil
}

// Delete removes a list and everything in it
func (r *ListRepository) Delete(ctx context.Context, id, userID int64) error {
	query := `DELETE FROM lists WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		r.logger.Error("Failed to delete list", zap.Error(err), zap.Int64("id", id))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.New("list not found")
	}

	return nil
}
