package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/yourorg/smart-bookmarks/internal/model"
)

// TagRepository handles database operations for video tags
type TagRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewTagRepository creates a new tag repository
func NewTagRepository(db *sqlx.DB, logger *zap.Logger) *TagRepository {
	return &TagRepository{
		db:     db,
		logger: logger,
	}
}

// GetAll retrieves a user's tags with video counts and proper
// database-level pagination
func (r *TagRepository) GetAll(ctx context.Context, userID int64, searchTerm string, page, limit int) ([]model.TagWithCount, int, error) {
	// First, get total count with a separate COUNT query
	countQuery := `
		SELECT COUNT(*)
		FROM tags
		WHERE user_id = $1
		  AND ($2::text IS NULL OR $2 = '' OR name ILIKE '%' || $2 || '%')
	`

	var totalCount int
	err := r.db.GetContext(ctx, &totalCount, countQuery, userID, searchTerm)
	if err != nil {
		r.logger.Error("Failed to count tags", zap.Error(err), zap.String("search", searchTerm))
		return nil, 0, err
	}

	// Calculate offset for pagination
	offset := (page - 1) * limit

	query := `
		SELECT t.id, t.name, t.color, COUNT(vt.video_id) AS video_count
		FROM tags t
		LEFT JOIN video_tags vt ON vt.tag_id = t.id
		WHERE t.user_id = $1
		  AND ($2::text IS NULL OR $2 = '' OR t.name ILIKE '%' || $2 || '%')
		GROUP BY t.id
		ORDER BY t.name
		LIMIT $3 OFFSET $4
	`

	tags := []model.TagWithCount{}
	err = r.db.SelectContext(ctx, &tags, query, userID, searchTerm, limit, offset)
	if err != nil {
		r.logger.Error("Failed to get tags", zap.Error(err), zap.String("search", searchTerm))
		return nil, 0, err
	}

	return tags, totalCount, nil
}

// GetByID retrieves a single tag with its video count, returning nil
// when not found
func (r *TagRepository) GetByID(ctx context.Context, id, userID int64) (*model.TagWithCount, error) {
	query := `
		SELECT t.id, t.name, t.color, COUNT(vt.video_id) AS video_count
		FROM tags t
		LEFT JOIN video_tags vt ON vt.tag_id = t.id
		WHERE t.id = $1 AND t.user_id = $2
		GROUP BY t.id
	`

	var tag model.TagWithCount
	if err := r.db.GetContext(ctx, &tag, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get tag", zap.Error(err), zap.Int64("id", id))
		return nil, err
	}

	return &tag, nil
}

// FindByName looks a tag up by case-insensitive name, returning nil
// when not found
func (r *TagRepository) FindByName(ctx context.Context, userID int64, name string) (*model.Tag, error) {
	query := `
		SELECT id, user_id, name, color
		FROM tags
		WHERE user_id = $1 AND LOWER(name) = LOWER($2)
	`

	var tag model.Tag
	if err := r.db.GetContext(ctx, &tag, query, userID, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to find tag by name", zap.Error(err))
		return nil, err
	}

	return &tag, nil
}

// Create inserts a new tag and returns its ID
func (r *TagRepository) Create(ctx context.Context, userID int64, name, color string) (int64, error) {
	query := `
		INSERT INTO tags (user_id, name, color)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, userID, name, color).Scan(&id)
	if err != nil {
		r.logger.Error("Failed to create tag", zap.Error(err))
		return 0, err
	}

	return id, nil
}

// Update changes a tag's name and color
func (r *TagRepository) Update(ctx context.Context, id, userID int64, name, color string) error {
	query := `
		UPDATE tags
		SET name = $3, color = $4
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.db.ExecContext(ctx, query, id, userID, name, color)
	if err != nil {
		r.logger.Error("Failed to update tag", zap.Error(err), zap.Int64("id", id))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.New("tag not found")
	}

	return nil
}

// Delete removes a tag. Fails while the tag is still attached to videos.
func (r *TagRepository) Delete(ctx context.Context, id, userID int64) error {
	inUseQuery := `SELECT COUNT(*) FROM video_tags WHERE tag_id = $1`

	var attached int
	if err := r.db.GetContext(ctx, &attached, inUseQuery, id); err != nil {
		r.logger.Error("Failed to check tag usage", zap.Error(err), zap.Int64("id", id))
		return err
	}

	if attached > 0 {
		return errors.New("tag is in use")
	}

	query := `DELETE FROM tags WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		r.logger.Error("Failed to delete tag", zap.Error(err), zap.Int64("id", id))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.New("tag not found")
	}

	return nil
}
