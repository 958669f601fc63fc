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

// VideoRepository handles database operations for video bookmarks
type VideoRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewVideoRepository creates a new video repository
func NewVideoRepository(db *sqlx.DB, logger *zap.Logger) *VideoRepository {
	return &VideoRepository{
		db:     db,
		logger: logger,
	}
}

// GetByList retrieves a page of a list's videos, optionally restricted
// to videos carrying ALL of the given tags and/or matching a title search
func (r *VideoRepository) GetByList(ctx context.Context, listID int64, tagIDs []int64, searchTerm string, page, limit int) ([]model.Video, int, error) {
	// Build the WHERE clause dynamically; the tag filter requires every
	// requested tag to be attached
	where := `
		v.list_id = ?
		AND (? = '' OR v.title ILIKE '%' || ? || '%')
	`
	args := []interface{}{listID, searchTerm, searchTerm}

	if len(tagIDs) > 0 {
		where += `
		AND v.id IN (
			SELECT vt.video_id
			FROM video_tags vt
			WHERE vt.tag_id IN (?)
			GROUP BY vt.video_id
			HAVING COUNT(DISTINCT vt.tag_id) = ?
		)
		`
		args = append(args, tagIDs, len(tagIDs))
	}

	// First, get total count with a separate COUNT query
	countQuery, countArgs, err := sqlx.In(`SELECT COUNT(*) FROM videos v WHERE `+where, args...)
	if err != nil {
		return nil, 0, err
	}

	var totalCount int
	err = r.db.GetContext(ctx, &totalCount, r.db.Rebind(countQuery), countArgs...)
	if err != nil {
		r.logger.Error("Failed to count videos", zap.Error(err), zap.Int64("list_id", listID))
		return nil, 0, err
	}

	offset := (page - 1) * limit
	args = append(args, limit, offset)

	query, queryArgs, err := sqlx.In(`
		SELECT v.id, v.list_id, v.youtube_id, v.title, v.channel_title,
		       v.thumbnail_url, v.note, v.created_at
		FROM videos v
		WHERE `+where+`
		ORDER BY v.created_at DESC
		LIMIT ? OFFSET ?
	`, args...)
	if err != nil {
		return nil, 0, err
	}

	videos := []model.Video{}
	err = r.db.SelectContext(ctx, &videos, r.db.Rebind(query), queryArgs...)
	if err != nil {
		r.logger.Error("Failed to get videos", zap.Error(err), zap.Int64("list_id", listID))
		return nil, 0, err
	}

	return videos, totalCount, nil
}

// GetByID retrieves a video owned by the given user, returning nil when
// not found
func (r *VideoRepository) GetByID(ctx context.Context, id, userID int64) (*model.Video, error) {
	query := `
		SELECT v.id, v.list_id, v.youtube_id, v.title, v.channel_title,
		       v.thumbnail_url, v.note, v.created_at
		FROM videos v
		JOIN lists l ON l.id = v.list_id
		WHERE v.id = $1 AND l.user_id = $2
	`

	var video model.Video
	if err := r.db.GetContext(ctx, &video, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get video", zap.Error(err), zap.Int64("id", id))
		return nil, err
	}

	return &video, nil
}

// FindByYouTubeID looks a bookmark up within a list by YouTube video ID,
// returning nil when not found
func (r *VideoRepository) FindByYouTubeID(ctx context.Context, listID int64, youtubeID string) (*model.Video, error) {
	query := `
		SELECT id, list_id, youtube_id, title, channel_title, thumbnail_url, note, created_at
		FROM videos
		WHERE list_id = $1 AND youtube_id = $2
	`

	var video model.Video
	if err := r.db.GetContext(ctx, &video, query, listID, youtubeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to find video by youtube id", zap.Error(err))
		return nil, err
	}

	return &video, nil
}

// Create inserts a new bookmark and returns its ID
func (r *VideoRepository) Create(ctx context.Context, listID int64, create *model.VideoCreate) (int64, error) {
	query := `
		INSERT INTO videos (list_id, youtube_id, title, channel_title, thumbnail_url, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		listID,
		create.YouTubeID,
		create.Title,
		create.ChannelTitle,
		create.ThumbnailURL,
		create.Note,
	).Scan(&id)

	if err != nil {
		r.logger.Error("Failed to create video", zap.Error(err), zap.Int64("list_id", listID))
		return 0, err
	}

	return id, nil
}

// Update changes a bookmark's title and/or note
func (r *VideoRepository) Update(ctx context.Context, id int64, update *model.VideoUpdate) error {
	query := `
		UPDATE videos
		SET title = COALESCE($2, title),
		    note = COALESCE($3, note)
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, update.Title, update.Note)
	if err != nil {
		r.logger.Error("Failed to update video", zap.Error(err), zap.Int64("id", id))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.New("video not found")
	}

	return nil
}

// Delete removes a bookmark along with its tag attachments and field values
func (r *VideoRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM videos WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to delete video", zap.Error(err), zap.Int64("id", id))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.New("video not found")
	}

	return nil
}

// GetTags retrieves the tags attached to a video
func (r *VideoRepository) GetTags(ctx context.Context, videoID int64) ([]model.Tag, error) {
	query := `
		SELECT t.id, t.user_id, t.name, t.color
		FROM tags t
		JOIN video_tags vt ON vt.tag_id = t.id
		WHERE vt.video_id = $1
		ORDER BY t.name
	`

	tags := []model.Tag{}
	if err := r.db.SelectContext(ctx, &tags, query, videoID); err != nil {
		r.logger.Error("Failed to get video tags", zap.Error(err), zap.Int64("video_id", videoID))
		return nil, err
	}

	return tags, nil
}

// ReplaceTags replaces a video's tag set inside a single transaction
func (r *VideoRepository) ReplaceTags(ctx context.Context, videoID int64, tagIDs []int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM video_tags WHERE video_id = $1`, videoID); err != nil {
		r.logger.Error("Failed to clear video tags", zap.Error(err), zap.Int64("video_id", videoID))
		return err
	}

	for _, tagID := range tagIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO video_tags (video_id, tag_id) VALUES ($1, $2)`,
			videoID, tagID,
		)
		if err != nil {
			r.logger.Error("Failed to attach tag", zap.Error(err),
				zap.Int64("video_id", videoID),
				zap.Int64("tag_id", tagID))
			return err
		}
	}

	return tx.Commit()
}

// GetFieldValues retrieves a video's custom field values together with
// field names and types
func (r *VideoRepository) GetFieldValues(ctx context.Context, videoID int64) ([]model.FieldValue, error) {
	query := `
		SELECT fv.field_id, fv.video_id, f.name AS field_name, f.type AS field_type, fv.value
		FROM field_values fv
		JOIN custom_fields f ON f.id = fv.field_id
		WHERE fv.video_id = $1
		ORDER BY f.created_at
	`

	values := []model.FieldValue{}
	if err := r.db.SelectContext(ctx, &values, query, videoID); err != nil {
		r.logger.Error("Failed to get field values", zap.Error(err), zap.Int64("video_id", videoID))
		return nil, err
	}

	return values, nil
}

// SetFieldValue upserts the value a field has on a video
func (r *VideoRepository) SetFieldValue(ctx context.Context, videoID, fieldID int64, value json.RawMessage) error {
	query := `
		INSERT INTO field_values (video_id, field_id, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (video_id, field_id) DO UPDATE SET value = EXCLUDED.value
	`

	if _, err := r.db.ExecContext(ctx, query, videoID, fieldID, value); err != nil {
		r.logger.Error("Failed to set field value", zap.Error(err),
			zap.Int64("video_id", videoID),
			zap.Int64("field_id", fieldID))
		return err
	}

	return nil
}

// DeleteFieldValue clears the value a field has on a video
func (r *VideoRepository) DeleteFieldValue(ctx context.Context, videoID, fieldID int64) error {
	query := `DELETE FROM field_values WHERE video_id = $1 AND field_id = $2`

	result, err := r.db.ExecContext(ctx, query, videoID, fieldID)
	if err != nil {
		r.logger.Error("Failed to delete field value", zap.Error(err),
			zap.Int64("video_id", videoID),
			zap.Int64("field_id", fieldID))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.New("field value not found")
	}

	return nil
}
