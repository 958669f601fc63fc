package service

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/yourorg/smart-bookmarks/internal/client"
	"github.com/yourorg/smart-bookmarks/internal/model"
	"github.com/yourorg/smart-bookmarks/internal/validator"
)

// VideoRepository defines the storage operations the video service needs
type VideoRepository interface {
	GetByList(ctx context.Context, listID int64, tagIDs []int64, searchTerm string, page, limit int) ([]model.Video, int, error)
	GetByID(ctx context.Context, id, userID int64) (*model.Video, error)
	FindByYouTubeID(ctx context.Context, listID int64, youtubeID string) (*model.Video, error)
	Create(ctx context.Context, listID int64, create *model.VideoCreate) (int64, error)
	Update(ctx context.Context, id int64, update *model.VideoUpdate) error
	Delete(ctx context.Context, id int64) error
	GetTags(ctx context.Context, videoID int64) ([]model.Tag, error)
	ReplaceTags(ctx context.Context, videoID int64, tagIDs []int64) error
	GetFieldValues(ctx context.Context, videoID int64) ([]model.FieldValue, error)
	SetFieldValue(ctx context.Context, videoID, fieldID int64, value json.RawMessage) error
	DeleteFieldValue(ctx context.Context, videoID, fieldID int64) error
}

// MetadataClient resolves YouTube video metadata
type MetadataClient interface {
	GetVideoMetadata(ctx context.Context, youtubeID string) (*client.VideoMetadata, error)
}

// VideoService handles video bookmark operations
type VideoService struct {
	videoRepo VideoRepository
	listRepo  ListRepository
	tagRepo   TagRepository
	fieldRepo FieldRepository
	metadata  MetadataClient
	emitter   *eventEmitter
	logger    *zap.Logger
}

// NewVideoService creates a new video service
func NewVideoService(
	videoRepo VideoRepository,
	listRepo ListRepository,
	tagRepo TagRepository,
	fieldRepo FieldRepository,
	metadata MetadataClient,
	publisher EventPublisher,
	eventTopic string,
	logger *zap.Logger,
) *VideoService {
	return &VideoService{
		videoRepo: videoRepo,
		listRepo:  listRepo,
		tagRepo:   tagRepo,
		fieldRepo: fieldRepo,
		metadata:  metadata,
		emitter:   newEventEmitter(publisher, eventTopic, logger),
		logger:    logger,
	}
}

// GetListVideos retrieves a page of a list's videos. A non-empty tagIDs
// restricts results to videos carrying all of those tags.
func (s *VideoService) GetListVideos(ctx context.Context, listID, userID int64, tagIDs []int64, searchTerm string, page, limit int) ([]model.Video, int, error) {
	if err := s.checkListOwnership(ctx, listID, userID); err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	return s.videoRepo.GetByList(ctx, listID, tagIDs, searchTerm, page, limit)
}

// GetVideoByID retrieves a video together with its tags and field values
func (s *VideoService) GetVideoByID(ctx context.Context, id, userID int64) (*model.VideoDetail, error) {
	video, err := s.videoRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, errors.New("video not found")
	}

	tags, err := s.videoRepo.GetTags(ctx, id)
	if err != nil {
		return nil, err
	}

	values, err := s.videoRepo.GetFieldValues(ctx, id)
	if err != nil {
		return nil, err
	}

	return &model.VideoDetail{
		Video:       *video,
		Tags:        tags,
		FieldValues: values,
	}, nil
}

// CreateVideo bookmarks a video in a list, resolving missing metadata
// from YouTube
func (s *VideoService) CreateVideo(ctx context.Context, listID, userID int64, create *model.VideoCreate) (*model.Video, error) {
	if err := s.checkListOwnership(ctx, listID, userID); err != nil {
		return nil, err
	}

	// A video can only be bookmarked once per list
	existing, err := s.videoRepo.FindByYouTubeID(ctx, listID, create.YouTubeID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("video already exists in this list")
	}

	if create.Title == "" {
		metadata, err := s.metadata.GetVideoMetadata(ctx, create.YouTubeID)
		if err != nil {
			s.logger.Warn("Failed to resolve video metadata",
				zap.Error(err),
				zap.String("youtube_id", create.YouTubeID))
			// The bookmark is still usable without metadata; fall back
			// to the raw video ID as title
			create.Title = create.YouTubeID
		} else {
			create.Title = metadata.Title
			if create.ChannelTitle == "" {
				create.ChannelTitle = metadata.ChannelTitle
			}
			if create.ThumbnailURL == "" {
				create.ThumbnailURL = metadata.ThumbnailURL
			}
		}
	}

	id, err := s.videoRepo.Create(ctx, listID, create)
	if err != nil {
		return nil, err
	}

	video, err := s.videoRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	s.emitter.emit(ctx, EventVideoBookmarked, userID, map[string]interface{}{
		"video_id":   id,
		"list_id":    listID,
		"youtube_id": create.YouTubeID,
	})

	return video, nil
}

// UpdateVideo updates a bookmark's title and/or note
func (s *VideoService) UpdateVideo(ctx context.Context, id, userID int64, update *model.VideoUpdate) (*model.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, errors.New("video not found")
	}

	if err := s.videoRepo.Update(ctx, id, update); err != nil {
		return nil, err
	}

	return s.videoRepo.GetByID(ctx, id, userID)
}

// DeleteVideo removes a bookmark
func (s *VideoService) DeleteVideo(ctx context.Context, id, userID int64) error {
	video, err := s.videoRepo.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}
	if video == nil {
		return errors.New("video not found")
	}

	if err := s.videoRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.emitter.emit(ctx, EventVideoDeleted, userID, map[string]interface{}{
		"video_id": id,
		"list_id":  video.ListID,
	})

	return nil
}

// ReplaceTags replaces a video's tag set. Every tag must belong to the user.
func (s *VideoService) ReplaceTags(ctx context.Context, videoID, userID int64, tagIDs []int64) ([]model.Tag, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID, userID)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, errors.New("video not found")
	}

	seen := make(map[int64]bool, len(tagIDs))
	for _, tagID := range tagIDs {
		if seen[tagID] {
			return nil, errors.New("duplicate tag in request")
		}
		seen[tagID] = true

		tag, err := s.tagRepo.GetByID(ctx, tagID, userID)
		if err != nil {
			return nil, err
		}
		if tag == nil {
			return nil, errors.New("tag not found")
		}
	}

	if err := s.videoRepo.ReplaceTags(ctx, videoID, tagIDs); err != nil {
		return nil, err
	}

	s.emitter.emit(ctx, EventTagsReplaced, userID, map[string]interface{}{
		"video_id": videoID,
		"tag_ids":  tagIDs,
	})

	return s.videoRepo.GetTags(ctx, videoID)
}

// SetFieldValue writes a custom field value on a video after validating
// it against the field's type and config
func (s *VideoService) SetFieldValue(ctx context.Context, videoID, fieldID, userID int64, value json.RawMessage) error {
	video, err := s.videoRepo.GetByID(ctx, videoID, userID)
	if err != nil {
		return err
	}
	if video == nil {
		return errors.New("video not found")
	}

	field, err := s.fieldRepo.GetByID(ctx, fieldID, userID)
	if err != nil {
		return err
	}
	if field == nil {
		return errors.New("custom field not found")
	}

	// Fields only apply to videos of their own list
	if field.ListID != video.ListID {
		return errors.New("custom field not found")
	}

	if err := validator.ValidateFieldValue(field, value); err != nil {
		return err
	}

	return s.videoRepo.SetFieldValue(ctx, videoID, fieldID, value)
}

// DeleteFieldValue clears a custom field value on a video
func (s *VideoService) DeleteFieldValue(ctx context.Context, videoID, fieldID, userID int64) error {
	video, err := s.videoRepo.GetByID(ctx, videoID, userID)
	if err != nil {
		return err
	}
	if video == nil {
		return errors.New("video not found")
	}

	return s.videoRepo.DeleteFieldValue(ctx, videoID, fieldID)
}

func (s *VideoService) checkListOwnership(ctx context.Context, listID, userID int64) error {
	list, err := s.listRepo.GetByID(ctx, listID, userID)
	if err != nil {
		return err
	}
	if list == nil {
		return errors.New("list not found")
	}
	return nil
}
