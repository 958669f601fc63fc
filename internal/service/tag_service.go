package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/yourorg/smart-bookmarks/internal/model"
	"github.com/yourorg/smart-bookmarks/internal/validator"
)

const defaultTagColor = "#808080"

// TagRepository defines the storage operations the tag service needs
type TagRepository interface {
	GetAll(ctx context.Context, userID int64, searchTerm string, page, limit int) ([]model.TagWithCount, int, error)
	GetByID(ctx context.Context, id, userID int64) (*model.TagWithCount, error)
	FindByName(ctx context.Context, userID int64, name string) (*model.Tag, error)
	Create(ctx context.Context, userID int64, name, color string) (int64, error)
	Update(ctx context.Context, id, userID int64, name, color string) error
	Delete(ctx context.Context, id, userID int64) error
}

// TagService handles tag operations
type TagService struct {
	tagRepo TagRepository
	logger  *zap.Logger
}

// NewTagService creates a new tag service
func NewTagService(tagRepo TagRepository, logger *zap.Logger) *TagService {
	return &TagService{
		tagRepo: tagRepo,
		logger:  logger,
	}
}

// GetAllTags retrieves the user's tags with optional name filtering
func (s *TagService) GetAllTags(ctx context.Context, userID int64, searchTerm string, page, limit int) ([]model.TagWithCount, int, error) {
	// Validate pagination
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 100 // Default larger for tags since there shouldn't be too many
	}

	return s.tagRepo.GetAll(ctx, userID, searchTerm, page, limit)
}

// GetTagByID retrieves a specific tag by ID
func (s *TagService) GetTagByID(ctx context.Context, id, userID int64) (*model.TagWithCount, error) {
	tag, err := s.tagRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if tag == nil {
		return nil, errors.New("tag not found")
	}

	return tag, nil
}

// CreateTag creates a new tag
func (s *TagService) CreateTag(ctx context.Context, userID int64, name, color string) (*model.TagWithCount, error) {
	name, color, err := s.normalizeTag(name, color)
	if err != nil {
		return nil, err
	}

	// Tag names are unique per user, case-insensitive
	existing, err := s.tagRepo.FindByName(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("tag name already exists")
	}

	id, err := s.tagRepo.Create(ctx, userID, name, color)
	if err != nil {
		return nil, err
	}

	return &model.TagWithCount{
		ID:         id,
		Name:       name,
		Color:      color,
		VideoCount: 0,
	}, nil
}

// UpdateTag updates an existing tag
func (s *TagService) UpdateTag(ctx context.Context, id, userID int64, name, color string) (*model.TagWithCount, error) {
	if id <= 0 {
		return nil, errors.New("invalid tag ID")
	}

	name, color, err := s.normalizeTag(name, color)
	if err != nil {
		return nil, err
	}

	// Check if tag exists before updating
	existingTag, err := s.tagRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if existingTag == nil {
		return nil, errors.New("tag not found")
	}

	// The new name must not collide with another tag
	conflict, err := s.tagRepo.FindByName(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	if conflict != nil && conflict.ID != id {
		return nil, errors.New("tag name already exists")
	}

	if err := s.tagRepo.Update(ctx, id, userID, name, color); err != nil {
		return nil, err
	}

	return &model.TagWithCount{
		ID:         id,
		Name:       name,
		Color:      color,
		VideoCount: existingTag.VideoCount,
	}, nil
}

// DeleteTag deletes an existing tag
func (s *TagService) DeleteTag(ctx context.Context, id, userID int64) error {
	if id <= 0 {
		return errors.New("invalid tag ID")
	}

	return s.tagRepo.Delete(ctx, id, userID)
}

// normalizeTag trims and validates a tag's name and color, filling in
// the default color when omitted
func (s *TagService) normalizeTag(name, color string) (string, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", errors.New("tag name cannot be empty")
	}

	if utf8.RuneCountInString(name) > 50 {
		return "", "", errors.New("tag name cannot exceed 50 characters")
	}

	if color == "" {
		color = defaultTagColor
	}
	if err := validator.ValidateTagColor(color); err != nil {
		return "", "", err
	}

	return name, color, nil
}
