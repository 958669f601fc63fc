package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/yourorg/smart-bookmarks/internal/model"
)

// ListRepository defines the storage operations the list service needs
type ListRepository interface {
	GetAll(ctx context.Context, userID int64) ([]model.List, error)
	GetByID(ctx context.Context, id, userID int64) (*model.List, error)
	Create(ctx context.Context, userID int64, create *model.ListCreate) (int64, error)
	Update(ctx context.Context, id, userID int64, update *model.ListUpdate) error
	Delete(ctx context.Context, id, userID int64) error
}

// ListService handles bookmark list operations
type ListService struct {
	listRepo ListRepository
	logger   *zap.Logger
}

// NewListService creates a new list service
func NewListService(listRepo ListRepository, logger *zap.Logger) *ListService {
	return &ListService{
		listRepo: listRepo,
		logger:   logger,
	}
}

// GetAllLists retrieves all lists owned by the user
func (s *ListService) GetAllLists(ctx context.Context, userID int64) ([]model.List, error) {
	return s.listRepo.GetAll(ctx, userID)
}

// GetListByID retrieves a single list
func (s *ListService) GetListByID(ctx context.Context, id, userID int64) (*model.List, error) {
	list, err := s.listRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if list == nil {
		return nil, errors.New("list not found")
	}

	return list, nil
}

// CreateList creates a new list
func (s *ListService) CreateList(ctx context.Context, userID int64, create *model.ListCreate) (*model.List, error) {
	create.Name = strings.TrimSpace(create.Name)
	if create.Name == "" {
		return nil, errors.New("list name cannot be empty")
	}

	id, err := s.listRepo.Create(ctx, userID, create)
	if err != nil {
		return nil, err
	}

	return s.GetListByID(ctx, id, userID)
}

// UpdateList updates a list's name and/or description
func (s *ListService) UpdateList(ctx context.Context, id, userID int64, update *model.ListUpdate) (*model.List, error) {
	if update.Name != nil {
		trimmed := strings.TrimSpace(*update.Name)
		if trimmed == "" {
			return nil, errors.New("list name cannot be empty")
		}
		update.Name = &trimmed
	}

	if err := s.listRepo.Update(ctx, id, userID, update); err != nil {
		return nil, err
	}

	return s.GetListByID(ctx, id, userID)
}

// DeleteList deletes a list and everything in it
func (s *ListService) DeleteList(ctx context.Context, id, userID int64) error {
	if id <= 0 {
		return errors.New("invalid list ID")
	}

	return s.listRepo.Delete(ctx, id, userID)
}
