package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/yourorg/smart-bookmarks/internal/model"
	"github.com/yourorg/smart-bookmarks/internal/validator"
)

// FieldRepository defines the storage operations the field service needs
type FieldRepository interface {
	GetByList(ctx context.Context, listID int64) ([]model.CustomField, error)
	GetByID(ctx context.Context, id, userID int64) (*model.CustomField, error)
	FindByName(ctx context.Context, listID int64, name string, excludeID int64) (*model.CustomField, error)
	Create(ctx context.Context, listID int64, name, fieldType string, config json.RawMessage) (int64, error)
	Update(ctx context.Context, id int64, name *string, config json.RawMessage) error
	Delete(ctx context.Context, id int64) error
}

// FieldService handles custom field operations
type FieldService struct {
	fieldRepo FieldRepository
	listRepo  ListRepository
	emitter   *eventEmitter
	logger    *zap.Logger
}

// NewFieldService creates a new custom field service
func NewFieldService(
	fieldRepo FieldRepository,
	listRepo ListRepository,
	publisher EventPublisher,
	eventTopic string,
	logger *zap.Logger,
) *FieldService {
	return &FieldService{
		fieldRepo: fieldRepo,
		listRepo:  listRepo,
		emitter:   newEventEmitter(publisher, eventTopic, logger),
		logger:    logger,
	}
}

// GetListFields retrieves all custom fields of a list
func (s *FieldService) GetListFields(ctx context.Context, listID, userID int64) ([]model.CustomField, error) {
	if err := s.checkListOwnership(ctx, listID, userID); err != nil {
		return nil, err
	}

	return s.fieldRepo.GetByList(ctx, listID)
}

// CreateField creates a new custom field on a list
func (s *FieldService) CreateField(ctx context.Context, listID, userID int64, create *model.CustomFieldCreate) (*model.CustomField, error) {
	if err := s.checkListOwnership(ctx, listID, userID); err != nil {
		return nil, err
	}

	name, err := normalizeFieldName(create.Name)
	if err != nil {
		return nil, err
	}

	if err := validator.ValidateFieldConfig(create.Type, create.Config); err != nil {
		return nil, err
	}

	// Field names are unique per list, case-insensitive
	existing, err := s.fieldRepo.FindByName(ctx, listID, name, 0)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("field name already exists")
	}

	id, err := s.fieldRepo.Create(ctx, listID, name, create.Type, create.Config)
	if err != nil {
		return nil, err
	}

	field, err := s.fieldRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	s.emitter.emit(ctx, EventFieldCreated, userID, map[string]interface{}{
		"field_id": id,
		"list_id":  listID,
		"name":     name,
		"type":     create.Type,
	})

	return field, nil
}

// UpdateField updates a field's name and/or config. The type cannot change.
func (s *FieldService) UpdateField(ctx context.Context, id, userID int64, update *model.CustomFieldUpdate) (*model.CustomField, error) {
	field, err := s.fieldRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if field == nil {
		return nil, errors.New("custom field not found")
	}

	var name *string
	if update.Name != nil {
		normalized, err := normalizeFieldName(*update.Name)
		if err != nil {
			return nil, err
		}

		conflict, err := s.fieldRepo.FindByName(ctx, field.ListID, normalized, id)
		if err != nil {
			return nil, err
		}
		if conflict != nil {
			return nil, errors.New("field name already exists")
		}

		name = &normalized
	}

	if update.Config != nil {
		if err := validator.ValidateFieldConfig(field.Type, update.Config); err != nil {
			return nil, err
		}
	}

	if err := s.fieldRepo.Update(ctx, id, name, update.Config); err != nil {
		return nil, err
	}

	return s.fieldRepo.GetByID(ctx, id, userID)
}

// DeleteField deletes a field, its values and its schema memberships
func (s *FieldService) DeleteField(ctx context.Context, id, userID int64) error {
	field, err := s.fieldRepo.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}
	if field == nil {
		return errors.New("custom field not found")
	}

	if err := s.fieldRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.emitter.emit(ctx, EventFieldDeleted, userID, map[string]interface{}{
		"field_id": id,
		"list_id":  field.ListID,
	})

	return nil
}

// CheckDuplicate reports whether a field name is already taken within a
// list, case-insensitive. ExcludeID allows rename flows to ignore the
// field being renamed.
func (s *FieldService) CheckDuplicate(ctx context.Context, listID, userID int64, check *model.DuplicateCheckRequest) (*model.DuplicateCheckResult, error) {
	if err := s.checkListOwnership(ctx, listID, userID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(check.Name)
	if name == "" {
		return nil, errors.New("field name cannot be empty")
	}

	field, err := s.fieldRepo.FindByName(ctx, listID, name, check.ExcludeID)
	if err != nil {
		return nil, err
	}

	return &model.DuplicateCheckResult{
		Exists: field != nil,
		Field:  field,
	}, nil
}

func (s *FieldService) checkListOwnership(ctx context.Context, listID, userID int64) error {
	list, err := s.listRepo.GetByID(ctx, listID, userID)
	if err != nil {
		return err
	}
	if list == nil {
		return errors.New("list not found")
	}
	return nil
}

func normalizeFieldName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("field name cannot be empty")
	}

	if utf8.RuneCountInString(name) > 100 {
		return "", errors.New("field name cannot exceed 100 characters")
	}

	return name, nil
}
