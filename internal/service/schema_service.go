package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/yourorg/smart-bookmarks/internal/model"
)

// SchemaRepository defines the storage operations the schema service needs
type SchemaRepository interface {
	GetByList(ctx context.Context, listID int64) ([]model.FieldSchema, error)
	GetByID(ctx context.Context, id, userID int64) (*model.FieldSchema, error)
	FindByName(ctx context.Context, listID int64, name string, excludeID int64) (*model.FieldSchema, error)
	Create(ctx context.Context, listID int64, name string, fieldIDs []int64) (int64, error)
	Rename(ctx context.Context, id int64, name string) error
	ReplaceFields(ctx context.Context, id int64, fieldIDs []int64) error
	Delete(ctx context.Context, id int64) error
}

// SchemaService handles field schema operations
type SchemaService struct {
	schemaRepo SchemaRepository
	fieldRepo  FieldRepository
	listRepo   ListRepository
	logger     *zap.Logger
}

// NewSchemaService creates a new field schema service
func NewSchemaService(
	schemaRepo SchemaRepository,
	fieldRepo FieldRepository,
	listRepo ListRepository,
	logger *zap.Logger,
) *SchemaService {
	return &SchemaService{
		schemaRepo: schemaRepo,
		fieldRepo:  fieldRepo,
		listRepo:   listRepo,
		logger:     logger,
	}
}

// GetListSchemas retrieves all field schemas of a list
func (s *SchemaService) GetListSchemas(ctx context.Context, listID, userID int64) ([]model.FieldSchema, error) {
	if err := s.checkListOwnership(ctx, listID, userID); err != nil {
		return nil, err
	}

	return s.schemaRepo.GetByList(ctx, listID)
}

// CreateSchema creates a named, ordered grouping of a list's fields
func (s *SchemaService) CreateSchema(ctx context.Context, listID, userID int64, create *model.FieldSchemaCreate) (*model.FieldSchema, error) {
	if err := s.checkListOwnership(ctx, listID, userID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(create.Name)
	if name == "" {
		return nil, errors.New("schema name cannot be empty")
	}
	if utf8.RuneCountInString(name) > 100 {
		return nil, errors.New("schema name cannot exceed 100 characters")
	}

	// Schema names are unique per list, case-insensitive
	existing, err := s.schemaRepo.FindByName(ctx, listID, name, 0)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("schema name already exists")
	}

	if err := s.validateFieldOrder(ctx, listID, create.FieldIDs); err != nil {
		return nil, err
	}

	id, err := s.schemaRepo.Create(ctx, listID, name, create.FieldIDs)
	if err != nil {
		return nil, err
	}

	return s.schemaRepo.GetByID(ctx, id, userID)
}

// UpdateSchema renames a schema and/or replaces its field order
func (s *SchemaService) UpdateSchema(ctx context.Context, id, userID int64, update *model.FieldSchemaUpdate) (*model.FieldSchema, error) {
	schema, err := s.schemaRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if schema == nil {
		return nil, errors.New("schema not found")
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, errors.New("schema name cannot be empty")
		}
		if utf8.RuneCountInString(name) > 100 {
			return nil, errors.New("schema name cannot exceed 100 characters")
		}

		conflict, err := s.schemaRepo.FindByName(ctx, schema.ListID, name, id)
		if err != nil {
			return nil, err
		}
		if conflict != nil {
			return nil, errors.New("schema name already exists")
		}

		if err := s.schemaRepo.Rename(ctx, id, name); err != nil {
			return nil, err
		}
	}

	if update.FieldIDs != nil {
		if err := s.validateFieldOrder(ctx, schema.ListID, update.FieldIDs); err != nil {
			return nil, err
		}

		if err := s.schemaRepo.ReplaceFields(ctx, id, update.FieldIDs); err != nil {
			return nil, err
		}
	}

	return s.schemaRepo.GetByID(ctx, id, userID)
}

// DeleteSchema deletes a schema. The fields themselves are untouched.
func (s *SchemaService) DeleteSchema(ctx context.Context, id, userID int64) error {
	schema, err := s.schemaRepo.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}
	if schema == nil {
		return errors.New("schema not found")
	}

	return s.schemaRepo.Delete(ctx, id)
}

// validateFieldOrder rejects duplicate IDs and fields that do not belong
// to the schema's list
func (s *SchemaService) validateFieldOrder(ctx context.Context, listID int64, fieldIDs []int64) error {
	if len(fieldIDs) == 0 {
		return nil
	}

	listFields, err := s.fieldRepo.GetByList(ctx, listID)
	if err != nil {
		return err
	}

	known := make(map[int64]bool, len(listFields))
	for _, field := range listFields {
		known[field.ID] = true
	}

	seen := make(map[int64]bool, len(fieldIDs))
	for _, fieldID := range fieldIDs {
		if !known[fieldID] {
			return fmt.Errorf("field %d does not belong to this list", fieldID)
		}
		if seen[fieldID] {
			return fmt.Errorf("duplicate field in order: %d", fieldID)
		}
		seen[fieldID] = true
	}

	return nil
}

func (s *SchemaService) checkListOwnership(ctx context.Context, listID, userID int64) error {
	list, err := s.listRepo.GetByID(ctx, listID, userID)
	if err != nil {
		return err
	}
	if list == nil {
		return errors.New("list not found")
	}
	return nil
}
