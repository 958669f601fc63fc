package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourorg/smart-bookmarks/internal/model"
)

func newFieldServiceForTest() (*FieldService, *fakeFieldRepo, *fakeListRepo, *capturePublisher) {
	lists := newFakeListRepo()
	fields := newFakeFieldRepo(lists)
	publisher := &capturePublisher{}
	svc := NewFieldService(fields, lists, publisher, "field-events", zap.NewNop())
	return svc, fields, lists, publisher
}

func TestFieldServiceCreate(t *testing.T) {
	svc, _, lists, publisher := newFieldServiceForTest()
	listID := lists.addList(1, "Watchlist")

	field, err := svc.CreateField(context.Background(), listID, 1, &model.CustomFieldCreate{
		Name:   "  Quality  ",
		Type:   model.FieldTypeSelect,
		Config: json.RawMessage(`{"options": ["good", "bad"]}`),
	})
	require.NoError(t, err)
	assert.Equal(t, "Quality", field.Name)
	assert.Equal(t, model.FieldTypeSelect, field.Type)

	require.Len(t, publisher.topics, 1)
	assert.Equal(t, "field-events", publisher.topics[0])
}

func TestFieldServiceCreateRejectsBadConfig(t *testing.T) {
	svc, _, lists, _ := newFieldServiceForTest()
	listID := lists.addList(1, "Watchlist")

	_, err := svc.CreateField(context.Background(), listID, 1, &model.CustomFieldCreate{
		Name: "Rating",
		Type: model.FieldTypeRating,
		// min must be below max
		Config: json.RawMessage(`{"min": 5, "max": 5}`),
	})
	require.Error(t, err)
	assert.Equal(t, "rating min must be less than max", err.Error())
}

func TestFieldServiceNameLengthCountsRunes(t *testing.T) {
	svc, _, lists, _ := newFieldServiceForTest()
	listID := lists.addList(1, "Watchlist")

	// 100 two-byte runes are within the limit despite exceeding 100 bytes
	field, err := svc.CreateField(context.Background(), listID, 1, &model.CustomFieldCreate{
		Name: strings.Repeat("ü", 100),
		Type: model.FieldTypeBoolean,
	})
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("ü", 100), field.Name)

	_, err = svc.CreateField(context.Background(), listID, 1, &model.CustomFieldCreate{
		Name: strings.Repeat("ü", 101),
		Type: model.FieldTypeBoolean,
	})
	require.Error(t, err)
	assert.Equal(t, "field name cannot exceed 100 characters", err.Error())
}

func TestFieldServiceCreateDuplicateName(t *testing.T) {
	svc, _, lists, _ := newFieldServiceForTest()
	listID := lists.addList(1, "Watchlist")

	_, err := svc.CreateField(context.Background(), listID, 1, &model.CustomFieldCreate{
		Name: "Watched",
		Type: model.FieldTypeBoolean,
	})
	require.NoError(t, err)

	_, err = svc.CreateField(context.Background(), listID, 1, &model.CustomFieldCreate{
		Name: "watched",
		Type: model.FieldTypeBoolean,
	})
	require.Error(t, err)
	assert.Equal(t, "field name already exists", err.Error())
}

func TestFieldServiceCreateOnForeignList(t *testing.T) {
	svc, _, lists, _ := newFieldServiceForTest()
	listID := lists.addList(1, "Watchlist")

	_, err := svc.CreateField(context.Background(), listID, 2, &model.CustomFieldCreate{
		Name: "Watched",
		Type: model.FieldTypeBoolean,
	})
	require.Error(t, err)
	assert.Equal(t, "list not found", err.Error())
}

func TestFieldServiceUpdateKeepsTypeConfigRules(t *testing.T) {
	svc, _, lists, _ := newFieldServiceForTest()
	listID := lists.addList(1, "Watchlist")

	field, err := svc.CreateField(context.Background(), listID, 1, &model.CustomFieldCreate{
		Name:   "Score",
		Type:   model.FieldTypeRating,
		Config: json.RawMessage(`{"min": 1, "max": 5}`),
	})
	require.NoError(t, err)

	// Config updates are validated against the field's existing type
	_, err = svc.UpdateField(context.Background(), field.ID, 1, &model.CustomFieldUpdate{
		Config: json.RawMessage(`{"options": ["good"]}`),
	})
	require.Error(t, err)

	updated, err := svc.UpdateField(context.Background(), field.ID, 1, &model.CustomFieldUpdate{
		Config: json.RawMessage(`{"min": 1, "max": 10}`),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"min": 1, "max": 10}`, string(updated.Config))
}

func TestFieldServiceUpdateRenameConflict(t *testing.T) {
	svc, _, lists, _ := newFieldServiceForTest()
	listID := lists.addList(1, "Watchlist")

	_, err := svc.CreateField(context.Background(), listID, 1, &model.CustomFieldCreate{
		Name: "Watched",
		Type: model.FieldTypeBoolean,
	})
	require.NoError(t, err)
	second, err := svc.CreateField(context.Background(), listID, 1, &model.CustomFieldCreate{
		Name: "Favorite",
		Type: model.FieldTypeBoolean,
	})
	require.NoError(t, err)

	name := "WATCHED"
	_, err = svc.UpdateField(context.Background(), second.ID, 1, &model.CustomFieldUpdate{Name: &name})
	require.Error(t, err)
	assert.Equal(t, "field name already exists", err.Error())

	// Renaming a field to its own name with different casing is fine
	own := "FAVORITE"
	updated, err := svc.UpdateField(context.Background(), second.ID, 1, &model.CustomFieldUpdate{Name: &own})
	require.NoError(t, err)
	assert.Equal(t, "FAVORITE", updated.Name)
}

func TestFieldServiceDelete(t *testing.T) {
	svc, fields, lists, publisher := newFieldServiceForTest()
	listID := lists.addList(1, "Watchlist")

	field, err := svc.CreateField(context.Background(), listID, 1, &model.CustomFieldCreate{
		Name: "Watched",
		Type: model.FieldTypeBoolean,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteField(context.Background(), field.ID, 1))
	assert.Empty(t, fields.fields)
	assert.Len(t, publisher.topics, 2) // created + deleted

	err = svc.DeleteField(context.Background(), field.ID, 1)
	require.Error(t, err)
	assert.Equal(t, "custom field not found", err.Error())
}

func TestFieldServiceCheckDuplicate(t *testing.T) {
	svc, _, lists, _ := newFieldServiceForTest()
	listID := lists.addList(1, "Watchlist")
	otherList := lists.addList(1, "Archive")

	field, err := svc.CreateField(context.Background(), listID, 1, &model.CustomFieldCreate{
		Name: "Quality",
		Type: model.FieldTypeText,
	})
	require.NoError(t, err)

	tests := []struct {
		name       string
		listID     int64
		check      model.DuplicateCheckRequest
		wantExists bool
	}{
		{"exact match", listID, model.DuplicateCheckRequest{Name: "Quality"}, true},
		{"case-insensitive match", listID, model.DuplicateCheckRequest{Name: "qUaLiTy"}, true},
		{"surrounding whitespace ignored", listID, model.DuplicateCheckRequest{Name: "  quality "}, true},
		{"no match", listID, model.DuplicateCheckRequest{Name: "Notes"}, false},
		{"other list unaffected", otherList, model.DuplicateCheckRequest{Name: "Quality"}, false},
		{"excluded field ignored", listID, model.DuplicateCheckRequest{Name: "Quality", ExcludeID: field.ID}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.CheckDuplicate(context.Background(), tt.listID, 1, &tt.check)
			require.NoError(t, err)
			assert.Equal(t, tt.wantExists, result.Exists)
			if tt.wantExists {
				require.NotNil(t, result.Field)
				assert.Equal(t, field.ID, result.Field.ID)
			} else {
				assert.Nil(t, result.Field)
			}
		})
	}
}

func TestFieldServiceCheckDuplicateRejectsEmptyName(t *testing.T) {
	svc, _, lists, _ := newFieldServiceForTest()
	listID := lists.addList(1, "Watchlist")

	_, err := svc.CheckDuplicate(context.Background(), listID, 1, &model.DuplicateCheckRequest{Name: "   "})
	require.Error(t, err)
	assert.Equal(t, "field name cannot be empty", err.Error())
}
