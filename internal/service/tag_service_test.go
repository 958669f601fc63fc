package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourorg/smart-bookmarks/internal/model"
)

type fakeTagRepo struct {
	nextID int64
	tags   map[int64]*model.TagWithCount
	owner  map[int64]int64
}

func newFakeTagRepo() *fakeTagRepo {
	return &fakeTagRepo{
		nextID: 1,
		tags:   make(map[int64]*model.TagWithCount),
		owner:  make(map[int64]int64),
	}
}

func (f *fakeTagRepo) GetAll(_ context.Context, userID int64, searchTerm string, page, limit int) ([]model.TagWithCount, int, error) {
	result := []model.TagWithCount{}
	for id, tag := range f.tags {
		if f.owner[id] != userID {
			continue
		}
		if searchTerm != "" && !strings.Contains(strings.ToLower(tag.Name), strings.ToLower(searchTerm)) {
			continue
		}
		result = append(result, *tag)
	}
	return result, len(result), nil
}

func (f *fakeTagRepo) GetByID(_ context.Context, id, userID int64) (*model.TagWithCount, error) {
	tag, ok := f.tags[id]
	if !ok || f.owner[id] != userID {
		return nil, nil
	}
	return tag, nil
}

func (f *fakeTagRepo) FindByName(_ context.Context, userID int64, name string) (*model.Tag, error) {
	for id, tag := range f.tags {
		if f.owner[id] == userID && strings.EqualFold(tag.Name, name) {
			return &model.Tag{ID: id, UserID: userID, Name: tag.Name, Color: tag.Color}, nil
		}
	}
	return nil, nil
}

func (f *fakeTagRepo) Create(_ context.Context, userID int64, name, color string) (int64, error) {
	id := f.nextID
	f.nextID++
	f.tags[id] = &model.TagWithCount{ID: id, Name: name, Color: color}
	f.owner[id] = userID
	return id, nil
}

func (f *fakeTagRepo) Update(_ context.Context, id, userID int64, name, color string) error {
	tag, ok := f.tags[id]
	if !ok || f.owner[id] != userID {
		return assert.AnError
	}
	tag.Name = name
	tag.Color = color
	return nil
}

func (f *fakeTagRepo) Delete(_ context.Context, id, userID int64) error {
	tag, ok := f.tags[id]
	if !ok || f.owner[id] != userID {
		return assert.AnError
	}
	if tag.VideoCount > 0 {
		return errors.New("tag is in use")
	}
	delete(f.tags, id)
	return nil
}

func TestTagServiceCreate(t *testing.T) {
	repo := newFakeTagRepo()
	svc := NewTagService(repo, zap.NewNop())

	tag, err := svc.CreateTag(context.Background(), 1, "  Music  ", "")
	require.NoError(t, err)
	assert.Equal(t, "Music", tag.Name)
	assert.Equal(t, defaultTagColor, tag.Color)
	assert.Equal(t, 0, tag.VideoCount)
}

func TestTagServiceCreateRejectsEmptyName(t *testing.T) {
	svc := NewTagService(newFakeTagRepo(), zap.NewNop())

	_, err := svc.CreateTag(context.Background(), 1, "   ", "#112233")
	require.Error(t, err)
	assert.Equal(t, "tag name cannot be empty", err.Error())
}

func TestTagServiceCreateRejectsLongName(t *testing.T) {
	svc := NewTagService(newFakeTagRepo(), zap.NewNop())

	_, err := svc.CreateTag(context.Background(), 1, strings.Repeat("x", 51), "")
	require.Error(t, err)
	assert.Equal(t, "tag name cannot exceed 50 characters", err.Error())

	// The limit counts characters, not bytes
	_, err = svc.CreateTag(context.Background(), 1, strings.Repeat("ü", 50), "")
	assert.NoError(t, err)
}

func TestTagServiceCreateRejectsBadColor(t *testing.T) {
	svc := NewTagService(newFakeTagRepo(), zap.NewNop())

	_, err := svc.CreateTag(context.Background(), 1, "Music", "red")
	require.Error(t, err)
}

func TestTagServiceCreateDuplicateIsCaseInsensitive(t *testing.T) {
	repo := newFakeTagRepo()
	svc := NewTagService(repo, zap.NewNop())

	_, err := svc.CreateTag(context.Background(), 1, "Music", "")
	require.NoError(t, err)

	_, err = svc.CreateTag(context.Background(), 1, "music", "")
	require.Error(t, err)
	assert.Equal(t, "tag name already exists", err.Error())

	// A different user can reuse the name
	_, err = svc.CreateTag(context.Background(), 2, "music", "")
	assert.NoError(t, err)
}

func TestTagServiceUpdate(t *testing.T) {
	repo := newFakeTagRepo()
	svc := NewTagService(repo, zap.NewNop())

	created, err := svc.CreateTag(context.Background(), 1, "Music", "#112233")
	require.NoError(t, err)

	updated, err := svc.UpdateTag(context.Background(), created.ID, 1, "Jazz", "#445566")
	require.NoError(t, err)
	assert.Equal(t, "Jazz", updated.Name)
	assert.Equal(t, "#445566", updated.Color)
}

func TestTagServiceUpdateAllowsSameNameRename(t *testing.T) {
	repo := newFakeTagRepo()
	svc := NewTagService(repo, zap.NewNop())

	created, err := svc.CreateTag(context.Background(), 1, "music", "")
	require.NoError(t, err)

	// Changing only casing must not trip the duplicate check
	updated, err := svc.UpdateTag(context.Background(), created.ID, 1, "Music", "")
	require.NoError(t, err)
	assert.Equal(t, "Music", updated.Name)
}

func TestTagServiceUpdateRejectsConflict(t *testing.T) {
	repo := newFakeTagRepo()
	svc := NewTagService(repo, zap.NewNop())

	_, err := svc.CreateTag(context.Background(), 1, "Music", "")
	require.NoError(t, err)
	second, err := svc.CreateTag(context.Background(), 1, "Jazz", "")
	require.NoError(t, err)

	_, err = svc.UpdateTag(context.Background(), second.ID, 1, "MUSIC", "")
	require.Error(t, err)
	assert.Equal(t, "tag name already exists", err.Error())
}

func TestTagServiceUpdateUnknownTag(t *testing.T) {
	svc := NewTagService(newFakeTagRepo(), zap.NewNop())

	_, err := svc.UpdateTag(context.Background(), 42, 1, "Music", "")
	require.Error(t, err)
	assert.Equal(t, "tag not found", err.Error())
}

func TestTagServiceOwnershipHidesForeignTags(t *testing.T) {
	repo := newFakeTagRepo()
	svc := NewTagService(repo, zap.NewNop())

	created, err := svc.CreateTag(context.Background(), 1, "Music", "")
	require.NoError(t, err)

	_, err = svc.GetTagByID(context.Background(), created.ID, 2)
	require.Error(t, err)
	assert.Equal(t, "tag not found", err.Error())
}

func TestTagServiceDeleteRejectsTagInUse(t *testing.T) {
	repo := newFakeTagRepo()
	svc := NewTagService(repo, zap.NewNop())

	created, err := svc.CreateTag(context.Background(), 1, "Music", "")
	require.NoError(t, err)
	repo.tags[created.ID].VideoCount = 3

	err = svc.DeleteTag(context.Background(), created.ID, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "in use")
}
