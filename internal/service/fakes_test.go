package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/yourorg/smart-bookmarks/internal/client"
	"github.com/yourorg/smart-bookmarks/internal/kafka"
	"github.com/yourorg/smart-bookmarks/internal/model"
)

// fakeListRepo is an in-memory ListRepository
type fakeListRepo struct {
	nextID int64
	lists  map[int64]*model.List
}

func newFakeListRepo() *fakeListRepo {
	return &fakeListRepo{nextID: 1, lists: make(map[int64]*model.List)}
}

func (f *fakeListRepo) addList(userID int64, name string) int64 {
	id := f.nextID
	f.nextID++
	f.lists[id] = &model.List{
		ID:        id,
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	return id
}

func (f *fakeListRepo) GetAll(_ context.Context, userID int64) ([]model.List, error) {
	result := []model.List{}
	for _, list := range f.lists {
		if list.UserID == userID {
			result = append(result, *list)
		}
	}
	return result, nil
}

func (f *fakeListRepo) GetByID(_ context.Context, id, userID int64) (*model.List, error) {
	list, ok := f.lists[id]
	if !ok || list.UserID != userID {
		return nil, nil
	}
	return list, nil
}

func (f *fakeListRepo) Create(_ context.Context, userID int64, create *model.ListCreate) (int64, error) {
	id := f.addList(userID, create.Name)
	f.lists[id].Description = create.Description
	return id, nil
}

func (f *fakeListRepo) Update(_ context.Context, id, userID int64, update *model.ListUpdate) error {
	list, ok := f.lists[id]
	if !ok || list.UserID != userID {
		return errors.New("list not found")
	}
	if update.Name != nil {
		list.Name = *update.Name
	}
	if update.Description != nil {
		list.Description = *update.Description
	}
	return nil
}

func (f *fakeListRepo) Delete(_ context.Context, id, userID int64) error {
	list, ok := f.lists[id]
	if !ok || list.UserID != userID {
		return errors.New("list not found")
	}
	delete(f.lists, id)
	return nil
}

// fakeFieldRepo is an in-memory FieldRepository
type fakeFieldRepo struct {
	nextID int64
	fields map[int64]*model.CustomField
	lists  *fakeListRepo
}

func newFakeFieldRepo(lists *fakeListRepo) *fakeFieldRepo {
	return &fakeFieldRepo{nextID: 1, fields: make(map[int64]*model.CustomField), lists: lists}
}

func (f *fakeFieldRepo) GetByList(_ context.Context, listID int64) ([]model.CustomField, error) {
	result := []model.CustomField{}
	for _, field := range f.fields {
		if field.ListID == listID {
			result = append(result, *field)
		}
	}
	return result, nil
}

func (f *fakeFieldRepo) GetByID(_ context.Context, id, userID int64) (*model.CustomField, error) {
	field, ok := f.fields[id]
	if !ok {
		return nil, nil
	}
	list, ok := f.lists.lists[field.ListID]
	if !ok || list.UserID != userID {
		return nil, nil
	}
	return field, nil
}

func (f *fakeFieldRepo) FindByName(_ context.Context, listID int64, name string, excludeID int64) (*model.CustomField, error) {
	for id, field := range f.fields {
		if field.ListID != listID || (excludeID != 0 && id == excludeID) {
			continue
		}
		if strings.EqualFold(field.Name, name) {
			return field, nil
		}
	}
	return nil, nil
}

func (f *fakeFieldRepo) Create(_ context.Context, listID int64, name, fieldType string, config json.RawMessage) (int64, error) {
	id := f.nextID
	f.nextID++
	f.fields[id] = &model.CustomField{
		ID:        id,
		ListID:    listID,
		Name:      name,
		Type:      fieldType,
		Config:    config,
		CreatedAt: time.Now(),
	}
	return id, nil
}

func (f *fakeFieldRepo) Update(_ context.Context, id int64, name *string, config json.RawMessage) error {
	field, ok := f.fields[id]
	if !ok {
		return errors.New("custom field not found")
	}
	if name != nil {
		field.Name = *name
	}
	if config != nil {
		field.Config = config
	}
	return nil
}

func (f *fakeFieldRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.fields[id]; !ok {
		return errors.New("custom field not found")
	}
	delete(f.fields, id)
	return nil
}

// fakeSchemaRepo is an in-memory SchemaRepository
type fakeSchemaRepo struct {
	nextID  int64
	schemas map[int64]*model.FieldSchema
	lists   *fakeListRepo
}

func newFakeSchemaRepo(lists *fakeListRepo) *fakeSchemaRepo {
	return &fakeSchemaRepo{nextID: 1, schemas: make(map[int64]*model.FieldSchema), lists: lists}
}

func (f *fakeSchemaRepo) GetByList(_ context.Context, listID int64) ([]model.FieldSchema, error) {
	result := []model.FieldSchema{}
	for _, schema := range f.schemas {
		if schema.ListID == listID {
			result = append(result, *schema)
		}
	}
	return result, nil
}

func (f *fakeSchemaRepo) GetByID(_ context.Context, id, userID int64) (*model.FieldSchema, error) {
	schema, ok := f.schemas[id]
	if !ok {
		return nil, nil
	}
	list, ok := f.lists.lists[schema.ListID]
	if !ok || list.UserID != userID {
		return nil, nil
	}
	return schema, nil
}

func (f *fakeSchemaRepo) FindByName(_ context.Context, listID int64, name string, excludeID int64) (*model.FieldSchema, error) {
	for id, schema := range f.schemas {
		if schema.ListID != listID || (excludeID != 0 && id == excludeID) {
			continue
		}
		if strings.EqualFold(schema.Name, name) {
			return schema, nil
		}
	}
	return nil, nil
}

func (f *fakeSchemaRepo) Create(_ context.Context, listID int64, name string, fieldIDs []int64) (int64, error) {
	id := f.nextID
	f.nextID++
	f.schemas[id] = &model.FieldSchema{
		ID:        id,
		ListID:    listID,
		Name:      name,
		FieldIDs:  append([]int64{}, fieldIDs...),
		CreatedAt: time.Now(),
	}
	return id, nil
}

func (f *fakeSchemaRepo) Rename(_ context.Context, id int64, name string) error {
	schema, ok := f.schemas[id]
	if !ok {
		return errors.New("schema not found")
	}
	schema.Name = name
	return nil
}

func (f *fakeSchemaRepo) ReplaceFields(_ context.Context, id int64, fieldIDs []int64) error {
	schema, ok := f.schemas[id]
	if !ok {
		return errors.New("schema not found")
	}
	schema.FieldIDs = append([]int64{}, fieldIDs...)
	return nil
}

func (f *fakeSchemaRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.schemas[id]; !ok {
		return errors.New("schema not found")
	}
	delete(f.schemas, id)
	return nil
}

// fakeVideoRepo is an in-memory VideoRepository
type fakeVideoRepo struct {
	nextID int64
	videos map[int64]*model.Video
	tags   map[int64][]int64
	values map[int64]map[int64]json.RawMessage
	lists  *fakeListRepo
}

func newFakeVideoRepo(lists *fakeListRepo) *fakeVideoRepo {
	return &fakeVideoRepo{
		nextID: 1,
		videos: make(map[int64]*model.Video),
		tags:   make(map[int64][]int64),
		values: make(map[int64]map[int64]json.RawMessage),
		lists:  lists,
	}
}

func (f *fakeVideoRepo) GetByList(_ context.Context, listID int64, tagIDs []int64, searchTerm string, page, limit int) ([]model.Video, int, error) {
	result := []model.Video{}
	for id, video := range f.videos {
		if video.ListID != listID {
			continue
		}
		if searchTerm != "" && !strings.Contains(strings.ToLower(video.Title), strings.ToLower(searchTerm)) {
			continue
		}
		if !hasAllTags(f.tags[id], tagIDs) {
			continue
		}
		result = append(result, *video)
	}
	return result, len(result), nil
}

func hasAllTags(attached, wanted []int64) bool {
	for _, want := range wanted {
		found := false
		for _, have := range attached {
			if have == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (f *fakeVideoRepo) GetByID(_ context.Context, id, userID int64) (*model.Video, error) {
	video, ok := f.videos[id]
	if !ok {
		return nil, nil
	}
	list, ok := f.lists.lists[video.ListID]
	if !ok || list.UserID != userID {
		return nil, nil
	}
	return video, nil
}

func (f *fakeVideoRepo) FindByYouTubeID(_ context.Context, listID int64, youtubeID string) (*model.Video, error) {
	for _, video := range f.videos {
		if video.ListID == listID && video.YouTubeID == youtubeID {
			return video, nil
		}
	}
	return nil, nil
}

func (f *fakeVideoRepo) Create(_ context.Context, listID int64, create *model.VideoCreate) (int64, error) {
	id := f.nextID
	f.nextID++
	f.videos[id] = &model.Video{
		ID:           id,
		ListID:       listID,
		YouTubeID:    create.YouTubeID,
		Title:        create.Title,
		ChannelTitle: create.ChannelTitle,
		ThumbnailURL: create.ThumbnailURL,
		Note:         create.Note,
		CreatedAt:    time.Now(),
	}
	return id, nil
}

func (f *fakeVideoRepo) Update(_ context.Context, id int64, update *model.VideoUpdate) error {
	video, ok := f.videos[id]
	if !ok {
		return errors.New("video not found")
	}
	if update.Title != nil {
		video.Title = *update.Title
	}
	if update.Note != nil {
		video.Note = *update.Note
	}
	return nil
}

func (f *fakeVideoRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.videos[id]; !ok {
		return errors.New("video not found")
	}
	delete(f.videos, id)
	delete(f.tags, id)
	delete(f.values, id)
	return nil
}

func (f *fakeVideoRepo) GetTags(_ context.Context, videoID int64) ([]model.Tag, error) {
	tags := []model.Tag{}
	for _, tagID := range f.tags[videoID] {
		tags = append(tags, model.Tag{ID: tagID})
	}
	return tags, nil
}

func (f *fakeVideoRepo) ReplaceTags(_ context.Context, videoID int64, tagIDs []int64) error {
	f.tags[videoID] = append([]int64{}, tagIDs...)
	return nil
}

func (f *fakeVideoRepo) GetFieldValues(_ context.Context, videoID int64) ([]model.FieldValue, error) {
	values := []model.FieldValue{}
	for fieldID, value := range f.values[videoID] {
		values = append(values, model.FieldValue{FieldID: fieldID, VideoID: videoID, Value: value})
	}
	return values, nil
}

func (f *fakeVideoRepo) SetFieldValue(_ context.Context, videoID, fieldID int64, value json.RawMessage) error {
	if f.values[videoID] == nil {
		f.values[videoID] = make(map[int64]json.RawMessage)
	}
	f.values[videoID][fieldID] = value
	return nil
}

func (f *fakeVideoRepo) DeleteFieldValue(_ context.Context, videoID, fieldID int64) error {
	if _, ok := f.values[videoID][fieldID]; !ok {
		return errors.New("field value not found")
	}
	delete(f.values[videoID], fieldID)
	return nil
}

// fakeMetadataClient returns canned metadata or a failure
type fakeMetadataClient struct {
	metadata *client.VideoMetadata
	err      error
	calls    int
}

func (f *fakeMetadataClient) GetVideoMetadata(_ context.Context, _ string) (*client.VideoMetadata, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.metadata, nil
}

// capturePublisher records published events
type capturePublisher struct {
	messages []kafka.Message
	topics   []string
	err      error
}

func (p *capturePublisher) Publish(_ context.Context, topic string, msg kafka.Message) error {
	if p.err != nil {
		return p.err
	}
	p.topics = append(p.topics, topic)
	p.messages = append(p.messages, msg)
	return nil
}
