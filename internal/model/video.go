package model

import (
	"encoding/json"
	"time"
)

// Video represents a bookmarked YouTube video inside a list
type Video struct {
	ID           int64     `json:"id" db:"id"`
	ListID       int64     `json:"list_id" db:"list_id"`
	YouTubeID    string    `json:"youtube_id" db:"youtube_id"`
	Title        string    `json:"title" db:"title"`
	ChannelTitle string    `json:"channel_title" db:"channel_title"`
	ThumbnailURL string    `json:"thumbnail_url" db:"thumbnail_url"`
	Note         string    `json:"note" db:"note"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// VideoDetail is a video together with its tags and custom field values
type VideoDetail struct {
	Video
	Tags        []Tag        `json:"tags"`
	FieldValues []FieldValue `json:"field_values"`
}

// VideoCreate represents data for bookmarking a video.
// Title/channel/thumbnail are optional; missing metadata is resolved
// from YouTube at creation time.
type VideoCreate struct {
	YouTubeID    string `json:"youtube_id" binding:"required,min=11,max=11"`
	Title        string `json:"title" binding:"max=200"`
	ChannelTitle string `json:"channel_title" binding:"max=200"`
	ThumbnailURL string `json:"thumbnail_url" binding:"omitempty,url"`
	Note         string `json:"note" binding:"max=2000"`
}

// VideoUpdate represents data for updating a bookmark
type VideoUpdate struct {
	Title *string `json:"title,omitempty" binding:"omitempty,max=200"`
	Note  *string `json:"note,omitempty" binding:"omitempty,max=2000"`
}

// FieldValue holds the value a custom field has on a video
type FieldValue struct {
	FieldID   int64           `json:"field_id" db:"field_id"`
	VideoID   int64           `json:"-" db:"video_id"`
	FieldName string          `json:"field_name" db:"field_name"`
	FieldType string          `json:"field_type" db:"field_type"`
	Value     json.RawMessage `json:"value" db:"value"`
}
