package model

import (
	"encoding/json"
	"time"
)

// Custom field types
const (
	FieldTypeSelect  = "select"
	FieldTypeRating  = "rating"
	FieldTypeText    = "text"
	FieldTypeBoolean = "boolean"
)

// CustomField represents a user-defined evaluation attribute on a list
type CustomField struct {
	ID        int64           `json:"id" db:"id"`
	ListID    int64           `json:"list_id" db:"list_id"`
	Name      string          `json:"name" db:"name"`
	Type      string          `json:"type" db:"type"`
	Config    json.RawMessage `json:"config" db:"config"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// SelectConfig is the config document for select fields
type SelectConfig struct {
	Options []string `json:"options"`
}

// RatingConfig is the config document for rating fields
type RatingConfig struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// TextConfig is the config document for text fields
type TextConfig struct {
	MaxLength int `json:"max_length,omitempty"`
}

// CustomFieldCreate represents data for creating a custom field
type CustomFieldCreate struct {
	Name   string          `json:"name" binding:"required,max=100"`
	Type   string          `json:"type" binding:"required,oneof=select rating text boolean"`
	Config json.RawMessage `json:"config"`
}

// CustomFieldUpdate represents data for updating a custom field.
// The type is immutable after creation; only name and config may change.
type CustomFieldUpdate struct {
	Name   *string         `json:"name,omitempty" binding:"omitempty,max=100"`
	Config json.RawMessage `json:"config,omitempty"`
}

// DuplicateCheckRequest is the body of a duplicate-name lookup
type DuplicateCheckRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	ExcludeID int64  `json:"exclude_id,omitempty"`
}

// DuplicateCheckResult reports whether a field name is already taken
type DuplicateCheckResult struct {
	Exists bool         `json:"exists"`
	Field  *CustomField `json:"field"`
}
