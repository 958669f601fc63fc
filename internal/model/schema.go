package model

import "time"

// FieldSchema represents a named, ordered grouping of a list's custom
// fields used for display
type FieldSchema struct {
	ID        int64     `json:"id" db:"id"`
	ListID    int64     `json:"list_id" db:"list_id"`
	Name      string    `json:"name" db:"name"`
	FieldIDs  []int64   `json:"field_ids"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// FieldSchemaCreate represents data for creating a field schema
type FieldSchemaCreate struct {
	Name     string  `json:"name" binding:"required,max=100"`
	FieldIDs []int64 `json:"field_ids"`
}

// FieldSchemaUpdate represents data for renaming a schema and/or
// replacing its field order
type FieldSchemaUpdate struct {
	Name     *string `json:"name,omitempty" binding:"omitempty,max=100"`
	FieldIDs []int64 `json:"field_ids,omitempty"`
}
