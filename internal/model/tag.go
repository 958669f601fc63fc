package model

// Tag represents a user-defined label attachable to videos
type Tag struct {
	ID     int64  `json:"id" db:"id"`
	UserID int64  `json:"-" db:"user_id"`
	Name   string `json:"name" db:"name"`
	Color  string `json:"color" db:"color"`
}

// TagWithCount is a tag together with the number of videos carrying it
type TagWithCount struct {
	ID         int64  `json:"id" db:"id"`
	Name       string `json:"name" db:"name"`
	Color      string `json:"color" db:"color"`
	VideoCount int    `json:"video_count" db:"video_count"`
}
