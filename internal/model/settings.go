package model

import "encoding/json"

// Settings sections
const (
	SettingsSectionVideoTable = "video_table"
	SettingsSectionFilters    = "filters"
	SettingsSectionAppearance = "appearance"
)

// UserSettings holds per-user UI settings, one JSON document per section
type UserSettings struct {
	VideoTable json.RawMessage `json:"video_table,omitempty" db:"video_table"`
	Filters    json.RawMessage `json:"filters,omitempty" db:"filters"`
	Appearance json.RawMessage `json:"appearance,omitempty" db:"appearance"`
}

// VideoTableSettings configures the video table view
type VideoTableSettings struct {
	VisibleColumns []string `json:"visible_columns,omitempty"`
	SortBy         string   `json:"sort_by,omitempty"`
	SortDirection  string   `json:"sort_direction,omitempty"`
	PageSize       int      `json:"page_size,omitempty"`
	ShowThumbnails bool     `json:"show_thumbnails"`
}

// FilterSettings holds the persisted tag-filter selection
type FilterSettings struct {
	SelectedTagIDs []int64 `json:"selected_tag_ids,omitempty"`
	MatchAll       bool    `json:"match_all"`
}

// AppearanceSettings configures theming
type AppearanceSettings struct {
	Theme       string `json:"theme,omitempty"`
	CompactMode bool   `json:"compact_mode"`
}
