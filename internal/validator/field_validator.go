package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yourorg/smart-bookmarks/internal/model"
)

const (
	maxSelectOptions = 50
	maxRatingBound   = 100
	maxTextLength    = 5000
)

// ValidateFieldConfig validates the config document of a custom field
// against its type
func ValidateFieldConfig(fieldType string, config json.RawMessage) error {
	switch fieldType {
	case model.FieldTypeSelect:
		return validateSelectConfig(config)
	case model.FieldTypeRating:
		return validateRatingConfig(config)
	case model.FieldTypeText:
		return validateTextConfig(config)
	case model.FieldTypeBoolean:
		return validateBooleanConfig(config)
	default:
		return fmt.Errorf("invalid field type: %s", fieldType)
	}
}

func validateSelectConfig(config json.RawMessage) error {
	if len(config) == 0 {
		return errors.New("select fields require a config with options")
	}

	var cfg model.SelectConfig
	if err := json.Unmarshal(config, &cfg); err != nil {
		return errors.New("invalid select config format")
	}

	if len(cfg.Options) == 0 {
		return errors.New("select fields require at least one option")
	}

	if len(cfg.Options) > maxSelectOptions {
		return fmt.Errorf("select fields cannot have more than %d options", maxSelectOptions)
	}

	seen := make(map[string]bool, len(cfg.Options))
	for i, option := range cfg.Options {
		trimmed := strings.TrimSpace(option)
		if trimmed == "" {
			return fmt.Errorf("option %d cannot be empty", i+1)
		}

		lower := strings.ToLower(trimmed)
		if seen[lower] {
			return fmt.Errorf("duplicate option: %s", trimmed)
		}
		seen[lower] = true
	}

	return nil
}

func validateRatingConfig(config json.RawMessage) error {
	if len(config) == 0 {
		return errors.New("rating fields require a config with min and max")
	}

	var cfg model.RatingConfig
	if err := json.Unmarshal(config, &cfg); err != nil {
		return errors.New("invalid rating config format")
	}

	if cfg.Min < 1 {
		return errors.New("rating min must be at least 1")
	}

	if cfg.Max > maxRatingBound {
		return fmt.Errorf("rating max cannot exceed %d", maxRatingBound)
	}

	if cfg.Min >= cfg.Max {
		return errors.New("rating min must be less than max")
	}

	return nil
}

func validateTextConfig(config json.RawMessage) error {
	if len(config) == 0 {
		return nil // config is optional for text fields
	}

	var cfg model.TextConfig
	if err := json.Unmarshal(config, &cfg); err != nil {
		return errors.New("invalid text config format")
	}

	if cfg.MaxLength != 0 && (cfg.MaxLength < 1 || cfg.MaxLength > maxTextLength) {
		return fmt.Errorf("text max_length must be between 1 and %d", maxTextLength)
	}

	return nil
}

func validateBooleanConfig(config json.RawMessage) error {
	if len(config) == 0 || string(config) == "{}" || string(config) == "null" {
		return nil
	}
	return errors.New("boolean fields do not take a config")
}

// ValidateFieldValue validates a value being written to a custom field
// against the field's type and config
func ValidateFieldValue(field *model.CustomField, value json.RawMessage) error {
	if len(value) == 0 || string(value) == "null" {
		return errors.New("value is required")
	}

	switch field.Type {
	case model.FieldTypeSelect:
		return validateSelectValue(field.Config, value)
	case model.FieldTypeRating:
		return validateRatingValue(field.Config, value)
	case model.FieldTypeText:
		return validateTextValue(field.Config, value)
	case model.FieldTypeBoolean:
		var v bool
		if err := json.Unmarshal(value, &v); err != nil {
			return errors.New("boolean field value must be true or false")
		}
		return nil
	default:
		return fmt.Errorf("invalid field type: %s", field.Type)
	}
}

func validateSelectValue(config, value json.RawMessage) error {
	var v string
	if err := json.Unmarshal(value, &v); err != nil {
		return errors.New("select field value must be a string")
	}

	var cfg model.SelectConfig
	if err := json.Unmarshal(config, &cfg); err != nil {
		return errors.New("invalid select config format")
	}

	for _, option := range cfg.Options {
		if option == v {
			return nil
		}
	}

	return fmt.Errorf("value is not a configured option: %s", v)
}

func validateRatingValue(config, value json.RawMessage) error {
	var v int
	if err := json.Unmarshal(value, &v); err != nil {
		return errors.New("rating field value must be an integer")
	}

	var cfg model.RatingConfig
	if err := json.Unmarshal(config, &cfg); err != nil {
		return errors.New("invalid rating config format")
	}

	if v < cfg.Min || v > cfg.Max {
		return fmt.Errorf("rating must be between %d and %d", cfg.Min, cfg.Max)
	}

	return nil
}

func validateTextValue(config, value json.RawMessage) error {
	var v string
	if err := json.Unmarshal(value, &v); err != nil {
		return errors.New("text field value must be a string")
	}

	maxLength := maxTextLength
	if len(config) > 0 {
		var cfg model.TextConfig
		if err := json.Unmarshal(config, &cfg); err == nil && cfg.MaxLength > 0 {
			maxLength = cfg.MaxLength
		}
	}

	if utf8.RuneCountInString(v) > maxLength {
		return fmt.Errorf("text value cannot exceed %d characters", maxLength)
	}

	return nil
}

// ValidateTagColor checks that a tag color is a #RRGGBB hex string
func ValidateTagColor(color string) error {
	if len(color) != 7 || color[0] != '#' {
		return errors.New("color must be in #RRGGBB format")
	}

	for _, r := range color[1:] {
		isHex := (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
		if !isHex {
			return errors.New("color must be in #RRGGBB format")
		}
	}

	return nil
}
