package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrInvalidSetting indicates a settings value has the wrong type or range.
	ErrInvalidSetting = errors.New("invalid setting")

	// ErrInvalidTagName indicates a tag name cannot be stored as a key.
	ErrInvalidTagName = errors.New("invalid tag name")
)

// SettingError describes an invalid settings value.
type SettingError struct {
	Key   string
	Value any
	Err   error
}

// Error implements the error interface.
func (e *SettingError) Error() string {
	return fmt.Sprintf("setting %s = %v: %v", e.Key, e.Value, e.Err)
}

// Unwrap returns ErrInvalidSetting so callers can match with errors.Is.
func (e *SettingError) Unwrap() error {
	return ErrInvalidSetting
}
