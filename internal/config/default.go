package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed WebEdit.ini
var defaultTagsFile []byte

// DefaultTagsFile returns the content written when no tags file exists.
func DefaultTagsFile() []byte {
	return append([]byte(nil), defaultTagsFile...)
}

// EnsureTagsFile writes the default tags file at path when none exists.
// It reports whether a file was created.
func EnsureTagsFile(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("checking %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, defaultTagsFile, 0o644); err != nil {
		return false, fmt.Errorf("writing default %s: %w", path, err)
	}
	return true, nil
}
