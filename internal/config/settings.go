package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Krazal/WebEdit/internal/config/loader"
)

// DefaultDateFormat is the strftime pattern used by a bare or malformed \d.
const DefaultDateFormat = "%Y-%m-%d %H:%M:%S"

// Settings holds process settings for a WebEdit host. Settings files use
// the snake_case field names (config_dir, tab_width, ...).
type Settings struct {
	ConfigDir  string
	TagsFile   string
	LogLevel   string
	LogFile    string
	DateFormat string
	TabWidth   int
	UseTabs    bool
	Watch      bool
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	dir := "."
	if base, err := os.UserConfigDir(); err == nil {
		dir = filepath.Join(base, "WebEdit")
	}
	return Settings{
		ConfigDir:  dir,
		TagsFile:   FileName,
		LogLevel:   "info",
		DateFormat: DefaultDateFormat,
		TabWidth:   4,
		Watch:      true,
	}
}

// TagsPath returns the absolute path of the tags file.
func (s Settings) TagsPath() string {
	if filepath.IsAbs(s.TagsFile) {
		return s.TagsFile
	}
	return filepath.Join(s.ConfigDir, s.TagsFile)
}

// LoadSettings returns defaults overlaid with the settings file at path
// (if any) and then with WEBEDIT_ environment variables.
func LoadSettings(path string) (Settings, error) {
	return LoadSettingsFrom(loader.DefaultFS(), path, loader.NewEnvLoader(loader.EnvPrefix))
}

// LoadSettingsFrom is LoadSettings with explicit sources. A nil env
// skips environment overrides.
func LoadSettingsFrom(fsys loader.FileSystem, path string, env loader.Loader) (Settings, error) {
	settings := DefaultSettings()

	sources := make([]loader.Loader, 0, 2)
	if path != "" {
		sources = append(sources, loader.ForPath(fsys, path))
	}
	if env != nil {
		sources = append(sources, env)
	}
	for _, src := range sources {
		values, err := src.Load()
		if err != nil {
			return Settings{}, err
		}
		if err := settings.Apply(values); err != nil {
			return Settings{}, err
		}
	}
	return settings, settings.Validate()
}

// Apply overlays values onto s. Unknown keys are ignored.
func (s *Settings) Apply(values map[string]any) error {
	for key, v := range values {
		var err error
		switch key {
		case "config_dir":
			err = setString(&s.ConfigDir, v)
		case "tags_file":
			err = setString(&s.TagsFile, v)
		case "log_level":
			err = setString(&s.LogLevel, v)
		case "log_file":
			err = setString(&s.LogFile, v)
		case "date_format":
			err = setString(&s.DateFormat, v)
		case "tab_width":
			err = setInt(&s.TabWidth, v)
		case "use_tabs":
			err = setBool(&s.UseTabs, v)
		case "watch":
			err = setBool(&s.Watch, v)
		default:
			continue
		}
		if err != nil {
			return &SettingError{Key: key, Value: v, Err: err}
		}
	}
	return nil
}

// Validate checks value ranges.
func (s Settings) Validate() error {
	switch strings.ToLower(s.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return &SettingError{Key: "log_level", Value: s.LogLevel, Err: fmt.Errorf("want debug, info, warn or error")}
	}
	if s.TabWidth < 1 || s.TabWidth > 16 {
		return &SettingError{Key: "tab_width", Value: s.TabWidth, Err: fmt.Errorf("want 1 to 16")}
	}
	if s.TagsFile == "" {
		return &SettingError{Key: "tags_file", Value: s.TagsFile, Err: fmt.Errorf("must not be empty")}
	}
	return nil
}

func setString(dst *string, v any) error {
	switch s := v.(type) {
	case string:
		*dst = s
	case int, int64, bool:
		// Environment values are typed eagerly.
		*dst = fmt.Sprint(s)
	default:
		return fmt.Errorf("want string, got %T", v)
	}
	return nil
}

func setInt(dst *int, v any) error {
	switch n := v.(type) {
	case int:
		*dst = n
	case int64:
		*dst = int(n)
	case uint64:
		*dst = int(n)
	default:
		return fmt.Errorf("want integer, got %T", v)
	}
	return nil
}

func setBool(dst *bool, v any) error {
	b, ok := v.(bool)
	if !ok {
		return fmt.Errorf("want bool, got %T", v)
	}
	*dst = b
	return nil
}
