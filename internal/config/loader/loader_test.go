package loader

import (
	"errors"
	"io/fs"
	"testing"
	"time"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) Open(name string) (fs.File, error) {
	return nil, fs.ErrNotExist
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *MemFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return &memFileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

type memFileInfo struct {
	name string
}

func (f *memFileInfo) Name() string       { return f.name }
func (f *memFileInfo) Size() int64        { return 0 }
func (f *memFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memFileInfo) ModTime() time.Time { return time.Now() }
func (f *memFileInfo) IsDir() bool        { return false }
func (f *memFileInfo) Sys() any           { return nil }

func TestTOMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/webedit.toml", `
config_dir = "/home/u/.webedit"
log_level = "debug"
tab_width = 2
use_tabs = true
`)

	config, err := ForPath(memfs, "/webedit.toml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if config["log_level"] != "debug" {
		t.Errorf("log_level = %v, want debug", config["log_level"])
	}
	if config["tab_width"] != int64(2) {
		t.Errorf("tab_width = %v (%T), want 2", config["tab_width"], config["tab_width"])
	}
	if config["use_tabs"] != true {
		t.Errorf("use_tabs = %v, want true", config["use_tabs"])
	}
}

func TestTOMLLoader_Missing(t *testing.T) {
	config, err := NewTOMLLoaderWithFS(NewMemFS(), "/nope.toml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if config != nil {
		t.Errorf("expected nil config for missing file, got %v", config)
	}
}

func TestTOMLLoader_ParseError(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.toml", "log_level = \"debug\"\ntab_width = = 3\n")

	_, err := NewTOMLLoaderWithFS(memfs, "/bad.toml").Load()
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if perr.Path != "/bad.toml" {
		t.Errorf("Path = %q", perr.Path)
	}
	if perr.Line != 2 {
		t.Errorf("Line = %d, want 2", perr.Line)
	}
}

func TestYAMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/webedit.yaml", "log_level: warn\ntab_width: 8\nwatch: false\n")

	config, err := ForPath(memfs, "/webedit.yaml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if config["log_level"] != "warn" {
		t.Errorf("log_level = %v, want warn", config["log_level"])
	}
	if config["tab_width"] != 8 {
		t.Errorf("tab_width = %v (%T), want 8", config["tab_width"], config["tab_width"])
	}
	if config["watch"] != false {
		t.Errorf("watch = %v, want false", config["watch"])
	}
}

func TestYAMLLoader_ParseError(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.yml", "log_level: [unclosed\n")

	_, err := ForPath(memfs, "/bad.yml").Load()
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
}

func TestEnvLoader_Load(t *testing.T) {
	loader := NewEnvLoader(EnvPrefix)
	loader.lookup = func() []string {
		return []string{
			"WEBEDIT_LOG_LEVEL=debug",
			"WEBEDIT_TAB_WIDTH=2",
			"WEBEDIT_USE_TABS=yes",
			"WEBEDIT_DATE_FORMAT=",
			"WEBEDIT_=ignored",
			"HOME=/root",
			"NPP_DIR=/npp",
		}
	}
	loader.AddMapping("NPP_DIR", "config_dir")

	config, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := map[string]any{
		"log_level":   "debug",
		"tab_width":   int64(2),
		"use_tabs":    true,
		"date_format": "",
		"config_dir":  "/npp",
	}
	if len(config) != len(want) {
		t.Errorf("got %d keys, want %d: %v", len(config), len(want), config)
	}
	for k, v := range want {
		if config[k] != v {
			t.Errorf("%s = %v (%T), want %v", k, config[k], config[k], v)
		}
	}
}
