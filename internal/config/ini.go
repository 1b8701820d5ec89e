package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Krazal/WebEdit/internal/config/loader"
)

// Section names used by WebEdit.
const (
	SectionCommands = "Commands"
	SectionToolbar  = "Toolbar"
	SectionTags     = "Tags"
)

// MaxKeyLen is the maximum key length in runes.
const MaxKeyLen = 32

// FileName is the tags file name inside the config directory.
const FileName = "WebEdit.ini"

var (
	commentLine = regexp.MustCompile(`^[;#]`)
	keyLine     = regexp.MustCompile(`^([\p{L}\p{N} _\-&]{1,32})=`)
	utf8BOM     = []byte{0xEF, 0xBB, 0xBF}
)

// Entry is one key=value line of a section.
type Entry struct {
	Key   string
	Value string
	Line  int // 1-based line number in the file
}

// Store is an ordered, read-only view of a tags file.
type Store struct {
	mu       sync.RWMutex
	path     string
	fs       loader.FileSystem
	logger   *zap.Logger
	sections map[string][]Entry // lowercased section name -> entries in file order
	exists   bool
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithFileSystem sets the file system the store reads from.
func WithFileSystem(fsys loader.FileSystem) StoreOption {
	return func(s *Store) {
		s.fs = fsys
	}
}

// WithStoreLogger sets the store logger.
func WithStoreLogger(logger *zap.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates an empty store for path. Call Reload to read the file.
func NewStore(path string, opts ...StoreOption) *Store {
	s := &Store{
		path:     path,
		fs:       loader.DefaultFS(),
		logger:   zap.NewNop(),
		sections: map[string][]Entry{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OpenStore creates a store for path and reads it.
func OpenStore(path string, opts ...StoreOption) (*Store, error) {
	s := NewStore(path, opts...)
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// ParseStore builds a store from in-memory content.
func ParseStore(path string, data []byte) *Store {
	s := NewStore(path)
	s.sections = parse(data)
	s.exists = true
	return s
}

// Path returns the file path backing the store.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the file was present at the last reload.
func (s *Store) Exists() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.exists
}

// Reload re-reads the file. A missing file leaves the store empty.
func (s *Store) Reload() error {
	data, err := s.fs.ReadFile(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading %s: %w", s.path, err)
	}
	exists := err == nil
	sections := parse(data)

	s.mu.Lock()
	s.sections = sections
	s.exists = exists
	s.mu.Unlock()

	s.logger.Debug("config reloaded",
		zap.String("path", s.path),
		zap.Bool("exists", exists),
		zap.Int("tags", len(sections[strings.ToLower(SectionTags)])),
		zap.Int("commands", len(sections[strings.ToLower(SectionCommands)])),
	)
	return nil
}

// Get returns the value of key in section, or "" when absent.
func (s *Store) Get(section, key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.sections[strings.ToLower(section)] {
		if e.Key == key {
			return e.Value
		}
	}
	return ""
}

// Lookup returns the entry for key in section.
func (s *Store) Lookup(section, key string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.sections[strings.ToLower(section)] {
		if e.Key == key {
			return e, true
		}
	}
	return Entry{}, false
}

// GetKeys returns the keys of section in file order, duplicates included.
func (s *Store) GetKeys(section string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.sections[strings.ToLower(section)]
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	return keys
}

// Entries returns the entries of section in file order.
func (s *Store) Entries(section string) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Entry(nil), s.sections[strings.ToLower(section)]...)
}

// parse reads the INI dialect. Repeated sections are merged in file order.
func parse(data []byte) map[string][]Entry {
	sections := map[string][]Entry{}
	data = bytes.TrimPrefix(data, utf8BOM)

	current := ""
	inSection := false
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	sc.Split(scanLines)
	for n := 1; sc.Scan(); n++ {
		line := sc.Text()
		if strings.HasPrefix(line, "[") {
			current, inSection = sectionName(line)
			continue
		}
		if !inSection || commentLine.MatchString(line) {
			continue
		}
		m := keyLine.FindStringSubmatchIndex(line)
		if m == nil {
			continue
		}
		sections[current] = append(sections[current], Entry{
			Key:   line[m[2]:m[3]],
			Value: strings.TrimSpace(line[m[1]:]),
			Line:  n,
		})
	}
	return sections
}

// sectionName extracts the lowercased name of a "[Name]" header line.
// Text after the closing bracket is ignored.
func sectionName(line string) (string, bool) {
	end := strings.IndexByte(line, ']')
	if end < 0 {
		return "", false
	}
	return strings.ToLower(line[1:end]), true
}

// scanLines splits on LF, CRLF or a bare CR.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		// Need more data to tell CR from CRLF.
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// ValidTagName reports whether name can be stored as a key.
func ValidTagName(name string) bool {
	m := keyLine.FindStringSubmatch(name + "=")
	return m != nil && m[1] == name
}
