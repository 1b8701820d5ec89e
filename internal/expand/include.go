package expand

import (
	"bufio"
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/Krazal/WebEdit/internal/config"
)

// IncludeRef is a parsed \f[File:Section] argument.
type IncludeRef struct {
	File    string
	Section string
}

// parseIncludeArg reads the [File:Section] argument that follows \f.
// The argument must close on the same line. It returns the ref and the
// number of bytes consumed.
func parseIncludeArg(rest string) (IncludeRef, int, bool) {
	if !strings.HasPrefix(rest, "[") {
		return IncludeRef{}, 0, false
	}
	if nl := strings.IndexAny(rest, "\r\n"); nl >= 0 {
		rest = rest[:nl]
	}
	end := strings.IndexByte(rest, ']')
	if end < 0 {
		return IncludeRef{}, 0, false
	}

	parts := strings.Split(rest[1:end], ":")
	ref := IncludeRef{File: strings.TrimSpace(parts[0])}
	if len(parts) > 1 {
		ref.Section = strings.TrimSpace(parts[1])
	}
	return ref, end + 1, true
}

// resolvePath returns the absolute path of an include file.
// An empty name means the tags file itself.
func (e *Expander) resolvePath(name string) string {
	if name == "" {
		name = config.FileName
	}
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(e.configDir, name)
}

// isOwnFile reports whether path names the tags file.
func (e *Expander) isOwnFile(path string) bool {
	if e.tagsPath == "" {
		return false
	}
	return strings.EqualFold(filepath.Clean(path), filepath.Clean(e.tagsPath))
}

// includeText returns the text a \f sequence pastes, or false for a no-op.
// Every value or line is run through Unescape and joined by eol.
func (e *Expander) includeText(ref IncludeRef, indent, eol string) (string, bool) {
	path := e.resolvePath(ref.File)
	if ref.Section == "" && e.isOwnFile(path) {
		e.logger.Info("include refused", zap.String("path", path), zap.String("reason", "own tags file"))
		return "", false
	}

	var lines []string
	if ref.Section != "" {
		store, err := config.OpenStore(path)
		if err != nil {
			e.logger.Warn("include unreadable", zap.String("path", path), zap.Error(err))
			return "", false
		}
		if !store.Exists() {
			e.logger.Info("include missing", zap.String("path", path))
			return "", false
		}
		for _, key := range store.GetKeys(ref.Section) {
			lines = append(lines, store.Get(ref.Section, key))
		}
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				e.logger.Info("include missing", zap.String("path", path))
			} else {
				e.logger.Warn("include unreadable", zap.String("path", path), zap.Error(err))
			}
			return "", false
		}
		lines = readLines(data)
	}

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(Unescape(line, indent, eol))
		b.WriteString(eol)
	}
	text := strings.TrimRightFunc(b.String(), unicode.IsSpace)
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}

// readLines splits file content into lines, dropping a UTF-8 byte order mark.
func readLines(data []byte) []string {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	return lines
}
