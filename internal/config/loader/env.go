package loader

import (
	"os"
	"strconv"
	"strings"
)

// EnvPrefix is the prefix of WebEdit environment variables.
const EnvPrefix = "WEBEDIT_"

// EnvLoader loads settings from environment variables.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "WEBEDIT_")
	lookup  func() []string   // Source of KEY=VALUE pairs
	mapping map[string]string // Env var -> settings key
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "WEBEDIT_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		lookup:  os.Environ,
		mapping: map[string]string{},
	}
}

// AddMapping maps an environment variable onto a settings key that does
// not follow the prefix convention.
func (l *EnvLoader) AddMapping(envVar, key string) {
	l.mapping[envVar] = key
}

// Load reads prefixed environment variables. WEBEDIT_LOG_LEVEL becomes
// the key "log_level". Empty values are kept.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)
	for _, env := range l.lookup() {
		name, value, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}
		if key, mapped := l.mapping[name]; mapped {
			config[key] = parseValue(value)
			continue
		}
		if !strings.HasPrefix(name, l.prefix) || len(name) == len(l.prefix) {
			continue
		}
		config[strings.ToLower(strings.TrimPrefix(name, l.prefix))] = parseValue(value)
	}
	return config, nil
}

// parseValue attempts to parse the string value into an appropriate type.
func parseValue(s string) any {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	return s
}
