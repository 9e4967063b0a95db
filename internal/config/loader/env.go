package loader

import (
	"os"
	"strings"

	"github.com/dshills/keynorm/internal/config/layer"
)

// DefaultEnvPrefix is the prefix of every environment variable read by
// the default loader.
const DefaultEnvPrefix = "KEYNORM_"

// EnvLoader loads configuration from environment variables.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "KEYNORM_")
	mapping map[string]string // Env var -> config path
	environ func() []string
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "KEYNORM_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(prefix),
		environ: os.Environ,
	}
}

// NewEnvLoaderWithMapping creates a loader with custom environment variable mappings.
func NewEnvLoaderWithMapping(prefix string, mapping map[string]string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: mapping,
		environ: os.Environ,
	}
}

// defaultEnvMapping returns the variables whose names do not follow the
// section_name rule.
func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "MACOS_OPTION_AS_ALT": "input.macosOptionAsAlt",
		prefix + "PLATFORM":            "input.platform",
		prefix + "LOG_LEVEL":           "logging.level",
	}
}

// Load reads environment variables and returns a configuration map.
// Empty values are kept as empty strings, not treated as unset.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	for _, env := range l.environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}

		path, mapped := l.mapping[name]
		if !mapped {
			// Convert KEYNORM_INPUT_PLATFORM to input.platform
			path = l.envToPath(name)
		}
		if path == "" {
			continue
		}
		layer.SetByPath(config, path, parseValue(value))
	}

	return config, nil
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	if l.mapping == nil {
		l.mapping = make(map[string]string)
	}
	l.mapping[envVar] = configPath
}

// envToPath converts KEYNORM_INPUT_MACOS_OPTION_AS_ALT to
// input.macosOptionAsAlt. The first part is the section; the rest form
// the setting name in camelCase. A bare section yields "".
func (l *EnvLoader) envToPath(env string) string {
	name := strings.TrimPrefix(env, l.prefix)

	parts := strings.Split(name, "_")
	if len(parts) < 2 || parts[0] == "" {
		return ""
	}

	section := strings.ToLower(parts[0])
	var setting strings.Builder
	for i, part := range parts[1:] {
		if part == "" {
			continue
		}
		part = strings.ToLower(part)
		if i > 0 && setting.Len() > 0 {
			part = strings.ToUpper(part[:1]) + part[1:]
		}
		setting.WriteString(part)
	}
	if setting.Len() == 0 {
		return ""
	}

	return section + "." + setting.String()
}

// parseValue maps "true" and "false" to bools. Every other value, numbers
// included, stays a string for the setting parser.
func parseValue(s string) any {
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}

	return s
}
