package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/keynorm/internal/config/layer"
	"github.com/dshills/keynorm/internal/config/loader"
	"github.com/dshills/keynorm/internal/input/key"
)

// Setting paths.
const (
	PathOptionAsAlt = "input.macosOptionAsAlt"
	PathPlatform    = "input.platform"
	PathLogLevel    = "logging.level"
)

// Config holds the resolved settings.
type Config struct {
	Input   InputConfig
	Logging LoggingConfig

	// Path is the config file that was requested, if any.
	Path string

	layers *layer.Stack
}

// InputConfig holds keyboard input settings.
type InputConfig struct {
	// MacOSOptionAsAlt decides which option keys act as alt on Darwin.
	MacOSOptionAsAlt key.OptionAsAlt

	// PlatformName is the configured platform: "auto", "darwin" or "other".
	PlatformName string

	// Platform is PlatformName resolved against the host.
	Platform key.Platform
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string
}

var logLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

// ValidLogLevel reports whether level names a known log level, ignoring
// case.
func ValidLogLevel(level string) bool {
	return logLevels[strings.ToLower(level)]
}

// defaultConfig returns the default configuration values.
func defaultConfig() map[string]any {
	return map[string]any{
		"input": map[string]any{
			"macosOptionAsAlt": false,
			"platform":         "auto",
		},
		"logging": map[string]any{
			"level": "info",
		},
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	stack := layer.NewStack(layer.NewLayerWithData(layer.SourceDefaults, defaultConfig()))
	c, err := decode(stack.Merged())
	if err != nil {
		panic(fmt.Sprintf("config: invalid defaults: %v", err))
	}
	c.layers = stack
	return c
}

// Option configures Load.
type Option func(*options)

type options struct {
	fs        loader.FileSystem
	env       *loader.EnvLoader
	overrides map[string]any
}

// WithFS reads the config file through fsys.
func WithFS(fsys loader.FileSystem) Option {
	return func(o *options) {
		o.fs = fsys
	}
}

// WithEnv replaces the environment loader. A nil loader skips the
// environment entirely.
func WithEnv(env *loader.EnvLoader) Option {
	return func(o *options) {
		o.env = env
	}
}

// WithOverrides adds settings, keyed by dotted path, that take
// precedence over every other source. The CLI passes explicit flags
// here.
func WithOverrides(overrides map[string]any) Option {
	return func(o *options) {
		o.overrides = overrides
	}
}

// Load reads the configuration. Sources are merged in order: defaults,
// the file at path, the environment, then overrides. An empty path or a
// missing file contributes nothing.
func Load(path string, opts ...Option) (*Config, error) {
	o := &options{
		fs:  loader.DefaultFS(),
		env: loader.NewEnvLoader(loader.DefaultEnvPrefix),
	}
	for _, opt := range opts {
		opt(o)
	}

	stack := layer.NewStack(layer.NewLayerWithData(layer.SourceDefaults, defaultConfig()))

	if path != "" {
		fl, err := loader.NewFileLoader(o.fs, path)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		data, err := fl.Load()
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		if data != nil {
			l := layer.NewLayerWithData(layer.SourceFile, data)
			l.Path = path
			stack.Add(l)
		}
	}

	if o.env != nil {
		data, err := o.env.Load()
		if err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
		if len(data) > 0 {
			stack.Add(layer.NewLayerWithData(layer.SourceEnv, data))
		}
	}

	if len(o.overrides) > 0 {
		l := layer.NewLayer(layer.SourceFlags)
		for p, v := range o.overrides {
			layer.SetByPath(l.Data, p, v)
		}
		stack.Add(l)
	}

	c, err := decode(stack.Merged())
	if err != nil {
		return nil, err
	}
	c.Path = path
	c.layers = stack
	return c, nil
}

// Origin names the source that supplied the effective value at path,
// e.g. "file" or "environment".
func (c *Config) Origin(path string) string {
	if c.layers == nil {
		return layer.SourceDefaults.String()
	}
	l, ok := c.layers.Origin(path)
	if !ok {
		return "unset"
	}
	if l.Path != "" {
		return fmt.Sprintf("%s %s", l.Name, l.Path)
	}
	return l.Name
}

// Changed returns the setting paths whose effective values differ from
// prev, sorted. A nil prev compares against the defaults.
func (c *Config) Changed(prev *Config) []string {
	if prev == nil {
		prev = Default()
	}
	return layer.ChangedPaths(prev.merged(), c.merged())
}

func (c *Config) merged() map[string]any {
	if c.layers == nil {
		return defaultConfig()
	}
	return c.layers.Merged()
}

// Validate checks the resolved values.
func (c *Config) Validate() error {
	if c.Input.MacOSOptionAsAlt > key.OptionAsAltRight {
		return &ValidationError{
			Path:    PathOptionAsAlt,
			Message: "unknown option-as-alt policy",
			Value:   c.Input.MacOSOptionAsAlt,
		}
	}
	if _, err := key.ParsePlatform(c.Input.PlatformName); err != nil {
		return &ValidationError{Path: PathPlatform, Message: "unknown platform", Value: c.Input.PlatformName, Err: err}
	}
	if !ValidLogLevel(c.Logging.Level) {
		return &ValidationError{Path: PathLogLevel, Message: "unknown log level", Value: c.Logging.Level}
	}
	return nil
}

// decode converts a merged settings map into a Config. Unknown settings
// are ignored.
func decode(data map[string]any) (*Config, error) {
	c := &Config{}

	if v, ok := layer.GetByPath(data, PathOptionAsAlt); ok {
		opt, err := decodeOptionAsAlt(v)
		if err != nil {
			return nil, err
		}
		c.Input.MacOSOptionAsAlt = opt
	}

	name, err := stringSetting(data, PathPlatform, "auto")
	if err != nil {
		return nil, err
	}
	c.Input.PlatformName = strings.ToLower(strings.TrimSpace(name))
	if c.Input.PlatformName == "" {
		c.Input.PlatformName = "auto"
	}
	c.Input.Platform, err = key.ParsePlatform(c.Input.PlatformName)
	if err != nil {
		return nil, &ValidationError{Path: PathPlatform, Message: "unknown platform", Value: name, Err: err}
	}

	c.Logging.Level, err = stringSetting(data, PathLogLevel, "info")
	if err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// decodeOptionAsAlt accepts a bool or one of the policy names.
func decodeOptionAsAlt(v any) (key.OptionAsAlt, error) {
	switch val := v.(type) {
	case bool:
		if val {
			return key.OptionAsAltTrue, nil
		}
		return key.OptionAsAltFalse, nil
	case string:
		opt, err := key.ParseOptionAsAlt(val)
		if err != nil {
			return 0, &ValidationError{
				Path:    PathOptionAsAlt,
				Message: `must be true, false, "left" or "right"`,
				Value:   val,
				Err:     err,
			}
		}
		return opt, nil
	default:
		return 0, &TypeError{Path: PathOptionAsAlt, Expected: "bool or string", Actual: typeName(v)}
	}
}

func stringSetting(data map[string]any, path, def string) (string, error) {
	v, ok := layer.GetByPath(data, path)
	if !ok {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

// typeName returns a user-facing name for a decoded value's type.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case string:
		return "string"
	case int, int64, uint64:
		return "integer"
	case float64:
		return "float"
	case []any:
		return "array"
	case map[string]any:
		return "table"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// DefaultPath returns the config file looked up when none is given:
// keynorm.toml in the user config directory.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "keynorm", "keynorm.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "keynorm", "keynorm.toml")
}
