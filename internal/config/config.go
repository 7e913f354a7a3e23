// Package config provides reading and writing of docq configuration.
// Supports both global (~/.docq/config.yaml) and local (.docq/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.docq/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is repository-specific config in .docq/config.yaml
	ScopeLocal
)

// Author identifies who made a change in the audit log.
type Author struct {
	Name string `yaml:"name,omitempty"`
}

// Query holds query engine settings.
type Query struct {
	Workers   *int   `yaml:"workers,omitempty"`
	BatchSize *int   `yaml:"batch_size,omitempty"`
	MaxLength *int   `yaml:"max_length,omitempty"`
	Schema    string `yaml:"schema,omitempty"`
}

// Limits holds size limit configuration options.
type Limits struct {
	MaxID   *int   `yaml:"max_id,omitempty"`
	MaxBody *int64 `yaml:"max_body,omitempty"`
}

// Defaults applied when not configured.
const (
	DefaultBatchSize = 512
	DefaultMaxLength = 16 * 1024
	DefaultMaxID     = 1024
	DefaultMaxBody   = 16 * 1024 * 1024 // 16 MB
)

// Validation bounds for configuration values.
const (
	MinWorkers   = 1
	MaxWorkers   = 1024
	MinBatchSize = 1
	MaxBatchSize = 1 << 20
	MinMaxLength = 1
	MaxMaxLength = 1024 * 1024
	MinMaxID     = 1
	MaxMaxID     = 65536
	MinMaxBody   = 1
	MaxMaxBody   = 1024 * 1024 * 1024 // 1 GB
)

// Config contains configuration for docq.
type Config struct {
	Author Author `yaml:"author,omitempty"`
	Query  Query  `yaml:"query,omitempty"`
	Limits Limits `yaml:"limits,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

func checkRange[T int | int64](name string, v *T, lo, hi T) error {
	if v == nil {
		return nil
	}
	if *v < lo || *v > hi {
		return fmt.Errorf("%w: %s must be between %d and %d, got %d", ErrInvalidValue, name, lo, hi, *v)
	}
	return nil
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	return errors.Join(
		checkRange("query.workers", c.Query.Workers, MinWorkers, MaxWorkers),
		checkRange("query.batch_size", c.Query.BatchSize, MinBatchSize, MaxBatchSize),
		checkRange("query.max_length", c.Query.MaxLength, MinMaxLength, MaxMaxLength),
		checkRange("limits.max_id", c.Limits.MaxID, MinMaxID, MaxMaxID),
		checkRange("limits.max_body", c.Limits.MaxBody, MinMaxBody, MaxMaxBody),
	)
}

// Workers returns the number of matching goroutines (defaults to GOMAXPROCS).
func (c *Config) Workers() int {
	if c.Query.Workers == nil {
		return runtime.GOMAXPROCS(0)
	}
	return *c.Query.Workers
}

// BatchSize returns the documents matched per batch (defaults to 512).
func (c *Config) BatchSize() int {
	if c.Query.BatchSize == nil {
		return DefaultBatchSize
	}
	return *c.Query.BatchSize
}

// MaxQueryLength returns the longest accepted query string in bytes.
func (c *Config) MaxQueryLength() int {
	if c.Query.MaxLength == nil {
		return DefaultMaxLength
	}
	return *c.Query.MaxLength
}

// SchemaPath returns the key schema file, resolved against the directory of
// the config file when relative. Empty means no key schema.
func (c *Config) SchemaPath() string {
	p := c.Query.Schema
	if p == "" || filepath.IsAbs(p) || c.path == "" {
		return p
	}
	if c.scope == ScopeLocal {
		// Local config lives in .docq/, schemas are given relative to the repo.
		return filepath.Join(filepath.Dir(filepath.Dir(c.path)), p)
	}
	return filepath.Join(filepath.Dir(c.path), p)
}

// MaxID returns the maximum document id length in bytes (defaults to 1024).
func (c *Config) MaxID() int {
	if c.Limits.MaxID == nil {
		return DefaultMaxID
	}
	return *c.Limits.MaxID
}

// MaxBody returns the maximum encoded document size in bytes (defaults to 16 MB).
func (c *Config) MaxBody() int64 {
	if c.Limits.MaxBody == nil {
		return DefaultMaxBody
	}
	return *c.Limits.MaxBody
}

// LocalPath returns the path to the local (repository) config file.
func LocalPath() string {
	return filepath.Join(".docq", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.docq/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".docq", "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}
	return LoadFile(path, scope)
}

// LoadFile reads configuration from path. A missing file yields defaults.
func LoadFile(path string, scope Scope) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
