// Package config provides reading and writing of llmfs configuration.
// Supports both global (~/.llmfs/config.yaml) and local (.llmfs/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

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

// Dir is the name of the llmfs state directory, both in the home directory
// and in a workspace.
const Dir = ".llmfs"

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.llmfs/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is workspace-specific config in .llmfs/config.yaml
	ScopeLocal
)

// Author identifies who is driving the tools, recorded in the audit log.
type Author struct {
	Name  string `yaml:"name,omitempty"`
	Email string `yaml:"email,omitempty"`
}

// Search holds grep options.
type Search struct {
	MaxMatches *int    `yaml:"max_matches,omitempty"`
	Timeout    *string `yaml:"timeout,omitempty"`
}

// Ripgrep holds binary provisioning options.
type Ripgrep struct {
	Version  string `yaml:"version,omitempty"`
	CacheDir string `yaml:"cache_dir,omitempty"`
	System   *bool  `yaml:"system,omitempty"`
}

// Read holds read_file options.
type Read struct {
	Limit *int `yaml:"limit,omitempty"`
}

// Shell holds run_shell_command options.
type Shell struct {
	Timeout *string `yaml:"timeout,omitempty"`
}

// Web holds web_fetch options.
type Web struct {
	Timeout    *string `yaml:"timeout,omitempty"`
	MaxContent *int    `yaml:"max_content,omitempty"`
}

// Limits holds size limit configuration options.
type Limits struct {
	MaxPath       *int   `yaml:"max_path,omitempty"`
	MaxContent    *int64 `yaml:"max_content,omitempty"`
	MaxLineLength *int   `yaml:"max_line_length,omitempty"`
}

// Defaults applied when a value is not configured.
const (
	DefaultMaxMatches      = 100
	DefaultSearchTimeout   = 30 * time.Second
	DefaultRipgrepVersion  = "14.1.1"
	DefaultRipgrepCacheDir = "bin"
	DefaultReadLimit       = 2000
	DefaultShellTimeout    = 120 * time.Second
	DefaultWebTimeout      = 10 * time.Second
	DefaultWebMaxContent   = 100000
	DefaultMaxPath         = 1024
	DefaultMaxContent      = 100 * 1024 * 1024 // 100 MB
	DefaultMaxLineLength   = 10 * 1024 * 1024  // 10 MB
)

// Validation bounds for configuration values.
const (
	MinMaxPath       = 1
	MaxMaxPath       = 65536
	MinMaxContent    = 1
	MaxMaxContent    = 10 * 1024 * 1024 * 1024 // 10 GB
	MinMaxLineLength = 1
	MaxMaxLineLength = 1024 * 1024 * 1024 // 1 GB
	MaxTimeout       = time.Hour
)

// Config contains configuration for llmfs.
type Config struct {
	Author  Author  `yaml:"author,omitempty"`
	Search  Search  `yaml:"search,omitempty"`
	Ripgrep Ripgrep `yaml:"ripgrep,omitempty"`
	Read    Read    `yaml:"read,omitempty"`
	Shell   Shell   `yaml:"shell,omitempty"`
	Web     Web     `yaml:"web,omitempty"`
	Limits  Limits  `yaml:"limits,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	positive := []struct {
		key string
		v   *int
	}{
		{"search.max_matches", c.Search.MaxMatches},
		{"read.limit", c.Read.Limit},
		{"web.max_content", c.Web.MaxContent},
	}
	for _, p := range positive {
		if p.v != nil && *p.v < 1 {
			return fmt.Errorf("%w: %s must be a positive integer, got %d", ErrInvalidValue, p.key, *p.v)
		}
	}

	durations := []struct {
		key string
		v   *string
	}{
		{"search.timeout", c.Search.Timeout},
		{"shell.timeout", c.Shell.Timeout},
		{"web.timeout", c.Web.Timeout},
	}
	for _, d := range durations {
		if d.v == nil {
			continue
		}
		if _, err := parseTimeout(d.key, *d.v); err != nil {
			return err
		}
	}

	if c.Limits.MaxPath != nil {
		v := *c.Limits.MaxPath
		if v < MinMaxPath || v > MaxMaxPath {
			return fmt.Errorf("%w: max_path must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxPath, MaxMaxPath, v)
		}
	}
	if c.Limits.MaxContent != nil {
		v := *c.Limits.MaxContent
		if v < MinMaxContent || v > MaxMaxContent {
			return fmt.Errorf("%w: max_content must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxContent, MaxMaxContent, v)
		}
	}
	if c.Limits.MaxLineLength != nil {
		v := *c.Limits.MaxLineLength
		if v < MinMaxLineLength || v > MaxMaxLineLength {
			return fmt.Errorf("%w: max_line_length must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxLineLength, MaxMaxLineLength, v)
		}
	}
	return nil
}

// parseTimeout parses a Go duration string bounded to (0, MaxTimeout].
func parseTimeout(key, s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 || d > MaxTimeout {
		return 0, fmt.Errorf("%w: %s must be a duration between 0s and %s (e.g. 30s), got %q",
			ErrInvalidValue, key, MaxTimeout, s)
	}
	return d, nil
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func durationOr(p *string, def time.Duration) time.Duration {
	if p == nil {
		return def
	}
	d, err := time.ParseDuration(*p)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// MaxMatches returns the grep match cap (defaults to 100).
func (c *Config) MaxMatches() int { return intOr(c.Search.MaxMatches, DefaultMaxMatches) }

// SearchTimeout returns the grep time budget (defaults to 30s).
func (c *Config) SearchTimeout() time.Duration {
	return durationOr(c.Search.Timeout, DefaultSearchTimeout)
}

// RipgrepVersion returns the ripgrep release to download.
func (c *Config) RipgrepVersion() string {
	if c.Ripgrep.Version == "" {
		return DefaultRipgrepVersion
	}
	return c.Ripgrep.Version
}

// RipgrepCacheDir returns where downloaded ripgrep binaries are kept.
// Defaults to "bin", relative to the process working directory.
func (c *Config) RipgrepCacheDir() string {
	if c.Ripgrep.CacheDir != "" {
		return c.Ripgrep.CacheDir
	}
	return DefaultRipgrepCacheDir
}

// RipgrepSystem reports whether an rg already on PATH may be used (defaults to true).
func (c *Config) RipgrepSystem() bool {
	if c.Ripgrep.System == nil {
		return true
	}
	return *c.Ripgrep.System
}

// ReadLimit returns the default number of lines read_file returns.
func (c *Config) ReadLimit() int { return intOr(c.Read.Limit, DefaultReadLimit) }

// ShellTimeout returns the run_shell_command time budget (defaults to 120s).
func (c *Config) ShellTimeout() time.Duration {
	return durationOr(c.Shell.Timeout, DefaultShellTimeout)
}

// WebTimeout returns the web_fetch time budget (defaults to 10s).
func (c *Config) WebTimeout() time.Duration {
	return durationOr(c.Web.Timeout, DefaultWebTimeout)
}

// WebMaxContent returns the character cap on converted web content.
func (c *Config) WebMaxContent() int { return intOr(c.Web.MaxContent, DefaultWebMaxContent) }

// MaxPath returns the maximum path length in bytes (defaults to 1024).
func (c *Config) MaxPath() int { return intOr(c.Limits.MaxPath, DefaultMaxPath) }

// MaxContent returns the maximum write size in bytes (defaults to 100 MB).
func (c *Config) MaxContent() int64 {
	if c.Limits.MaxContent == nil {
		return DefaultMaxContent
	}
	return *c.Limits.MaxContent
}

// MaxLineLength returns the maximum line length for scanning (defaults to 10 MB).
// Affects read_file and search_file_content on files with very long lines
// (e.g., minified JS/CSS, large JSON, base64 blobs).
func (c *Config) MaxLineLength() int { return intOr(c.Limits.MaxLineLength, DefaultMaxLineLength) }

// LocalPath returns the path to the local (workspace) config file.
func LocalPath() string {
	return filepath.Join(Dir, "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.llmfs/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, Dir, "config.yaml")
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
	return loadPath(pathForScope(scope), scope)
}

func loadPath(path string, scope Scope) (*Config, error) {
	if path == "" {
		return &Config{scope: scope}, nil
	}

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

// pathForScope returns the filesystem path for a given scope.
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
