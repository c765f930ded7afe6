// Package config provides reading and writing of vgrep configuration.
// Supports both global (~/.vgrep/config.yaml) and local (.vgrep/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to the scope the config was loaded from.
//
// The mount table lives here: which workspace prefixes are backed by a
// store database. Classification of search paths is driven entirely by
// these declarations, so a missing config simply means every path is
// local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrInvalidMount is returned for unusable mount declarations.
	ErrInvalidMount = errors.New("invalid mount declaration")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.vgrep/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is workspace-specific config in .vgrep/config.yaml
	ScopeLocal
)

// Mount declares one substrate-backed subtree.
type Mount struct {
	Prefix string `yaml:"prefix"`         // Workspace prefix, e.g. "docs"
	Store  string `yaml:"store"`          // Store database file
	Root   string `yaml:"root,omitempty"` // Native root inside the store; defaults to prefix
}

// Config contains configuration for vgrep.
type Config struct {
	Mounts []Mount `yaml:"mounts,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks every mount declaration: prefixes and store files must
// be present and prefixes must be unique, otherwise classification would
// be ambiguous.
func (c *Config) Validate() error {
	seen := map[string]bool{}
	for _, m := range c.Mounts {
		if m.Prefix == "" {
			return fmt.Errorf("%w: empty prefix", ErrInvalidMount)
		}
		if m.Store == "" {
			return fmt.Errorf("%w: mount %q has no store", ErrInvalidMount, m.Prefix)
		}
		if seen[m.Prefix] {
			return fmt.Errorf("%w: duplicate prefix %q", ErrInvalidMount, m.Prefix)
		}
		seen[m.Prefix] = true
	}
	return nil
}

// LocalPath returns the path to the local (workspace) config file.
func LocalPath() string {
	return filepath.Join(".vgrep", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file:
// ~/.vgrep/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".vgrep", "config.yaml")
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
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
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
