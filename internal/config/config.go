// Package config handles settings for genpass.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/acolita/genpass/internal/adapters/realfs"
	"github.com/acolita/genpass/internal/ports"
)

const appName = "genpass"

// Config represents the top-level settings.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Profiles ProfilesConfig `yaml:"profiles"`
	Generate GenerateConfig `yaml:"generate"`
	MCP      MCPConfig      `yaml:"mcp"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level    string `yaml:"level"`    // "debug", "info", "warn", "error"
	Sanitize bool   `yaml:"sanitize"` // redact sensitive attributes
}

// ProfilesConfig defines where profiles live.
type ProfilesConfig struct {
	Dir     string `yaml:"dir"`     // defaults to <config dir>/genpass/profiles
	Default string `yaml:"default"` // profile used when --profile is not given
}

// GenerateConfig defines CLI generation limits.
type GenerateConfig struct {
	Workers  int `yaml:"workers"`   // parallel generation workers
	MaxCount int `yaml:"max_count"` // upper bound for --count
}

// MCPConfig defines limits for the MCP server.
type MCPConfig struct {
	RatePerSecond float64 `yaml:"rate_per_second"` // password_generate calls per second
	Burst         int     `yaml:"burst"`
	MaxCount      int     `yaml:"max_count"` // upper bound for the count argument
}

// Defaults applied by DefaultConfig and Validate.
const (
	DefaultLogLevel      = "warn"
	DefaultWorkers       = 1
	DefaultMaxCount      = 1000
	DefaultMCPRate       = 5.0
	DefaultMCPBurst      = 10
	DefaultMCPMaxCount   = 100
	DefaultProfileSubdir = "profiles"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Sanitize: true,
		},
		Profiles: ProfilesConfig{
			Default: "default",
		},
		Generate: GenerateConfig{
			Workers:  DefaultWorkers,
			MaxCount: DefaultMaxCount,
		},
		MCP: MCPConfig{
			RatePerSecond: DefaultMCPRate,
			Burst:         DefaultMCPBurst,
			MaxCount:      DefaultMCPMaxCount,
		},
	}
}

func fileSystem(fsys []ports.FileSystem) ports.FileSystem {
	if len(fsys) > 0 && fsys[0] != nil {
		return fsys[0]
	}
	return realfs.New()
}

// Dir returns $XDG_CONFIG_HOME/genpass or ~/.config/genpass.
// An optional FileSystem can be passed for testing; if omitted, the real OS is used.
func Dir(fsys ...ports.FileSystem) string {
	f := fileSystem(fsys)
	dir := f.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := f.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, appName)
}

// DefaultConfigPath returns the default config file path:
// $XDG_CONFIG_HOME/genpass/config.yaml or ~/.config/genpass/config.yaml
func DefaultConfigPath(fsys ...ports.FileSystem) string {
	dir := Dir(fsys...)
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// ProfileDir returns the configured profile directory with a leading ~
// expanded, or the default under Dir.
func (c *Config) ProfileDir(fsys ...ports.FileSystem) string {
	f := fileSystem(fsys)
	dir := c.Profiles.Dir
	if dir == "" {
		return filepath.Join(Dir(f), DefaultProfileSubdir)
	}
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		if home, err := f.UserHomeDir(); err == nil {
			dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
		}
	}
	return dir
}

// Load loads configuration from a YAML file. A missing file yields defaults.
// An optional FileSystem can be passed for testing; if omitted, the real OS is used.
func Load(path string, fsys ...ports.FileSystem) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := fileSystem(fsys).ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return cfg, nil
}

// Validate fixes up out-of-range values and rejects unusable ones.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	case "":
		c.Logging.Level = DefaultLogLevel
	default:
		return fmt.Errorf("invalid logging level %q", c.Logging.Level)
	}

	if c.Profiles.Default == "" {
		c.Profiles.Default = "default"
	}
	if strings.ContainsAny(c.Profiles.Default, `/\`) || strings.HasPrefix(c.Profiles.Default, ".") {
		return fmt.Errorf("invalid default profile name %q", c.Profiles.Default)
	}

	if c.Generate.Workers <= 0 {
		c.Generate.Workers = DefaultWorkers
	}
	if c.Generate.MaxCount <= 0 {
		c.Generate.MaxCount = DefaultMaxCount
	}

	if c.MCP.RatePerSecond < 0 {
		return fmt.Errorf("mcp.rate_per_second must not be negative, got %g", c.MCP.RatePerSecond)
	}
	if c.MCP.RatePerSecond == 0 {
		c.MCP.RatePerSecond = DefaultMCPRate
	}
	if c.MCP.Burst <= 0 {
		c.MCP.Burst = DefaultMCPBurst
	}
	if c.MCP.MaxCount <= 0 {
		c.MCP.MaxCount = DefaultMCPMaxCount
	}

	return nil
}

// Save writes the configuration to a YAML file, creating its directory.
// An optional FileSystem can be passed for testing; if omitted, the real OS is used.
func Save(cfg *Config, path string, fsys ...ports.FileSystem) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	f := fileSystem(fsys)
	if err := f.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return f.WriteFile(path, data, 0o644)
}
