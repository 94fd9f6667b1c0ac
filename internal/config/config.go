package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Remote roster endpoint the dashboard syncs with
	Remote RemoteConfig `yaml:"remote"`

	// Mock endpoint served by `rosterdash serve`
	Server ServerConfig `yaml:"server"`

	// Dashboard presentation settings
	Dashboard DashboardConfig `yaml:"dashboard"`

	// Diagnostics
	Log LogConfig `yaml:"log"`
}

type RemoteConfig struct {
	BaseURL string        `yaml:"base_url"` // e.g. http://localhost:4090
	Timeout time.Duration `yaml:"timeout"`  // Per-request HTTP timeout
}

type ServerConfig struct {
	Addr string `yaml:"addr"` // Listen address, e.g. ":4090"
}

type DashboardConfig struct {
	PageSize int `yaml:"page_size"` // Clients per page
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
	File   string `yaml:"file"`   // Log file used while the TUI owns the terminal
}

// DefaultConfigPath returns ~/.config/rosterdash/config.yaml
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		return filepath.Join(".", ".config", "rosterdash", "config.yaml")
	}
	return filepath.Join(homeDir, ".config", "rosterdash", "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	return &Config{
		Remote: RemoteConfig{
			BaseURL: "http://localhost:4090",
			Timeout: 10 * time.Second,
		},
		Server: ServerConfig{
			Addr: ":4090",
		},
		Dashboard: DashboardConfig{
			PageSize: 10,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			File:   filepath.Join(homeDir, ".config", "rosterdash", "rosterdash.log"),
		},
	}
}

// Load loads config from the given path, or returns defaults if file doesn't exist
func Load(path string) (*Config, error) {
	// If file doesn't exist, return defaults
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Parse YAML over the defaults so omitted keys keep their default
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Validate reports the first setting that cannot work
func (c *Config) Validate() error {
	u, err := url.Parse(c.Remote.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("remote.base_url must be an http(s) URL, got %q", c.Remote.BaseURL)
	}
	if c.Remote.Timeout < 0 {
		return errors.New("remote.timeout cannot be negative")
	}
	if c.Dashboard.PageSize < 1 {
		return fmt.Errorf("dashboard.page_size must be at least 1, got %d", c.Dashboard.PageSize)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	// Marshal to YAML
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	// Write to file
	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates the directory holding the log file
func (c *Config) EnsureDirectories() error {
	if c.Log.File == "" {
		return nil
	}
	return os.MkdirAll(filepath.Dir(c.Log.File), 0755)
}
