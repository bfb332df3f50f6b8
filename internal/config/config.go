// Package config provides configuration management for nhl.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/open-cli-collective/notehighlight-cli/pkg/pagexml"
)

// Config holds the nhl configuration.
type Config struct {
	URL          string `yaml:"url"`
	Email        string `yaml:"email"`
	APIToken     string `yaml:"api_token"`
	Font         string `yaml:"font,omitempty"`
	FontPolicy   string `yaml:"font_policy,omitempty"`
	DefaultFont  string `yaml:"default_font,omitempty"`
	Highlighter  string `yaml:"highlighter,omitempty"`
	OutputFormat string `yaml:"output_format,omitempty"`
}

// Validate checks that all required fields are present and valid.
func (c *Config) Validate() error {
	if c.URL == "" {
		return errors.New("url is required")
	}
	if c.Email == "" {
		return errors.New("email is required")
	}
	if c.APIToken == "" {
		return errors.New("api_token is required")
	}

	if !strings.HasPrefix(c.URL, "https://") && !strings.HasPrefix(c.URL, "http://") {
		return errors.New("url must use http or https")
	}

	if !pagexml.FontPolicy(c.FontPolicy).Valid() {
		return fmt.Errorf("unknown font_policy %q (use empty, omit or default)", c.FontPolicy)
	}
	if pagexml.FontPolicy(c.FontPolicy) == pagexml.FontPolicyDefault && c.DefaultFont == "" {
		return errors.New("default_font is required when font_policy is default")
	}

	return nil
}

// NormalizeURL trims trailing slashes from the service URL.
func (c *Config) NormalizeURL() {
	c.URL = strings.TrimRight(c.URL, "/")
}

// BuildOptions returns the page builder options described by the config.
func (c *Config) BuildOptions() pagexml.BuildOptions {
	return pagexml.BuildOptions{
		Font:        c.Font,
		FontPolicy:  pagexml.FontPolicy(c.FontPolicy),
		DefaultFont: c.DefaultFont,
	}
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty.
func (c *Config) LoadFromEnv() {
	if url := os.Getenv("NHL_URL"); url != "" {
		c.URL = url
	}
	if email := os.Getenv("NHL_EMAIL"); email != "" {
		c.Email = email
	}
	if token := os.Getenv("NHL_API_TOKEN"); token != "" {
		c.APIToken = token
	}
	if font := os.Getenv("NHL_FONT"); font != "" {
		c.Font = font
	}
	if hl := os.Getenv("NHL_HIGHLIGHTER"); hl != "" {
		c.Highlighter = hl
	}
}

// EnvVars lists the environment variables read by LoadFromEnv.
var EnvVars = []string{"NHL_URL", "NHL_EMAIL", "NHL_API_TOKEN", "NHL_FONT", "NHL_HIGHLIGHTER"}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "nhl", "config.yml")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".nhl", "config.yml")
	}

	return filepath.Join(home, ".config", "nhl", "config.yml")
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// user read/write only, the file holds the API token
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from file and overrides with environment variables.
// A missing file is not an error.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = &Config{}
	}

	cfg.LoadFromEnv()
	return cfg, nil
}

// Resolve loads the config at path (the default path when empty), applies
// environment overrides and validates the result.
func Resolve(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	cfg, err := LoadWithEnv(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w (run 'nhl init' to configure)", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w (run 'nhl init' to configure)", err)
	}

	return cfg, nil
}
