package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/jsoncmp/internal/models"
)

// Views supported by the output stage
const (
	ViewSide    = "side"
	ViewList    = "list"
	ViewJSON    = "json"
	ViewSummary = "summary"
)

// Config represents the complete configuration for jsoncmp
type Config struct {
	SortKeys bool         `yaml:"sort_keys"`
	View     string       `yaml:"view"`
	Color    bool         `yaml:"color"`
	Width    int          `yaml:"width"`
	Ignore   []string     `yaml:"ignore"`
	Colors   ColorsConfig `yaml:"colors"`
	Dev      DevConfig    `yaml:"dev"`

	// parsed Ignore entries (not serialized)
	ignorePaths []models.Path
}

// ColorsConfig sets the colour used per difference kind
type ColorsConfig struct {
	TypeMismatch  string `yaml:"type_mismatch"`
	ValueMismatch string `yaml:"value_mismatch"`
	Missing       string `yaml:"missing"`
	Gutter        string `yaml:"gutter"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// Overrides carries the command line values. Nil pointers and zero values
// mean the flag was not given.
type Overrides struct {
	SortKeys *bool
	View     string
	Color    *bool
	Width    int
	Ignore   []string
	Debug    bool
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		SortKeys: true,
		View:     ViewSide,
		Color:    true,
		Width:    0,
		Ignore:   []string{},
		Colors: ColorsConfig{
			TypeMismatch:  "#d75fd7",
			ValueMismatch: "#d7af00",
			Missing:       "#ff5f5f",
			Gutter:        "#808080",
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsoncmp.yml", ".jsoncmp.yaml", "jsoncmp.yml", "jsoncmp.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks the view, width, colours and ignore paths, and caches the
// parsed ignore paths.
func (c *Config) Validate() error {
	c.View = strings.ToLower(strings.TrimSpace(c.View))
	switch c.View {
	case ViewSide, ViewList, ViewJSON, ViewSummary:
	default:
		return fmt.Errorf("invalid view '%s': must be one of side, list, json, summary", c.View)
	}

	if c.Width < 0 {
		return fmt.Errorf("invalid width %d: must not be negative", c.Width)
	}

	for name, value := range map[string]string{
		"type_mismatch":  c.Colors.TypeMismatch,
		"value_mismatch": c.Colors.ValueMismatch,
		"missing":        c.Colors.Missing,
		"gutter":         c.Colors.Gutter,
	} {
		if value != "" && !hexColor.MatchString(value) {
			return fmt.Errorf("invalid colour '%s' for %s: expected #rgb or #rrggbb", value, name)
		}
	}

	paths := make([]models.Path, 0, len(c.Ignore))
	for _, raw := range c.Ignore {
		p, err := models.ParsePath(raw)
		if err != nil {
			return fmt.Errorf("invalid ignore path '%s': %w", raw, err)
		}
		paths = append(paths, p)
	}
	c.ignorePaths = paths

	return nil
}

// IgnorePaths returns the parsed ignore list. Validate must have been called.
func (c *Config) IgnorePaths() []models.Path {
	return c.ignorePaths
}

// ApplyCLI applies command line overrides on top of c and re-validates.
// Flags that were given win over file values; ignore paths are appended.
func (c *Config) ApplyCLI(o Overrides) error {
	if o.SortKeys != nil {
		c.SortKeys = *o.SortKeys
	}
	if o.View != "" {
		c.View = o.View
	}
	if o.Color != nil {
		c.Color = *o.Color
	}
	if o.Width > 0 {
		c.Width = o.Width
	}
	c.Ignore = append(c.Ignore, o.Ignore...)
	if o.Debug {
		c.Dev.Debug = true
	}
	return c.Validate()
}

// LoadConfigWithCLI loads config with CLI argument precedence:
// CLI > config file > defaults. An empty configPath uses the defaults.
func LoadConfigWithCLI(configPath string, o Overrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if err := cfg.ApplyCLI(o); err != nil {
		return nil, err
	}
	return cfg, nil
}
