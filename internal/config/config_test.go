package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jsoncmp/internal/models"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".jsoncmp.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func boolPtr(b bool) *bool { return &b }

func TestConfig_DefaultValues(t *testing.T) {
	cfg := NewConfig()

	assert.True(t, cfg.SortKeys)
	assert.Equal(t, ViewSide, cfg.View)
	assert.True(t, cfg.Color)
	assert.Equal(t, 0, cfg.Width)
	assert.Empty(t, cfg.Ignore)
	assert.Equal(t, "#ff5f5f", cfg.Colors.Missing)
	assert.False(t, cfg.Dev.Debug)
	require.NoError(t, cfg.Validate())
}

func TestConfig_LoadFromYAML(t *testing.T) {
	path := writeConfig(t, `
sort_keys: false
view: list
color: false
width: 120
ignore:
  - /metadata/updated_at
  - /items/[0]
colors:
  type_mismatch: "#ff00ff"
  missing: "#f00"
dev:
  debug: true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.False(t, cfg.SortKeys)
	assert.Equal(t, ViewList, cfg.View)
	assert.False(t, cfg.Color)
	assert.Equal(t, 120, cfg.Width)
	assert.Equal(t, "#ff00ff", cfg.Colors.TypeMismatch)
	assert.Equal(t, "#f00", cfg.Colors.Missing)
	// untouched fields keep their defaults
	assert.Equal(t, "#d7af00", cfg.Colors.ValueMismatch)
	assert.True(t, cfg.Dev.Debug)

	paths := cfg.IgnorePaths()
	require.Len(t, paths, 2)
	assert.True(t, paths[0].Equal(models.Root().Child("metadata").Child("updated_at")))
	assert.True(t, paths[1].Equal(models.Root().Child("items").Index(0)))
}

func TestConfig_LoadNonExistentFile(t *testing.T) {
	_, err := LoadConfig("/non/existent/config.yml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no such file or directory")
}

func TestConfig_LoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, `
view: list
ignore: [unclosed array
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults",
			mutate: func(*Config) {},
		},
		{
			name:   "view is case insensitive",
			mutate: func(c *Config) { c.View = " JSON " },
		},
		{
			name:    "unknown view",
			mutate:  func(c *Config) { c.View = "tree" },
			wantErr: "invalid view 'tree'",
		},
		{
			name:    "negative width",
			mutate:  func(c *Config) { c.Width = -1 },
			wantErr: "invalid width -1",
		},
		{
			name:    "bad colour",
			mutate:  func(c *Config) { c.Colors.Gutter = "grey" },
			wantErr: "invalid colour 'grey' for gutter",
		},
		{
			name:    "bad ignore path",
			mutate:  func(c *Config) { c.Ignore = []string{"metadata"} },
			wantErr: "invalid ignore path 'metadata'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_InvalidPathWrapsSentinel(t *testing.T) {
	cfg := NewConfig()
	cfg.Ignore = []string{"no-slash"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidPath)
}

func TestConfig_FindConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	nestedDir := filepath.Join(tmpDir, "project", "subdir")
	require.NoError(t, os.MkdirAll(nestedDir, 0o755))

	// Config file in project root
	configPath := filepath.Join(tmpDir, "project", ".jsoncmp.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(`view: "list"`), 0o644))

	originalWd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(originalWd) }()

	require.NoError(t, os.Chdir(nestedDir))

	// Should find it in the parent directory
	foundPath := FindConfigFile()
	require.NotEmpty(t, foundPath, "Should find config file")

	foundContent, err := os.ReadFile(foundPath)
	require.NoError(t, err)
	assert.Contains(t, string(foundContent), `view: "list"`)
}

func TestConfig_FindConfigFileNotFound(t *testing.T) {
	tmpDir := t.TempDir()

	originalWd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(originalWd) }()

	require.NoError(t, os.Chdir(tmpDir))

	assert.Empty(t, FindConfigFile())
}

func TestConfig_ApplyCLI(t *testing.T) {
	cfg := NewConfig()
	cfg.Ignore = []string{"/a"}
	require.NoError(t, cfg.Validate())

	err := cfg.ApplyCLI(Overrides{
		SortKeys: boolPtr(false),
		View:     "summary",
		Color:    boolPtr(false),
		Width:    80,
		Ignore:   []string{"/b/[1]"},
		Debug:    true,
	})
	require.NoError(t, err)

	assert.False(t, cfg.SortKeys)
	assert.Equal(t, ViewSummary, cfg.View)
	assert.False(t, cfg.Color)
	assert.Equal(t, 80, cfg.Width)
	assert.Equal(t, []string{"/a", "/b/[1]"}, cfg.Ignore)
	assert.Len(t, cfg.IgnorePaths(), 2)
	assert.True(t, cfg.Dev.Debug)
}

func TestConfig_ApplyCLIInvalidView(t *testing.T) {
	cfg := NewConfig()
	err := cfg.ApplyCLI(Overrides{View: "table"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid view")
}

func TestLoadConfigWithPrecedence(t *testing.T) {
	path := writeConfig(t, `
sort_keys: false
view: list
color: false
width: 100
`)

	cfg, err := LoadConfigWithCLI(path, Overrides{
		SortKeys: boolPtr(true),
		Width:    60,
	})
	require.NoError(t, err)

	// CLI > config file > defaults
	assert.True(t, cfg.SortKeys)        // From CLI
	assert.Equal(t, 60, cfg.Width)      // From CLI
	assert.Equal(t, ViewList, cfg.View) // From config file
	assert.False(t, cfg.Color)          // From config file
}

func TestLoadConfigWithPrecedence_NoOverrides(t *testing.T) {
	path := writeConfig(t, `
view: json
`)

	cfg, err := LoadConfigWithCLI(path, Overrides{})
	require.NoError(t, err)

	assert.Equal(t, ViewJSON, cfg.View)
	assert.True(t, cfg.SortKeys) // Default value
	assert.True(t, cfg.Color)    // Default value
}

func TestLoadConfigWithPrecedence_NoFile(t *testing.T) {
	cfg, err := LoadConfigWithCLI("", Overrides{View: "list"})
	require.NoError(t, err)
	assert.Equal(t, ViewList, cfg.View)
}
