package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Config System:
// - Default() returns valid configuration with all expected defaults
// - Load() uses defaults when no config file exists
// - Load() loads from .pysplit/config.yml and .pysplit/config.yaml
// - Load() merges config file with defaults
// - Environment variables override config file values and defaults
// - Load() returns error for malformed YAML
// - Load() returns error for invalid configuration values
// - Validate() rejects bad extensions, import modes, attribute orders,
//   empty branch/commit settings and uncompilable skip patterns
// - Validate() returns multiple errors for multiple invalid fields
// - LoadConfigFile() reads an explicit file and fails when it is missing
// - NewFileLoader() reads only its file; NewLoader() reads the repository directory

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	configDir := filepath.Join(dir, ".pysplit")
	require.NoError(t, os.MkdirAll(configDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, name), []byte(content), 0644))
}

func TestDefault_ReturnsValidConfiguration(t *testing.T) {
	cfg := Default()
	require.NotNil(t, cfg)

	assert.Equal(t, ".py", cfg.Output.Extension)
	assert.True(t, cfg.Output.Verify)
	assert.False(t, cfg.Output.CompileCheck)
	assert.Equal(t, ModeFiltered, cfg.Imports.DefinitionMode)
	assert.Equal(t, ModeFullCatalog, cfg.Imports.MethodMode)
	assert.Equal(t, OrderFirstSeen, cfg.Methods.AttributeOrder)
	assert.Equal(t, "split-functions", cfg.Git.Branch)
	assert.Equal(t, "split-methods", cfg.Git.MethodBranch)
	assert.Equal(t, "Split functions and methods into separate files", cfg.Git.CommitMessage)
	assert.Empty(t, cfg.Filter.Skip)

	assert.NoError(t, Validate(cfg))
}

func TestLoadConfig_UsesDefaultsWhenNoConfigFile(t *testing.T) {
	cfg, err := NewLoader(t.TempDir()).Load()
	require.NoError(t, err)

	defaults := Default()
	assert.Equal(t, defaults.Output, cfg.Output)
	assert.Equal(t, defaults.Imports, cfg.Imports)
	assert.Equal(t, defaults.Git, cfg.Git)
}

func TestLoadConfig_LoadsFromConfigYml(t *testing.T) {
	tempDir := t.TempDir()
	writeConfig(t, tempDir, "config.yml", `
output:
  extension: .pyi
  verify: false
  compile_check: true
imports:
  definition_mode: full-catalog
  method_mode: filtered
methods:
  attribute_order: sorted
git:
  branch: refactor/split
filter:
  skip:
    - "_*"
    - "test_*"
`)

	cfg, err := LoadConfigFromDir(tempDir)
	require.NoError(t, err)

	assert.Equal(t, ".pyi", cfg.Output.Extension)
	assert.False(t, cfg.Output.Verify)
	assert.True(t, cfg.Output.CompileCheck)
	assert.Equal(t, ModeFullCatalog, cfg.Imports.DefinitionMode)
	assert.Equal(t, ModeFiltered, cfg.Imports.MethodMode)
	assert.Equal(t, OrderSorted, cfg.Methods.AttributeOrder)
	assert.Equal(t, "refactor/split", cfg.Git.Branch)
	assert.Equal(t, []string{"_*", "test_*"}, cfg.Filter.Skip)

	// Unset keys fall back to defaults
	assert.Equal(t, "split-methods", cfg.Git.MethodBranch)
	assert.Equal(t, Default().Git.CommitMessage, cfg.Git.CommitMessage)
}

func TestLoadConfig_LoadsFromConfigYaml(t *testing.T) {
	tempDir := t.TempDir()
	writeConfig(t, tempDir, "config.yaml", "git:\n  commit_message: custom message\n")

	cfg, err := NewLoader(tempDir).Load()
	require.NoError(t, err)
	assert.Equal(t, "custom message", cfg.Git.CommitMessage)
}

func TestLoadConfig_EnvironmentVariablesOverrideConfigFile(t *testing.T) {
	// Note: Cannot use t.Parallel() with t.Setenv()
	tempDir := t.TempDir()
	writeConfig(t, tempDir, "config.yml", "git:\n  branch: from-file\noutput:\n  extension: .pyi\n")

	t.Setenv("PYSPLIT_GIT_BRANCH", "from-env")
	t.Setenv("PYSPLIT_IMPORTS_METHOD_MODE", "filtered")

	cfg, err := NewLoader(tempDir).Load()
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Git.Branch)
	assert.Equal(t, ModeFiltered, cfg.Imports.MethodMode)
	assert.Equal(t, ".pyi", cfg.Output.Extension)
}

func TestLoadConfig_EnvironmentVariablesOverrideDefaults(t *testing.T) {
	// Note: Cannot use t.Parallel() with t.Setenv()
	t.Setenv("PYSPLIT_OUTPUT_VERIFY", "false")
	t.Setenv("PYSPLIT_METHODS_ATTRIBUTE_ORDER", "sorted")

	cfg, err := NewLoader(t.TempDir()).Load()
	require.NoError(t, err)

	assert.False(t, cfg.Output.Verify)
	assert.Equal(t, OrderSorted, cfg.Methods.AttributeOrder)
}

func TestLoadConfig_ReturnsErrorForMalformedYaml(t *testing.T) {
	tempDir := t.TempDir()
	writeConfig(t, tempDir, "config.yml", "output:\n  extension: [unclosed\n")

	_, err := NewLoader(tempDir).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_ReturnsErrorForInvalidValues(t *testing.T) {
	tempDir := t.TempDir()
	writeConfig(t, tempDir, "config.yml", "imports:\n  definition_mode: everything\n")

	_, err := NewLoader(tempDir).Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidImportMode))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"empty extension", func(c *Config) { c.Output.Extension = "" }, ErrInvalidExtension},
		{"extension without dot", func(c *Config) { c.Output.Extension = "py" }, ErrInvalidExtension},
		{"extension with separator", func(c *Config) { c.Output.Extension = ".py/x" }, ErrInvalidExtension},
		{"unknown method mode", func(c *Config) { c.Imports.MethodMode = "some" }, ErrInvalidImportMode},
		{"unknown attribute order", func(c *Config) { c.Methods.AttributeOrder = "random" }, ErrInvalidAttributeOrder},
		{"empty branch", func(c *Config) { c.Git.Branch = "  " }, ErrEmptyBranch},
		{"empty method branch", func(c *Config) { c.Git.MethodBranch = "" }, ErrEmptyBranch},
		{"empty commit message", func(c *Config) { c.Git.CommitMessage = "" }, ErrEmptyCommitMessage},
		{"bad skip pattern", func(c *Config) { c.Filter.Skip = []string{"[unclosed"} }, ErrInvalidSkipPattern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := Validate(cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := Default()
	cfg.Output.Extension = ""
	cfg.Git.Branch = ""

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "invalid output extension")
	assert.Contains(t, err.Error(), "empty branch name")
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yml")
	require.NoError(t, os.WriteFile(path, []byte("git:\n  branch: custom-split\n"), 0644))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "custom-split", cfg.Git.Branch)
	assert.Equal(t, ".py", cfg.Output.Extension)

	_, err = LoadConfigFile(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)
}

func TestFileLoader_IgnoresRepositoryConfig(t *testing.T) {
	repo := t.TempDir()
	writeConfig(t, repo, "config.yml", "git:\n  branch: from-repo\n")
	path := filepath.Join(t.TempDir(), "explicit.yml")
	require.NoError(t, os.WriteFile(path, []byte("git:\n  branch: from-file\n"), 0644))

	loaders := map[string]Loader{
		"from-repo": NewLoader(repo),
		"from-file": NewFileLoader(path),
	}
	for want, l := range loaders {
		cfg, err := l.Load()
		require.NoError(t, err)
		assert.Equal(t, want, cfg.Git.Branch)
	}
}
