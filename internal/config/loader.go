package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir    string
	configFile string
}

// NewLoader creates a new configuration loader for the given repository root.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// NewFileLoader creates a loader that reads an explicit config file instead of
// searching the repository's .pysplit directory. A missing file is an error.
func NewFileLoader(path string) Loader {
	return &loader{
		configFile: path,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (PYSPLIT_*)
// 2. Config file (.pysplit/config.yml or .pysplit/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(l.rootDir, ".pysplit"))
	}

	// Replace . with _ in env var names (e.g., PYSPLIT_GIT_BRANCH)
	v.SetEnvPrefix("PYSPLIT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("output.extension")
	v.BindEnv("output.verify")
	v.BindEnv("output.compile_check")
	v.BindEnv("imports.definition_mode")
	v.BindEnv("imports.method_mode")
	v.BindEnv("methods.attribute_order")
	v.BindEnv("git.branch")
	v.BindEnv("git.method_branch")
	v.BindEnv("git.commit_message")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - we'll use defaults + env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("output.extension", defaults.Output.Extension)
	v.SetDefault("output.verify", defaults.Output.Verify)
	v.SetDefault("output.compile_check", defaults.Output.CompileCheck)

	v.SetDefault("imports.definition_mode", defaults.Imports.DefinitionMode)
	v.SetDefault("imports.method_mode", defaults.Imports.MethodMode)

	v.SetDefault("methods.attribute_order", defaults.Methods.AttributeOrder)

	v.SetDefault("git.branch", defaults.Git.Branch)
	v.SetDefault("git.method_branch", defaults.Git.MethodBranch)
	v.SetDefault("git.commit_message", defaults.Git.CommitMessage)

	v.SetDefault("filter.skip", defaults.Filter.Skip)
}

// LoadConfigFromDir loads configuration from a specific directory.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}

// LoadConfigFile loads configuration from an explicit file path.
func LoadConfigFile(path string) (*Config, error) {
	return NewFileLoader(path).Load()
}
