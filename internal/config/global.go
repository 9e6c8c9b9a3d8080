// Package config loads pysplit configuration.
//
// Two configuration scopes are supported:
//
// 1. Global configuration (~/.pysplit/config.yml)
//   - Machine-wide settings shared by every repository
//   - Location of the embedded Python runtime used by output.compile_check
//   - Loaded via LoadGlobalConfig()
//
// 2. Repository configuration (<repo>/.pysplit/config.yml)
//   - Output, import resolution, method decomposition, git and filter settings
//   - Loaded via Load() / LoadConfigFromDir()
//
// Both read PYSPLIT_* environment variables, which win over file values.
package config

// GlobalConfig holds machine-wide configuration.
// Loaded from ~/.pysplit/config.yml (not the repository's .pysplit/config.yml).
type GlobalConfig struct {
	Runtime RuntimeConfig `yaml:"runtime" mapstructure:"runtime"`
}

// RuntimeConfig locates the embedded interpreter used for compile checks.
type RuntimeConfig struct {
	Dir            string `yaml:"dir" mapstructure:"dir"`                         // extraction directory
	CompileTimeout int    `yaml:"compile_timeout" mapstructure:"compile_timeout"` // seconds per compile check
}
