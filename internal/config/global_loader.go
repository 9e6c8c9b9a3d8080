package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// LoadGlobalConfig loads global configuration from ~/.pysplit/config.yml.
// Returns default values if the file doesn't exist (not an error).
// Environment variables override file values (PYSPLIT_* prefix).
func LoadGlobalConfig() (*GlobalConfig, error) {
	v := viper.New()

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	pysplitDir := filepath.Join(home, ".pysplit")

	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(pysplitDir)

	v.SetEnvPrefix("PYSPLIT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("runtime.dir")
	v.BindEnv("runtime.compile_timeout")

	v.SetDefault("runtime.dir", filepath.Join(pysplitDir, "runtime"))
	v.SetDefault("runtime.compile_timeout", 120)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &GlobalConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Runtime.CompileTimeout <= 0 {
		return nil, fmt.Errorf("runtime.compile_timeout must be positive, got %d", cfg.Runtime.CompileTimeout)
	}

	return cfg, nil
}
