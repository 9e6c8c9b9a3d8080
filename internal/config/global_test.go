package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Global Config Loader:
// - LoadGlobalConfig() returns defaults under ~/.pysplit when no file exists
// - LoadGlobalConfig() loads ~/.pysplit/config.yml, merging with defaults
// - Environment variables override YAML values
// - Malformed YAML and non-positive timeouts are errors

func writeGlobalConfig(t *testing.T, home, content string) {
	t.Helper()
	dir := filepath.Join(home, ".pysplit")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(content), 0644))
}

func TestLoadGlobalConfig_MissingFile(t *testing.T) {
	// Note: Cannot use t.Parallel() with t.Setenv()
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, err := LoadGlobalConfig()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tempHome, ".pysplit", "runtime"), cfg.Runtime.Dir)
	assert.Equal(t, 120, cfg.Runtime.CompileTimeout)
}

func TestLoadGlobalConfig_PartialFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	writeGlobalConfig(t, tempHome, "runtime:\n  compile_timeout: 30\n")

	cfg, err := LoadGlobalConfig()
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Runtime.CompileTimeout)
	assert.Equal(t, filepath.Join(tempHome, ".pysplit", "runtime"), cfg.Runtime.Dir)
}

func TestLoadGlobalConfig_EnvOverrides(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	writeGlobalConfig(t, tempHome, "runtime:\n  dir: /file/runtime\n  compile_timeout: 30\n")

	t.Setenv("PYSPLIT_RUNTIME_DIR", "/env/runtime")
	t.Setenv("PYSPLIT_RUNTIME_COMPILE_TIMEOUT", "5")

	cfg, err := LoadGlobalConfig()
	require.NoError(t, err)

	assert.Equal(t, "/env/runtime", cfg.Runtime.Dir)
	assert.Equal(t, 5, cfg.Runtime.CompileTimeout)
}

func TestLoadGlobalConfig_Errors(t *testing.T) {
	t.Run("malformed yaml", func(t *testing.T) {
		tempHome := t.TempDir()
		t.Setenv("HOME", tempHome)
		writeGlobalConfig(t, tempHome, "runtime:\n  dir: \"unclosed\n")

		cfg, err := LoadGlobalConfig()
		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "failed to")
	})

	t.Run("non-positive timeout", func(t *testing.T) {
		tempHome := t.TempDir()
		t.Setenv("HOME", tempHome)
		writeGlobalConfig(t, tempHome, "runtime:\n  compile_timeout: 0\n")

		_, err := LoadGlobalConfig()
		assert.Error(t, err)
	})
}
