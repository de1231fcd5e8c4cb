package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/centraunit/pluginmap"
	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{EnvDuplicatePolicy, EnvAutoConcrete, EnvLogLevel, EnvLogDevelopment} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, pluginmap.ReplaceInPlace, cfg.DuplicatePolicy)
	assert.True(t, cfg.AutoConcrete)
	assert.Equal(t, 0, cfg.Log.Level)
	assert.True(t, cfg.Log.Development)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDuplicatePolicy, "reject")
	t.Setenv(EnvAutoConcrete, "false")
	t.Setenv(EnvLogLevel, "2")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, pluginmap.RejectDuplicates, cfg.DuplicatePolicy)
	assert.False(t, cfg.AutoConcrete)
	assert.Equal(t, 2, cfg.Log.Level)
	assert.Len(t, cfg.Options(logr.Discard()), 3)
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvLogLevel, "1")

	path := filepath.Join(t.TempDir(), ".env")
	content := EnvDuplicatePolicy + "=reject\n" + EnvLogLevel + "=2\n" + EnvLogDevelopment + "=false\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, pluginmap.RejectDuplicates, cfg.DuplicatePolicy)
	assert.False(t, cfg.Log.Development)
	// Already-set variables win over the file.
	assert.Equal(t, 1, cfg.Log.Level)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDuplicatePolicy, "merge")
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, EnvDuplicatePolicy)

	clearEnv(t)
	t.Setenv(EnvLogLevel, "loud")
	_, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, EnvLogLevel)
}
