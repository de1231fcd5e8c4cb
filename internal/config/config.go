// Package config loads pluginmap settings from the environment and .env files.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/centraunit/pluginmap"
	"github.com/go-logr/logr"
	"github.com/joho/godotenv"
)

// Environment keys read by Load.
const (
	EnvDuplicatePolicy = "PLUGINMAP_DUPLICATE_POLICY"
	EnvAutoConcrete    = "PLUGINMAP_AUTO_CONCRETE"
	EnvLogLevel        = "PLUGINMAP_LOG_LEVEL"
	EnvLogDevelopment  = "PLUGINMAP_LOG_DEVELOPMENT"
)

// Config holds the registry settings and the logger settings of the demo.
type Config struct {
	DuplicatePolicy pluginmap.DuplicatePolicy
	AutoConcrete    bool
	Log             LogConfig
}

// LogConfig selects the zap logger built by the demo.
type LogConfig struct {
	// Level is the logr verbosity; 1 logs compilation and failures, 2 every build.
	Level       int
	Development bool
}

// Load reads the given .env files (".env" if none) when present and builds a
// Config from the environment. Variables already set take precedence over
// file contents.
func Load(envFiles ...string) (*Config, error) {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	policy, err := pluginmap.ParseDuplicatePolicy(os.Getenv(EnvDuplicatePolicy))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EnvDuplicatePolicy, err)
	}
	autoConcrete, err := envBool(EnvAutoConcrete, true)
	if err != nil {
		return nil, err
	}
	level, err := envInt(EnvLogLevel, 0)
	if err != nil {
		return nil, err
	}
	development, err := envBool(EnvLogDevelopment, true)
	if err != nil {
		return nil, err
	}

	return &Config{
		DuplicatePolicy: policy,
		AutoConcrete:    autoConcrete,
		Log:             LogConfig{Level: level, Development: development},
	}, nil
}

// Options converts the configuration into registry options using log.
func (c *Config) Options(log logr.Logger) []pluginmap.Option {
	return []pluginmap.Option{
		pluginmap.WithLogger(log),
		pluginmap.WithDuplicatePolicy(c.DuplicatePolicy),
		pluginmap.WithAutoConcrete(c.AutoConcrete),
	}
}

func envBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return i, nil
}
