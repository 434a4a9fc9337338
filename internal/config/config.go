// Package config loads the storefront configuration from YAML with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the storefront configuration.
type Config struct {
	API struct {
		// BaseURL is the backend API root.
		BaseURL string `yaml:"base_url"`

		// Timeout bounds each request. Zero means the client default.
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"api"`

	Credential struct {
		// Path overrides the default credential file location.
		Path string `yaml:"path"`
	} `yaml:"credential"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// Default returns the default configuration.
func Default() Config {
	var cfg Config
	cfg.API.BaseURL = "http://localhost:8080/api"
	cfg.API.Timeout = 30 * time.Second
	cfg.Log.Level = "info"
	return cfg
}

// LoadFromPath loads configuration from a YAML file, applying defaults
// for unset fields and environment overrides on top.
func LoadFromPath(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnv()
	if cfg.API.BaseURL == "" {
		return cfg, fmt.Errorf("api.base_url is required")
	}
	return cfg, nil
}

// LoadOrDefault loads configuration from path, or returns the defaults
// (with environment overrides) when the file is absent.
func LoadOrDefault(path string) Config {
	cfg, err := LoadFromPath(path)
	if err != nil {
		cfg = Default()
		cfg.applyEnv()
	}
	return cfg
}

// applyEnv overrides fields from WISHCRATE_* environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("WISHCRATE_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("WISHCRATE_CREDENTIAL_PATH"); v != "" {
		c.Credential.Path = v
	}
	if v := os.Getenv("WISHCRATE_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}
