// Package config provides YAML-based configuration for the generator CLI
// and its serve mode.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// AppConfig represents the root configuration structure.
type AppConfig struct {
	// Output configuration
	Output OutputConfig `yaml:"output"`

	// Generator configuration
	Generator GeneratorConfig `yaml:"generator"`

	// Server configuration (serve mode only)
	Server ServerConfig `yaml:"server"`
}

// OutputConfig contains plugin output settings.
type OutputConfig struct {
	Directory string `yaml:"directory"`
}

// GeneratorConfig contains normalization settings.
type GeneratorConfig struct {
	// MatrixSizing enables key-matrix based grid sizing by default.
	// The CLI flag overrides this per invocation.
	MatrixSizing bool `yaml:"matrixSizing"`
}

// ServerConfig contains HTTP server settings for serve mode.
type ServerConfig struct {
	Port                 int    `yaml:"port"`
	BindAddress          string `yaml:"bindAddress"`
	BodyLimit            string `yaml:"bodyLimit"`
	EnableRequestLogging bool   `yaml:"enableRequestLogging"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Output: OutputConfig{
			Directory: ".",
		},
		Generator: GeneratorConfig{
			MatrixSizing: false,
		},
		Server: ServerConfig{
			Port:                 8080,
			BindAddress:          "0.0.0.0",
			BodyLimit:            "4M",
			EnableRequestLogging: true,
		},
	}
}

// LoadConfig loads configuration from a YAML file. A missing file is not an
// error: the defaults are written to it so the user has something to edit.
func LoadConfig(configPath string) (*AppConfig, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := cfg.Save(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		cfg.applyEnvironmentOverrides()
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *AppConfig) Save(configPath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnvironmentOverrides lets deployment environments override the file.
func (c *AppConfig) applyEnvironmentOverrides() {
	if v := os.Getenv("QMK2SRGB_OUTDIR"); v != "" {
		c.Output.Directory = v
	}
	if v := os.Getenv("QMK2SRGB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("QMK2SRGB_BIND"); v != "" {
		c.Server.BindAddress = v
	}
}
