// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/hashicorp/hcl/v2/hclsimple"

	"presolar/internal/errors"
	"presolar/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Batch contains batch classification settings
	Batch BatchConfig `json:"batch"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Server contains HTTP API settings
	Server ServerConfig `json:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// BatchConfig contains batch classification settings
type BatchConfig struct {
	// Workers is the number of grains classified in parallel
	Workers int `json:"workers"`

	// StopOnError aborts a batch at the first invalid grain
	StopOnError bool `json:"stop_on_error"`

	// Compare reports grains whose computed type differs from the recorded one
	Compare bool `json:"compare"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format (cli, json, csv)
	DefaultFormat string `json:"default_format"`

	// ShowProbabilities includes the per-type probabilities
	ShowProbabilities bool `json:"show_probabilities"`
}

// ServerConfig contains HTTP API settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`

	// MaxBatchSize limits the grains accepted by one batch request
	MaxBatchSize int `json:"max_batch_size"`

	// ReadTimeoutSeconds bounds reading a request
	ReadTimeoutSeconds int `json:"read_timeout_seconds"`

	// MaxBodyBytes caps the size of a request body
	MaxBodyBytes int64 `json:"max_body_bytes"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Batch: BatchConfig{
			Workers:     runtime.NumCPU(),
			StopOnError: false,
			Compare:     false,
		},
		Output: OutputConfig{
			DefaultFormat:     "cli",
			ShowProbabilities: false,
		},
		Server: ServerConfig{
			Addr:               ":8080",
			MaxBatchSize:       10000,
			ReadTimeoutSeconds: 30,
			MaxBodyBytes:       32 << 20,
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath returns $HOME/.presolar/config.json
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "presolar.json"
	}
	return filepath.Join(homeDir, ".presolar", "config.json")
}

// Load loads configuration from a JSON or HCL file. A missing file yields
// the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Config("failed to read config file", err).WithContext("path", path)
	}

	config := Default()
	if strings.EqualFold(filepath.Ext(path), ".hcl") {
		var file hclFile
		if err := hclsimple.Decode(path, data, nil, &file); err != nil {
			return nil, errors.Config("failed to decode HCL config", err).WithContext("path", path)
		}
		file.apply(config)
	} else if err := json.Unmarshal(data, config); err != nil {
		return nil, errors.Config("failed to decode JSON config", err).WithContext("path", path)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks settings that would otherwise fail later
func (c *Config) Validate() error {
	switch c.Output.DefaultFormat {
	case "cli", "json", "csv":
	default:
		return errors.Config("unsupported output format "+c.Output.DefaultFormat, nil)
	}
	if c.Batch.Workers < 1 {
		c.Batch.Workers = 1
	}
	if c.Server.MaxBatchSize < 1 {
		return errors.Config("server.max_batch_size must be positive", nil)
	}
	if c.Server.MaxBodyBytes < 1 {
		return errors.Config("server.max_body_bytes must be positive", nil)
	}
	return nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SaveNew saves configuration to a file that must not exist yet, unless
// overwrite is set
func (c *Config) SaveNew(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.Config("config file already exists", nil).WithContext("path", path)
		}
	}
	if err := c.Save(path); err != nil {
		return errors.Config("failed to write config file", err).WithContext("path", path)
	}
	return nil
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
