// Package config loads and validates the application configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// storage backend kinds
const (
	StorageFiles  = "files"
	StorageSQLite = "sqlite"
)

// Config holds the application configuration
type Config struct {
	Telegram struct {
		Token string `yaml:"token" json:"token" jsonschema:"required,description=Telegram bot API token (can use environment variable)"`
	} `yaml:"telegram" json:"telegram" jsonschema:"description=Telegram bot configuration"`

	Storage struct {
		Type string `yaml:"type" json:"type" jsonschema:"default=files,enum=files,enum=sqlite,description=Record storage backend"`
		Dir  string `yaml:"dir" json:"dir" jsonschema:"default=sources,description=Directory for the files backend"`
		DSN  string `yaml:"dsn" json:"dsn" jsonschema:"default=file:rssbot.db?cache=shared&mode=rwc,description=Connection string for the sqlite backend"`
	} `yaml:"storage" json:"storage" jsonschema:"description=Record storage configuration"`

	Schedule struct {
		UpdateInterval int `yaml:"update_interval" json:"update_interval" jsonschema:"default=60,description=Fixed polling interval in minutes for all feeds"`
	} `yaml:"schedule" json:"schedule" jsonschema:"description=Scheduler configuration"`

	Fetch struct {
		Timeout   int    `yaml:"timeout" json:"timeout" jsonschema:"default=30,description=Per-feed HTTP fetch timeout in seconds"`
		UserAgent string `yaml:"user_agent" json:"user_agent" jsonschema:"default=rssbot/1.0,description=User agent for feed requests"`
	} `yaml:"fetch" json:"fetch" jsonschema:"description=Feed fetching configuration"`

	Server struct {
		Listen  string `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=Status HTTP server listen address"`
		Timeout int    `yaml:"timeout" json:"timeout" jsonschema:"default=30,description=Status HTTP server timeout in seconds"`
	} `yaml:"server" json:"server" jsonschema:"description=Status server configuration"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables, the token usually lives in one
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Storage.Type == "" {
		c.Storage.Type = StorageFiles
	}
	if c.Storage.Dir == "" {
		c.Storage.Dir = "sources"
	}
	if c.Storage.DSN == "" {
		c.Storage.DSN = "file:rssbot.db?cache=shared&mode=rwc"
	}
	if c.Schedule.UpdateInterval == 0 {
		c.Schedule.UpdateInterval = 60
	}
	if c.Fetch.Timeout == 0 {
		c.Fetch.Timeout = 30
	}
	if c.Fetch.UserAgent == "" {
		c.Fetch.UserAgent = "rssbot/1.0"
	}
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram.token is required")
	}

	if cfg.Storage.Type != StorageFiles && cfg.Storage.Type != StorageSQLite {
		return fmt.Errorf("storage.type must be %q or %q", StorageFiles, StorageSQLite)
	}

	if cfg.Schedule.UpdateInterval < 1 {
		return fmt.Errorf("schedule.update_interval must be at least 1 minute")
	}

	if cfg.Fetch.Timeout < 1 {
		return fmt.Errorf("fetch.timeout must be at least 1 second")
	}

	if cfg.Server.Timeout < 1 {
		return fmt.Errorf("server.timeout must be at least 1 second")
	}

	return nil
}

// UpdateInterval returns the polling interval as a duration.
func (c *Config) UpdateInterval() time.Duration {
	return time.Duration(c.Schedule.UpdateInterval) * time.Minute
}

// FetchTimeout returns the per-feed fetch timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.Timeout) * time.Second
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, time.Duration(c.Server.Timeout) * time.Second
}
