package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all host configuration.
type Config struct {
	Server    ServerConfig
	Data      DataConfig
	Fetch     FetchConfig
	Shell     ShellConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

// ServerConfig holds bridge server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"9160"`
	Host string `envconfig:"HOST" default:"127.0.0.1"`
}

// DataConfig holds the host data directory configuration.
type DataConfig struct {
	// Dir is the root for filesystem and store plugins. Empty means
	// <user-config-dir>/opennotes.
	Dir string `envconfig:"DATA_DIR"`
}

// Resolve returns the effective data directory.
func (d DataConfig) Resolve() (string, error) {
	if d.Dir != "" {
		return filepath.Clean(d.Dir), nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve data dir: %w", err)
	}
	return filepath.Join(base, "opennotes"), nil
}

// FetchConfig holds the spoofed header values and timeout for api.fetch.
// The header defaults are what the OpenNotes API expects from its own site.
type FetchConfig struct {
	ContentType string `envconfig:"FETCH_CONTENT_TYPE" default:"application/json"`
	Origin      string `envconfig:"FETCH_ORIGIN" default:"https://nagusamecs.github.io"`
	Referer     string `envconfig:"FETCH_REFERER" default:"https://nagusamecs.github.io/OpenNotesAPI/"`
	// TimeoutSeconds of 0 disables the client timeout; cancellation then
	// follows the invocation context only.
	TimeoutSeconds int `envconfig:"FETCH_TIMEOUT" default:"0"`
}

// ShellConfig holds shell plugin configuration.
type ShellConfig struct {
	TimeoutSeconds int `envconfig:"SHELL_TIMEOUT" default:"30"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds bridge rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// CORSConfig holds the webview origins allowed to call the bridge.
type CORSConfig struct {
	Origins []string `envconfig:"CORS_ORIGINS" default:"tauri://localhost,http://localhost:1420"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "9160",
			Host: "127.0.0.1",
		},
		Fetch: FetchConfig{
			ContentType:    "application/json",
			Origin:         "https://nagusamecs.github.io",
			Referer:        "https://nagusamecs.github.io/OpenNotesAPI/",
			TimeoutSeconds: 0,
		},
		Shell: ShellConfig{
			TimeoutSeconds: 30,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		CORS: CORSConfig{
			Origins: []string{"tauri://localhost", "http://localhost:1420"},
		},
	}
}
