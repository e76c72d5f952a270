package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	ai "github.com/spetersoncode/gptrouter"
	"github.com/spetersoncode/gptrouter/client"
)

// Config holds the CLI configuration loaded from environment variables.
type Config struct {
	// Router
	BaseURL string
	APIKey  string
	Timeout time.Duration

	// Default metadata
	UserID string
	Tag    string

	LogLevel string // debug, info, warn, error
}

// LoadConfig loads configuration from environment variables.
// It loads a .env file if present (silent fail if not found).
func LoadConfig() (*Config, error) {
	godotenv.Load() // Load .env file if present

	cfg := &Config{
		BaseURL:  os.Getenv("GPTROUTER_BASE_URL"),
		APIKey:   os.Getenv("GPTROUTER_API_KEY"),
		Timeout:  getEnvDurationOrDefault("GPTROUTER_TIMEOUT", client.DefaultTimeout),
		UserID:   os.Getenv("GPTROUTER_USER_ID"),
		Tag:      os.Getenv("GPTROUTER_TAG"),
		LogLevel: getEnvOrDefault("GPTROUTER_LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("GPTROUTER_BASE_URL is required")
	}
	if c.APIKey == "" {
		return fmt.Errorf("GPTROUTER_API_KEY is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("GPTROUTER_TIMEOUT must be positive, got %s", c.Timeout)
	}
	if c.Tag != "" && c.UserID == "" {
		return fmt.Errorf("GPTROUTER_USER_ID is required when GPTROUTER_TAG is set")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("unknown log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}
	return level, nil
}

// Metadata returns the client default metadata, or nil when no user is configured.
func (c *Config) Metadata() ai.Metadata {
	if c.UserID == "" {
		return nil
	}
	md := ai.Metadata{}.WithCreatedByUserID(c.UserID)
	if c.Tag != "" {
		md = md.WithTag(c.Tag)
	}
	return md
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
