// Package config provides configuration loading and validation from
// environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the server-level configuration.
type Config struct {
	Port         int    // HTTP listen port
	DatabaseURL  string // PostgreSQL connection URL
	GeminiAPIKey string // API key for the legitimacy assessor
	UploadDir    string // Directory for stored profile uploads
}

// Load reads the server configuration from the environment. DATABASE_URL
// and GEMINI_API_KEY are required; PORT defaults to 8080 and UPLOAD_DIR to
// "public/uploads".
func Load() (*Config, error) {
	cfg := &Config{
		Port:         8080,
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		UploadDir:    os.Getenv("UPLOAD_DIR"),
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		cfg.Port = port
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "public/uploads"
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// normalize validates the configuration.
func (c *Config) normalize() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required but not set")
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required but not set")
	}
	return nil
}
