package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"commission/internal/logger"
)

type Config struct {
	// Output Configuration
	OutputPath string

	// Web Shell Configuration
	ListenAddr string

	// Google Sheets Configuration (publishing is off when the URL is empty)
	GoogleSheetURL       string
	GoogleSheetWorksheet string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		OutputPath:           getEnv("INVOICE_OUTPUT_PATH", "Airtel.xlsx"),
		ListenAddr:           getEnv("LISTEN_ADDR", ":8080"),
		GoogleSheetURL:       getEnv("GOOGLE_SHEET_URL", ""),
		GoogleSheetWorksheet: getEnv("GOOGLE_SHEET_WORKSHEET", "Invoices"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		LogFormat:            getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:        getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:            getEnv("LOG_OUTPUT", "stderr"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.OutputPath == "" {
		return fmt.Errorf("INVOICE_OUTPUT_PATH must not be empty")
	}
	if !strings.EqualFold(filepath.Ext(c.OutputPath), ".xlsx") {
		return fmt.Errorf("INVOICE_OUTPUT_PATH '%s' must end in .xlsx", c.OutputPath)
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("LISTEN_ADDR must not be empty")
	}
	if c.GoogleSheetURL != "" && c.GoogleSheetWorksheet == "" {
		return fmt.Errorf("GOOGLE_SHEET_WORKSHEET is required when GOOGLE_SHEET_URL is set")
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL '%s'", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		return fmt.Errorf("invalid LOG_FORMAT '%s': must be one of [console json]", c.LogFormat)
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
