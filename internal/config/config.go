// Package config provides Viper-based hierarchical configuration management.
package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var envOnce sync.Once

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Database struct {
		Path string `mapstructure:"path" yaml:"path"`
	} `mapstructure:"database" yaml:"database"`

	Extraction struct {
		// OCREnabled controls the tesseract fallback for scanned statements.
		OCREnabled bool `mapstructure:"ocr_enabled" yaml:"ocr_enabled"`
		// MinTextLength is the direct-extraction length below which OCR kicks in.
		MinTextLength  int    `mapstructure:"min_text_length" yaml:"min_text_length"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		PdftotextBin   string `mapstructure:"pdftotext_bin" yaml:"pdftotext_bin"`
		TesseractBin   string `mapstructure:"tesseract_bin" yaml:"tesseract_bin"`
	} `mapstructure:"extraction" yaml:"extraction"`

	Flows struct {
		TimeWindowHours int `mapstructure:"time_window_hours" yaml:"time_window_hours"`
		// PairingTolerance is the fraction of the anchor amount two
		// transactions may differ by and still pair (exclusive bound).
		PairingTolerance float64 `mapstructure:"pairing_tolerance" yaml:"pairing_tolerance"`
	} `mapstructure:"flows" yaml:"flows"`

	CSV struct {
		Delimiter      string `mapstructure:"delimiter" yaml:"delimiter"`
		IncludeHeaders bool   `mapstructure:"include_headers" yaml:"include_headers"`
	} `mapstructure:"csv" yaml:"csv"`

	Merchants struct {
		// PatternsFile optionally overrides the built-in merchant table.
		PatternsFile string `mapstructure:"patterns_file" yaml:"patterns_file"`
	} `mapstructure:"merchants" yaml:"merchants"`
}

// LoadEnv loads environment variables from a .env file if one exists.
func LoadEnv() {
	envOnce.Do(func() {
		if _, err := os.Stat(".env"); err == nil {
			_ = godotenv.Load(".env")
		}
	})
}

// Load initializes Viper configuration with hierarchical loading:
// defaults, then an optional YAML config file, then FINFLOW_* env vars.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.finflow")
	v.AddConfigPath(".finflow")
	v.AddConfigPath(".")

	v.SetEnvPrefix("FINFLOW")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// A broken config file should not be fatal; defaults and env
			// vars still apply.
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("database.path", "finflow.db")

	v.SetDefault("extraction.ocr_enabled", true)
	v.SetDefault("extraction.min_text_length", 100)
	v.SetDefault("extraction.timeout_seconds", 120)
	v.SetDefault("extraction.pdftotext_bin", "pdftotext")
	v.SetDefault("extraction.tesseract_bin", "tesseract")

	v.SetDefault("flows.time_window_hours", 48)
	v.SetDefault("flows.pairing_tolerance", 0.01)

	v.SetDefault("csv.delimiter", ",")
	v.SetDefault("csv.include_headers", true)

	v.SetDefault("merchants.patterns_file", "")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.Extraction.MinTextLength < 0 {
		return fmt.Errorf("extraction.min_text_length must not be negative, got: %d", config.Extraction.MinTextLength)
	}

	if config.Extraction.TimeoutSeconds < 1 || config.Extraction.TimeoutSeconds > 600 {
		return fmt.Errorf("extraction.timeout_seconds must be between 1 and 600, got: %d", config.Extraction.TimeoutSeconds)
	}

	if config.Flows.TimeWindowHours < 1 {
		return fmt.Errorf("flows.time_window_hours must be positive, got: %d", config.Flows.TimeWindowHours)
	}

	if config.Flows.PairingTolerance <= 0 || config.Flows.PairingTolerance >= 1 {
		return fmt.Errorf("flows.pairing_tolerance must be in (0, 1), got: %f", config.Flows.PairingTolerance)
	}

	return nil
}

// ConfigureLogging builds a logrus logger from the Log section.
func ConfigureLogging(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
