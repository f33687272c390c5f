// Package config centralises configuration parsing for the fitlog command.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// Config captures runtime configuration values. Command-line flags may override the file paths.
type Config struct {
	DataFile        string `env:"FITLOG_DATA_FILE" envDefault:"users.json"`
	SettingsFile    string `env:"FITLOG_SETTINGS_FILE" envDefault:"settings.json"`
	LogLevel        string `env:"FITLOG_LOG_LEVEL" envDefault:"info"`
	LogFormat       string `env:"FITLOG_LOG_FORMAT" envDefault:"console"`
	MetricsTextfile string `env:"FITLOG_METRICS_TEXTFILE"` // Empty disables the metrics dump.
}

// Load reads environment variables into Config, applying defaults for local use.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
