package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/circdesk/internal/fine"
	"github.com/lehigh-university-libraries/circdesk/internal/report"
)

// Config holds circulation desk settings
type Config struct {
	ReportFile string `yaml:"report_file"`
	SeedFile   string `yaml:"seed_file"`
	Currency   string `yaml:"currency"`
	LogLevel   string `yaml:"log_level"`
}

// Default returns the settings used when nothing else is configured
func Default() *Config {
	return &Config{
		ReportFile: report.DefaultFile,
		Currency:   fine.DefaultCurrency,
		LogLevel:   "warn",
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// CIRCDESK_* environment variables, in that order of precedence.
// An empty path falls back to CIRCDESK_CONFIG.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("CIRCDESK_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.ReportFile = getEnv("CIRCDESK_REPORT_FILE", cfg.ReportFile)
	cfg.SeedFile = getEnv("CIRCDESK_SEED_FILE", cfg.SeedFile)
	cfg.Currency = getEnv("CIRCDESK_CURRENCY", cfg.Currency)
	cfg.LogLevel = getEnv("CIRCDESK_LOG_LEVEL", cfg.LogLevel)

	return cfg, nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.ReportFile) == "" {
		problems = append(problems, "report file cannot be empty")
	}
	if strings.TrimSpace(c.Currency) == "" {
		problems = append(problems, "currency cannot be empty")
	}
	if _, err := c.Level(); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return errors.New("configuration validation failed:\n  - " + strings.Join(problems, "\n  - "))
	}
	return nil
}

// Level parses LogLevel into a slog level
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn, fmt.Errorf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel)
	}
	return level, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
