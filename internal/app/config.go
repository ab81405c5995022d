package app

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/text/language"
)

// Config holds runtime configuration for the top-up report.
type Config struct {
	AppEnv string `envconfig:"APP_ENV" default:"development"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`

	UsersPath     string `envconfig:"USERS_PATH" default:"users.json"`
	CompaniesPath string `envconfig:"COMPANIES_PATH" default:"companies.json"`
	OutputPath    string `envconfig:"OUTPUT_PATH" default:"output.txt"`

	CollationLocale string `envconfig:"COLLATION_LOCALE" default:"en"`

	MetricsTextfile string `envconfig:"METRICS_TEXTFILE"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if _, err := cfg.Locale(); err != nil {
		return nil, err
	}
	if _, err := cfg.Level(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Locale parses the collation locale as a BCP 47 tag.
func (c *Config) Locale() (language.Tag, error) {
	tag, err := language.Parse(strings.TrimSpace(c.CollationLocale))
	if err != nil {
		return language.Und, fmt.Errorf("invalid collation locale %q: %w", c.CollationLocale, err)
	}
	return tag, nil
}

// Level maps LOG_LEVEL onto a slog level.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
