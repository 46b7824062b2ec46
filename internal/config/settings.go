package config

import (
	"fmt"

	"github.com/caarlos0/env/v9"
)

// Settings are process-wide defaults read from the environment.
// Command-line flags take precedence over them.
type Settings struct {
	LogLevel  string `env:"DIFAL_LOG_LEVEL" envDefault:"info"`
	Format    string `env:"DIFAL_FORMAT" envDefault:"console"`
	RatesFile string `env:"DIFAL_RATES_FILE"`
}

// LoadSettings parses Settings from the environment. Values are checked
// by Validate once flag overrides have been applied.
func LoadSettings() (*Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return &s, nil
}

// Validate checks the merged settings
func (s *Settings) Validate() error {
	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level must be one of debug, info, warn, error; got %q", s.LogLevel)
	}
	return nil
}
