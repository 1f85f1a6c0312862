// Package bot assembles the application: configuration, bootstrap and the
// Telegram runtime wiring over the domain packages.
package bot

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "github.com/Dardva/Bot-for-remind/core/config"
	coredatabase "github.com/Dardva/Bot-for-remind/core/database"
)

// Settings holds the bot-specific knobs on top of the core configuration.
type Settings struct {
	// SweepSchedule is a cron expression; empty means hourly.
	SweepSchedule string `yaml:"sweep_schedule" envconfig:"SWEEP_SCHEDULE"`
	// RequestRetentionHours bounds the lifetime of pending invitations;
	// zero means 24 hours.
	RequestRetentionHours int `yaml:"request_retention_hours" envconfig:"REQUEST_RETENTION_HOURS"`
}

// RequestRetention returns the retention window as a duration.
func (s Settings) RequestRetention() time.Duration {
	if s.RequestRetentionHours <= 0 {
		return 0
	}
	return time.Duration(s.RequestRetentionHours) * time.Hour
}

// Config is the full application configuration.
type Config struct {
	Core     coreconfig.Config   `yaml:",inline"`
	Database coredatabase.Config `yaml:"database"`
	Bot      Settings            `yaml:"bot"`
}

// CoreConfig exposes the embedded core configuration for the runner.
func (c *Config) CoreConfig() *coreconfig.Config {
	return &c.Core
}

// LoadAppConfig reads the YAML file, applies environment overrides and
// validates the core section.
func LoadAppConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}
	if err := coreconfig.Normalize(&cfg.Core); err != nil {
		return nil, err
	}
	return &cfg, nil
}
