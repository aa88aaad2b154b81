package pipeline

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all pipeline configuration.
type Config struct {
	Browser   BrowserConfig `yaml:"browser"`
	OutDir    string        `yaml:"out_dir"`
	HistoryDB string        `yaml:"history_db"` // empty disables run history
}

// BrowserConfig controls the Chrome rendering engine.
type BrowserConfig struct {
	Remote      string        `yaml:"remote"` // WebSocket URL; empty launches locally
	NavTimeout  time.Duration `yaml:"nav_timeout"`
	SettleDelay time.Duration `yaml:"settle_delay"`
}

func (c *Config) applyDefaults() {
	if c.Browser.NavTimeout <= 0 {
		c.Browser.NavTimeout = 30 * time.Second
	}
	if c.Browser.SettleDelay <= 0 {
		c.Browser.SettleDelay = 2 * time.Second
	}
	if c.OutDir == "" {
		c.OutDir = "captures"
	}
}

// DefaultConfig returns a ready-to-use configuration.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfigFile reads a YAML configuration file and applies defaults.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}
