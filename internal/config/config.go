package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Exchange ExchangeConfig `yaml:"exchange"`
	Webhook  WebhookConfig  `yaml:"webhook"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port string `yaml:"port" default:"8080"`
	Host string `yaml:"host" default:"localhost"`
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	Driver string `yaml:"driver" default:"sqlite"`
	DSN    string `yaml:"dsn" default:"tv-bybit.db"`
}

// ExchangeConfig represents Bybit client configuration. Protocol selects the
// signing generation ("v5" or "legacy") per account configuration; it is
// never auto-negotiated.
type ExchangeConfig struct {
	Protocol     string        `yaml:"protocol" default:"v5"`
	RecvWindowMS int64         `yaml:"recv_window_ms" default:"15000"`
	Testnet      bool          `yaml:"testnet" default:"false"`
	HTTPTimeout  time.Duration `yaml:"http_timeout" default:"10s"`
}

// WebhookConfig represents webhook token minting configuration
type WebhookConfig struct {
	TTL time.Duration `yaml:"ttl" default:"720h"`
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	config.applyDefaults()

	return &config, nil
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(config *Config, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.Host == "" {
		c.Server.Host = "localhost"
	}
	if c.Database.DSN == "" {
		c.Database.DSN = "tv-bybit.db"
	}
	if c.Exchange.Protocol == "" {
		c.Exchange.Protocol = "v5"
	}
	if c.Exchange.RecvWindowMS == 0 {
		c.Exchange.RecvWindowMS = 15000
	}
	if c.Exchange.HTTPTimeout == 0 {
		c.Exchange.HTTPTimeout = 10 * time.Second
	}
	if c.Webhook.TTL == 0 {
		c.Webhook.TTL = 720 * time.Hour
	}
}
