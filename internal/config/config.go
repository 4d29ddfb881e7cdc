package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"hibachi/internal/store"
)

// Config is the full service configuration.
type Config struct {
	Server struct {
		ListenAddr string `yaml:"listen_addr"`
		// RateLimit is requests per second allowed per instance;
		// RateBurst is the bucket size. Zero disables throttling.
		RateLimit float64 `yaml:"rate_limit"`
		RateBurst int     `yaml:"rate_burst"`
	} `yaml:"server"`

	Auth struct {
		PIN string `yaml:"pin"`
	} `yaml:"auth"`

	State struct {
		// Backend is "sqlite" or "redis".
		Backend string `yaml:"backend"`
		Path    string `yaml:"path"`
	} `yaml:"state"`

	Redis struct {
		Address  string `yaml:"address"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Prefix   string `yaml:"prefix"`
	} `yaml:"redis"`

	Backup store.BackupConfig `yaml:"backup"`

	Monitoring struct {
		HealthCheckPort   int  `yaml:"health_check_port"`
		PrometheusEnabled bool `yaml:"prometheus_enabled"`
		PrometheusPort    int  `yaml:"prometheus_port"`
	} `yaml:"monitoring"`

	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   int64  `yaml:"chat_id"`
	} `yaml:"telegram"`
}

// Load reads the YAML config at path, expanding ${ENV_VAR} placeholders.
// Missing file is an error; missing fields fall back to defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = "configs/config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Support ${ENV_VAR} placeholders in YAML config.
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if cfg.State.Backend == "redis" && cfg.Redis.Address == "" {
		return nil, fmt.Errorf("state.backend is redis but redis.address is empty")
	}

	return &cfg, nil
}

// Default returns a configuration with all defaults applied, used when
// no config file is present.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func (c *Config) applyDefaults() {
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = ":8080"
	}
	if c.Auth.PIN == "" {
		c.Auth.PIN = "1234"
	}
	switch c.State.Backend {
	case "", "sqlite":
		c.State.Backend = "sqlite"
		if c.State.Path == "" {
			c.State.Path = "data/hibachi.db"
		}
	case "redis":
		if c.Redis.Prefix == "" {
			c.Redis.Prefix = "hibachi"
		}
	}
	if c.Monitoring.HealthCheckPort == 0 {
		c.Monitoring.HealthCheckPort = 8090
	}
	if c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}
}
