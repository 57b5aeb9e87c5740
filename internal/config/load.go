package config

import (
	"encoding/json"
	"os"
)

type Config struct {
	Bot      BotConfig      `json:"bot"`
	Database DatabaseConfig `json:"database"`
	Logging  LoggingConfig  `json:"logging"`
	Web      WebConfig      `json:"web"`
}

type BotConfig struct {
	Token string `json:"token"`
}

type DatabaseConfig struct {
	Path string `json:"path"`
}

type LoggingConfig struct {
	Level string `json:"level"`
	Path  string `json:"path"`
}

type WebConfig struct {
	// Addr is the listen address of the status endpoint. Empty disables it.
	Addr string `json:"addr"`
}

var GlobalConfig *Config

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	GlobalConfig = &cfg
	return &cfg, nil
}

func LoadOrDefault(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

func DefaultConfig() *Config {
	cfg := &Config{
		Bot:      BotConfig{},
		Database: DatabaseConfig{Path: "yttrium.db"},
		Logging:  LoggingConfig{Level: "info", Path: "yttrium.log"},
		Web:      WebConfig{},
	}
	applyEnvOverrides(cfg)
	GlobalConfig = cfg
	return cfg
}

func applyEnvOverrides(cfg *Config) {
	if token := os.Getenv("DISCORD_TOKEN"); token != "" {
		cfg.Bot.Token = token
	}
	if dbPath := os.Getenv("DATABASE_PATH"); dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if addr := os.Getenv("STATUS_ADDR"); addr != "" {
		cfg.Web.Addr = addr
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Database.Path == "" {
		cfg.Database.Path = "yttrium.db"
	}
	if cfg.Logging.Path == "" {
		cfg.Logging.Path = "yttrium.log"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}
