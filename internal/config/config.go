package config

import "ytdiff-go/pkg/logger"

// Config is the full configuration tree for the tool. Every field has a
// working default; a config file and YTDIFF_* environment variables are both
// optional, and command-line flags override everything.
type Config struct {
	Extract ExtractConfig `mapstructure:"extract"`
	Diff    DiffConfig    `mapstructure:"diff"`
	Server  ServerConfig  `mapstructure:"server"`
	Logger  logger.Config `mapstructure:"logger"`
}

type ExtractConfig struct {
	// DefaultOutput is the record path used when none is given.
	DefaultOutput string `mapstructure:"default_output"`
	// MaxEntries caps entries kept per page; 0 disables the cap.
	MaxEntries int `mapstructure:"max_entries"`
}

type DiffConfig struct {
	// Quiet suppresses detailed URL lists by default.
	Quiet bool `mapstructure:"quiet"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Manager loads and hands out the configuration.
type Manager interface {
	Load(configPath string) (*Config, error)
	GetConfig() *Config
}
