package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

type manager struct {
	mu     sync.RWMutex
	config *Config
	viper  *viper.Viper
}

// NewManager creates a viper-backed configuration manager.
func NewManager() Manager {
	return &manager{
		viper: viper.New(),
	}
}

// Load reads configuration from the given file, or from an optional
// ./ytdiff.yaml when configPath is empty. A missing optional file falls back
// to defaults; a missing explicit file is an error.
func (m *manager) Load(configPath string) (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setupViper(configPath)

	if err := m.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		explicit := configPath != ""
		if explicit || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := m.viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	m.config = &config
	return &config, nil
}

func (m *manager) GetConfig() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

func (m *manager) setupViper(configPath string) {
	if configPath != "" {
		m.viper.SetConfigFile(configPath)
	} else {
		m.viper.SetConfigName("ytdiff")
		m.viper.SetConfigType("yaml")
		m.viper.AddConfigPath(".")
	}

	m.viper.SetEnvPrefix("YTDIFF")
	m.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	m.viper.AutomaticEnv()

	m.viper.SetDefault("extract.default_output", "videos.json")
	m.viper.SetDefault("extract.max_entries", 10000)
	m.viper.SetDefault("diff.quiet", false)
	m.viper.SetDefault("server.host", "127.0.0.1")
	m.viper.SetDefault("server.port", 8750)
	m.viper.SetDefault("logger.level", "info")
	m.viper.SetDefault("logger.format", "console")
}

func validateConfig(config *Config) error {
	if config.Extract.MaxEntries < 0 {
		return fmt.Errorf("extract.max_entries must not be negative")
	}
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", config.Server.Port)
	}
	return nil
}
