package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config defines host configuration.
type Config struct {
	DB        DBConfig        `yaml:"db"`
	Log       LogConfig       `yaml:"log"`
	Workspace WorkspaceConfig `yaml:"workspace"`
	Settings  SettingsConfig  `yaml:"settings"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// WorkspaceConfig tunes automatic placement geometry.
type WorkspaceConfig struct {
	MaxRowWidth float64 `yaml:"max_row_width"`
	GridSize    float64 `yaml:"grid_size"`
	Padding     float64 `yaml:"padding"`
}

// SettingsConfig points at the dashboard settings file, watched for live
// updates while running.
type SettingsConfig struct {
	Path string `yaml:"path"`
}

// Load reads configuration from an optional YAML file and environment
// variables.
func Load() (Config, error) {
	cfg := Config{
		DB: DBConfig{
			Path: "pulseboard.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Workspace: WorkspaceConfig{
			MaxRowWidth: 1920,
			GridSize:    20,
			Padding:     20,
		},
	}

	if path := os.Getenv("PULSEBOARD_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if dbPath := os.Getenv("PULSEBOARD_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("PULSEBOARD_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if settingsPath := os.Getenv("PULSEBOARD_SETTINGS_PATH"); settingsPath != "" {
		cfg.Settings.Path = settingsPath
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
