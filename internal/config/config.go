package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DatabaseConfig holds settings for the local sqlite database.
type DatabaseConfig struct {
	// Path is the sqlite database file location.
	Path string `mapstructure:"path" yaml:"path"`
}

// ExportConfig holds settings for building and accepting archives.
type ExportConfig struct {
	// Dir is where export archives are written by default.
	Dir string `mapstructure:"dir" yaml:"dir"`

	// MaxArchiveMB caps the size of archives accepted for import.
	MaxArchiveMB int `mapstructure:"max_archive_mb" yaml:"max_archive_mb"`
}

// LogConfig holds logging preferences.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// Config is the top-level application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Export   ExportConfig   `mapstructure:"export" yaml:"export"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/worklog/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "worklog", "config.yaml")
}

func defaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "worklog.db")
	}
	return filepath.Join(home, ".local", "share", "worklog", "worklog.db")
}

// defaultConfig returns a sensible default configuration.
func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{Path: defaultDatabasePath()},
		Export: ExportConfig{
			Dir:          ".",
			MaxArchiveMB: 100,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("database.path", defaultDatabasePath())
	v.SetDefault("export.dir", ".")
	v.SetDefault("export.max_archive_mb", 100)
	v.SetDefault("log.level", "info")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the given configuration to a YAML file at path, creating
// parent directories if needed.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("database", cfg.Database)
	v.Set("export", cfg.Export)
	v.Set("log", cfg.Log)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}
