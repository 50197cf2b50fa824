// Package config provides configuration management for ulink-setup using Viper.
package config

import (
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/FlywheelStudio/ulink-ai-setup/internal/errors"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/paths"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "ULINK_SETUP"

// Configuration keys.
const (
	KeyVersion           = "version"
	KeySkillSource       = "skill_source"
	KeyPicker            = "picker"
	KeyDisabledPlatforms = "disabled_platforms"
)

// Config represents the top-level configuration structure.
type Config struct {
	Version           int      `mapstructure:"version" yaml:"version"`
	SkillSource       string   `mapstructure:"skill_source" yaml:"skill_source"`
	Picker            string   `mapstructure:"picker" yaml:"picker"`
	DisabledPlatforms []string `mapstructure:"disabled_platforms" yaml:"disabled_platforms"`
}

// DefaultConfigPath returns the path of the user config file.
func DefaultConfigPath() string {
	return filepath.Join(paths.ConfigDir(), "config.yaml")
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	// Config file settings
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(paths.ConfigDir())

	// Environment variable support
	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault(KeyVersion, 1)
	viper.SetDefault(KeySkillSource, paths.DefaultSkillSource())
	viper.SetDefault(KeyPicker, "checkbox")
	viper.SetDefault(KeyDisabledPlatforms, []string{})
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches the default location and falls back to
// defaults when no file exists.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			if path != "" {
				return nil, errors.Wrapf(err, "config file not found at %s", path)
			}
		} else {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	return &cfg, nil
}
