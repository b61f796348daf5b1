package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds all configuration for the CLI client
type Config struct {
	// AuthAPI is the base URL of the authentication API
	AuthAPI string `mapstructure:"auth_api"`

	// UsersAPI is the base URL of the user directory API
	UsersAPI string `mapstructure:"users_api"`

	// ExercisesAPI is the URL of the exercise catalog API
	ExercisesAPI string `mapstructure:"exercises_api"`

	// ExercisesAPIKey is sent as X-Api-Key on catalog requests
	ExercisesAPIKey string `mapstructure:"exercises_api_key"`

	// ConfigPath is the path to the configuration file
	ConfigPath string `mapstructure:"-"`

	// Verbose enables debug logging
	Verbose bool `mapstructure:"verbose"`

	// Format specifies the output format (text, json, yaml)
	Format string `mapstructure:"format"`

	// DBPath is the path to the local SQLite database
	DBPath string `mapstructure:"db_path"`

	// RequestTimeout bounds each remote API call
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	zenloopDir := filepath.Join(homeDir, ".zenloop")

	return &Config{
		AuthAPI:         "https://dummyjson.com/auth",
		UsersAPI:        "https://dummyjson.com/users",
		ExercisesAPI:    "https://api.api-ninjas.com/v1/exercises",
		ExercisesAPIKey: "",
		Verbose:         false,
		Format:          "text",
		DBPath:          filepath.Join(zenloopDir, "zenloop.db"),
		RequestTimeout:  10 * time.Second,
	}
}

// Load loads configuration from file, environment variables, and CLI flags
// Priority (highest to lowest): CLI flags > Environment variables > Config file > Defaults
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			v.SetConfigFile(configPath)
		}
		cfg.ConfigPath = configPath
	} else {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			zenloopDir := filepath.Join(homeDir, ".zenloop")
			v.AddConfigPath(zenloopDir)
			v.SetConfigName("config")
			v.SetConfigType("yaml")
			cfg.ConfigPath = filepath.Join(zenloopDir, "config.yaml")
		}
	}

	v.SetEnvPrefix("ZENLOOP")
	v.AutomaticEnv()

	v.BindEnv("auth_api")
	v.BindEnv("users_api")
	v.BindEnv("exercises_api")
	v.BindEnv("exercises_api_key")
	v.BindEnv("verbose")
	v.BindEnv("format")
	v.BindEnv("db_path")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		logrus.Debug("No config file found, using defaults")
	} else {
		logrus.Debugf("Using config file: %s", v.ConfigFileUsed())
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// EnsureDirectories ensures that all necessary directories exist
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		filepath.Dir(c.DBPath),
		filepath.Dir(c.ConfigPath),
	}

	for _, dir := range dirs {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// ValidateFormat validates the output format
func (c *Config) ValidateFormat() error {
	switch c.Format {
	case "text", "json", "yaml":
		return nil
	default:
		return fmt.Errorf("invalid format %q, must be one of: text, json, yaml", c.Format)
	}
}
