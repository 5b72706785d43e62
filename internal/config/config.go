// Package config loads tensorty CLI settings from tensorty.toml and
// TENSORTY_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// FileName is the config file searched for in the working directory.
const FileName = "tensorty.toml"

// EnvPrefix prefixes environment overrides, e.g. TENSORTY_BACKEND.
const EnvPrefix = "TENSORTY"

// Config holds CLI settings. Command-line flags override these values.
type Config struct {
	// Backend is the tensor backend token spliced into tensor expressions.
	Backend string `mapstructure:"backend" validate:"required"`

	// Format selects the listing format: text or json.
	Format string `mapstructure:"format" validate:"oneof=text json"`

	// Output is the listing file name used when writing to a directory.
	Output string `mapstructure:"output" validate:"required"`

	// Strict turns identifier warnings into errors.
	Strict bool `mapstructure:"strict"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
}

var validate = validator.New()

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("backend", "B")
	v.SetDefault("format", "text")
	v.SetDefault("output", "types.txt")
	v.SetDefault("strict", false)
	v.SetDefault("log_level", "info")
}

// Load reads configuration. An explicit path must exist; otherwise
// tensorty.toml in the working directory is used when present.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, ".toml"))
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
			}
		}
	}

	return LoadWithViper(v)
}

// LoadWithViper decodes and validates configuration from v.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// SlogLevel returns LogLevel as a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
