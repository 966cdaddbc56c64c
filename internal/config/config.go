// Package config loads service and CLI configuration from an optional config
// file and the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every configuration key looked up in the environment
const EnvPrefix = "RF"

// Config holds runtime settings for the CLI and the HTTP server
type Config struct {
	Port               int    `mapstructure:"port" validate:"min=1,max=65535"`
	DatabaseURL        string `mapstructure:"database_url" validate:"omitempty,url"`
	JWTSecret          string `mapstructure:"jwt_secret"`
	JWTExpirationHours int    `mapstructure:"jwt_expiration_hours" validate:"min=1"`
	OutputDir          string `mapstructure:"output_dir" validate:"required"`
	Environment        string `mapstructure:"environment" validate:"oneof=development production test"`
	LogLevel           string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	ChromePath         string `mapstructure:"chrome_path"`
	ExtractionURL      string `mapstructure:"extraction_url" validate:"omitempty,url"`
}

// legacyEnv lists unprefixed variable names still honoured for each key
var legacyEnv = map[string]string{
	"port":                 "PORT",
	"database_url":         "DATABASE_URL",
	"jwt_secret":           "JWT_SECRET",
	"jwt_expiration_hours": "JWT_EXPIRATION_HOURS",
	"chrome_path":          "CHROME_PATH",
	"extraction_url":       "EXTRACTION_URL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("database_url", "")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("jwt_expiration_hours", 24)
	v.SetDefault("output_dir", "output")
	v.SetDefault("environment", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("chrome_path", "")
	v.SetDefault("extraction_url", "")
}

// Load reads configuration from path (YAML, JSON or TOML, optional when
// empty) and the environment, applies defaults and validates the result.
// Environment variables use the RF_ prefix; the legacy unprefixed names
// are used as fallbacks.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, legacy := range legacyEnv {
		prefixed := EnvPrefix + "_" + strings.ToUpper(key)
		if err := v.BindEnv(key, prefixed, legacy); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("config error: '%s' failed '%s' validation", fe.Field(), fe.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// AuthEnabled reports whether bearer-token auth should guard the API
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

// JWT returns the token settings derived from this configuration
func (c *Config) JWT() (*JWTConfig, error) {
	jwt := &JWTConfig{
		Secret:          c.JWTSecret,
		ExpirationHours: c.JWTExpirationHours,
	}
	if err := jwt.normalize(); err != nil {
		return nil, err
	}
	return jwt, nil
}
