package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultJWTExpirationHours is used when no expiration is configured
const DefaultJWTExpirationHours = 24

// JWTConfig holds the secret and lifetime for API bearer tokens.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

// NewJWTConfig builds token settings straight from the environment, for
// callers that do not load a full Config. RF_JWT_SECRET (or JWT_SECRET) is
// required; RF_JWT_EXPIRATION_HOURS (or JWT_EXPIRATION_HOURS) defaults to 24.
func NewJWTConfig() (*JWTConfig, error) {
	secret := lookupEnv("jwt_secret")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	expirationHours := DefaultJWTExpirationHours
	if raw := lookupEnv("jwt_expiration_hours"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS: %v", err)
		}
		expirationHours = hours
	}

	cfg := &JWTConfig{
		Secret:          secret,
		ExpirationHours: expirationHours,
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// TTL returns the token lifetime
func (c *JWTConfig) TTL() time.Duration {
	return time.Duration(c.ExpirationHours) * time.Hour
}

func (c *JWTConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("JWT_SECRET cannot be empty")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}

// lookupEnv returns the prefixed variable for key, falling back to its legacy name
func lookupEnv(key string) string {
	if v := os.Getenv(EnvPrefix + "_" + strings.ToUpper(key)); v != "" {
		return v
	}
	return os.Getenv(legacyEnv[key])
}
