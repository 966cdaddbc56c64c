package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearJWTEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"RF_JWT_SECRET", "JWT_SECRET", "RF_JWT_EXPIRATION_HOURS", "JWT_EXPIRATION_HOURS"} {
		t.Setenv(key, "")
	}
}

func TestNewJWTConfig_DefaultValues(t *testing.T) {
	clearJWTEnv(t)
	t.Setenv("JWT_SECRET", "test-secret-key")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "test-secret-key", cfg.Secret)
	assert.Equal(t, 24, cfg.ExpirationHours, "should use default expiration of 24 hours")
	assert.Equal(t, 24*time.Hour, cfg.TTL())
}

func TestNewJWTConfig_PrefixedWins(t *testing.T) {
	clearJWTEnv(t)
	t.Setenv("JWT_SECRET", "legacy")
	t.Setenv("RF_JWT_SECRET", "prefixed")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, "prefixed", cfg.Secret)
}

func TestNewJWTConfig_CustomExpiration(t *testing.T) {
	tests := []struct {
		name          string
		expiration    string
		expectedHours int
		wantErr       bool
	}{
		{name: "valid 1 hour", expiration: "1", expectedHours: 1},
		{name: "valid 48 hours", expiration: "48", expectedHours: 48},
		{name: "zero hours", expiration: "0", wantErr: true},
		{name: "negative hours", expiration: "-5", wantErr: true},
		{name: "not a number", expiration: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearJWTEnv(t)
			t.Setenv("JWT_SECRET", "test-secret-key")
			t.Setenv("JWT_EXPIRATION_HOURS", tt.expiration)

			cfg, err := NewJWTConfig()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedHours, cfg.ExpirationHours)
		})
	}
}

func TestNewJWTConfig_MissingSecret(t *testing.T) {
	clearJWTEnv(t)

	cfg, err := NewJWTConfig()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "JWT_SECRET is required")
}
