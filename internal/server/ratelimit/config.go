package ratelimit

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
// Limit requests are refilled evenly across Window.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// EnvPrefix prefixes every rate limit environment variable
const EnvPrefix = "RF_RATE_LIMIT"

const (
	defaultLimit           = 1000
	defaultWindow          = time.Minute
	defaultCleanupInterval = 5 * time.Minute
)

// LoadConfig loads rate limiting configuration from RF_RATE_LIMIT_*
// environment variables. Unparseable or non-positive values fall back to
// the defaults.
func LoadConfig() *Config {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetDefault("enabled", true)
	v.SetDefault("default_limit", defaultLimit)
	v.SetDefault("default_window", defaultWindow)
	v.SetDefault("cleanup_interval", defaultCleanupInterval)

	if !v.GetBool("enabled") {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    positive(v.GetInt("default_limit"), defaultLimit),
		DefaultWindow:   positive(v.GetDuration("default_window"), defaultWindow),
		CleanupInterval: positive(v.GetDuration("cleanup_interval"), defaultCleanupInterval),
		Whitelist:       parseIPList(v.GetString("whitelist")),
		Blacklist:       parseIPList(v.GetString("blacklist")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

func positive[T int | time.Duration](value, fallback T) T {
	if value <= 0 {
		return fallback
	}
	return value
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Rendering: document generation and previews are CPU bound
		{Path: "/api/document", Method: "POST", Limit: 60, Window: time.Minute, Burst: 5},
		{Path: "/api/preview", Method: "POST", Limit: 120, Window: time.Minute, Burst: 10},
		{Path: "/api/resumes/", Method: "GET", Limit: 120, Window: time.Minute, Burst: 10},

		// Extraction proxies a slow upstream call
		{Path: "/api/process", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},

		// Writes
		{Path: "/api/resumes", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/api/resumes/", Method: "PUT", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/api/resumes/", Method: "DELETE", Limit: 100, Window: time.Minute, Burst: 10},

		// Everything else uses the default limit; /health is unlimited
	}
}

// parseIPList parses a comma-separated list of IP addresses into a map.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	if list == "" {
		return result
	}

	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}

