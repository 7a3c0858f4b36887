package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Path pattern; "*" matches one segment, a trailing "/" matches a prefix
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

const suggestionsPath = "/drafts/*/sections/*/entries/*/suggestions"

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	return LoadConfigFrom(os.Getenv)
}

// LoadConfigFrom reads RATE_LIMIT_* settings through getenv. Unparseable
// values fall back to their defaults.
func LoadConfigFrom(getenv func(string) string) *Config {
	env := envSource(getenv)
	if !env.boolean("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	endpoints := DefaultEndpointConfigs()
	if perHour := env.integer("RATE_LIMIT_SUGGESTIONS_PER_HOUR", 0); perHour > 0 {
		for i := range endpoints {
			if endpoints[i].Path == suggestionsPath {
				endpoints[i].Limit = perHour
			}
		}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    env.integer("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   env.duration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: env.duration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: endpoints,
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Model calls
		{Path: suggestionsPath, Method: "POST", Limit: 60, Window: time.Hour, Burst: 5},

		// Writes
		{Path: "/drafts", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/drafts/", Method: "POST", Limit: 300, Window: time.Minute, Burst: 30},
		{Path: "/drafts/", Method: "PUT", Limit: 300, Window: time.Minute, Burst: 30},
		{Path: "/drafts/", Method: "DELETE", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/preferences/", Method: "PUT", Limit: 60, Window: time.Minute, Burst: 10},

		// Reads use the default limit; /health is unlimited, see MatchEndpoint.
	}
}

type envSource func(string) string

func (e envSource) integer(key string, def int) int {
	if n, err := strconv.Atoi(e(key)); err == nil {
		return n
	}
	return def
}

func (e envSource) boolean(key string, def bool) bool {
	if b, err := strconv.ParseBool(e(key)); err == nil {
		return b
	}
	return def
}

func (e envSource) duration(key string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(e(key)); err == nil {
		return d
	}
	return def
}

// parseIPList parses a comma-separated list of client addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
