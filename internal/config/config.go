// Package config provides configuration loading and validation for the
// server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jonathan/resume-builder/internal/llm"
)

// Defaults applied by Default and MergeWithDefaults.
const (
	DefaultAddr                  = ":8080"
	DefaultLogLevel              = "info"
	DefaultNudgeThreshold        = 80
	DefaultSuggestionConcurrency = 4
	DefaultPreferencesFile       = ".resume-builder/preferences.yaml"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults, and environment
// variables override file values.
type Config struct {
	// Server
	Addr        string   `json:"addr,omitempty"`         // Listen address for serve
	CORSOrigins []string `json:"cors_origins,omitempty"` // Allowed origins; empty allows any

	// Storage
	DatabaseURL     string `json:"database_url,omitempty"`     // PostgreSQL connection URL
	PreferencesFile string `json:"preferences_file,omitempty"` // YAML file used by the prefs command

	// Sections and templates
	SectionsFile   string   `json:"sections_file,omitempty"`   // Overrides the embedded section schemas
	NudgeThreshold int      `json:"nudge_threshold,omitempty"` // Completion percent below which the nudge shows
	EntitledOwners []string `json:"entitled_owners,omitempty"` // Owners allowed premium templates

	// Suggestions
	LLMProvider           string `json:"llm_provider,omitempty"` // gemini or openai
	APIKey                string `json:"api_key,omitempty"`      // Key for the selected provider
	Model                 string `json:"model,omitempty"`        // Overrides the lite tier model
	LLMBaseURL            string `json:"llm_base_url,omitempty"` // OpenAI-compatible endpoint
	SuggestionConcurrency int    `json:"suggestion_concurrency,omitempty"`

	// Auth
	JWTSecret string `json:"jwt_secret,omitempty"` // Empty disables token verification

	// Logging
	LogLevel string `json:"log_level,omitempty"`
	LogFile  string `json:"log_file,omitempty"`
	Verbose  bool   `json:"verbose,omitempty"` // Print detailed debug information
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:                  DefaultAddr,
		PreferencesFile:       DefaultPreferencesFile,
		NudgeThreshold:        DefaultNudgeThreshold,
		LLMProvider:           string(llm.ProviderGemini),
		SuggestionConcurrency: DefaultSuggestionConcurrency,
		LogLevel:              DefaultLogLevel,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.LLMProvider != "" {
		if _, err := llm.ParseProvider(c.LLMProvider); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}

	if c.NudgeThreshold < 0 || c.NudgeThreshold > 100 {
		return fmt.Errorf("config error: 'nudge_threshold' must be between 0 and 100")
	}
	if c.SuggestionConcurrency < 0 {
		return fmt.Errorf("config error: 'suggestion_concurrency' must be non-negative")
	}

	if c.SectionsFile != "" {
		if _, err := os.Stat(c.SectionsFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: sections file not found: %s", c.SectionsFile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Addr == "" {
		result.Addr = defaults.Addr
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.PreferencesFile == "" {
		result.PreferencesFile = defaults.PreferencesFile
	}
	if result.SectionsFile == "" {
		result.SectionsFile = defaults.SectionsFile
	}
	if result.LLMProvider == "" {
		result.LLMProvider = defaults.LLMProvider
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.LLMBaseURL == "" {
		result.LLMBaseURL = defaults.LLMBaseURL
	}
	if result.JWTSecret == "" {
		result.JWTSecret = defaults.JWTSecret
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFile == "" {
		result.LogFile = defaults.LogFile
	}

	// Slices
	if len(result.CORSOrigins) == 0 {
		result.CORSOrigins = defaults.CORSOrigins
	}
	if len(result.EntitledOwners) == 0 {
		result.EntitledOwners = defaults.EntitledOwners
	}

	// Int fields: use default if zero
	if result.NudgeThreshold == 0 {
		result.NudgeThreshold = defaults.NudgeThreshold
	}
	if result.SuggestionConcurrency == 0 {
		result.SuggestionConcurrency = defaults.SuggestionConcurrency
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ApplyEnv overrides fields from environment variables. The provider key is
// read from GEMINI_API_KEY or OPENAI_API_KEY to match LLM_PROVIDER.
func (c *Config) ApplyEnv() {
	setString(&c.Addr, "ADDR")
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.SectionsFile, "SECTIONS_FILE")
	setString(&c.PreferencesFile, "PREFERENCES_FILE")
	setString(&c.LLMProvider, "LLM_PROVIDER")
	setString(&c.Model, "LLM_MODEL")
	setString(&c.LLMBaseURL, "LLM_BASE_URL")
	setString(&c.JWTSecret, "JWT_SECRET")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.LogFile, "LOG_FILE")

	if v := os.Getenv("NUDGE_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.NudgeThreshold = n
		}
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("ENTITLED_OWNERS"); v != "" {
		c.EntitledOwners = splitList(v)
	}

	keyVar := "GEMINI_API_KEY"
	if strings.EqualFold(c.LLMProvider, string(llm.ProviderOpenAI)) {
		keyVar = "OPENAI_API_KEY"
	}
	setString(&c.APIKey, keyVar)
}

// LLMConfig returns the model configuration for the selected provider.
func (c *Config) LLMConfig() (*llm.Config, error) {
	provider := llm.ProviderGemini
	if c.LLMProvider != "" {
		p, err := llm.ParseProvider(c.LLMProvider)
		if err != nil {
			return nil, err
		}
		provider = p
	}

	cfg := llm.ConfigFor(provider)
	if c.Model != "" {
		cfg = cfg.WithModel(llm.TierLite, c.Model)
	}
	cfg.BaseURL = c.LLMBaseURL
	return cfg, nil
}

// IsEntitled reports whether owner may use premium templates.
func (c *Config) IsEntitled(owner string) bool {
	for _, o := range c.EntitledOwners {
		if o == owner {
			return true
		}
	}
	return false
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
