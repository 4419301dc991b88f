// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonathan/career-navigator/internal/types"
)

// Default values applied by MergeWithDefaults.
const (
	DefaultAPIBaseURL          = "http://localhost:8000/api/v1"
	DefaultTimeoutSeconds      = 30
	DefaultPollIntervalSeconds = 3
	DefaultMaxPollMinutes      = 10
	DefaultNumJobs             = 10
	DefaultLocation            = "India"
	DefaultGenAIProvider       = "groq"
	DefaultLogLevel            = "info"
	DefaultLogFormat           = "text"
)

// Environment variables read by ApplyEnv.
const (
	EnvAPIURL      = "NAVIGATOR_API_URL"
	EnvSerpAPIKey  = "SERP_API_KEY"
	EnvGenAIAPIKey = "GROQ_API_KEY"
	EnvDatabaseURL = "DATABASE_URL"
	EnvLogLevel    = "LOG_LEVEL"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// API
	APIBaseURL        string  `json:"api_base_url,omitempty"`        // Matching API base URL including /api/v1
	TimeoutSeconds    int     `json:"timeout_seconds,omitempty"`     // Per-request timeout
	RequestsPerSecond float64 `json:"requests_per_second,omitempty"` // Client-side throttle, 0 disables
	ValidatePayloads  bool    `json:"validate_payloads,omitempty"`   // Check responses against embedded schemas

	// Polling
	PollIntervalSeconds int `json:"poll_interval_seconds,omitempty"`
	MaxPollMinutes      int `json:"max_poll_minutes,omitempty"` // Negative disables the bound

	// Search
	SerpAPIKey string   `json:"serp_api_key,omitempty"`
	Location   string   `json:"location,omitempty"`
	Portals    []string `json:"portals,omitempty"`
	NumJobs    int      `json:"num_jobs,omitempty"`
	MinScore   float64  `json:"min_score,omitempty"` // Default job list filter

	// GenAI
	GenAIAPIKey   string `json:"genai_api_key,omitempty"`
	GenAIProvider string `json:"genai_provider,omitempty"`

	// Behavior
	UseBrowser  bool   `json:"use_browser,omitempty"`  // Use headless browser for JS-rendered job pages
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL URL for the search archive
	LogLevel    string `json:"log_level,omitempty"`
	LogFormat   string `json:"log_format,omitempty"`
	Verbose     bool   `json:"verbose,omitempty"` // Print detailed debug information
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		APIBaseURL:          DefaultAPIBaseURL,
		TimeoutSeconds:      DefaultTimeoutSeconds,
		PollIntervalSeconds: DefaultPollIntervalSeconds,
		MaxPollMinutes:      DefaultMaxPollMinutes,
		Location:            DefaultLocation,
		Portals:             append([]string(nil), types.Portals...),
		NumJobs:             DefaultNumJobs,
		GenAIProvider:       DefaultGenAIProvider,
		LogLevel:            DefaultLogLevel,
		LogFormat:           DefaultLogFormat,
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
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.APIBaseURL != "" {
		u, err := url.Parse(c.APIBaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("config error: 'api_base_url' must be an http(s) URL: %s", c.APIBaseURL)
		}
	}

	// Validate numeric ranges
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'timeout_seconds' must be non-negative")
	}
	if c.PollIntervalSeconds < 0 {
		return fmt.Errorf("config error: 'poll_interval_seconds' must be non-negative")
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("config error: 'requests_per_second' must be non-negative")
	}
	if c.NumJobs < 0 || c.NumJobs > 100 {
		return fmt.Errorf("config error: 'num_jobs' must be between 1 and 100")
	}
	if c.MinScore < 0 || c.MinScore > 100 {
		return fmt.Errorf("config error: 'min_score' must be between 0 and 100")
	}

	for _, p := range c.Portals {
		if !isPortal(p) {
			return fmt.Errorf("config error: unknown portal %q (valid: %s)", p, strings.Join(types.Portals, ", "))
		}
	}

	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("config error: 'log_level' must be one of debug, info, warn, error")
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("config error: 'log_format' must be text or json")
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.APIBaseURL == "" {
		result.APIBaseURL = defaults.APIBaseURL
	}
	if result.SerpAPIKey == "" {
		result.SerpAPIKey = defaults.SerpAPIKey
	}
	if result.Location == "" {
		result.Location = defaults.Location
	}
	if result.GenAIAPIKey == "" {
		result.GenAIAPIKey = defaults.GenAIAPIKey
	}
	if result.GenAIProvider == "" {
		result.GenAIProvider = defaults.GenAIProvider
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	// Slice fields
	if len(result.Portals) == 0 {
		result.Portals = append([]string(nil), defaults.Portals...)
	}

	// Int fields: use default if zero
	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if result.PollIntervalSeconds == 0 {
		result.PollIntervalSeconds = defaults.PollIntervalSeconds
	}
	if result.MaxPollMinutes == 0 {
		result.MaxPollMinutes = defaults.MaxPollMinutes
	}
	if result.NumJobs == 0 {
		result.NumJobs = defaults.NumJobs
	}

	// Float fields
	if result.RequestsPerSecond == 0 {
		result.RequestsPerSecond = defaults.RequestsPerSecond
	}
	if result.MinScore == 0 {
		result.MinScore = defaults.MinScore
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ApplyEnv fills empty fields from the environment.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := getenv(EnvAPIURL); v != "" && c.APIBaseURL == "" {
		c.APIBaseURL = v
	}
	if v := getenv(EnvSerpAPIKey); v != "" && c.SerpAPIKey == "" {
		c.SerpAPIKey = v
	}
	if v := getenv(EnvGenAIAPIKey); v != "" && c.GenAIAPIKey == "" {
		c.GenAIAPIKey = v
	}
	if v := getenv(EnvDatabaseURL); v != "" && c.DatabaseURL == "" {
		c.DatabaseURL = v
	}
	if v := getenv(EnvLogLevel); v != "" && c.LogLevel == "" {
		c.LogLevel = v
	}
}

// Timeout returns the per-request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// PollInterval returns the delay between status checks.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// MaxPoll returns the poll bound. Negative means unbounded.
func (c *Config) MaxPoll() time.Duration {
	if c.MaxPollMinutes < 0 {
		return -1
	}
	return time.Duration(c.MaxPollMinutes) * time.Minute
}

func isPortal(p string) bool {
	for _, known := range types.Portals {
		if strings.EqualFold(p, known) {
			return true
		}
	}
	return false
}
