// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load layers defaults, an optional YAML file and DUGOUT_* env vars.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// UpstreamURL is the read-only player dataset endpoint.
	UpstreamURL string `koanf:"upstream_url"`

	// UpstreamTimeoutMS bounds a single upstream request.
	UpstreamTimeoutMS int `koanf:"upstream_timeout_ms"`

	// CacheTTLSeconds is the upstream freshness window.
	CacheTTLSeconds int `koanf:"cache_ttl_seconds"`

	// StoreDriver selects override persistence: memory, sqlite or bolt.
	StoreDriver string `koanf:"store_driver"`

	// StorePath is the database file for the sqlite and bolt drivers.
	StorePath string `koanf:"store_path"`

	// OpenAI settings for scouting report generation. An empty key disables
	// generation.
	OpenAIAPIKey  string `koanf:"openai_api_key"`
	OpenAIBaseURL string `koanf:"openai_base_url"`
	OpenAIModel   string `koanf:"openai_model"`

	// GenerationTemperature and GenerationMaxTokens are the fixed sampling
	// parameters used for every report.
	GenerationTemperature float64 `koanf:"generation_temperature"`
	GenerationMaxTokens   int     `koanf:"generation_max_tokens"`

	// Metric name prefix and latency histogram buckets (milliseconds).
	MetricsNamespace string    `koanf:"metrics_namespace"`
	MetricsSubsystem string    `koanf:"metrics_subsystem"`
	MetricsBucketsMS []float64 `koanf:"metrics_buckets_ms"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:              "info",
		LogFormat:             "text",
		Addr:                  ":9080",
		UpstreamURL:           "https://api.hirefraction.com/api/test/baseball",
		UpstreamTimeoutMS:     10_000,
		CacheTTLSeconds:       300,
		StoreDriver:           "sqlite",
		StorePath:             "data/dugout.db",
		OpenAIModel:           "gpt-4o-mini",
		GenerationTemperature: 0.7,
		GenerationMaxTokens:   300,
		MetricsNamespace:      "dugout",
		MetricsSubsystem:      "players",
	}
}

// UpstreamTimeout returns the upstream request timeout as a duration.
func (c *Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.UpstreamTimeoutMS) * time.Millisecond
}

// CacheTTL returns the upstream freshness window as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
