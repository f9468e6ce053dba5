package model

import "time"

// Config holds the complete process configuration. It is read-only after
// startup; nothing in the analysis path mutates it.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	HTTP        HTTPConfig        `yaml:"http"`
	Cache       CacheConfig       `yaml:"cache"`
	AI          AIConfig          `yaml:"ai"`
	Analysis    AnalysisConfig    `yaml:"analysis"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// HTTPConfig configures outbound article fetching.
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout"`
	UserAgent     string        `yaml:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes"`
	InsecureTLS   bool          `yaml:"insecure_tls"`
	HTTPProxy     string        `yaml:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy"`
	NoProxy       string        `yaml:"no_proxy"`
	RespectRobots bool          `yaml:"respect_robots"`
}

// CacheConfig configures extraction caching.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// AIConfig configures the external AI text-analysis collaborator.
// An empty Provider disables AI scoring entirely.
type AIConfig struct {
	Provider  string `yaml:"provider"` // "openai", "anthropic", "ollama", ""
	Model     string `yaml:"model"`
	APIKey    string `yaml:"-"` // from environment only, never serialized
	BaseURL   string `yaml:"base_url"`
	Timeout   int    `yaml:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens"`
}

// AnalysisConfig carries the scoring policy constants. The defaults are
// heuristic values carried from the original design; they are surfaced
// here as policy, not meant to be rederived.
type AnalysisConfig struct {
	ContextRadius int     `yaml:"context_radius"` // chars of context per side
	DensityScale  float64 `yaml:"density_scale"`  // match density multiplier
	PatternWeight float64 `yaml:"pattern_weight"` // fusion weight, pattern score
	AIWeight      float64 `yaml:"ai_weight"`      // fusion weight, AI score
}

// ConcurrencyConfig configures batch processing.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// RateLimitConfig configures per-domain outbound rate limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":5000",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    90 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		HTTP: HTTPConfig{
			Timeout:       30 * time.Second,
			UserAgent:     "Propascan/0.1 (+https://github.com/propascan/propascan)",
			MaxBodyBytes:  2_000_000,
			RespectRobots: true,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		AI: AIConfig{
			Provider:  "", // disabled by default
			Timeout:   30,
			MaxTokens: 1500,
		},
		Analysis: AnalysisConfig{
			ContextRadius: 50,
			DensityScale:  2000,
			PatternWeight: 0.4,
			AIWeight:      0.6,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 2,
			Burst:             5,
		},
	}
}
