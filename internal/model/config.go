package model

import (
	"fmt"
	"time"
)

// Config holds the full per-run configuration.
type Config struct {
	Input     string        `yaml:"input" json:"input"`
	OutputDir string        `yaml:"output_dir" json:"output_dir"`
	LogDir    string        `yaml:"log_dir" json:"log_dir"` // defaults to <output_dir>/logs
	ChunkSize int           `yaml:"chunk_size" json:"chunk_size"`
	Delay     time.Duration `yaml:"delay" json:"delay"` // inter-chunk pacing, simulated mode only
	Simulate  bool          `yaml:"simulate" json:"simulate"`
	Verbose   bool          `yaml:"verbose" json:"verbose"`

	// MaxRecords bounds an unbounded source; 0 means no limit.
	MaxRecords int `yaml:"max_records" json:"max_records"`

	Lexicon LexiconConfig `yaml:"lexicon" json:"lexicon"`
	Engine  EngineConfig  `yaml:"engine" json:"engine"`
}

// LexiconConfig controls where the stopword lexicon comes from.
type LexiconConfig struct {
	// Source is "" or "embedded" for the built-in English list, a file
	// path, or an http(s) URL fetched once and cached.
	Source   string        `yaml:"source" json:"source"`
	CacheDir string        `yaml:"cache_dir" json:"cache_dir"`
	CacheTTL time.Duration `yaml:"cache_ttl" json:"cache_ttl"`
}

// EngineConfig selects and configures the sentiment scoring engine.
type EngineConfig struct {
	Provider string `yaml:"provider" json:"provider"` // "lexical" (default) or "openai"
	Model    string `yaml:"model" json:"model"`
	APIKey   string `yaml:"-" json:"-"`
	BaseURL  string `yaml:"base_url" json:"base_url"`
	Timeout  int    `yaml:"timeout" json:"timeout"` // seconds
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() *Config {
	return &Config{
		OutputDir: "./sentistream-out",
		ChunkSize: 1,
		Delay:     0,
		Lexicon: LexiconConfig{
			Source:   "embedded",
			CacheTTL: 7 * 24 * time.Hour,
		},
		Engine: EngineConfig{
			Provider: "lexical",
			Timeout:  30,
		},
	}
}

// Validate checks the configuration surface before a run starts.
func (c *Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("input path is required")
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be a positive integer, got %d", c.ChunkSize)
	}
	if c.Delay < 0 {
		return fmt.Errorf("delay must be non-negative, got %v", c.Delay)
	}
	return nil
}
