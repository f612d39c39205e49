package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the query router.
type Config struct {
	LLM       LLMConfig       `yaml:"llm"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Retrieve  RetrieveConfig  `yaml:"retrieve"`
	Routes    []RouteConfig   `yaml:"routes"`
	Cache     CacheConfig     `yaml:"cache"`
	Ingest    IngestConfig    `yaml:"ingest"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LLMConfig holds chat-completion configuration for query analysis.
type LLMConfig struct {
	BaseURL     string  `yaml:"base_url"`    // OpenAI-compatible endpoint
	Model       string  `yaml:"model"`       // e.g., "gpt-4o-mini"
	APIKeyEnv   string  `yaml:"api_key_env"` // Environment variable for API key
	Temperature float64 `yaml:"temperature"`
	MaxRetries  int     `yaml:"max_retries"` // Transport retries for transient errors
}

// EmbeddingConfig holds embedding configuration.
type EmbeddingConfig struct {
	Model     string `yaml:"model"` // e.g., "text-embedding-3-small"
	APIKeyEnv string `yaml:"api_key_env"`
	BaseURL   string `yaml:"base_url"`
	Dimension int    `yaml:"dimension"`
	BatchSize int    `yaml:"batch_size"`
}

// RetrieveConfig holds retrieval configuration.
type RetrieveConfig struct {
	TopK       int `yaml:"top_k"`
	RRFK       int `yaml:"rrf_k"`      // Reciprocal rank fusion constant
	Expansions int `yaml:"expansions"` // Paraphrase count for multi-query retrieval
}

// RouteConfig declares one retrieval backend the analyzer may select.
type RouteConfig struct {
	Key         string `yaml:"key"`         // Target key the analyzer returns
	Collection  string `yaml:"collection"`  // Vector store collection to search
	Description string `yaml:"description"` // Shown to the analyzer prompt
	HyDE        bool   `yaml:"hyde"`        // Search via a hypothetical answer
}

// CacheConfig holds query cache configuration.
type CacheConfig struct {
	Enabled    bool `yaml:"enabled"`
	MaxEntries int  `yaml:"max_entries"`
	TTLSeconds int  `yaml:"ttl_seconds"`
}

// IngestConfig holds corpus ingestion configuration.
type IngestConfig struct {
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
	MaxChunk int      `yaml:"max_chunk"` // Maximum chunk size in characters
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			BaseURL:     "https://api.openai.com/v1",
			Model:       "gpt-4o-mini",
			APIKeyEnv:   "OPENAI_API_KEY",
			Temperature: 0,
			MaxRetries:  3,
		},
		Embedding: EmbeddingConfig{
			Model:     "text-embedding-3-small",
			APIKeyEnv: "OPENAI_API_KEY",
			BaseURL:   "https://api.openai.com/v1",
			Dimension: 1536,
			BatchSize: 100,
		},
		Retrieve: RetrieveConfig{
			TopK:       5,
			RRFK:       60,
			Expansions: 3,
		},
		Cache: CacheConfig{
			Enabled:    false,
			MaxEntries: 100,
			TTLSeconds: 300,
		},
		Ingest: IngestConfig{
			Includes: []string{"**/*.md", "**/*.txt"},
			Excludes: []string{"**/node_modules/**", "**/.git/**"},
			MaxChunk: 2000,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks invariants that must hold before any wiring happens.
// Route keys are validated eagerly so a bad config fails at startup, not
// on the first dispatch.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Routes))
	for i, r := range c.Routes {
		if r.Key == "" {
			return fmt.Errorf("route %d: key must not be empty", i)
		}
		if r.Collection == "" {
			return fmt.Errorf("route %q: collection must not be empty", r.Key)
		}
		if seen[r.Key] {
			return fmt.Errorf("route %q: duplicate key", r.Key)
		}
		seen[r.Key] = true
	}
	return nil
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for queryrouter.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "queryrouter.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".queryrouter", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// StoreDBPath returns the path to the vector store database.
func StoreDBPath(dir string) string {
	return filepath.Join(dir, ".queryrouter", "vectors.db")
}

// EnsureDataDir ensures the .queryrouter directory exists.
func EnsureDataDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, ".queryrouter"), 0755)
}
