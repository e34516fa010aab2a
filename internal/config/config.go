// Package config loads faqbot configuration from YAML and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/embedder"
	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/observability"
	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/searcher"
	"github.com/Ameytillu/hotel-faq-sentiment-bot/pkg/types"
)

// Config holds all faqbot configuration.
type Config struct {
	Knowledge KnowledgeConfig `yaml:"knowledge"`
	Matching  MatchingConfig  `yaml:"matching"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
}

// KnowledgeConfig locates the knowledge document.
type KnowledgeConfig struct {
	Path     string        `yaml:"path"`
	Watch    bool          `yaml:"watch"`
	Debounce time.Duration `yaml:"debounce"`
}

// MatchingConfig holds query defaults and backend restrictions.
type MatchingConfig struct {
	Threshold        float64  `yaml:"threshold"`
	TopK             int      `yaml:"top_k"`
	DisabledBackends []string `yaml:"disabled_backends"`
}

// EmbeddingConfig selects the dense embedding provider.
type EmbeddingConfig struct {
	Provider     string        `yaml:"provider"` // "", local, jina or openai
	JinaAPIKey   string        `yaml:"jina_api_key"`
	OpenAIAPIKey string        `yaml:"openai_api_key"`
	BaseURL      string        `yaml:"base_url"`
	Model        string        `yaml:"model"`
	Dimension    int           `yaml:"dimension"`
	CacheSize    int           `yaml:"cache_size"`
	BatchSize    int           `yaml:"batch_size"`
	Concurrency  int           `yaml:"concurrency"`
	Timeout      time.Duration `yaml:"timeout"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host             string        `yaml:"host"`
	Port             int           `yaml:"port"`
	ReadTimeout      time.Duration `yaml:"read_timeout"`
	WriteTimeout     time.Duration `yaml:"write_timeout"`
	RequestTimeout   time.Duration `yaml:"request_timeout"`
	GracefulShutdown time.Duration `yaml:"graceful_shutdown"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads configuration from a YAML file and applies environment overrides.
// An empty path uses defaults and the environment only.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}

		if cfg.Knowledge.Path != "" {
			cfg.Knowledge.Path = ResolveRelativePath(path, cfg.Knowledge.Path)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// DefaultConfig returns a configuration with defaults for local use.
func DefaultConfig() *Config {
	return &Config{
		Knowledge: KnowledgeConfig{
			Path:     "data/hotel.json",
			Debounce: 500 * time.Millisecond,
		},
		Matching: MatchingConfig{
			Threshold: 0.60,
			TopK:      3,
		},
		Embedding: EmbeddingConfig{
			CacheSize:   embedder.DefaultCacheSize,
			BatchSize:   embedder.DefaultBatchSize,
			Concurrency: 4,
			Timeout:     embedder.DefaultTimeout,
		},
		Server: ServerConfig{
			Host:             "0.0.0.0",
			Port:             8085,
			ReadTimeout:      15 * time.Second,
			WriteTimeout:     30 * time.Second,
			RequestTimeout:   20 * time.Second,
			GracefulShutdown: 10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Matching.Threshold < 0 || c.Matching.Threshold > 1 {
		return fmt.Errorf("threshold must be between 0 and 1: %v", c.Matching.Threshold)
	}

	if c.Matching.TopK < 0 || c.Matching.TopK > 10 {
		return fmt.Errorf("top_k must be between 0 and 10: %d", c.Matching.TopK)
	}

	if _, err := c.DisabledBackends(); err != nil {
		return err
	}

	switch strings.ToLower(c.Embedding.Provider) {
	case "", embedder.ProviderLocal, embedder.ProviderJina, embedder.ProviderOpenAI:
	default:
		return fmt.Errorf("invalid embedding provider: %s", c.Embedding.Provider)
	}

	if c.Embedding.BatchSize < 1 || c.Embedding.BatchSize > embedder.MaxBatchSize {
		return fmt.Errorf("embedding batch_size must be between 1 and %d", embedder.MaxBatchSize)
	}

	if c.Embedding.Concurrency < 1 {
		return fmt.Errorf("embedding concurrency must be positive")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if !observability.ValidLevel(c.Log.Level) {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("invalid log format: %s", c.Log.Format)
	}

	return nil
}

// DisabledBackends parses Matching.DisabledBackends.
// The keyword backend cannot be disabled.
func (c *Config) DisabledBackends() ([]types.BackendKind, error) {
	out := make([]types.BackendKind, 0, len(c.Matching.DisabledBackends))
	for _, name := range c.Matching.DisabledBackends {
		kind := types.BackendKind(strings.ToLower(strings.TrimSpace(name)))
		switch kind {
		case types.BackendDense, types.BackendBM25, types.BackendTFIDF:
			out = append(out, kind)
		case "":
		default:
			return nil, fmt.Errorf("invalid disabled backend: %q", name)
		}
	}
	return out, nil
}

// EmbedderConfig converts the embedding section for embedder.New.
func (c *Config) EmbedderConfig() embedder.Config {
	return embedder.Config{
		Provider:     c.Embedding.Provider,
		JinaAPIKey:   c.Embedding.JinaAPIKey,
		OpenAIAPIKey: c.Embedding.OpenAIAPIKey,
		BaseURL:      c.Embedding.BaseURL,
		Model:        c.Embedding.Model,
		Dimension:    c.Embedding.Dimension,
		CacheSize:    c.Embedding.CacheSize,
		Timeout:      c.Embedding.Timeout,
	}
}

// IndexOptions converts the embedding section for searcher.Build.
func (c *Config) IndexOptions() searcher.Options {
	return searcher.Options{
		BatchSize:   c.Embedding.BatchSize,
		Concurrency: c.Embedding.Concurrency,
	}
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("FAQ_KNOWLEDGE_PATH"); v != "" {
		cfg.Knowledge.Path = v
	}

	if v := os.Getenv("FAQ_WATCH"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("FAQ_WATCH: %w", err)
		}
		cfg.Knowledge.Watch = b
	}

	if v := os.Getenv("FAQ_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("FAQ_THRESHOLD: %w", err)
		}
		cfg.Matching.Threshold = f
	}

	if v := os.Getenv("FAQ_TOP_K"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FAQ_TOP_K: %w", err)
		}
		cfg.Matching.TopK = n
	}

	if v := os.Getenv("FAQ_DISABLED_BACKENDS"); v != "" {
		cfg.Matching.DisabledBackends = strings.Split(v, ",")
	}

	if v := os.Getenv("FAQ_EMBEDDING_PROVIDER"); v != "" {
		cfg.Embedding.Provider = v
	}

	if v := os.Getenv("JINA_API_KEY"); v != "" {
		cfg.Embedding.JinaAPIKey = v
	}

	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Embedding.OpenAIAPIKey = v
	}

	if v := os.Getenv("FAQ_EMBEDDING_BASE_URL"); v != "" {
		cfg.Embedding.BaseURL = v
	}

	if v := os.Getenv("SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}

	if v := os.Getenv("SERVER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}

	return nil
}

// ResolveRelativePath resolves a path relative to the config file location.
func ResolveRelativePath(configPath, targetPath string) string {
	if filepath.IsAbs(targetPath) {
		return targetPath
	}
	return filepath.Join(filepath.Dir(configPath), targetPath)
}
