package embedder

import (
	"fmt"
	"strings"
	"time"
)

// Config holds embedder configuration
type Config struct {
	Provider     string // jina, openai, local; empty means detect from keys
	JinaAPIKey   string
	OpenAIAPIKey string
	BaseURL      string // overrides the provider endpoint
	Model        string // overrides the provider default model
	Dimension    int    // expected vector size; 0 uses the provider default
	CacheSize    int    // query cache entries; negative disables the cache
	Timeout      time.Duration
}

// Detect returns the provider a config resolves to, or "" when none is configured.
// Priority:
// 1. Explicit Provider
// 2. JinaAPIKey
// 3. OpenAIAPIKey
func Detect(cfg Config) string {
	if p := strings.ToLower(strings.TrimSpace(cfg.Provider)); p != "" {
		return p
	}
	if cfg.JinaAPIKey != "" {
		return ProviderJina
	}
	if cfg.OpenAIAPIKey != "" {
		return ProviderOpenAI
	}
	return ""
}

// New creates the embedder selected by Detect, wrapped with a query cache
func New(cfg Config) (Embedder, error) {
	var (
		base Embedder
		err  error
	)

	switch provider := Detect(cfg); provider {
	case ProviderJina:
		base, err = newRemote(cfg, ProviderJina, cfg.JinaAPIKey, DefaultJinaBaseURL, DefaultJinaModel, JinaDimension)
	case ProviderOpenAI:
		base, err = newRemote(cfg, ProviderOpenAI, cfg.OpenAIAPIKey, DefaultOpenAIBaseURL, DefaultOpenAIModel, OpenAIDimension)
	case ProviderLocal:
		base = NewLocalProvider(cfg.Dimension)
	case "":
		return nil, ErrNoProviderEnabled
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedModel, provider)
	}
	if err != nil {
		return nil, err
	}

	if cfg.CacheSize < 0 {
		return base, nil
	}
	return WithCache(base, NewCache(cfg.CacheSize)), nil
}

func newRemote(cfg Config, name, apiKey, baseURL, model string, dimension int) (*RemoteProvider, error) {
	if cfg.BaseURL != "" {
		baseURL = cfg.BaseURL
	}
	if cfg.Model != "" {
		model = cfg.Model
		// a custom model has its own size unless told otherwise
		dimension = 0
	}
	if cfg.Dimension > 0 {
		dimension = cfg.Dimension
	}

	return NewRemoteProvider(RemoteConfig{
		Name:      name,
		APIKey:    apiKey,
		BaseURL:   baseURL,
		Model:     model,
		Dimension: dimension,
		Timeout:   cfg.Timeout,
	})
}
