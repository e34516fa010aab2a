package embedder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"
)

// Provider configuration
const (
	ProviderJina   = "jina"
	ProviderOpenAI = "openai"
	ProviderLocal  = "local"

	// Default endpoints
	DefaultJinaBaseURL   = "https://api.jina.ai/v1"
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"

	// Default models
	DefaultJinaModel   = "jina-embeddings-v3"
	DefaultOpenAIModel = "text-embedding-3-small"

	// Dimensions
	JinaDimension   = 1024
	OpenAIDimension = 1536
	LocalDimension  = 384

	// Batch limits
	DefaultBatchSize = 50
	MaxBatchSize     = 100

	// Retry configuration
	MaxRetries        = 3
	InitialBackoffMs  = 100
	MaxBackoffMs      = 5000
	BackoffMultiplier = 2.0

	// DefaultTimeout bounds a single HTTP call
	DefaultTimeout = 30 * time.Second
)

// RemoteProvider implements Embedder against an OpenAI-compatible embeddings endpoint
type RemoteProvider struct {
	name       string
	apiKey     string
	baseURL    string
	model      string
	dimension  int
	httpClient *http.Client
	retry      RetryConfig
}

// RemoteConfig configures a RemoteProvider
type RemoteConfig struct {
	Name      string
	APIKey    string
	BaseURL   string
	Model     string
	Dimension int
	Timeout   time.Duration
	Retry     *RetryConfig
}

// NewRemoteProvider creates a provider for an OpenAI-compatible API
func NewRemoteProvider(cfg RemoteConfig) (*RemoteProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: %s api key not set", ErrNoProviderEnabled, cfg.Name)
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: %s base url not set", ErrInvalidInput, cfg.Name)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	retry := DefaultRetryConfig()
	if cfg.Retry != nil {
		retry = *cfg.Retry
	}

	return &RemoteProvider{
		name:      cfg.Name,
		apiKey:    cfg.APIKey,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		model:     cfg.Model,
		dimension: cfg.Dimension,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		retry: retry,
	}, nil
}

// NewJinaProvider creates a Jina AI embedder. An empty baseURL uses the public API.
func NewJinaProvider(apiKey, baseURL string) (*RemoteProvider, error) {
	if baseURL == "" {
		baseURL = DefaultJinaBaseURL
	}
	return NewRemoteProvider(RemoteConfig{
		Name:      ProviderJina,
		APIKey:    apiKey,
		BaseURL:   baseURL,
		Model:     DefaultJinaModel,
		Dimension: JinaDimension,
	})
}

// NewOpenAIProvider creates an OpenAI embedder. An empty baseURL uses the public API.
func NewOpenAIProvider(apiKey, baseURL string) (*RemoteProvider, error) {
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}
	return NewRemoteProvider(RemoteConfig{
		Name:      ProviderOpenAI,
		APIKey:    apiKey,
		BaseURL:   baseURL,
		Model:     DefaultOpenAIModel,
		Dimension: OpenAIDimension,
	})
}

func (r *RemoteProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ValidateText(text); err != nil {
		return nil, err
	}

	vecs, err := r.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (r *RemoteProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if err := ValidateBatch(texts, MaxBatchSize); err != nil {
		return nil, err
	}

	vecs, err := retryWithBackoff(ctx, r.retry, func() ([][]float32, error) {
		return r.callAPI(ctx, texts)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrProviderFailed, r.name, err)
	}

	return vecs, nil
}

type embeddingsRequest struct {
	Input []string `json:"input"`
	Model string   `json:"model"`
}

type embeddingsResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
	Model string `json:"model"`
}

func (r *RemoteProvider) callAPI(ctx context.Context, texts []string) ([][]float32, error) {
	body, err := json.Marshal(embeddingsRequest{Input: texts, Model: r.model})
	if err != nil {
		return nil, permanent(fmt.Errorf("marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, permanent(fmt.Errorf("create request: %w", err))
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.apiKey)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api call: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		apiErr := fmt.Errorf("api error %d: %s", resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return nil, apiErr
		}
		return nil, permanent(apiErr)
	}

	var apiResp embeddingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if len(apiResp.Data) != len(texts) {
		return nil, permanent(fmt.Errorf("expected %d embeddings, got %d", len(texts), len(apiResp.Data)))
	}

	// the API may return items out of order
	sort.SliceStable(apiResp.Data, func(i, j int) bool {
		return apiResp.Data[i].Index < apiResp.Data[j].Index
	})

	vecs := make([][]float32, len(apiResp.Data))
	for i, data := range apiResp.Data {
		if r.dimension > 0 && len(data.Embedding) != r.dimension {
			return nil, permanent(fmt.Errorf("%w: want %d, got %d", ErrDimensionMismatch, r.dimension, len(data.Embedding)))
		}
		vecs[i] = NormalizeVector(data.Embedding)
	}

	return vecs, nil
}

func (r *RemoteProvider) Dimension() int {
	return r.dimension
}

func (r *RemoteProvider) Provider() string {
	return r.name
}

func (r *RemoteProvider) Model() string {
	return r.model
}

func (r *RemoteProvider) Close() error {
	r.httpClient.CloseIdleConnections()
	return nil
}
