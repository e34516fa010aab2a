package embedder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry() *RetryConfig {
	return &RetryConfig{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond, Multiplier: 2}
}

// embeddingServer answers with vectors whose first component encodes the input position
func embeddingServer(t *testing.T, dim int, status *atomic.Int32, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		if code := status.Load(); code != 0 {
			w.WriteHeader(int(code))
			_, _ = w.Write([]byte(`{"error":"nope"}`))
			return
		}

		var req embeddingsRequest
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		type item struct {
			Embedding []float32 `json:"embedding"`
			Index     int       `json:"index"`
		}
		data := make([]item, len(req.Input))
		// reversed to check reordering by index
		for i := range req.Input {
			vec := make([]float32, dim)
			vec[0] = float32(i + 1)
			vec[1] = 1
			data[len(req.Input)-1-i] = item{Embedding: vec, Index: i}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"model": req.Model, "data": data})
	}))
}

func newTestRemote(t *testing.T, url string, dim int) *RemoteProvider {
	t.Helper()
	p, err := NewRemoteProvider(RemoteConfig{
		Name:      ProviderJina,
		APIKey:    "test-key",
		BaseURL:   url + "/v1/",
		Model:     DefaultJinaModel,
		Dimension: dim,
		Timeout:   5 * time.Second,
		Retry:     fastRetry(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestRemoteProviderBatch(t *testing.T) {
	var status, calls atomic.Int32
	server := embeddingServer(t, 4, &status, &calls)
	defer server.Close()

	p := newTestRemote(t, server.URL, 4)

	vecs, err := p.EmbedBatch(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, vecs, 3)

	for i, v := range vecs {
		assert.InDelta(t, 1.0, vectorNorm(v), 1e-5)
		// first component grows with the original position
		if i > 0 {
			assert.Greater(t, v[0], vecs[i-1][0])
		}
	}
}

func TestRemoteProviderSingle(t *testing.T) {
	var status, calls atomic.Int32
	server := embeddingServer(t, 4, &status, &calls)
	defer server.Close()

	p := newTestRemote(t, server.URL, 4)
	vec, err := p.Embed(context.Background(), "pool")
	require.NoError(t, err)
	assert.Len(t, vec, 4)

	_, err = p.Embed(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyText)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRemoteProviderRetries(t *testing.T) {
	tests := []struct {
		name      string
		status    int32
		wantCalls int32
	}{
		{"server error is retried", http.StatusInternalServerError, 3},
		{"rate limit is retried", http.StatusTooManyRequests, 3},
		{"client error is permanent", http.StatusUnauthorized, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var status, calls atomic.Int32
			status.Store(tt.status)
			server := embeddingServer(t, 4, &status, &calls)
			defer server.Close()

			p := newTestRemote(t, server.URL, 4)
			_, err := p.EmbedBatch(context.Background(), []string{"a"})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrProviderFailed)
			assert.Equal(t, tt.wantCalls, calls.Load())
		})
	}
}

func TestRemoteProviderDimensionMismatch(t *testing.T) {
	var status, calls atomic.Int32
	server := embeddingServer(t, 8, &status, &calls)
	defer server.Close()

	p := newTestRemote(t, server.URL, 4)
	_, err := p.EmbedBatch(context.Background(), []string{"a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dimension mismatch")
	assert.Equal(t, int32(1), calls.Load())
}

func TestRemoteProviderBatchLimit(t *testing.T) {
	p, err := NewJinaProvider("key", "")
	require.NoError(t, err)

	texts := make([]string, MaxBatchSize+1)
	for i := range texts {
		texts[i] = "x"
	}
	_, err = p.EmbedBatch(context.Background(), texts)
	assert.ErrorIs(t, err, ErrBatchTooLarge)
}

func TestRetryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	_, err := retryWithBackoff(ctx, RetryConfig{MaxRetries: 5, BaseDelay: time.Second, MaxDelay: time.Second, Multiplier: 1},
		func() (int, error) {
			attempts++
			cancel()
			return 0, assert.AnError
		})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}
