package embedder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"explicit jina", Config{Provider: "Jina"}, ProviderJina},
		{"explicit local", Config{Provider: "local"}, ProviderLocal},
		{"jina key", Config{JinaAPIKey: "k"}, ProviderJina},
		{"openai key", Config{OpenAIAPIKey: "k"}, ProviderOpenAI},
		{"jina wins over openai", Config{JinaAPIKey: "k", OpenAIAPIKey: "k"}, ProviderJina},
		{"explicit beats keys", Config{Provider: "openai", JinaAPIKey: "k"}, ProviderOpenAI},
		{"nothing configured", Config{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.cfg))
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("no provider", func(t *testing.T) {
		_, err := New(Config{})
		assert.ErrorIs(t, err, ErrNoProviderEnabled)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := New(Config{Provider: "cohere"})
		assert.ErrorIs(t, err, ErrUnsupportedModel)
	})

	t.Run("jina without key", func(t *testing.T) {
		_, err := New(Config{Provider: ProviderJina})
		assert.ErrorIs(t, err, ErrNoProviderEnabled)
	})

	t.Run("local is cached by default", func(t *testing.T) {
		emb, err := New(Config{Provider: ProviderLocal})
		require.NoError(t, err)
		_, ok := emb.(*Cached)
		assert.True(t, ok)
		assert.Equal(t, LocalDimension, emb.Dimension())
	})

	t.Run("cache disabled", func(t *testing.T) {
		emb, err := New(Config{Provider: ProviderLocal, CacheSize: -1})
		require.NoError(t, err)
		_, ok := emb.(*LocalProvider)
		assert.True(t, ok)
	})

	t.Run("openai overrides", func(t *testing.T) {
		emb, err := New(Config{
			Provider:     ProviderOpenAI,
			OpenAIAPIKey: "k",
			BaseURL:      "http://localhost:11434/v1",
			Model:        "nomic-embed-text",
			CacheSize:    -1,
		})
		require.NoError(t, err)

		remote, ok := emb.(*RemoteProvider)
		require.True(t, ok)
		assert.Equal(t, "nomic-embed-text", remote.Model())
		assert.Equal(t, 0, remote.Dimension(), "custom model has no assumed size")
		assert.Equal(t, "http://localhost:11434/v1", remote.baseURL)
	})
}
