package embedder

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of cached query embeddings
const DefaultCacheSize = 10000

// Cache provides in-memory LRU caching of embeddings by content hash
type Cache struct {
	cache *lru.Cache[string, []float32]
}

// NewCache creates a new embedding cache with LRU eviction
func NewCache(maxLen int) *Cache {
	if maxLen <= 0 {
		maxLen = DefaultCacheSize
	}
	cache, err := lru.New[string, []float32](maxLen)
	if err != nil {
		cache, _ = lru.New[string, []float32](DefaultCacheSize)
	}
	return &Cache{
		cache: cache,
	}
}

// Get retrieves a copy of a cached vector
func (c *Cache) Get(hash string) ([]float32, bool) {
	vec, ok := c.cache.Get(hash)
	if !ok {
		return nil, false
	}

	out := make([]float32, len(vec))
	copy(out, vec)
	return out, true
}

// Set stores a copy of vec
func (c *Cache) Set(hash string, vec []float32) {
	stored := make([]float32, len(vec))
	copy(stored, vec)
	c.cache.Add(hash, stored)
}

// Size returns the current cache size
func (c *Cache) Size() int {
	return c.cache.Len()
}

// Clear empties the cache
func (c *Cache) Clear() {
	c.cache.Purge()
}

// Cached wraps an Embedder so that single-text calls hit the cache first.
// Batch calls populate the cache but always go to the provider.
type Cached struct {
	Embedder
	cache *Cache
}

// WithCache decorates e with cache. A nil cache returns e unchanged.
func WithCache(e Embedder, cache *Cache) Embedder {
	if cache == nil {
		return e
	}
	return &Cached{Embedder: e, cache: cache}
}

// Embed returns the cached vector for text or computes and stores it
func (c *Cached) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ValidateText(text); err != nil {
		return nil, err
	}

	hash := ComputeHash(text)
	if vec, ok := c.cache.Get(hash); ok {
		return vec, nil
	}

	vec, err := c.Embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	c.cache.Set(hash, vec)
	return vec, nil
}

// EmbedBatch forwards to the provider and caches the results
func (c *Cached) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vecs, err := c.Embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, err
	}
	for i, vec := range vecs {
		c.cache.Set(ComputeHash(texts[i]), vec)
	}
	return vecs, nil
}

// Cache exposes the underlying cache
func (c *Cached) Cache() *Cache {
	return c.cache
}
