// Package embedder turns FAQ documents and queries into unit-length vectors
// for the dense backend.
//
// Two kinds of provider are supported:
//
//   - remote providers speaking the OpenAI-compatible /v1/embeddings API
//     (Jina AI, OpenAI, or any self-hosted server via BaseURL)
//   - a local feature-hashing provider that needs no network access
//
// # Basic Usage
//
//	emb, err := embedder.New(embedder.Config{
//	    Provider:   embedder.ProviderJina,
//	    JinaAPIKey: os.Getenv("JINA_API_KEY"),
//	})
//	if err != nil {
//	    return err
//	}
//	defer emb.Close()
//
//	vectors, err := emb.EmbedBatch(ctx, []string{"pool hours", "check in time"})
//
// Every returned vector is normalized to unit length, so the inner product of
// two vectors is their cosine similarity.
//
// # Provider Selection
//
// Detect reports which provider a Config resolves to:
//
//  1. If Provider is set, use it
//  2. Else if an API key is set, use the provider the key belongs to
//  3. Else no provider; the dense backend is not available
//
// The local provider is never chosen implicitly.
//
// # Caching
//
// Query embeddings are cached in an LRU keyed by the SHA-256 of the text.
// Cached vectors are copied on read so callers cannot corrupt the cache.
//
// # Retries
//
// Remote calls are retried with exponential backoff on transport errors,
// HTTP 429 and 5xx responses. Other 4xx responses fail immediately.
package embedder
