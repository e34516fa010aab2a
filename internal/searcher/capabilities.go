package searcher

import (
	"context"

	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/embedder"
	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/storage"
	"github.com/Ameytillu/hotel-faq-sentiment-bot/pkg/types"
)

// Capabilities describes which optional backends may be built in this process.
// The keyword backend is always available and is not listed.
type Capabilities struct {
	// Embedder enables the dense backend when non-nil
	Embedder embedder.Embedder

	// BM25 reports that SQLite FTS5 is linked
	BM25 bool

	// TFIDF enables the pure Go tf-idf backend
	TFIDF bool

	// Reasons explains why a backend is unavailable
	Reasons map[types.BackendKind]string
}

// Has reports whether kind may be attempted
func (c Capabilities) Has(kind types.BackendKind) bool {
	switch kind {
	case types.BackendDense:
		return c.Embedder != nil
	case types.BackendBM25:
		return c.BM25
	case types.BackendTFIDF:
		return c.TFIDF
	case types.BackendKeyword:
		return true
	default:
		return false
	}
}

// Reason returns why kind is unavailable, or "" if it is available
func (c Capabilities) Reason(kind types.BackendKind) string {
	if c.Has(kind) {
		return ""
	}
	if r, ok := c.Reasons[kind]; ok {
		return r
	}
	return "not available"
}

// Without returns a copy with the given backends disabled
func (c Capabilities) Without(kinds ...types.BackendKind) Capabilities {
	out := c
	out.Reasons = make(map[types.BackendKind]string, len(c.Reasons)+len(kinds))
	for k, v := range c.Reasons {
		out.Reasons[k] = v
	}

	for _, kind := range kinds {
		switch kind {
		case types.BackendDense:
			out.Embedder = nil
		case types.BackendBM25:
			out.BM25 = false
		case types.BackendTFIDF:
			out.TFIDF = false
		default:
			continue
		}
		out.Reasons[kind] = "disabled by configuration"
	}
	return out
}

// KeywordOnly is the capability set with nothing optional available
func KeywordOnly() Capabilities {
	return Capabilities{Reasons: map[types.BackendKind]string{
		types.BackendDense: "not available",
		types.BackendBM25:  "not available",
		types.BackendTFIDF: "not available",
	}}
}

// Probe detects the capabilities of this build. emb may be nil when no
// embedding provider is configured.
func Probe(ctx context.Context, emb embedder.Embedder) Capabilities {
	caps := Capabilities{
		Embedder: emb,
		TFIDF:    true,
		Reasons:  make(map[types.BackendKind]string),
	}

	if emb == nil {
		caps.Reasons[types.BackendDense] = "no embedding provider configured"
	}

	if err := storage.ProbeFTS5(ctx); err != nil {
		caps.Reasons[types.BackendBM25] = err.Error()
	} else {
		caps.BM25 = true
	}

	return caps
}
