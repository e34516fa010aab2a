package searcher

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/embedder"
	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/textnorm"
	"github.com/Ameytillu/hotel-faq-sentiment-bot/pkg/types"
)

// denseScorer ranks by inner product against precomputed unit vectors.
// Scoring a query calls the embedder, which may do network I/O.
type denseScorer struct {
	emb     embedder.Embedder
	vectors [][]float32
	dim     int
}

func newDenseScorer(ctx context.Context, entries []types.Entry, emb embedder.Embedder, opts Options) (*denseScorer, error) {
	docs := make([]string, len(entries))
	for i, e := range entries {
		docs[i] = textnorm.Normalize(e.Document())
		if docs[i] == "" {
			return nil, fmt.Errorf("entry %d has no embeddable text", i)
		}
	}

	vectors := make([][]float32, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for start := 0; start < len(docs); start += opts.BatchSize {
		start := start
		end := start + opts.BatchSize
		if end > len(docs) {
			end = len(docs)
		}

		g.Go(func() error {
			vecs, err := emb.EmbedBatch(gctx, docs[start:end])
			if err != nil {
				return fmt.Errorf("embed documents %d-%d: %w", start, end-1, err)
			}
			if len(vecs) != end-start {
				return fmt.Errorf("embed documents %d-%d: got %d vectors", start, end-1, len(vecs))
			}
			copy(vectors[start:end], vecs)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	dim := len(vectors[0])
	if dim == 0 {
		return nil, fmt.Errorf("%w: empty vectors", embedder.ErrDimensionMismatch)
	}
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: entry %d has %d dims, want %d", embedder.ErrDimensionMismatch, i, len(v), dim)
		}
	}

	return &denseScorer{emb: emb, vectors: vectors, dim: dim}, nil
}

func (d *denseScorer) raw(ctx context.Context, query string) ([]float64, error) {
	scores := make([]float64, len(d.vectors))

	text := textnorm.Normalize(query)
	if text == "" {
		return scores, nil
	}

	qv, err := d.emb.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate query embedding: %w", err)
	}
	if len(qv) != d.dim {
		return nil, fmt.Errorf("%w: query has %d dims, want %d", embedder.ErrDimensionMismatch, len(qv), d.dim)
	}

	for i, v := range d.vectors {
		scores[i] = embedder.Dot(qv, v)
	}
	return scores, nil
}

// normalize clamps cosine similarity into [0, 1]
func (d *denseScorer) normalize(raw []float64) []float64 {
	out := make([]float64, len(raw))
	for i, s := range raw {
		out[i] = clamp01(s)
	}
	return out
}

// close leaves the embedder open; its owner closes it
func (d *denseScorer) close() error {
	return nil
}
