package searcher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/embedder"
	"github.com/Ameytillu/hotel-faq-sentiment-bot/pkg/types"
)

var (
	// ErrIndexClosed is returned when scoring against a closed index
	ErrIndexClosed = errors.New("index closed")

	// ErrEmptyVocabulary is returned when no document survives tf-idf tokenization
	ErrEmptyVocabulary = errors.New("empty vocabulary")
)

// scorer is one backend implementation
type scorer interface {
	// raw returns one backend-native score per entry
	raw(ctx context.Context, query string) ([]float64, error)

	// normalize maps raw scores to [0, 1]
	normalize(raw []float64) []float64

	close() error
}

// Options configures index construction
type Options struct {
	Logger zerolog.Logger

	// BatchSize is the number of documents per embedding request
	BatchSize int

	// Concurrency bounds parallel embedding requests
	Concurrency int
}

// Skipped records a backend that was not used and why
type Skipped struct {
	Backend types.BackendKind `json:"backend"`
	Reason  string            `json:"reason"`
}

// Stats describes a built index
type Stats struct {
	Backend       types.BackendKind `json:"backend"`
	Entries       int               `json:"entries"`
	Skipped       []Skipped         `json:"skipped"`
	BuiltAt       time.Time         `json:"built_at"`
	BuildDuration time.Duration     `json:"build_duration"`
}

// Index is an immutable scoring structure over an ordered entry list
type Index struct {
	backend types.BackendKind
	scorer  scorer
	entries []types.Entry
	stats   Stats

	mu     sync.RWMutex
	closed bool
}

func (o *Options) setDefaults() {
	if o.BatchSize <= 0 {
		o.BatchSize = embedder.DefaultBatchSize
	}
	if o.BatchSize > embedder.MaxBatchSize {
		o.BatchSize = embedder.MaxBatchSize
	}
	if o.Concurrency <= 0 {
		o.Concurrency = 4
	}
}

// Build constructs the index with the first backend, in priority order, that
// caps allows and that builds successfully.
func Build(ctx context.Context, entries []types.Entry, caps Capabilities, opts Options) (*Index, error) {
	opts.setDefaults()
	start := time.Now()

	owned := make([]types.Entry, len(entries))
	for i, e := range entries {
		owned[i] = e.Clone()
	}

	var skipped []Skipped
	skip := func(kind types.BackendKind, reason string) {
		skipped = append(skipped, Skipped{Backend: kind, Reason: reason})
	}

	var (
		chosen types.BackendKind
		sc     scorer
	)

	if len(owned) == 0 {
		for _, kind := range types.BackendPriority[:len(types.BackendPriority)-1] {
			skip(kind, "no entries")
		}
		chosen, sc = types.BackendKeyword, newKeywordScorer(owned)
	} else {
		for _, kind := range types.BackendPriority {
			if !caps.Has(kind) {
				skip(kind, caps.Reason(kind))
				continue
			}

			built, err := buildScorer(ctx, kind, owned, caps, opts)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return nil, fmt.Errorf("build index: %w", ctxErr)
				}
				opts.Logger.Warn().Err(err).Str("backend", string(kind)).Msg("backend build failed, trying next")
				skip(kind, err.Error())
				continue
			}

			chosen, sc = kind, built
			break
		}
	}

	idx := &Index{
		backend: chosen,
		scorer:  sc,
		entries: owned,
		stats: Stats{
			Backend:       chosen,
			Entries:       len(owned),
			Skipped:       skipped,
			BuiltAt:       time.Now(),
			BuildDuration: time.Since(start),
		},
	}

	evt := opts.Logger.Info().
		Str("backend", string(chosen)).
		Int("entries", len(owned)).
		Dur("duration", idx.stats.BuildDuration)
	for _, s := range skipped {
		evt = evt.Str("skipped_"+string(s.Backend), s.Reason)
	}
	evt.Msg("index built")

	return idx, nil
}

func buildScorer(ctx context.Context, kind types.BackendKind, entries []types.Entry, caps Capabilities, opts Options) (scorer, error) {
	switch kind {
	case types.BackendDense:
		return newDenseScorer(ctx, entries, caps.Embedder, opts)
	case types.BackendBM25:
		return newBM25Scorer(ctx, entries)
	case types.BackendTFIDF:
		return newTFIDFScorer(entries)
	case types.BackendKeyword:
		return newKeywordScorer(entries), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", kind)
	}
}

// Backend returns the backend this index committed to
func (ix *Index) Backend() types.BackendKind {
	return ix.backend
}

// Len returns the number of entries
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Entry returns a copy of the entry at position i
func (ix *Index) Entry(i int) types.Entry {
	return ix.entries[i].Clone()
}

// Stats returns build diagnostics
func (ix *Index) Stats() Stats {
	s := ix.stats
	s.Skipped = append([]Skipped(nil), ix.stats.Skipped...)
	return s
}

// RawScores returns the backend-native score of every entry
func (ix *Index) RawScores(ctx context.Context, query string) ([]float64, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if ix.closed {
		return nil, ErrIndexClosed
	}
	if len(ix.entries) == 0 {
		return []float64{}, nil
	}
	return ix.scorer.raw(ctx, query)
}

// ScoreAll returns one normalized score in [0, 1] per entry, aligned by position
func (ix *Index) ScoreAll(ctx context.Context, query string) ([]float64, error) {
	raw, err := ix.RawScores(ctx, query)
	if err != nil {
		return nil, err
	}
	return ix.scorer.normalize(raw), nil
}

// Search scores and ranks every entry
func (ix *Index) Search(ctx context.Context, query string) ([]types.RankedHit, error) {
	scores, err := ix.ScoreAll(ctx, query)
	if err != nil {
		return nil, err
	}
	return Rank(scores), nil
}

// Close releases backend resources once in-flight calls finish
func (ix *Index) Close() error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if ix.closed {
		return nil
	}
	ix.closed = true
	return ix.scorer.close()
}
