package faq

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/metrics"
	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/searcher"
	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/textnorm"
	"github.com/Ameytillu/hotel-faq-sentiment-bot/pkg/types"
)

// Answer finds the best entry for query.
// threshold must be in [0, 1]; topK is the maximum number of suggestions on a miss.
func (e *Engine) Answer(ctx context.Context, query string, threshold float64, topK int) (*types.AnswerResult, error) {
	if math.IsNaN(threshold) || threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("%w: got %v", types.ErrInvalidThreshold, threshold)
	}
	if topK < 0 {
		return nil, fmt.Errorf("%w: got %d", types.ErrInvalidTopK, topK)
	}
	if topK > MaxTopK {
		topK = MaxTopK
	}

	start := time.Now()

	// a swap can close the snapshot we loaded; retry while a newer one exists
	var closed *snapshot
	for {
		snap := e.current.Load()
		if snap == nil {
			return nil, types.ErrIndexNotBuilt
		}
		if snap == closed {
			return nil, searcher.ErrIndexClosed
		}

		res, err := answerWith(ctx, snap, query, threshold, topK)
		if errors.Is(err, searcher.ErrIndexClosed) {
			closed = snap
			continue
		}
		if err != nil {
			return nil, err
		}

		metrics.RecordQuery(string(res.Backend), string(res.Kind), time.Since(start).Seconds())
		if res.Kind != types.KindRule {
			metrics.MatchScore.WithLabelValues(string(res.Backend)).Observe(res.Score)
		}
		return res, nil
	}
}

func answerWith(ctx context.Context, snap *snapshot, query string, threshold float64, topK int) (*types.AnswerResult, error) {
	backend := snap.index.Backend()

	if textnorm.Normalize(query) == "" || snap.index.Len() == 0 {
		return types.NotFound(backend, 0, "", nil), nil
	}

	if res, ok := snap.router.Route(query, backend); ok {
		return res, nil
	}

	hits, err := snap.index.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	top := hits[0]
	topEntry := snap.index.Entry(top.Index)
	if top.Score >= threshold {
		return types.Matched(backend, top.Score, topEntry.Question, topEntry.Answer), nil
	}

	return types.NotFound(backend, top.Score, topEntry.Question, suggestions(snap, hits, topK)), nil
}

// suggestions returns up to k distinct-question near misses after the top hit.
// Zero scores are not suggested.
func suggestions(snap *snapshot, hits []types.RankedHit, k int) []types.Suggestion {
	out := make([]types.Suggestion, 0, k)
	if k == 0 || len(hits) < 2 {
		return out
	}

	seen := map[string]bool{snap.index.Entry(hits[0].Index).Question: true}
	for _, h := range hits[1:] {
		if len(out) == k || h.Score <= 0 {
			break
		}
		q := snap.index.Entry(h.Index).Question
		if seen[q] {
			continue
		}
		seen[q] = true
		out = append(out, types.Suggestion{Question: q, Score: types.RoundScore(h.Score)})
	}
	return out
}
