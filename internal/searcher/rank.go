package searcher

import (
	"sort"

	"github.com/Ameytillu/hotel-faq-sentiment-bot/pkg/types"
)

// Rank orders scores descending. Equal scores keep their entry order.
func Rank(scores []float64) []types.RankedHit {
	hits := make([]types.RankedHit, len(scores))
	for i, s := range scores {
		hits[i] = types.RankedHit{Index: i, Score: s}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	return hits
}

// clamp01 bounds v to [0, 1]; NaN maps to 0
func clamp01(v float64) float64 {
	switch {
	case v != v, v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// minMaxNormalize rescales scores to [0, 1]. All-equal input maps to zeros.
func minMaxNormalize(scores []float64) []float64 {
	out := make([]float64, len(scores))
	if len(scores) == 0 {
		return out
	}

	lo, hi := scores[0], scores[0]
	for _, s := range scores[1:] {
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}

	spread := hi - lo
	if spread == 0 {
		return out
	}
	for i, s := range scores {
		out[i] = clamp01((s - lo) / spread)
	}
	return out
}
