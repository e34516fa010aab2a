package searcher

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/textnorm"
	"github.com/Ameytillu/hotel-faq-sentiment-bot/pkg/types"
)

const (
	lexicalWeight = 0.6
	fuzzyWeight   = 0.4
)

// phrasing is one pre-tokenized question or alternate
type phrasing struct {
	set    map[string]struct{}
	sorted []string
}

// keywordScorer blends token jaccard with a fuzzy token-set ratio.
// Each entry scores as its best phrasing.
type keywordScorer struct {
	entries [][]phrasing
}

func newPhrasing(text string) phrasing {
	set := textnorm.TokenSet(text)
	sorted := make([]string, 0, len(set))
	for t := range set {
		sorted = append(sorted, t)
	}
	sort.Strings(sorted)
	return phrasing{set: set, sorted: sorted}
}

func newKeywordScorer(entries []types.Entry) *keywordScorer {
	s := &keywordScorer{entries: make([][]phrasing, len(entries))}
	for i, e := range entries {
		for _, p := range e.Phrasings() {
			ph := newPhrasing(p)
			if len(ph.set) > 0 {
				s.entries[i] = append(s.entries[i], ph)
			}
		}
	}
	return s
}

func (k *keywordScorer) raw(_ context.Context, query string) ([]float64, error) {
	scores := make([]float64, len(k.entries))
	q := newPhrasing(query)
	if len(q.set) == 0 {
		return scores, nil
	}

	for i, phrasings := range k.entries {
		var best float64
		for _, p := range phrasings {
			s := clamp01(lexicalWeight*clamp01(jaccard(q, p)) + fuzzyWeight*clamp01(tokenSetRatio(q, p)))
			if s > best {
				best = s
			}
		}
		scores[i] = best
	}
	return scores, nil
}

// normalize is the identity; blended scores are already clamped
func (k *keywordScorer) normalize(raw []float64) []float64 {
	out := make([]float64, len(raw))
	copy(out, raw)
	return out
}

func (k *keywordScorer) close() error {
	return nil
}

func jaccard(a, b phrasing) float64 {
	if len(a.set) == 0 && len(b.set) == 0 {
		return 0
	}
	inter := 0
	for t := range a.set {
		if _, ok := b.set[t]; ok {
			inter++
		}
	}
	union := len(a.set) + len(b.set) - inter
	return float64(inter) / float64(union)
}

// tokenSetRatio compares the shared tokens against each side's full token set,
// so a query that is a subset of a phrasing scores high.
func tokenSetRatio(a, b phrasing) float64 {
	var inter, onlyA, onlyB []string
	for _, t := range a.sorted {
		if _, ok := b.set[t]; ok {
			inter = append(inter, t)
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for _, t := range b.sorted {
		if _, ok := a.set[t]; !ok {
			onlyB = append(onlyB, t)
		}
	}

	t0 := strings.Join(inter, " ")
	t1 := strings.TrimSpace(t0 + " " + strings.Join(onlyA, " "))
	t2 := strings.TrimSpace(t0 + " " + strings.Join(onlyB, " "))

	best := similarity(t1, t2)
	if t0 != "" {
		if r := similarity(t0, t1); r > best {
			best = r
		}
		if r := similarity(t0, t2); r > best {
			best = r
		}
	}
	return best
}

// similarity is 1 - levenshtein / longer length
func similarity(a, b string) float64 {
	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}
	if longest == 0 {
		return 0
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}
