package searcher

import (
	"context"
	"math"

	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/textnorm"
	"github.com/Ameytillu/hotel-faq-sentiment-bot/pkg/types"
)

// sparseVec is an l2-normalized term-weight vector keyed by vocabulary id
type sparseVec map[int]float64

// tfidfScorer holds unigram+bigram tf-idf vectors with smoothed idf
type tfidfScorer struct {
	vocab map[string]int
	idf   []float64
	docs  []sparseVec
}

// analyze drops stop words and single-character tokens, then emits unigrams and bigrams
func analyze(text string) []string {
	var kept []string
	for _, tok := range textnorm.Tokenize(text) {
		if len(tok) < 2 || isStopWord(tok) {
			continue
		}
		kept = append(kept, tok)
	}

	terms := make([]string, 0, 2*len(kept))
	terms = append(terms, kept...)
	for i := 1; i < len(kept); i++ {
		terms = append(terms, kept[i-1]+" "+kept[i])
	}
	return terms
}

func newTFIDFScorer(entries []types.Entry) (*tfidfScorer, error) {
	analyzed := make([][]string, len(entries))
	vocab := make(map[string]int)
	var df []int

	for i, e := range entries {
		terms := analyze(e.Document())
		analyzed[i] = terms

		seen := make(map[int]bool, len(terms))
		for _, term := range terms {
			id, ok := vocab[term]
			if !ok {
				id = len(vocab)
				vocab[term] = id
				df = append(df, 0)
			}
			if !seen[id] {
				seen[id] = true
				df[id]++
			}
		}
	}

	if len(vocab) == 0 {
		return nil, ErrEmptyVocabulary
	}

	n := float64(len(entries))
	idf := make([]float64, len(df))
	for id, d := range df {
		idf[id] = math.Log((1+n)/(1+float64(d))) + 1
	}

	s := &tfidfScorer{vocab: vocab, idf: idf, docs: make([]sparseVec, len(entries))}
	for i, terms := range analyzed {
		s.docs[i] = s.vectorize(terms)
	}
	return s, nil
}

// vectorize weighs raw term counts by idf and l2-normalizes; unknown terms are ignored
func (s *tfidfScorer) vectorize(terms []string) sparseVec {
	vec := make(sparseVec, len(terms))
	for _, term := range terms {
		if id, ok := s.vocab[term]; ok {
			vec[id]++
		}
	}

	var sum float64
	for id, tf := range vec {
		w := tf * s.idf[id]
		vec[id] = w
		sum += w * w
	}
	if sum == 0 {
		return vec
	}

	norm := math.Sqrt(sum)
	for id := range vec {
		vec[id] /= norm
	}
	return vec
}

func (s *tfidfScorer) raw(_ context.Context, query string) ([]float64, error) {
	q := s.vectorize(analyze(query))
	scores := make([]float64, len(s.docs))
	if len(q) == 0 {
		return scores, nil
	}

	for i, d := range s.docs {
		var dot float64
		for id, w := range q {
			dot += w * d[id]
		}
		scores[i] = dot
	}
	return scores, nil
}

// normalize only guards against rounding; cosine of non-negative vectors is already in [0, 1]
func (s *tfidfScorer) normalize(raw []float64) []float64 {
	out := make([]float64, len(raw))
	for i, v := range raw {
		out[i] = clamp01(v)
	}
	return out
}

func (s *tfidfScorer) close() error {
	return nil
}
