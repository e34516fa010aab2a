package types

import "math"

// BackendKind names the scoring strategy an index committed to
type BackendKind string

const (
	BackendDense   BackendKind = "dense"   // sentence embeddings, inner product
	BackendBM25    BackendKind = "bm25"    // sparse lexical ranking, min-max normalized
	BackendTFIDF   BackendKind = "tfidf"   // tf-idf vectors, cosine similarity
	BackendKeyword BackendKind = "keyword" // token jaccard + fuzzy token-set ratio
)

// BackendPriority is the fixed order in which backends are attempted
var BackendPriority = []BackendKind{BackendDense, BackendBM25, BackendTFIDF, BackendKeyword}

// AnswerKind tells how an answer was produced
type AnswerKind string

const (
	KindRule      AnswerKind = "rule"
	KindRetrieval AnswerKind = "retrieval"
	KindNone      AnswerKind = "none"
)

// Suggestion is a near-miss candidate question shown when nothing clears the threshold
type Suggestion struct {
	Question string  `json:"question"`
	Score    float64 `json:"score"`
}

// AnswerResult is the outcome of a single query
type AnswerResult struct {
	Found       bool         `json:"found"`
	Score       float64      `json:"score"`
	Question    string       `json:"question"`
	Answer      string       `json:"answer"`
	Backend     BackendKind  `json:"backend"`
	Kind        AnswerKind   `json:"kind"`
	Rule        string       `json:"rule,omitempty"`
	Suggestions []Suggestion `json:"suggestions"`
}

// NotFound builds a miss. question may be empty when nothing was ranked.
func NotFound(backend BackendKind, score float64, question string, suggestions []Suggestion) *AnswerResult {
	if suggestions == nil {
		suggestions = []Suggestion{}
	}
	return &AnswerResult{
		Found:       false,
		Score:       score,
		Question:    question,
		Backend:     backend,
		Kind:        KindNone,
		Suggestions: suggestions,
	}
}

// Matched builds an accepted retrieval answer
func Matched(backend BackendKind, score float64, question, answer string) *AnswerResult {
	return &AnswerResult{
		Found:       true,
		Score:       score,
		Question:    question,
		Answer:      answer,
		Backend:     backend,
		Kind:        KindRetrieval,
		Suggestions: []Suggestion{},
	}
}

// RuleMatch builds an authoritative domain-rule answer with confidence 1.0
func RuleMatch(backend BackendKind, rule, question, answer string) *AnswerResult {
	return &AnswerResult{
		Found:       true,
		Score:       1.0,
		Question:    question,
		Answer:      answer,
		Backend:     backend,
		Kind:        KindRule,
		Rule:        rule,
		Suggestions: []Suggestion{},
	}
}

// Validate checks the shape invariants of the result
func (r *AnswerResult) Validate() error {
	if r.Score < 0 || r.Score > 1 || math.IsNaN(r.Score) {
		return ErrInvalidScore
	}

	if r.Found {
		if r.Question == "" {
			return ErrMissingQuestion
		}
		if r.Answer == "" {
			return ErrMissingAnswer
		}
		if len(r.Suggestions) > 0 {
			return ErrUnexpectedSuggests
		}
		return nil
	}

	if r.Answer != "" {
		return ErrUnexpectedAnswer
	}

	seen := make(map[string]struct{}, len(r.Suggestions))
	for _, s := range r.Suggestions {
		if _, dup := seen[s.Question]; dup {
			return ErrDuplicateSuggest
		}
		seen[s.Question] = struct{}{}
		if s.Score < 0 || s.Score > 1 {
			return ErrInvalidScore
		}
	}

	return nil
}

// RoundScore rounds a score to two decimals for display
func RoundScore(s float64) float64 {
	return math.Round(s*100) / 100
}
