// Package types provides shared type definitions for the hotel FAQ engine.
//
// # Core Types
//
// Entry is one matchable question/answer unit produced by flattening the
// knowledge document:
//
//	entry := types.Entry{
//	    Question:   "what time is check in",
//	    Answer:     "Check-in starts at 3 PM.",
//	    Alternates: []string{"check in time", "when can I check in"},
//	    Source:     types.SourceFAQ,
//	}
//
// AnswerResult is returned for every query. The constructors keep the two
// shapes apart: Matched and RuleMatch always carry an answer and no
// suggestions, NotFound never carries an answer.
//
//	res := types.NotFound(types.BackendBM25, 0.41, "pool hours", []types.Suggestion{
//	    {Question: "gym hours", Score: 0.33},
//	})
//
// # Scores
//
// Scores are normalized to [0, 1] within the active backend. Backends do not
// share a scale: BM25 scores are rescaled per query by the spread of the
// candidate set, while dense and TF-IDF scores are absolute similarities.
// Thresholds should be tuned per backend.
package types
