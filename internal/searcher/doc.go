// Package searcher builds the scoring index over flattened FAQ entries and
// ranks entries for a query.
//
// # Backend Selection
//
// Build commits to exactly one backend, tried in a fixed order:
//
//  1. dense:   sentence embeddings, score = inner product of unit vectors
//  2. bm25:    SQLite FTS5 ranking, min-max normalized per query
//  3. tfidf:   unigram+bigram tf-idf vectors, cosine similarity
//  4. keyword: token jaccard blended with a fuzzy token-set ratio
//
// Which backends may be attempted is decided by a Capabilities value passed
// in by the caller, so selection is testable without unlinking a driver.
// A backend that is allowed but fails to build is skipped with its error
// recorded; the keyword backend has no prerequisites and always succeeds. An
// empty entry set goes straight to the keyword backend and every query
// scores zero.
//
// # Scores
//
// ScoreAll returns one normalized score in [0, 1] per entry. The backends do
// not share a scale:
//
//   - bm25 rescales by (s - min) / (max - min) over the whole candidate set,
//     so the top hit is 1.0 whenever scores differ and every score is 0.0
//     when they are all tied. This measures spread within one query, not
//     absolute similarity.
//   - dense and tfidf scores are absolute similarities.
//   - keyword scores are 0.6 * jaccard + 0.4 * fuzzy, each part clamped.
//
// Thresholds therefore have to be tuned for the backend in use.
//
// # Ranking
//
// Rank sorts hits by score, descending. Ties keep entry order, so results
// are reproducible for the same index and query.
//
// # Concurrency
//
// An Index is immutable after Build and safe for concurrent ScoreAll calls.
// Close waits for in-flight calls; later calls fail with ErrIndexClosed.
package searcher
