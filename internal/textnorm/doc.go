// Package textnorm provides the single notion of text equivalence shared by
// indexing and querying.
//
// Normalize lowercases, drops apostrophes so contractions stay one token,
// turns every other non-alphanumeric rune into a separator, collapses runs of
// separators and trims. Tokenize splits the normalized form into [a-z0-9]+
// runs. Both are pure and Normalize is idempotent.
package textnorm
