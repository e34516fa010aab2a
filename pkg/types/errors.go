package types

import "errors"

// Domain errors for type validation and query preconditions
var (
	// Answer result errors
	ErrInvalidScore       = errors.New("score must be between 0 and 1")
	ErrMissingQuestion    = errors.New("matched question is required")
	ErrMissingAnswer      = errors.New("answer is required when found")
	ErrUnexpectedAnswer   = errors.New("answer must be empty when not found")
	ErrUnexpectedSuggests = errors.New("suggestions are only allowed when not found")
	ErrDuplicateSuggest   = errors.New("suggestions must have distinct questions")

	// Query errors
	ErrIndexNotBuilt    = errors.New("index not built")
	ErrInvalidThreshold = errors.New("threshold must be between 0 and 1")
	ErrInvalidTopK      = errors.New("top_k must not be negative")
)
