package types

import "errors"

// Chunking errors. Strategy implementations wrap these with the offending
// parameter name and value.
var (
	// ErrUnknownStrategy is returned when a strategy name is not registered.
	ErrUnknownStrategy = errors.New("unknown chunking strategy")

	// ErrInvalidParameter is returned when a strategy parameter is out of range.
	ErrInvalidParameter = errors.New("invalid chunking parameter")
)

// Domain errors for search result validation
var (
	ErrInvalidChunkID        = errors.New("invalid chunk ID")
	ErrInvalidRank           = errors.New("rank must be >= 1")
	ErrInvalidRelevanceScore = errors.New("relevance score must be between 0 and 1")
	ErrMissingDocumentInfo   = errors.New("document info is required")
	ErrEmptyContent          = errors.New("content cannot be empty")
)
