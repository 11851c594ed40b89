// Package types provides shared type definitions for the TextChunk MCP server.
//
// This package defines domain types used across multiple components of
// TextChunk, including chunks, semantic split metadata, and search results.
//
// # Core Types
//
// Chunk represents one output span of a chunking call, with exact offset
// bookkeeping against the original input:
//
//	chunk := &types.Chunk{
//	    Text:        original[0:512],
//	    OffsetStart: 0,
//	    OffsetEnd:   512,
//	    ChunkSize:   512,
//	    Sequence:    0,
//	    Total:       4,
//	}
//
// # Offset Semantics
//
// The contiguous strategies (None, Fixed, Sentence) guarantee that
// Text == original[OffsetStart:OffsetEnd] for every chunk they produce.
// The semantic strategy synthesizes chunk text by space-joining sentences,
// and its offsets span the contributing sentences' context windows. Check
// OffsetsExact before slicing the original text:
//
//	if chunk.OffsetsExact() {
//	    span := original[chunk.OffsetStart:chunk.OffsetEnd]
//	}
//
// # Errors
//
// Strategy validation failures wrap one of two sentinel errors so callers
// can branch without string matching:
//
//	if errors.Is(err, types.ErrUnknownStrategy) {
//	    // fall back to the default strategy
//	}
//	if errors.Is(err, types.ErrInvalidParameter) {
//	    // reject the request as malformed
//	}
//
// # Search Results
//
// SearchResult combines chunk content with relevance scoring:
//
//	result := &types.SearchResult{
//	    ChunkID:        123,
//	    Rank:           1,
//	    RelevanceScore: 0.92,
//	    Content:        chunkText,
//	}
//
// Relevance scores are normalized to [0, 1] range, with higher values
// indicating better matches.
package types
