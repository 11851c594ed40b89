package types

import "errors"

// SplitReason records why the semantic strategy ended a chunk where it did.
type SplitReason string

const (
	// SplitSemanticBoundary marks a chunk that ends at a detected embedding-distance boundary.
	SplitSemanticBoundary SplitReason = "semantic_boundary"
	// SplitFinalChunk marks the trailing partition after the last boundary.
	SplitFinalChunk SplitReason = "final_chunk"
	// SplitSingleSentence marks the short-circuit result for single-sentence input.
	SplitSingleSentence SplitReason = "single_sentence"
	// SplitSizeLimit marks a chunk produced by re-splitting an oversized semantic chunk.
	SplitSizeLimit SplitReason = "size_limit_enforced"
)

// SemanticInfo carries metadata attached by the semantic strategy.
// Contiguous strategies (None, Fixed, Sentence) leave it nil.
type SemanticInfo struct {
	Strategy         string      `json:"strategy"`
	SentencesInChunk int         `json:"sentences_in_chunk"`
	SplitReason      SplitReason `json:"split_reason"`
}

// Chunk is one output span of a chunking call.
//
// OffsetStart and OffsetEnd are byte offsets into the original input text.
// For the contiguous strategies the invariant
// Text == original[OffsetStart:OffsetEnd] holds for every chunk. The semantic
// strategy synthesizes Text by joining sentences and sets offsets to the span
// of the contributing sentences' context windows, so callers must check
// OffsetsExact before slicing the original text.
type Chunk struct {
	// Content
	Text string `json:"text"`

	// Location in the original input
	OffsetStart int `json:"offset_start"`
	OffsetEnd   int `json:"offset_end"`

	// ChunkSize is len(Text), which is not necessarily OffsetEnd-OffsetStart.
	ChunkSize int `json:"chunk_size"`

	// Position among the chunks of one call: Sequence is 0..Total-1.
	Sequence int `json:"sequence"`
	Total    int `json:"total"`

	// Semantic is set only by the semantic strategy.
	Semantic *SemanticInfo `json:"semantic_info,omitempty"`
}

// OffsetsExact reports whether Text is the exact substring
// original[OffsetStart:OffsetEnd]. Semantic chunks span context windows
// instead, so their offsets are approximate.
func (c *Chunk) OffsetsExact() bool {
	return c.Semantic == nil
}

// Validate checks the structural invariants shared by all strategies.
func (c *Chunk) Validate() error {
	if c.OffsetStart < 0 {
		return errors.New("offset_start cannot be negative")
	}
	if c.OffsetEnd < c.OffsetStart {
		return errors.New("offset_end cannot precede offset_start")
	}
	if c.ChunkSize != len(c.Text) {
		return errors.New("chunk_size must equal text length")
	}
	if c.Sequence < 0 || c.Total < 1 || c.Sequence >= c.Total {
		return errors.New("sequence must be in range 0..total-1")
	}
	return nil
}
