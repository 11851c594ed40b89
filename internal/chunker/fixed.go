package chunker

import (
	"fmt"

	"github.com/dshills/textchunk-mcp/pkg/types"
)

// ChunkNone returns a single chunk spanning the whole input. It is the
// identity strategy and the safe default: even empty text yields one
// zero-length chunk.
func ChunkNone(text string) []types.Chunk {
	return finalizeSequence([]types.Chunk{{
		Text:        text,
		OffsetStart: 0,
		OffsetEnd:   len(text),
		ChunkSize:   len(text),
	}})
}

// ChunkFixed splits text into sliding windows of chunkSize bytes advancing
// by chunkSize-overlap. Overlap must be strictly less than chunkSize.
// Empty text yields zero chunks.
func ChunkFixed(text string, chunkSize, overlap int) ([]types.Chunk, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk_size must be positive, got %d", types.ErrInvalidParameter, chunkSize)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("%w: overlap cannot be negative, got %d", types.ErrInvalidParameter, overlap)
	}
	if overlap >= chunkSize {
		return nil, fmt.Errorf("%w: overlap (%d) must be less than chunk_size (%d)", types.ErrInvalidParameter, overlap, chunkSize)
	}

	step := chunkSize - overlap
	if step < 1 {
		step = 1
	}

	chunks := make([]types.Chunk, 0, estimateWindows(len(text), step))
	for start := 0; start < len(text); start += step {
		end := start + chunkSize
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, types.Chunk{
			Text:        text[start:end],
			OffsetStart: start,
			OffsetEnd:   end,
			ChunkSize:   end - start,
		})
	}

	return finalizeSequence(chunks), nil
}

// estimateWindows returns ceil(length/step) for preallocation.
func estimateWindows(length, step int) int {
	if length <= 0 {
		return 0
	}
	return (length + step - 1) / step
}

// forceSplitSpan applies fixed windowing to the span [spanStart, spanEnd) of
// text, used when a single sentence or assembled chunk exceeds the size
// limit. Unlike ChunkFixed, the window walk stops once a window reaches the
// end of the span, so an overlap tail never produces a trailing sub-window
// that is wholly contained in its predecessor.
func forceSplitSpan(text string, spanStart, spanEnd, chunkSize, overlap int) []types.Chunk {
	step := chunkSize - overlap
	if step < 1 {
		// overlap >= chunk_size carries no overlap benefit; clamp to
		// full-size strides.
		step = chunkSize
	}

	var chunks []types.Chunk
	for start := spanStart; start < spanEnd; start += step {
		end := start + chunkSize
		if end > spanEnd {
			end = spanEnd
		}
		chunks = append(chunks, types.Chunk{
			Text:        text[start:end],
			OffsetStart: start,
			OffsetEnd:   end,
			ChunkSize:   end - start,
		})
		if end == spanEnd {
			break
		}
	}
	return chunks
}
