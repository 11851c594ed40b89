package chunker

import (
	"fmt"

	"github.com/dshills/textchunk-mcp/pkg/types"
)

// ChunkSentence packs whole sentences greedily into chunks of at most
// chunkSize bytes, flushing at sentence boundaries. A single sentence
// larger than chunkSize is force-split with fixed windows.
//
// Unlike ChunkFixed, overlap == chunkSize is permitted here: it buys no
// overlap benefit and force-split strides are clamped to chunkSize.
// Empty text yields zero chunks.
func ChunkSentence(text string, chunkSize, overlap int) ([]types.Chunk, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk_size must be positive, got %d", types.ErrInvalidParameter, chunkSize)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("%w: overlap cannot be negative, got %d", types.ErrInvalidParameter, overlap)
	}
	if overlap > chunkSize {
		return nil, fmt.Errorf("%w: overlap (%d) cannot exceed chunk_size (%d)", types.ErrInvalidParameter, overlap, chunkSize)
	}

	chunks := make([]types.Chunk, 0)

	// Accumulator: the pending contiguous run of packed sentences.
	// accStart < 0 means empty.
	accStart := -1
	accEnd := 0

	for _, sent := range splitSentences(text) {
		sentLen := sent.end - sent.start

		// Sentence spans partition the text, so appending extends the
		// accumulator to sent.end.
		if accStart >= 0 && sent.end-accStart <= chunkSize {
			accEnd = sent.end
			continue
		}

		// Flush the pending chunk at this sentence's start offset,
		// keeping packed chunks contiguous.
		if accStart >= 0 {
			chunks = append(chunks, types.Chunk{
				Text:        text[accStart:sent.start],
				OffsetStart: accStart,
				OffsetEnd:   sent.start,
				ChunkSize:   sent.start - accStart,
			})
			accStart = -1
		}

		if sentLen > chunkSize {
			// Pathological oversized sentence: emit fixed windows
			// directly and leave the accumulator empty.
			chunks = append(chunks, forceSplitSpan(text, sent.start, sent.end, chunkSize, overlap)...)
			continue
		}

		accStart, accEnd = sent.start, sent.end
	}

	if accStart >= 0 {
		chunks = append(chunks, types.Chunk{
			Text:        text[accStart:accEnd],
			OffsetStart: accStart,
			OffsetEnd:   accEnd,
			ChunkSize:   accEnd - accStart,
		})
	}

	return finalizeSequence(chunks), nil
}
