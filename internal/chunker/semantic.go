package chunker

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/dshills/textchunk-mcp/pkg/types"
)

// Semantic strategy defaults. The size limit is deliberately higher than
// the dispatcher default because semantic chunks carry whole topical
// passages rather than fixed windows.
const (
	DefaultSemanticChunkSize   = 1000
	DefaultWindowSize          = 1
	DefaultThresholdPercentile = 95.0

	// fallbackDimension is the vector width used when the embedding
	// capability is unavailable and random vectors stand in.
	fallbackDimension = 384
)

// SemanticOptions configures the semantic strategy.
type SemanticOptions struct {
	ChunkSize           int     // hard size limit enforced after assembly
	Overlap             int     // stride reduction for size-limit re-splitting
	WindowSize          int     // sentences of context on each side for embedding
	ThresholdPercentile float64 // percentile of pairwise distances that marks a boundary
	ModelName           string  // embedding model selector passed to the capability
}

// DefaultSemanticOptions returns the semantic strategy defaults.
func DefaultSemanticOptions() SemanticOptions {
	return SemanticOptions{
		ChunkSize:           DefaultSemanticChunkSize,
		Overlap:             DefaultOverlap,
		WindowSize:          DefaultWindowSize,
		ThresholdPercentile: DefaultThresholdPercentile,
	}
}

// sentence is one segmentation unit prepared for embedding.
type sentence struct {
	text     string // trimmed original text
	span     span   // exact span in the original input
	combined string // context-windowed text submitted for embedding
	ctxSpan  span   // widened span covered by combined
}

// ChunkSemantic splits text at embedding-distance boundaries: sentences are
// embedded with surrounding context, adjacent-pair cosine distances above
// the configured percentile become split points, and any assembled chunk
// that still exceeds the size limit is re-split with fixed windows.
//
// When the embedding capability is unavailable or fails, random vectors are
// substituted so the call still produces output; callers that require
// semantic fidelity must detect that condition upstream, because no signal
// is given here.
func (e *Engine) ChunkSemantic(ctx context.Context, text string, opts SemanticOptions) ([]types.Chunk, error) {
	if opts.ChunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk_size must be positive, got %d", types.ErrInvalidParameter, opts.ChunkSize)
	}
	if opts.Overlap < 0 {
		return nil, fmt.Errorf("%w: overlap cannot be negative, got %d", types.ErrInvalidParameter, opts.Overlap)
	}
	if opts.Overlap > opts.ChunkSize {
		return nil, fmt.Errorf("%w: overlap (%d) cannot exceed chunk_size (%d)", types.ErrInvalidParameter, opts.Overlap, opts.ChunkSize)
	}
	if opts.ThresholdPercentile < 0 || opts.ThresholdPercentile > 100 {
		return nil, fmt.Errorf("%w: threshold_percentile must be in [0,100], got %v", types.ErrInvalidParameter, opts.ThresholdPercentile)
	}
	if opts.WindowSize < 0 {
		return nil, fmt.Errorf("%w: window_size cannot be negative, got %d", types.ErrInvalidParameter, opts.WindowSize)
	}

	if strings.TrimSpace(text) == "" {
		return []types.Chunk{}, nil
	}

	sentences := segmentForEmbedding(text, opts.WindowSize)
	if len(sentences) == 0 {
		return []types.Chunk{}, nil
	}

	if len(sentences) == 1 {
		only := sentences[0]
		return finalizeSequence([]types.Chunk{{
			Text:        only.text,
			OffsetStart: only.span.start,
			OffsetEnd:   only.span.end,
			ChunkSize:   len(only.text),
			Semantic: &types.SemanticInfo{
				Strategy:         "semantic",
				SentencesInChunk: 1,
				SplitReason:      types.SplitSingleSentence,
			},
		}}), nil
	}

	vectors := e.embedSentences(ctx, sentences, opts.ModelName)
	distances := pairwiseDistances(sentences, vectors)
	threshold := percentile(distances, opts.ThresholdPercentile)

	chunks := assembleChunks(sentences, distances, threshold)
	chunks = enforceSizeLimit(chunks, opts.ChunkSize, opts.Overlap)

	return finalizeSequence(chunks), nil
}

// segmentForEmbedding splits text into sentences (fenced code blocks kept
// atomic), drops whitespace-only spans, and attaches each sentence's
// context window of windowSize neighbors on each side.
func segmentForEmbedding(text string, windowSize int) []sentence {
	var sentences []sentence
	for _, s := range splitSentencesProtected(text) {
		trimmed := strings.TrimSpace(text[s.start:s.end])
		if trimmed == "" {
			continue
		}
		sentences = append(sentences, sentence{text: trimmed, span: s})
	}

	for i := range sentences {
		lo := i - windowSize
		if lo < 0 {
			lo = 0
		}
		hi := i + windowSize
		if hi > len(sentences)-1 {
			hi = len(sentences) - 1
		}

		parts := make([]string, 0, hi-lo+1)
		for j := lo; j <= hi; j++ {
			parts = append(parts, sentences[j].text)
		}
		sentences[i].combined = strings.Join(parts, " ")
		sentences[i].ctxSpan = span{sentences[lo].span.start, sentences[hi].span.end}
	}

	return sentences
}

// embedSentences obtains one vector per context window. Any failure of the
// embedding capability is recovered locally by substituting random vectors;
// the distance computation then degrades but the call still succeeds.
func (e *Engine) embedSentences(ctx context.Context, sentences []sentence, model string) [][]float32 {
	texts := make([]string, len(sentences))
	for i, s := range sentences {
		texts[i] = s.combined
	}

	if e.embedder != nil {
		vectors, err := e.embedder.EmbedTexts(ctx, texts, model)
		if err == nil && len(vectors) == len(sentences) {
			return vectors
		}
	}

	vectors := make([][]float32, len(sentences))
	for i := range vectors {
		v := make([]float32, fallbackDimension)
		for j := range v {
			v[j] = rand.Float32()
		}
		vectors[i] = v
	}
	return vectors
}

// pairwiseDistances computes 1 - cosine similarity for each adjacent pair
// of windowed sentences. Unusable vector pairs fall back to a normalized
// text-length-difference proxy.
func pairwiseDistances(sentences []sentence, vectors [][]float32) []float64 {
	distances := make([]float64, len(sentences)-1)
	for i := range distances {
		a, b := vectors[i], vectors[i+1]
		if sim, ok := cosineSimilarity(a, b); ok {
			distances[i] = 1 - sim
			continue
		}
		distances[i] = lengthDistance(sentences[i].combined, sentences[i+1].combined)
	}
	return distances
}

// cosineSimilarity returns the cosine of the angle between a and b. The
// second return is false when the vectors are unusable (empty, mismatched
// dimensions, or zero norm).
func cosineSimilarity(a, b []float32) (float64, bool) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, false
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, false
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), true
}

// lengthDistance is the degraded distance proxy: the normalized difference
// of the two texts' lengths, in [0, 1].
func lengthDistance(a, b string) float64 {
	longer := len(a)
	if len(b) > longer {
		longer = len(b)
	}
	if longer == 0 {
		return 0
	}
	diff := len(a) - len(b)
	if diff < 0 {
		diff = -diff
	}
	return float64(diff) / float64(longer)
}

// percentile computes the p-th percentile of values using linear
// interpolation between closest ranks.
func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// assembleChunks partitions the sentence sequence at every index whose
// distance exceeds the threshold. Chunk text is the space-joined original
// sentences, while offsets span from the first sentence's context start to
// the last sentence's context end.
func assembleChunks(sentences []sentence, distances []float64, threshold float64) []types.Chunk {
	var chunks []types.Chunk
	begin := 0

	flush := func(end int, reason types.SplitReason) {
		parts := make([]string, 0, end-begin)
		for _, s := range sentences[begin:end] {
			parts = append(parts, s.text)
		}
		text := strings.Join(parts, " ")
		chunks = append(chunks, types.Chunk{
			Text:        text,
			OffsetStart: sentences[begin].ctxSpan.start,
			OffsetEnd:   sentences[end-1].ctxSpan.end,
			ChunkSize:   len(text),
			Semantic: &types.SemanticInfo{
				Strategy:         "semantic",
				SentencesInChunk: end - begin,
				SplitReason:      reason,
			},
		})
		begin = end
	}

	for i, d := range distances {
		if d > threshold {
			flush(i+1, types.SplitSemanticBoundary)
		}
	}
	flush(len(sentences), types.SplitFinalChunk)

	return chunks
}

// enforceSizeLimit re-splits any assembled chunk whose text still exceeds
// chunkSize, using fixed windows over the synthesized text. Sub-chunk
// offsets are projected back onto the parent's context span, so they stay
// approximate like all semantic offsets.
func enforceSizeLimit(chunks []types.Chunk, chunkSize, overlap int) []types.Chunk {
	enforced := make([]types.Chunk, 0, len(chunks))
	for _, c := range chunks {
		if c.ChunkSize <= chunkSize {
			enforced = append(enforced, c)
			continue
		}

		for _, sub := range forceSplitSpan(c.Text, 0, len(c.Text), chunkSize, overlap) {
			start := c.OffsetStart + sub.OffsetStart
			end := c.OffsetStart + sub.OffsetEnd
			if end > c.OffsetEnd {
				end = c.OffsetEnd
			}
			if start > end {
				start = end
			}
			enforced = append(enforced, types.Chunk{
				Text:        sub.Text,
				OffsetStart: start,
				OffsetEnd:   end,
				ChunkSize:   sub.ChunkSize,
				Semantic: &types.SemanticInfo{
					Strategy:         "semantic",
					SentencesInChunk: c.Semantic.SentencesInChunk,
					SplitReason:      types.SplitSizeLimit,
				},
			})
		}
	}
	return enforced
}
