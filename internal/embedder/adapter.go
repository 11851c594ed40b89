package embedder

import (
	"context"
	"fmt"

	"github.com/dshills/textchunk-mcp/internal/chunker"
)

// ChunkEmbedder adapts an Embedder to the chunking engine's narrow
// embedding capability. The semantic strategy only needs raw vectors, so
// the adapter strips the provider metadata and splits oversized inputs
// into provider-sized batches.
type ChunkEmbedder struct {
	embedder Embedder
}

var _ chunker.Embedder = (*ChunkEmbedder)(nil)

// NewChunkEmbedder wraps an Embedder for use by the chunking engine.
func NewChunkEmbedder(embedder Embedder) *ChunkEmbedder {
	return &ChunkEmbedder{embedder: embedder}
}

// EmbedTexts returns one vector per input text, preserving order.
func (c *ChunkEmbedder) EmbedTexts(ctx context.Context, texts []string, model string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))

	for start := 0; start < len(texts); start += MaxBatchSize {
		end := start + MaxBatchSize
		if end > len(texts) {
			end = len(texts)
		}

		resp, err := c.embedder.GenerateBatch(ctx, BatchEmbeddingRequest{
			Texts: texts[start:end],
			Model: model,
		})
		if err != nil {
			return nil, fmt.Errorf("embed batch [%d:%d]: %w", start, end, err)
		}

		for _, emb := range resp.Embeddings {
			vectors = append(vectors, emb.Vector)
		}
	}

	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("%w: got %d vectors for %d texts", ErrProviderFailed, len(vectors), len(texts))
	}

	return vectors, nil
}
