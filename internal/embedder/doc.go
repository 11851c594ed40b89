// Package embedder generates vector embeddings for text chunks using
// various providers.
//
// The embedder supports multiple providers (Jina AI, OpenAI, local) and
// provides batching, LRU caching, and retry with exponential backoff.
//
// # Basic Usage
//
//	emb, err := embedder.NewFromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer emb.Close()
//
//	result, err := emb.GenerateEmbedding(ctx, embedder.EmbeddingRequest{
//	    Text: chunk.Text,
//	})
//	fmt.Printf("dimension: %d\n", result.Dimension)
//
// # Batch Processing
//
// Indexing embeds many chunks at once; use the batch API to amortize
// the network round trip:
//
//	resp, err := emb.GenerateBatch(ctx, embedder.BatchEmbeddingRequest{
//	    Texts: chunkTexts,
//	})
//
// # Provider Selection
//
// The factory selects a provider from the environment:
//
//  1. If TEXTCHUNK_EMBEDDING_PROVIDER is set, use that provider
//  2. Else if JINA_API_KEY is set, use Jina AI
//  3. Else if OPENAI_API_KEY is set, use OpenAI
//  4. Else fall back to the local provider (offline mode)
//
// Jina and OpenAI speak the same wire format and share one HTTP
// implementation. The local provider derives deterministic vectors from a
// content hash: useless for semantic quality, but it keeps the pipeline
// running offline and gives tests reproducible output.
//
// # Chunking Engine Capability
//
// The semantic chunking strategy takes a narrow embedding capability
// rather than the full Embedder interface. ChunkEmbedder adapts one to
// the other:
//
//	engine := chunker.New(embedder.NewChunkEmbedder(emb))
//
// # Caching
//
// Embeddings are cached in memory keyed by SHA-256 content hash, so
// re-indexing unchanged documents skips the provider entirely:
//
//	cache := embedder.NewCache(10000)
//
// # Error Handling
//
// Transient provider failures are retried with exponential backoff; after
// the retry budget is spent the call fails with ErrProviderFailed:
//
//	if errors.Is(err, embedder.ErrProviderFailed) {
//	    // provider unavailable, consider the local fallback
//	}
package embedder
