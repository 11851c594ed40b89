// Package chunker splits document text into offset-exact chunks for
// embedding and retrieval.
//
// The package implements a pluggable strategy pipeline: a closed registry
// of strategy functions, a dispatcher that merges parameter defaults, and
// four strategies with distinct trade-offs.
//
// # Basic Usage
//
//	engine := chunker.New(nil)
//	chunks, err := engine.ChunkText(ctx, text, &chunker.Config{
//	    Strategy:   chunker.StrategyFixed,
//	    Parameters: map[string]any{"chunk_size": 256, "overlap": 32},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, chunk := range chunks {
//	    fmt.Printf("chunk %d/%d [%d:%d]\n",
//	        chunk.Sequence, chunk.Total, chunk.OffsetStart, chunk.OffsetEnd)
//	}
//
// A nil Config selects the None strategy, which returns the whole input as
// a single chunk.
//
// # Strategies
//
// None: identity strategy, one chunk spanning the input (even when empty).
//
// Fixed: byte-window sliding with configurable overlap. Requires
// 0 <= overlap < chunk_size. Empty input yields zero chunks.
//
// Sentence: greedy packing of whole sentences up to chunk_size, flushing at
// sentence boundaries so packed chunks are contiguous. Oversized sentences
// are force-split with fixed windows. Accepts overlap == chunk_size (the
// stride clamps to chunk_size).
//
// Semantic: sentences are embedded with surrounding context, adjacent-pair
// cosine distances above a percentile threshold become split points, and
// oversized results are re-split. Requires an injected Embedder; without
// one, random vectors stand in and quality degrades silently.
//
// The validation ranges differ between Fixed and Sentence/Semantic on
// purpose: existing callers depend on the distinction, so it is preserved
// rather than unified.
//
// # Offsets
//
// All offsets are byte offsets into the original input. For None, Fixed,
// and Sentence, chunk.Text == original[chunk.OffsetStart:chunk.OffsetEnd]
// always holds. Semantic chunks synthesize their text by space-joining
// sentences and report context-window spans instead; use
// chunk.OffsetsExact() to tell the two apart.
//
// # Typed API
//
// Each strategy is also exported as a plain function for callers that do
// not need dynamic dispatch:
//
//	chunks := chunker.ChunkNone(text)
//	chunks, err := chunker.ChunkFixed(text, 512, 64)
//	chunks, err := chunker.ChunkSentence(text, 512, 0)
//	chunks, err := engine.ChunkSemantic(ctx, text, chunker.DefaultSemanticOptions())
//
// # Concurrency
//
// The registry is written once at package init and read-only afterward.
// All per-call state is local, so one Engine may serve concurrent calls
// without coordination. The only blocking operation is the embedding
// request issued by the semantic strategy; cancellation is the caller's
// context.
package chunker
