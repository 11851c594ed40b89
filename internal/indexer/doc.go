// Package indexer walks a directory of text documents, chunks each one,
// generates embeddings, and persists everything through the storage layer.
//
// # Pipeline
//
// IndexCollection runs the full pipeline for one root directory:
//
//  1. Discover documents by extension (.txt, .md, .markdown, .rst by default)
//  2. Skip documents whose SHA-256 content hash is unchanged
//  3. Chunk changed documents with the configured strategy
//  4. Embed the chunks in batches
//  5. Commit documents, chunks, and embeddings transactionally
//
// Documents are processed by a bounded worker pool (errgroup plus a
// semaphore) and committed in batches so one bad document doesn't abort
// the run; per-document failures are collected in Statistics.ErrorMessages.
//
// # Incremental Indexing
//
// Re-running IndexCollection over the same root only re-chunks documents
// whose content changed. Chunks of a changed document are deleted and
// rebuilt as a unit since chunk boundaries depend on the whole text.
// Config.Force bypasses the hash check.
//
// # Concurrency
//
// Only one indexing run may be active per Indexer; concurrent calls fail
// with ErrIndexInProgress rather than interleaving writes.
//
// # Usage
//
//	idx := indexer.New(store, chunker.New(chunkEmb), emb)
//	stats, err := idx.IndexCollection(ctx, "/docs", &indexer.Config{
//	    Strategy:  chunker.StrategySemantic,
//	    ChunkSize: 1000,
//	})
package indexer
