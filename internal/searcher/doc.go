// Package searcher answers queries over indexed chunks using vector
// similarity, BM25 full-text search, or both.
//
// # Search Modes
//
//   - vector: embed the query and rank chunks by cosine similarity
//   - keyword: FTS5 BM25 ranking over chunk text
//   - hybrid (default): run both concurrently and merge with Reciprocal
//     Rank Fusion
//
// Hybrid mode degrades gracefully: if one leg fails (for example the
// embedding provider is down) the other leg's results are returned; the
// search fails only when both legs fail.
//
// # Reciprocal Rank Fusion
//
// RRF merges ranked lists without comparing raw scores, which is exactly
// what's needed here since cosine similarity and normalized BM25 live on
// different scales:
//
//	RRF(chunk) = 1/(k + vectorRank) + 1/(k + textRank)
//
// with k = 60 by default.
//
// # Result Hydration
//
// Ranked chunk IDs are hydrated into types.SearchResult with the chunk
// content, the owning document's path and title, and the chunk's byte
// offsets, so callers can locate every hit in its source document.
//
// # Caching
//
// Responses are cached in an LRU keyed by a hash of the query, mode,
// collection, and filters, with a per-request TTL. InvalidateCache drops
// the cache after re-indexing.
//
// # Usage
//
//	s := searcher.NewSearcher(store, emb)
//	resp, err := s.Search(ctx, searcher.SearchRequest{
//	    Query:        "how do I configure retries",
//	    CollectionID: collection.ID,
//	    Mode:         searcher.SearchModeHybrid,
//	})
package searcher
