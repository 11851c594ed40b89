// Package storage persists indexed documents, chunks, and embeddings in
// SQLite and serves the vector and full-text queries behind search.
//
// # Data Model
//
// A Collection tracks one indexed directory tree. Each Document belongs to
// a collection and carries a content hash so unchanged files can be skipped
// on re-index. Chunks hold the text produced by the chunking engine along
// with byte offsets, sequence numbers, and (for semantic chunks) the split
// reason. Each chunk may have one Embedding, stored as a little-endian
// float32 blob.
//
// # Build Modes
//
// The package compiles in two modes, selected by build tags:
//
//   - sqlite_vec: CGO build with github.com/mattn/go-sqlite3 and the
//     sqlite-vec extension; vector distance is computed in SQL.
//   - purego (default): modernc.org/sqlite, no C compiler needed; vector
//     similarity is computed in Go over candidate rows.
//
// Both modes share the same schema and the same Storage interface, so
// callers never branch on build mode.
//
// # Full-Text Search
//
// An FTS5 virtual table shadows the chunks table via triggers. SearchText
// runs BM25 ranking and normalizes scores into (0, 1] so they can be
// merged with cosine similarity scores by the searcher.
//
// # Migrations
//
// Schema changes are expressed as semver-ordered migrations applied on
// open. ApplyMigrations is idempotent; RollbackMigration undoes the most
// recent version.
//
// # Usage
//
//	store, err := storage.NewSQLiteStorage(dbPath)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	tx, err := store.BeginTx(ctx)
//	if err != nil {
//	    return err
//	}
//	defer tx.Rollback()
//	// ... upsert documents and chunks ...
//	return tx.Commit()
package storage
