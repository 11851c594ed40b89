package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when trying to create a duplicate entity
	ErrAlreadyExists = errors.New("already exists")
)

// SQLiteStorage implements the Storage interface using SQLite
type SQLiteStorage struct {
	db *sql.DB
}

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(1) // SQLite benefits from single writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// NewSQLiteStorage creates a new SQLite storage instance
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Apply migrations
	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// BeginTx starts a new transaction
func (s *SQLiteStorage) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &sqliteTx{tx: tx, storage: s}, nil
}

// querier is an interface that both *sql.DB and *sql.Tx implement
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// sqliteTx wraps a SQL transaction
type sqliteTx struct {
	tx      *sql.Tx
	storage *SQLiteStorage
}

func (t *sqliteTx) Commit() error {
	return t.tx.Commit()
}

func (t *sqliteTx) Rollback() error {
	return t.tx.Rollback()
}

// querier returns the transaction querier
func (t *sqliteTx) querier() querier {
	return t.tx
}

// querier returns the DB querier
func (s *SQLiteStorage) querier() querier {
	return s.db
}

// Collection operations

func (s *SQLiteStorage) createCollectionWithQuerier(ctx context.Context, q querier, collection *Collection) error {
	query := `
		INSERT INTO collections (root_path, name, index_version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`
	now := time.Now()
	result, err := q.ExecContext(ctx, query,
		collection.RootPath, collection.Name, collection.IndexVersion, now, now)
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	collection.ID = id
	collection.CreatedAt = now
	collection.UpdatedAt = now
	return nil
}

func (s *SQLiteStorage) CreateCollection(ctx context.Context, collection *Collection) error {
	return s.createCollectionWithQuerier(ctx, s.querier(), collection)
}

const collectionColumns = `id, root_path, name, total_documents, total_chunks,
	       index_version, last_indexed_at, created_at, updated_at`

func scanCollection(row *sql.Row) (*Collection, error) {
	var collection Collection
	var name sql.NullString
	var lastIndexedAt sql.NullTime
	err := row.Scan(
		&collection.ID, &collection.RootPath, &name,
		&collection.TotalDocuments, &collection.TotalChunks, &collection.IndexVersion,
		&lastIndexedAt, &collection.CreatedAt, &collection.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	collection.Name = name.String
	if lastIndexedAt.Valid {
		collection.LastIndexedAt = lastIndexedAt.Time
	}
	return &collection, nil
}

func (s *SQLiteStorage) getCollectionWithQuerier(ctx context.Context, q querier, rootPath string) (*Collection, error) {
	query := `SELECT ` + collectionColumns + ` FROM collections WHERE root_path = ?`
	return scanCollection(q.QueryRowContext(ctx, query, rootPath))
}

func (s *SQLiteStorage) GetCollection(ctx context.Context, rootPath string) (*Collection, error) {
	return s.getCollectionWithQuerier(ctx, s.querier(), rootPath)
}

func (s *SQLiteStorage) getCollectionByIDWithQuerier(ctx context.Context, q querier, collectionID int64) (*Collection, error) {
	query := `SELECT ` + collectionColumns + ` FROM collections WHERE id = ?`
	return scanCollection(q.QueryRowContext(ctx, query, collectionID))
}

func (s *SQLiteStorage) GetCollectionByID(ctx context.Context, collectionID int64) (*Collection, error) {
	return s.getCollectionByIDWithQuerier(ctx, s.querier(), collectionID)
}

func (s *SQLiteStorage) updateCollectionWithQuerier(ctx context.Context, q querier, collection *Collection) error {
	query := `
		UPDATE collections
		SET name = ?, total_documents = ?, total_chunks = ?,
		    index_version = ?, last_indexed_at = ?, updated_at = ?
		WHERE id = ?
	`
	now := time.Now()
	_, err := q.ExecContext(ctx, query,
		collection.Name, collection.TotalDocuments, collection.TotalChunks,
		collection.IndexVersion, collection.LastIndexedAt, now, collection.ID)
	if err != nil {
		return fmt.Errorf("failed to update collection: %w", err)
	}
	collection.UpdatedAt = now
	return nil
}

func (s *SQLiteStorage) UpdateCollection(ctx context.Context, collection *Collection) error {
	return s.updateCollectionWithQuerier(ctx, s.querier(), collection)
}

// Document operations

func (s *SQLiteStorage) upsertDocumentWithQuerier(ctx context.Context, q querier, doc *Document) error {
	query := `
		INSERT INTO documents (collection_id, doc_path, title, content_hash, mod_time,
		                       size_bytes, strategy, last_indexed_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(collection_id, doc_path) DO UPDATE SET
		    title = excluded.title,
		    content_hash = excluded.content_hash,
		    mod_time = excluded.mod_time,
		    size_bytes = excluded.size_bytes,
		    strategy = excluded.strategy,
		    last_indexed_at = excluded.last_indexed_at,
		    updated_at = excluded.updated_at
	`
	now := time.Now()
	_, err := q.ExecContext(ctx, query,
		doc.CollectionID, doc.DocPath, doc.Title, doc.ContentHash[:], doc.ModTime,
		doc.SizeBytes, doc.Strategy, doc.LastIndexedAt, now, now)
	if err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}

	// The upsert path doesn't report the row id, so read it back
	row := q.QueryRowContext(ctx,
		"SELECT id FROM documents WHERE collection_id = ? AND doc_path = ?",
		doc.CollectionID, doc.DocPath)
	if err := row.Scan(&doc.ID); err != nil {
		return fmt.Errorf("failed to read back document id: %w", err)
	}
	doc.UpdatedAt = now
	return nil
}

func (s *SQLiteStorage) UpsertDocument(ctx context.Context, doc *Document) error {
	return s.upsertDocumentWithQuerier(ctx, s.querier(), doc)
}

const documentColumns = `id, collection_id, doc_path, title, content_hash, mod_time,
	       size_bytes, strategy, last_indexed_at, created_at, updated_at`

func scanDocument(row *sql.Row) (*Document, error) {
	var doc Document
	var title, strategy sql.NullString
	var contentHash []byte
	var modTime, lastIndexedAt sql.NullTime
	var sizeBytes sql.NullInt64
	err := row.Scan(
		&doc.ID, &doc.CollectionID, &doc.DocPath, &title, &contentHash,
		&modTime, &sizeBytes, &strategy, &lastIndexedAt,
		&doc.CreatedAt, &doc.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	doc.Title = title.String
	doc.Strategy = strategy.String
	copy(doc.ContentHash[:], contentHash)
	if modTime.Valid {
		doc.ModTime = modTime.Time
	}
	doc.SizeBytes = sizeBytes.Int64
	if lastIndexedAt.Valid {
		doc.LastIndexedAt = lastIndexedAt.Time
	}
	return &doc, nil
}

func (s *SQLiteStorage) getDocumentWithQuerier(ctx context.Context, q querier, collectionID int64, docPath string) (*Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE collection_id = ? AND doc_path = ?`
	return scanDocument(q.QueryRowContext(ctx, query, collectionID, docPath))
}

func (s *SQLiteStorage) GetDocument(ctx context.Context, collectionID int64, docPath string) (*Document, error) {
	return s.getDocumentWithQuerier(ctx, s.querier(), collectionID, docPath)
}

func (s *SQLiteStorage) getDocumentByIDWithQuerier(ctx context.Context, q querier, documentID int64) (*Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = ?`
	return scanDocument(q.QueryRowContext(ctx, query, documentID))
}

func (s *SQLiteStorage) GetDocumentByID(ctx context.Context, documentID int64) (*Document, error) {
	return s.getDocumentByIDWithQuerier(ctx, s.querier(), documentID)
}

func (s *SQLiteStorage) deleteDocumentWithQuerier(ctx context.Context, q querier, documentID int64) error {
	_, err := q.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", documentID)
	return err
}

func (s *SQLiteStorage) DeleteDocument(ctx context.Context, documentID int64) error {
	return s.deleteDocumentWithQuerier(ctx, s.querier(), documentID)
}

func (s *SQLiteStorage) listDocumentsWithQuerier(ctx context.Context, q querier, collectionID int64) ([]*Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE collection_id = ? ORDER BY doc_path`
	rows, err := q.QueryContext(ctx, query, collectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var docs []*Document
	for rows.Next() {
		var doc Document
		var title, strategy sql.NullString
		var contentHash []byte
		var modTime, lastIndexedAt sql.NullTime
		var sizeBytes sql.NullInt64
		err := rows.Scan(
			&doc.ID, &doc.CollectionID, &doc.DocPath, &title, &contentHash,
			&modTime, &sizeBytes, &strategy, &lastIndexedAt,
			&doc.CreatedAt, &doc.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		doc.Title = title.String
		doc.Strategy = strategy.String
		copy(doc.ContentHash[:], contentHash)
		if modTime.Valid {
			doc.ModTime = modTime.Time
		}
		doc.SizeBytes = sizeBytes.Int64
		if lastIndexedAt.Valid {
			doc.LastIndexedAt = lastIndexedAt.Time
		}
		docs = append(docs, &doc)
	}
	return docs, rows.Err()
}

func (s *SQLiteStorage) ListDocuments(ctx context.Context, collectionID int64) ([]*Document, error) {
	return s.listDocumentsWithQuerier(ctx, s.querier(), collectionID)
}

// Chunk operations

func (s *SQLiteStorage) upsertChunkWithQuerier(ctx context.Context, q querier, chunk *Chunk) error {
	query := `
		INSERT INTO chunks (document_id, content, content_hash, strategy,
		                    offset_start, offset_end, chunk_size, sequence, total,
		                    sentence_count, split_reason, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(document_id, sequence) DO UPDATE SET
		    content = excluded.content,
		    content_hash = excluded.content_hash,
		    strategy = excluded.strategy,
		    offset_start = excluded.offset_start,
		    offset_end = excluded.offset_end,
		    chunk_size = excluded.chunk_size,
		    total = excluded.total,
		    sentence_count = excluded.sentence_count,
		    split_reason = excluded.split_reason,
		    updated_at = excluded.updated_at
	`
	now := time.Now()
	var splitReason interface{}
	if chunk.SplitReason != "" {
		splitReason = chunk.SplitReason
	}
	_, err := q.ExecContext(ctx, query,
		chunk.DocumentID, chunk.Content, chunk.ContentHash[:], chunk.Strategy,
		chunk.OffsetStart, chunk.OffsetEnd, chunk.ChunkSize, chunk.Sequence, chunk.Total,
		chunk.SentenceCount, splitReason, now, now)
	if err != nil {
		return fmt.Errorf("failed to upsert chunk: %w", err)
	}

	row := q.QueryRowContext(ctx,
		"SELECT id FROM chunks WHERE document_id = ? AND sequence = ?",
		chunk.DocumentID, chunk.Sequence)
	if err := row.Scan(&chunk.ID); err != nil {
		return fmt.Errorf("failed to read back chunk id: %w", err)
	}
	chunk.UpdatedAt = now
	return nil
}

func (s *SQLiteStorage) UpsertChunk(ctx context.Context, chunk *Chunk) error {
	return s.upsertChunkWithQuerier(ctx, s.querier(), chunk)
}

const chunkColumns = `id, document_id, content, content_hash, strategy,
	       offset_start, offset_end, chunk_size, sequence, total,
	       sentence_count, split_reason, created_at, updated_at`

func scanChunkRow(scan func(dest ...interface{}) error) (*Chunk, error) {
	var chunk Chunk
	var contentHash []byte
	var splitReason sql.NullString
	err := scan(
		&chunk.ID, &chunk.DocumentID, &chunk.Content, &contentHash, &chunk.Strategy,
		&chunk.OffsetStart, &chunk.OffsetEnd, &chunk.ChunkSize, &chunk.Sequence, &chunk.Total,
		&chunk.SentenceCount, &splitReason, &chunk.CreatedAt, &chunk.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	copy(chunk.ContentHash[:], contentHash)
	chunk.SplitReason = splitReason.String
	return &chunk, nil
}

func (s *SQLiteStorage) getChunkWithQuerier(ctx context.Context, q querier, chunkID int64) (*Chunk, error) {
	query := `SELECT ` + chunkColumns + ` FROM chunks WHERE id = ?`
	row := q.QueryRowContext(ctx, query, chunkID)
	chunk, err := scanChunkRow(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return chunk, err
}

func (s *SQLiteStorage) GetChunk(ctx context.Context, chunkID int64) (*Chunk, error) {
	return s.getChunkWithQuerier(ctx, s.querier(), chunkID)
}

func (s *SQLiteStorage) listChunksByDocumentWithQuerier(ctx context.Context, q querier, documentID int64) ([]*Chunk, error) {
	query := `SELECT ` + chunkColumns + ` FROM chunks WHERE document_id = ? ORDER BY sequence`
	rows, err := q.QueryContext(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chunks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var chunks []*Chunk
	for rows.Next() {
		chunk, err := scanChunkRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, chunk)
	}
	return chunks, rows.Err()
}

func (s *SQLiteStorage) ListChunksByDocument(ctx context.Context, documentID int64) ([]*Chunk, error) {
	return s.listChunksByDocumentWithQuerier(ctx, s.querier(), documentID)
}

func (s *SQLiteStorage) deleteChunksByDocumentWithQuerier(ctx context.Context, q querier, documentID int64) error {
	_, err := q.ExecContext(ctx, "DELETE FROM chunks WHERE document_id = ?", documentID)
	return err
}

func (s *SQLiteStorage) DeleteChunksByDocument(ctx context.Context, documentID int64) error {
	return s.deleteChunksByDocumentWithQuerier(ctx, s.querier(), documentID)
}

// Embedding operations

func (s *SQLiteStorage) upsertEmbeddingWithQuerier(ctx context.Context, q querier, embedding *Embedding) error {
	query := `
		INSERT INTO embeddings (chunk_id, vector, dimension, provider, model, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(chunk_id) DO UPDATE SET
		    vector = excluded.vector,
		    dimension = excluded.dimension,
		    provider = excluded.provider,
		    model = excluded.model
	`
	now := time.Now()
	_, err := q.ExecContext(ctx, query,
		embedding.ChunkID, embedding.Vector, embedding.Dimension,
		embedding.Provider, embedding.Model, now)
	if err != nil {
		return fmt.Errorf("failed to upsert embedding: %w", err)
	}

	row := q.QueryRowContext(ctx, "SELECT id FROM embeddings WHERE chunk_id = ?", embedding.ChunkID)
	if err := row.Scan(&embedding.ID); err != nil {
		return fmt.Errorf("failed to read back embedding id: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) UpsertEmbedding(ctx context.Context, embedding *Embedding) error {
	return s.upsertEmbeddingWithQuerier(ctx, s.querier(), embedding)
}

func (s *SQLiteStorage) getEmbeddingWithQuerier(ctx context.Context, q querier, chunkID int64) (*Embedding, error) {
	query := `
		SELECT id, chunk_id, vector, dimension, provider, model, created_at
		FROM embeddings
		WHERE chunk_id = ?
	`
	var embedding Embedding
	err := q.QueryRowContext(ctx, query, chunkID).Scan(
		&embedding.ID, &embedding.ChunkID, &embedding.Vector,
		&embedding.Dimension, &embedding.Provider, &embedding.Model,
		&embedding.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &embedding, nil
}

func (s *SQLiteStorage) GetEmbedding(ctx context.Context, chunkID int64) (*Embedding, error) {
	return s.getEmbeddingWithQuerier(ctx, s.querier(), chunkID)
}

func (s *SQLiteStorage) deleteEmbeddingWithQuerier(ctx context.Context, q querier, chunkID int64) error {
	_, err := q.ExecContext(ctx, "DELETE FROM embeddings WHERE chunk_id = ?", chunkID)
	return err
}

func (s *SQLiteStorage) DeleteEmbedding(ctx context.Context, chunkID int64) error {
	return s.deleteEmbeddingWithQuerier(ctx, s.querier(), chunkID)
}

// Search operations

func (s *SQLiteStorage) SearchVector(ctx context.Context, collectionID int64, queryVector []float32, limit int, filters *SearchFilters) ([]VectorResult, error) {
	return searchVector(ctx, s.db, collectionID, queryVector, limit, filters)
}

func (s *SQLiteStorage) SearchText(ctx context.Context, collectionID int64, query string, limit int, filters *SearchFilters) ([]TextResult, error) {
	return searchText(ctx, s.db, collectionID, query, limit, filters)
}

// Status operations

func (s *SQLiteStorage) GetStatus(ctx context.Context, collectionID int64) (*CollectionStatus, error) {
	collection, err := s.GetCollectionByID(ctx, collectionID)
	if err != nil {
		return nil, err
	}

	status := &CollectionStatus{
		Collection:    collection,
		LastIndexedAt: collection.LastIndexedAt,
	}

	var documentCount int
	err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents WHERE collection_id = ?", collectionID).Scan(&documentCount)
	if err != nil {
		return nil, err
	}
	status.DocumentsCount = documentCount

	var chunkCount int
	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM chunks c
		JOIN documents d ON c.document_id = d.id
		WHERE d.collection_id = ?
	`, collectionID).Scan(&chunkCount)
	if err != nil {
		return nil, err
	}
	status.ChunksCount = chunkCount

	var embeddingCount int
	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM embeddings e
		JOIN chunks c ON e.chunk_id = c.id
		JOIN documents d ON c.document_id = d.id
		WHERE d.collection_id = ?
	`, collectionID).Scan(&embeddingCount)
	if err != nil {
		return nil, err
	}
	status.EmbeddingsCount = embeddingCount

	// Calculate database size
	var pageCount, pageSize int
	err = s.db.QueryRowContext(ctx, "PRAGMA page_count").Scan(&pageCount)
	if err == nil {
		_ = s.db.QueryRowContext(ctx, "PRAGMA page_size").Scan(&pageSize)
		status.IndexSizeMB = float64(pageCount*pageSize) / (1024 * 1024)
	}

	status.Health = HealthStatus{
		DatabaseAccessible:  true,
		EmbeddingsAvailable: embeddingCount > 0,
		FTSIndexBuilt:       true, // FTS index is created with migrations
	}

	return status, nil
}

// Transaction implementations

func (t *sqliteTx) CreateCollection(ctx context.Context, collection *Collection) error {
	return t.storage.createCollectionWithQuerier(ctx, t.querier(), collection)
}

func (t *sqliteTx) GetCollection(ctx context.Context, rootPath string) (*Collection, error) {
	return t.storage.getCollectionWithQuerier(ctx, t.querier(), rootPath)
}

func (t *sqliteTx) GetCollectionByID(ctx context.Context, collectionID int64) (*Collection, error) {
	return t.storage.getCollectionByIDWithQuerier(ctx, t.querier(), collectionID)
}

func (t *sqliteTx) UpdateCollection(ctx context.Context, collection *Collection) error {
	return t.storage.updateCollectionWithQuerier(ctx, t.querier(), collection)
}

func (t *sqliteTx) UpsertDocument(ctx context.Context, doc *Document) error {
	return t.storage.upsertDocumentWithQuerier(ctx, t.querier(), doc)
}

func (t *sqliteTx) GetDocument(ctx context.Context, collectionID int64, docPath string) (*Document, error) {
	return t.storage.getDocumentWithQuerier(ctx, t.querier(), collectionID, docPath)
}

func (t *sqliteTx) GetDocumentByID(ctx context.Context, documentID int64) (*Document, error) {
	return t.storage.getDocumentByIDWithQuerier(ctx, t.querier(), documentID)
}

func (t *sqliteTx) DeleteDocument(ctx context.Context, documentID int64) error {
	return t.storage.deleteDocumentWithQuerier(ctx, t.querier(), documentID)
}

func (t *sqliteTx) ListDocuments(ctx context.Context, collectionID int64) ([]*Document, error) {
	return t.storage.listDocumentsWithQuerier(ctx, t.querier(), collectionID)
}

func (t *sqliteTx) UpsertChunk(ctx context.Context, chunk *Chunk) error {
	return t.storage.upsertChunkWithQuerier(ctx, t.querier(), chunk)
}

func (t *sqliteTx) GetChunk(ctx context.Context, chunkID int64) (*Chunk, error) {
	return t.storage.getChunkWithQuerier(ctx, t.querier(), chunkID)
}

func (t *sqliteTx) ListChunksByDocument(ctx context.Context, documentID int64) ([]*Chunk, error) {
	return t.storage.listChunksByDocumentWithQuerier(ctx, t.querier(), documentID)
}

func (t *sqliteTx) DeleteChunksByDocument(ctx context.Context, documentID int64) error {
	return t.storage.deleteChunksByDocumentWithQuerier(ctx, t.querier(), documentID)
}

func (t *sqliteTx) UpsertEmbedding(ctx context.Context, embedding *Embedding) error {
	return t.storage.upsertEmbeddingWithQuerier(ctx, t.querier(), embedding)
}

func (t *sqliteTx) GetEmbedding(ctx context.Context, chunkID int64) (*Embedding, error) {
	return t.storage.getEmbeddingWithQuerier(ctx, t.querier(), chunkID)
}

func (t *sqliteTx) DeleteEmbedding(ctx context.Context, chunkID int64) error {
	return t.storage.deleteEmbeddingWithQuerier(ctx, t.querier(), chunkID)
}

func (t *sqliteTx) SearchVector(ctx context.Context, collectionID int64, vector []float32, limit int, filters *SearchFilters) ([]VectorResult, error) {
	return t.storage.SearchVector(ctx, collectionID, vector, limit, filters)
}

func (t *sqliteTx) SearchText(ctx context.Context, collectionID int64, query string, limit int, filters *SearchFilters) ([]TextResult, error) {
	return t.storage.SearchText(ctx, collectionID, query, limit, filters)
}

func (t *sqliteTx) GetStatus(ctx context.Context, collectionID int64) (*CollectionStatus, error) {
	return t.storage.GetStatus(ctx, collectionID)
}

func (t *sqliteTx) Close() error {
	return t.Rollback()
}

func (t *sqliteTx) BeginTx(ctx context.Context) (Tx, error) {
	return nil, errors.New("nested transactions not supported")
}
