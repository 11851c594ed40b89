package indexer

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/textchunk-mcp/internal/chunker"
	"github.com/dshills/textchunk-mcp/internal/embedder"
	"github.com/dshills/textchunk-mcp/internal/storage"
	"github.com/dshills/textchunk-mcp/pkg/types"
)

// ErrIndexInProgress is returned when an indexing run is already active
var ErrIndexInProgress = errors.New("indexing already in progress")

// DefaultExtensions lists the document types indexed when none are configured
var DefaultExtensions = []string{".txt", ".md", ".markdown", ".rst"}

// Indexer coordinates the indexing pipeline: discover -> chunk -> embed -> store
type Indexer struct {
	engine   *chunker.Engine
	embedder embedder.Embedder
	storage  storage.Storage

	lock    IndexLock
	workers int
}

// Config contains configuration for an indexing run
type Config struct {
	Workers    int      // Number of concurrent workers (default: runtime.NumCPU())
	BatchSize  int      // Number of documents to commit per transaction (default: 20)
	Strategy   string   // Chunking strategy (default: Sentence)
	ChunkSize  int      // Maximum chunk size in bytes (default: strategy default)
	Overlap    int      // Overlap between chunks in bytes
	Extensions []string // File extensions to index (default: DefaultExtensions)
	Force      bool     // Re-index documents even when the content hash is unchanged
}

// Statistics contains statistics about an indexing operation
type Statistics struct {
	DocumentsIndexed  int
	DocumentsSkipped  int
	DocumentsFailed   int
	ChunksCreated     int
	EmbeddingsCreated int
	Duration          time.Duration
	ErrorMessages     []string
}

// New creates a new Indexer instance. The embedder may be nil, in which
// case chunks are stored without embeddings and only text search works.
func New(store storage.Storage, engine *chunker.Engine, emb embedder.Embedder) *Indexer {
	return &Indexer{
		engine:   engine,
		embedder: emb,
		storage:  store,
		workers:  runtime.NumCPU(),
	}
}

// IndexCollection indexes every document under rootPath
func (idx *Indexer) IndexCollection(ctx context.Context, rootPath string, config *Config) (*Statistics, error) {
	if !idx.lock.TryAcquire() {
		return nil, ErrIndexInProgress
	}
	defer idx.lock.Release()

	if config == nil {
		config = &Config{}
	}
	applyConfigDefaults(config)
	idx.workers = config.Workers

	chunkConfig, err := buildChunkConfig(config)
	if err != nil {
		return nil, err
	}

	startTime := time.Now()
	stats := &Statistics{
		ErrorMessages: make([]string, 0),
	}

	collection, err := idx.getOrCreateCollection(ctx, rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create collection: %w", err)
	}

	docs, err := idx.discoverDocuments(rootPath, config)
	if err != nil {
		return nil, fmt.Errorf("failed to discover documents: %w", err)
	}

	err = idx.indexDocuments(ctx, collection, docs, config, chunkConfig, stats)
	if err != nil {
		return nil, fmt.Errorf("failed to index documents: %w", err)
	}

	if err := idx.updateCollectionStats(ctx, collection); err != nil {
		return nil, fmt.Errorf("failed to update collection stats: %w", err)
	}

	stats.Duration = time.Since(startTime)
	return stats, nil
}

func applyConfigDefaults(config *Config) {
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	if config.BatchSize <= 0 {
		config.BatchSize = 20
	}
	if config.Strategy == "" {
		config.Strategy = chunker.StrategySentence
	}
	if len(config.Extensions) == 0 {
		config.Extensions = DefaultExtensions
	}
}

// buildChunkConfig translates indexer configuration into a chunking config
func buildChunkConfig(config *Config) (*chunker.Config, error) {
	known := false
	for _, name := range chunker.Strategies() {
		if name == config.Strategy {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownStrategy, config.Strategy)
	}

	chunkConfig := &chunker.Config{Strategy: config.Strategy}
	if config.Strategy == chunker.StrategyNone {
		return chunkConfig, nil
	}

	params := map[string]any{}
	if config.ChunkSize > 0 {
		params[chunker.ParamChunkSize] = config.ChunkSize
	}
	if config.Overlap > 0 {
		params[chunker.ParamOverlap] = config.Overlap
	}
	chunkConfig.Parameters = params
	return chunkConfig, nil
}

// getOrCreateCollection retrieves an existing collection or creates a new one
func (idx *Indexer) getOrCreateCollection(ctx context.Context, rootPath string) (*storage.Collection, error) {
	collection, err := idx.storage.GetCollection(ctx, rootPath)
	if err == nil {
		return collection, nil
	}

	if err != storage.ErrNotFound {
		return nil, err
	}

	collection = &storage.Collection{
		RootPath:     rootPath,
		Name:         filepath.Base(rootPath),
		IndexVersion: storage.CurrentSchemaVersion,
	}

	if err := idx.storage.CreateCollection(ctx, collection); err != nil {
		return nil, err
	}

	return collection, nil
}

// discoverDocuments finds all indexable documents under the root
func (idx *Indexer) discoverDocuments(rootPath string, config *Config) ([]string, error) {
	var docs []string

	err := filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			// Skip hidden directories
			if strings.HasPrefix(info.Name(), ".") && path != rootPath {
				return filepath.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		for _, want := range config.Extensions {
			if ext == want {
				docs = append(docs, path)
				break
			}
		}
		return nil
	})

	return docs, err
}

// indexDocuments indexes documents concurrently in transactional batches
func (idx *Indexer) indexDocuments(ctx context.Context, collection *storage.Collection, docs []string,
	config *Config, chunkConfig *chunker.Config, stats *Statistics) error {

	semaphore := make(chan struct{}, idx.workers)

	var (
		indexed    int32
		skipped    int32
		failed     int32
		chunks     int32
		embeddings int32
	)

	g, gctx := errgroup.WithContext(ctx)
	var mu sync.Mutex // Protect stats.ErrorMessages

	for i := 0; i < len(docs); i += config.BatchSize {
		end := i + config.BatchSize
		if end > len(docs) {
			end = len(docs)
		}
		batch := docs[i:end]

		g.Go(func() error {
			return idx.indexBatch(gctx, collection, batch, config, chunkConfig, semaphore,
				&indexed, &skipped, &failed, &chunks, &embeddings, &mu, stats)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	stats.DocumentsIndexed = int(indexed)
	stats.DocumentsSkipped = int(skipped)
	stats.DocumentsFailed = int(failed)
	stats.ChunksCreated = int(chunks)
	stats.EmbeddingsCreated = int(embeddings)

	return nil
}

// indexBatch indexes a batch of documents within a transaction
func (idx *Indexer) indexBatch(ctx context.Context, collection *storage.Collection, docs []string,
	config *Config, chunkConfig *chunker.Config, semaphore chan struct{},
	indexed, skipped, failed, chunks, embeddings *int32,
	mu *sync.Mutex, stats *Statistics) error {

	tx, err := idx.storage.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, docPath := range docs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case semaphore <- struct{}{}:
			// Acquire semaphore
		}

		err := idx.indexDocument(ctx, tx, collection, docPath, config, chunkConfig,
			indexed, skipped, chunks, embeddings)
		<-semaphore

		if err != nil {
			atomic.AddInt32(failed, 1)
			mu.Lock()
			stats.ErrorMessages = append(stats.ErrorMessages, fmt.Sprintf("%s: %v", docPath, err))
			mu.Unlock()
			// Continue with other documents
			continue
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// indexDocument indexes a single document
func (idx *Indexer) indexDocument(ctx context.Context, store storage.Storage, collection *storage.Collection,
	docPath string, config *Config, chunkConfig *chunker.Config,
	indexed, skipped, chunks, embeddings *int32) error {

	relPath, err := filepath.Rel(collection.RootPath, docPath)
	if err != nil {
		return err
	}

	content, modTime, err := readDocument(docPath)
	if err != nil {
		return err
	}
	hash := sha256.Sum256(content)

	shouldSkip, err := idx.checkDocumentChanged(ctx, store, collection.ID, relPath, hash, config.Force, skipped)
	if err != nil {
		return err
	}
	if shouldSkip {
		return nil
	}

	text := string(content)
	docChunks, err := idx.engine.ChunkText(ctx, text, chunkConfig)
	if err != nil {
		return fmt.Errorf("failed to chunk document: %w", err)
	}

	doc := &storage.Document{
		CollectionID:  collection.ID,
		DocPath:       relPath,
		Title:         extractTitle(text, relPath),
		ContentHash:   hash,
		ModTime:       modTime,
		SizeBytes:     int64(len(content)),
		Strategy:      config.Strategy,
		LastIndexedAt: time.Now(),
	}
	if err := store.UpsertDocument(ctx, doc); err != nil {
		return err
	}

	chunkCount := 0
	stored := make([]*storage.Chunk, 0, len(docChunks))
	for _, chunk := range docChunks {
		record := storage.FromTypesChunk(chunk, doc.ID, config.Strategy, sha256.Sum256([]byte(chunk.Text)))
		if err := store.UpsertChunk(ctx, record); err != nil {
			return fmt.Errorf("failed to store chunk: %w", err)
		}
		stored = append(stored, record)
		chunkCount++
	}

	embeddingCount, err := idx.embedChunks(ctx, store, stored)
	if err != nil {
		return err
	}

	atomic.AddInt32(indexed, 1)
	atomic.AddInt32(chunks, int32(chunkCount))
	atomic.AddInt32(embeddings, int32(embeddingCount))

	return nil
}

// embedChunks generates and stores embeddings for newly stored chunks.
// A nil embedder disables the step; the chunks remain text-searchable.
func (idx *Indexer) embedChunks(ctx context.Context, store storage.Storage, chunks []*storage.Chunk) (int, error) {
	if idx.embedder == nil || len(chunks) == 0 {
		return 0, nil
	}

	count := 0
	for start := 0; start < len(chunks); start += embedder.MaxBatchSize {
		end := start + embedder.MaxBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, chunk := range batch {
			texts[i] = chunk.Content
		}

		resp, err := idx.embedder.GenerateBatch(ctx, embedder.BatchEmbeddingRequest{Texts: texts})
		if err != nil {
			return count, fmt.Errorf("failed to embed chunks: %w", err)
		}
		if len(resp.Embeddings) != len(batch) {
			return count, fmt.Errorf("embedding count mismatch: got %d, want %d", len(resp.Embeddings), len(batch))
		}

		for i, emb := range resp.Embeddings {
			record := &storage.Embedding{
				ChunkID:   batch[i].ID,
				Vector:    storage.SerializeVector(emb.Vector),
				Dimension: emb.Dimension,
				Provider:  emb.Provider,
				Model:     emb.Model,
			}
			if err := store.UpsertEmbedding(ctx, record); err != nil {
				return count, fmt.Errorf("failed to store embedding: %w", err)
			}
			count++
		}
	}

	return count, nil
}

// checkDocumentChanged checks if a document has changed and needs re-indexing
func (idx *Indexer) checkDocumentChanged(ctx context.Context, store storage.Storage, collectionID int64,
	relPath string, hash [32]byte, force bool, skipped *int32) (bool, error) {

	existing, err := store.GetDocument(ctx, collectionID, relPath)
	if err == storage.ErrNotFound {
		// New document, needs indexing
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if existing.ContentHash == hash && !force {
		atomic.AddInt32(skipped, 1)
		return true, nil
	}

	// Document changed - delete old chunks before re-indexing
	if err := store.DeleteChunksByDocument(ctx, existing.ID); err != nil {
		return false, fmt.Errorf("failed to delete old chunks: %w", err)
	}

	return false, nil
}

// updateCollectionStats updates the collection's document and chunk counts
func (idx *Indexer) updateCollectionStats(ctx context.Context, collection *storage.Collection) error {
	docs, err := idx.storage.ListDocuments(ctx, collection.ID)
	if err != nil {
		return err
	}

	totalChunks := 0
	for _, doc := range docs {
		chunks, err := idx.storage.ListChunksByDocument(ctx, doc.ID)
		if err != nil {
			return err
		}
		totalChunks += len(chunks)
	}

	collection.TotalDocuments = len(docs)
	collection.TotalChunks = totalChunks
	collection.LastIndexedAt = time.Now()

	return idx.storage.UpdateCollection(ctx, collection)
}

// readDocument reads a document's content and modification time
func readDocument(docPath string) ([]byte, time.Time, error) {
	info, err := os.Stat(docPath)
	if err != nil {
		return nil, time.Time{}, err
	}
	content, err := os.ReadFile(docPath)
	if err != nil {
		return nil, time.Time{}, err
	}
	return content, info.ModTime(), nil
}

// extractTitle picks a document title: the first markdown heading if one
// exists near the top, otherwise the file name without extension.
func extractTitle(text, relPath string) string {
	lines := strings.Split(text, "\n")
	limit := len(lines)
	if limit > 10 {
		limit = 10
	}
	for _, line := range lines[:limit] {
		line = strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(line, "# "); ok {
			if title := strings.TrimSpace(rest); title != "" {
				return title
			}
		}
	}
	base := filepath.Base(relPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
