package storage

import (
	"context"
	"time"

	"github.com/dshills/textchunk-mcp/pkg/types"
)

// Storage defines the interface for persisting and querying indexed documents
type Storage interface {
	// Collection operations
	CreateCollection(ctx context.Context, collection *Collection) error
	GetCollection(ctx context.Context, rootPath string) (*Collection, error)
	GetCollectionByID(ctx context.Context, collectionID int64) (*Collection, error)
	UpdateCollection(ctx context.Context, collection *Collection) error

	// Document operations
	UpsertDocument(ctx context.Context, doc *Document) error
	GetDocument(ctx context.Context, collectionID int64, docPath string) (*Document, error)
	GetDocumentByID(ctx context.Context, documentID int64) (*Document, error)
	DeleteDocument(ctx context.Context, documentID int64) error
	ListDocuments(ctx context.Context, collectionID int64) ([]*Document, error)

	// Chunk operations
	UpsertChunk(ctx context.Context, chunk *Chunk) error
	GetChunk(ctx context.Context, chunkID int64) (*Chunk, error)
	ListChunksByDocument(ctx context.Context, documentID int64) ([]*Chunk, error)
	DeleteChunksByDocument(ctx context.Context, documentID int64) error

	// Embedding operations
	UpsertEmbedding(ctx context.Context, embedding *Embedding) error
	GetEmbedding(ctx context.Context, chunkID int64) (*Embedding, error)
	DeleteEmbedding(ctx context.Context, chunkID int64) error

	// Search operations
	SearchVector(ctx context.Context, collectionID int64, vector []float32, limit int, filters *SearchFilters) ([]VectorResult, error)
	SearchText(ctx context.Context, collectionID int64, query string, limit int, filters *SearchFilters) ([]TextResult, error)

	// Status operations
	GetStatus(ctx context.Context, collectionID int64) (*CollectionStatus, error)

	// Database operations
	Close() error
	BeginTx(ctx context.Context) (Tx, error)
}

// Tx represents a database transaction
type Tx interface {
	Commit() error
	Rollback() error
	Storage // Embed Storage interface for transaction operations
}

// Collection represents an indexed document tree
type Collection struct {
	ID             int64
	RootPath       string
	Name           string
	TotalDocuments int
	TotalChunks    int
	IndexVersion   string
	LastIndexedAt  time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Document represents a tracked text document
type Document struct {
	ID            int64
	CollectionID  int64
	DocPath       string // Relative to collection root
	Title         string
	ContentHash   [32]byte
	ModTime       time.Time
	SizeBytes     int64
	Strategy      string // Chunking strategy used at index time
	LastIndexedAt time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Chunk represents a stored text chunk ready for embedding
type Chunk struct {
	ID            int64
	DocumentID    int64
	Content       string
	ContentHash   [32]byte
	Strategy      string
	OffsetStart   int
	OffsetEnd     int
	ChunkSize     int
	Sequence      int
	Total         int
	SentenceCount int    // Zero unless produced by the semantic strategy
	SplitReason   string // Empty unless produced by the semantic strategy
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Embedding represents a vector embedding for a chunk
type Embedding struct {
	ID        int64
	ChunkID   int64
	Vector    []byte // Serialized float32 array
	Dimension int
	Provider  string
	Model     string
	CreatedAt time.Time
}

// SearchFilters contains filters for narrowing search results
type SearchFilters struct {
	PathPattern  string   // Glob pattern for document paths
	Strategies   []string // Filter by chunking strategy
	MinRelevance float64  // Minimum relevance score
}

// VectorResult represents a result from vector similarity search
type VectorResult struct {
	ChunkID         int64
	SimilarityScore float64
}

// TextResult represents a result from full-text search
type TextResult struct {
	ChunkID   int64
	BM25Score float64
}

// CollectionStatus contains statistics about an indexed collection
type CollectionStatus struct {
	Collection      *Collection
	DocumentsCount  int
	ChunksCount     int
	EmbeddingsCount int
	IndexSizeMB     float64
	LastIndexedAt   time.Time
	Health          HealthStatus
}

// HealthStatus represents the health of the index
type HealthStatus struct {
	DatabaseAccessible  bool
	EmbeddingsAvailable bool
	FTSIndexBuilt       bool
}

// ToTypesChunk converts a storage Chunk to types.Chunk
func (c *Chunk) ToTypesChunk() types.Chunk {
	chunk := types.Chunk{
		Text:        c.Content,
		OffsetStart: c.OffsetStart,
		OffsetEnd:   c.OffsetEnd,
		ChunkSize:   c.ChunkSize,
		Sequence:    c.Sequence,
		Total:       c.Total,
	}
	if c.SplitReason != "" {
		chunk.Semantic = &types.SemanticInfo{
			Strategy:         c.Strategy,
			SentencesInChunk: c.SentenceCount,
			SplitReason:      types.SplitReason(c.SplitReason),
		}
	}
	return chunk
}

// FromTypesChunk converts a types.Chunk to a storage Chunk
func FromTypesChunk(c types.Chunk, documentID int64, strategy string, contentHash [32]byte) *Chunk {
	chunk := &Chunk{
		DocumentID:  documentID,
		Content:     c.Text,
		ContentHash: contentHash,
		Strategy:    strategy,
		OffsetStart: c.OffsetStart,
		OffsetEnd:   c.OffsetEnd,
		ChunkSize:   c.ChunkSize,
		Sequence:    c.Sequence,
		Total:       c.Total,
	}
	if c.Semantic != nil {
		chunk.SentenceCount = c.Semantic.SentencesInChunk
		chunk.SplitReason = string(c.Semantic.SplitReason)
	}
	return chunk
}
