package integration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/dshills/textchunk-mcp/internal/chunker"
	"github.com/dshills/textchunk-mcp/internal/embedder"
	"github.com/dshills/textchunk-mcp/internal/indexer"
	"github.com/dshills/textchunk-mcp/internal/storage"
	"github.com/dshills/textchunk-mcp/pkg/types"
)

// IndexingTestSuite contains tests for the indexing pipeline
type IndexingTestSuite struct {
	suite.Suite
	storage     storage.Storage
	indexer     *indexer.Indexer
	fixturesDir string
	ctx         context.Context
}

// SetupSuite runs once before all tests
func (s *IndexingTestSuite) SetupSuite() {
	s.ctx = context.Background()

	// Get fixtures directory
	wd, err := os.Getwd()
	s.Require().NoError(err)
	s.fixturesDir = filepath.Join(filepath.Dir(wd), "testdata", "fixtures")

	// Verify fixtures exist
	_, err = os.Stat(s.fixturesDir)
	s.Require().NoError(err, "fixtures directory should exist")
}

// SetupTest runs before each test
func (s *IndexingTestSuite) SetupTest() {
	// Create fresh storage for each test
	store, err := storage.NewSQLiteStorage(filepath.Join(s.T().TempDir(), "index.db"))
	s.Require().NoError(err)
	s.storage = store

	emb, err := embedder.NewLocalProvider(nil)
	s.Require().NoError(err)

	engine := chunker.New(embedder.NewChunkEmbedder(emb))
	s.indexer = indexer.New(s.storage, engine, emb)
}

// TearDownTest runs after each test
func (s *IndexingTestSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
}

// TestFullIndexing tests the complete indexing pipeline
func (s *IndexingTestSuite) TestFullIndexing() {
	config := &indexer.Config{
		Workers:   2,
		BatchSize: 10,
	}

	stats, err := s.indexer.IndexCollection(s.ctx, s.fixturesDir, config)
	s.Require().NoError(err, "indexing should succeed")
	s.NotNil(stats)

	s.T().Logf("Indexing stats: %+v", stats)
	s.Equal(3, stats.DocumentsIndexed, "all three fixtures should index")
	s.Equal(0, stats.DocumentsFailed)
	s.Greater(stats.ChunksCreated, 0, "should create chunks")
	s.Equal(stats.ChunksCreated, stats.EmbeddingsCreated,
		"every chunk should get an embedding")

	// Collection bookkeeping reflects the run
	coll, err := s.storage.GetCollection(s.ctx, s.fixturesDir)
	s.Require().NoError(err)
	s.Equal(3, coll.TotalDocuments)
	s.Equal(stats.ChunksCreated, coll.TotalChunks)
	s.NotNil(coll.LastIndexedAt)
}

// TestIncrementalIndexing verifies unchanged documents are skipped
func (s *IndexingTestSuite) TestIncrementalIndexing() {
	_, err := s.indexer.IndexCollection(s.ctx, s.fixturesDir, nil)
	s.Require().NoError(err)

	stats, err := s.indexer.IndexCollection(s.ctx, s.fixturesDir, nil)
	s.Require().NoError(err)
	s.Equal(0, stats.DocumentsIndexed)
	s.Equal(3, stats.DocumentsSkipped, "second run should skip everything")
}

// TestForceReindex verifies Force overrides the content hash check
func (s *IndexingTestSuite) TestForceReindex() {
	_, err := s.indexer.IndexCollection(s.ctx, s.fixturesDir, nil)
	s.Require().NoError(err)

	stats, err := s.indexer.IndexCollection(s.ctx, s.fixturesDir, &indexer.Config{Force: true})
	s.Require().NoError(err)
	s.Equal(3, stats.DocumentsIndexed)
	s.Equal(0, stats.DocumentsSkipped)
}

// TestChangedDocument verifies a modified document is re-chunked
func (s *IndexingTestSuite) TestChangedDocument() {
	dir := s.T().TempDir()
	path := filepath.Join(dir, "notes.md")
	s.Require().NoError(os.WriteFile(path, []byte("# Notes\n\nOriginal text."), 0o644))

	_, err := s.indexer.IndexCollection(s.ctx, dir, nil)
	s.Require().NoError(err)

	s.Require().NoError(os.WriteFile(path, []byte("# Notes\n\nRewritten from scratch."), 0o644))

	stats, err := s.indexer.IndexCollection(s.ctx, dir, nil)
	s.Require().NoError(err)
	s.Equal(1, stats.DocumentsIndexed)

	doc, err := s.storage.GetDocument(s.ctx, mustCollectionID(s, dir), "notes.md")
	s.Require().NoError(err)

	chunks, err := s.storage.ListChunksByDocument(s.ctx, doc.ID)
	s.Require().NoError(err)
	s.Require().NotEmpty(chunks)
	for _, c := range chunks {
		s.Contains("# Notes\n\nRewritten from scratch.", c.Content)
	}
}

// TestSemanticStrategy indexes with the semantic chunker end to end
func (s *IndexingTestSuite) TestSemanticStrategy() {
	stats, err := s.indexer.IndexCollection(s.ctx, s.fixturesDir, &indexer.Config{
		Strategy: chunker.StrategySemantic,
	})
	s.Require().NoError(err)
	s.Equal(3, stats.DocumentsIndexed)

	coll, err := s.storage.GetCollection(s.ctx, s.fixturesDir)
	s.Require().NoError(err)

	docs, err := s.storage.ListDocuments(s.ctx, coll.ID)
	s.Require().NoError(err)
	for _, doc := range docs {
		chunks, err := s.storage.ListChunksByDocument(s.ctx, doc.ID)
		s.Require().NoError(err)
		for _, c := range chunks {
			s.Equal(chunker.StrategySemantic, c.Strategy)
			s.NotEmpty(c.SplitReason, "semantic chunks record a split reason")
		}
	}
}

// TestUnknownStrategy surfaces a validation error before any work happens
func (s *IndexingTestSuite) TestUnknownStrategy() {
	_, err := s.indexer.IndexCollection(s.ctx, s.fixturesDir, &indexer.Config{
		Strategy: "Paragraph",
	})
	s.Require().Error(err)
	s.True(errors.Is(err, types.ErrUnknownStrategy))
}

func mustCollectionID(s *IndexingTestSuite, rootPath string) int64 {
	coll, err := s.storage.GetCollection(s.ctx, rootPath)
	s.Require().NoError(err)
	return coll.ID
}

func TestIndexingSuite(t *testing.T) {
	suite.Run(t, new(IndexingTestSuite))
}
