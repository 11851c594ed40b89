package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/dshills/textchunk-mcp/internal/chunker"
	"github.com/dshills/textchunk-mcp/internal/embedder"
	"github.com/dshills/textchunk-mcp/internal/indexer"
	"github.com/dshills/textchunk-mcp/internal/searcher"
	"github.com/dshills/textchunk-mcp/internal/storage"
)

// SearchTestSuite exercises search against a fully indexed collection
type SearchTestSuite struct {
	suite.Suite
	storage      storage.Storage
	searcher     *searcher.Searcher
	collectionID int64
	ctx          context.Context
}

// SetupSuite indexes the fixtures once; searches are read-only
func (s *SearchTestSuite) SetupSuite() {
	s.ctx = context.Background()

	wd, err := os.Getwd()
	s.Require().NoError(err)
	fixturesDir := filepath.Join(filepath.Dir(wd), "testdata", "fixtures")

	store, err := storage.NewSQLiteStorage(filepath.Join(s.T().TempDir(), "search.db"))
	s.Require().NoError(err)
	s.storage = store

	emb, err := embedder.NewLocalProvider(nil)
	s.Require().NoError(err)

	engine := chunker.New(embedder.NewChunkEmbedder(emb))
	idx := indexer.New(store, engine, emb)

	stats, err := idx.IndexCollection(s.ctx, fixturesDir, nil)
	s.Require().NoError(err)
	s.Require().Greater(stats.ChunksCreated, 0)

	coll, err := store.GetCollection(s.ctx, fixturesDir)
	s.Require().NoError(err)
	s.collectionID = coll.ID

	s.searcher = searcher.NewSearcher(store, emb)
}

// TearDownSuite closes storage
func (s *SearchTestSuite) TearDownSuite() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
}

// TestKeywordSearch finds chunks by FTS term
func (s *SearchTestSuite) TestKeywordSearch() {
	resp, err := s.searcher.Search(s.ctx, searcher.SearchRequest{
		Query:        "reciprocal rank fusion",
		Mode:         searcher.SearchModeKeyword,
		CollectionID: s.collectionID,
	})
	s.Require().NoError(err)
	s.Require().NotEmpty(resp.Results)

	top := resp.Results[0]
	s.Contains(top.Content, "reciprocal rank fusion")
	s.Require().NotNil(top.Document)
	s.Equal("search_modes.md", top.Document.Path)
	s.Equal("Search Modes", top.Document.Title)
}

// TestVectorSearch ranks an exact passage highest
func (s *SearchTestSuite) TestVectorSearch() {
	resp, err := s.searcher.Search(s.ctx, searcher.SearchRequest{
		Query:        "Release notes",
		Mode:         searcher.SearchModeVector,
		CollectionID: s.collectionID,
	})
	s.Require().NoError(err)
	s.NotEmpty(resp.Results)
	s.Greater(resp.VectorResults, 0)
}

// TestHybridSearch merges both legs and ranks sequentially
func (s *SearchTestSuite) TestHybridSearch() {
	resp, err := s.searcher.Search(s.ctx, searcher.SearchRequest{
		Query:        "incremental indexing",
		Mode:         searcher.SearchModeHybrid,
		CollectionID: s.collectionID,
	})
	s.Require().NoError(err)
	s.Require().NotEmpty(resp.Results)
	s.Equal(searcher.SearchModeHybrid, resp.SearchMode)

	for i, r := range resp.Results {
		s.Equal(i+1, r.Rank)
		if i > 0 {
			s.LessOrEqual(r.RelevanceScore, resp.Results[i-1].RelevanceScore)
		}
	}
}

// TestPathFilter restricts results to matching documents
func (s *SearchTestSuite) TestPathFilter() {
	resp, err := s.searcher.Search(s.ctx, searcher.SearchRequest{
		Query:        "chunking",
		Mode:         searcher.SearchModeKeyword,
		CollectionID: s.collectionID,
		Filters:      &storage.SearchFilters{PathPattern: "*.txt"},
	})
	s.Require().NoError(err)
	for _, r := range resp.Results {
		s.Require().NotNil(r.Document)
		s.Equal("changelog.txt", r.Document.Path)
	}
}

// TestCache returns the cached response on a repeated query
func (s *SearchTestSuite) TestCache() {
	req := searcher.SearchRequest{
		Query:        "content hash",
		Mode:         searcher.SearchModeKeyword,
		CollectionID: s.collectionID,
		UseCache:     true,
	}

	first, err := s.searcher.Search(s.ctx, req)
	s.Require().NoError(err)
	s.False(first.CacheHit)

	second, err := s.searcher.Search(s.ctx, req)
	s.Require().NoError(err)
	s.True(second.CacheHit)
	s.Equal(first.TotalResults, second.TotalResults)
}

func TestSearchSuite(t *testing.T) {
	suite.Run(t, new(SearchTestSuite))
}
