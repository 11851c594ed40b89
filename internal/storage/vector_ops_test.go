package storage

import (
	"context"
	"crypto/sha256"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedSearchData inserts one document with three chunks and embeddings
// whose vectors point in known directions.
func seedSearchData(t *testing.T, store *SQLiteStorage) (collectionID int64, chunkIDs []int64) {
	t.Helper()
	ctx := context.Background()

	collection := newTestCollection(t, store, "/docs")
	doc := newTestDocument(t, store, collection.ID, "animals.md")

	contents := []string{
		"Cats purr when they are content.",
		"Dogs bark at strangers.",
		"Interest rates rose sharply this quarter.",
	}
	vectors := [][]float32{
		{1, 0, 0},
		{0.9, 0.1, 0},
		{0, 0, 1},
	}
	strategies := []string{"Sentence", "Sentence", "Fixed"}

	for i, content := range contents {
		chunk := &Chunk{
			DocumentID:  doc.ID,
			Content:     content,
			ContentHash: sha256.Sum256([]byte(content)),
			Strategy:    strategies[i],
			OffsetEnd:   len(content),
			ChunkSize:   len(content),
			Sequence:    i,
			Total:       len(contents),
		}
		require.NoError(t, store.UpsertChunk(ctx, chunk))
		require.NoError(t, store.UpsertEmbedding(ctx, &Embedding{
			ChunkID:   chunk.ID,
			Vector:    SerializeVector(vectors[i]),
			Dimension: 3,
			Provider:  "local",
			Model:     "m",
		}))
		chunkIDs = append(chunkIDs, chunk.ID)
	}
	return collection.ID, chunkIDs
}

func TestSearchVector_RanksBySimilarity(t *testing.T) {
	store := newTestStorage(t)
	collectionID, chunkIDs := seedSearchData(t, store)

	results, err := store.SearchVector(context.Background(), collectionID, []float32{1, 0, 0}, 10, nil)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, chunkIDs[0], results[0].ChunkID)
	assert.Equal(t, chunkIDs[1], results[1].ChunkID)
	assert.Equal(t, chunkIDs[2], results[2].ChunkID)
	assert.InDelta(t, 1.0, results[0].SimilarityScore, 1e-6)
	assert.Greater(t, results[0].SimilarityScore, results[1].SimilarityScore)
	assert.Greater(t, results[1].SimilarityScore, results[2].SimilarityScore)
}

func TestSearchVector_LimitAndMinRelevance(t *testing.T) {
	store := newTestStorage(t)
	collectionID, _ := seedSearchData(t, store)

	results, err := store.SearchVector(context.Background(), collectionID, []float32{1, 0, 0}, 1, nil)
	require.NoError(t, err)
	assert.Len(t, results, 1)

	results, err = store.SearchVector(context.Background(), collectionID, []float32{1, 0, 0}, 10,
		&SearchFilters{MinRelevance: 0.5})
	require.NoError(t, err)
	assert.Len(t, results, 2, "orthogonal vector should be filtered out")
}

func TestSearchVector_StrategyFilter(t *testing.T) {
	store := newTestStorage(t)
	collectionID, chunkIDs := seedSearchData(t, store)

	results, err := store.SearchVector(context.Background(), collectionID, []float32{0, 0, 1}, 10,
		&SearchFilters{Strategies: []string{"Fixed"}})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, chunkIDs[2], results[0].ChunkID)
}

func TestSearchVector_DimensionMismatchSkipped(t *testing.T) {
	store := newTestStorage(t)
	collectionID, _ := seedSearchData(t, store)

	// Query dimension differs from stored embeddings; nothing comparable.
	results, err := store.SearchVector(context.Background(), collectionID, []float32{1, 0}, 10, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchText_MatchesAndNormalizes(t *testing.T) {
	store := newTestStorage(t)
	collectionID, chunkIDs := seedSearchData(t, store)

	results, err := store.SearchText(context.Background(), collectionID, "dogs", 10, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, chunkIDs[1], results[0].ChunkID)
	assert.Greater(t, results[0].BM25Score, 0.0)
	assert.LessOrEqual(t, results[0].BM25Score, 1.0)
}

func TestSearchText_EmptyQuery(t *testing.T) {
	store := newTestStorage(t)
	collectionID, _ := seedSearchData(t, store)

	_, err := store.SearchText(context.Background(), collectionID, "", 10, nil)
	assert.Error(t, err)
}

func TestSearchText_PathFilter(t *testing.T) {
	store := newTestStorage(t)
	collectionID, _ := seedSearchData(t, store)

	results, err := store.SearchText(context.Background(), collectionID, "dogs", 10,
		&SearchFilters{PathPattern: "*.txt"})
	require.NoError(t, err)
	assert.Empty(t, results, "document path is animals.md")
}

func TestSerializeVector_RoundTrip(t *testing.T) {
	original := []float32{0.5, -1.25, 3.75, 0}
	blob := SerializeVector(original)
	assert.Len(t, blob, len(original)*4)
	assert.Equal(t, original, DeserializeVector(blob))
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1.0},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0.0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1.0},
		{"dimension mismatch", []float32{1, 0}, []float32{1, 0, 0}, 0.0},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestSanitizeFTSQuery(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"plain words", "plain words"},
		{`quoted "phrase"`, `quoted \"phrase\"`},
		{"wild*card", `wild\*card`},
		{"a AND b OR c", `a \AND b \OR c`},
		{"(grouped)", `\(grouped\)`},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.input), func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeFTSQuery(tt.input))
		})
	}
}
