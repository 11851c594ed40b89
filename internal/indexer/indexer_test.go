package indexer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/textchunk-mcp/internal/chunker"
	"github.com/dshills/textchunk-mcp/internal/embedder"
	"github.com/dshills/textchunk-mcp/internal/storage"
	"github.com/dshills/textchunk-mcp/pkg/types"
)

func newTestStorage(t *testing.T) *storage.SQLiteStorage {
	t.Helper()
	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newTestIndexer(t *testing.T, store storage.Storage) *Indexer {
	t.Helper()
	emb, err := embedder.NewLocalProvider(nil)
	require.NoError(t, err)
	engine := chunker.New(embedder.NewChunkEmbedder(emb))
	return New(store, engine, emb)
}

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIndexCollection_Basic(t *testing.T) {
	store := newTestStorage(t)
	idx := newTestIndexer(t, store)
	root := t.TempDir()

	writeDoc(t, root, "intro.md", "# Introduction\n\nWelcome to the manual. It has sentences.")
	writeDoc(t, root, "guide/usage.txt", "Run the tool. Read the output. Repeat as needed.")

	stats, err := idx.IndexCollection(context.Background(), root, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.DocumentsIndexed)
	assert.Zero(t, stats.DocumentsSkipped)
	assert.Zero(t, stats.DocumentsFailed)
	assert.Greater(t, stats.ChunksCreated, 0)
	assert.Equal(t, stats.ChunksCreated, stats.EmbeddingsCreated)
	assert.Empty(t, stats.ErrorMessages)

	ctx := context.Background()
	collection, err := store.GetCollection(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, 2, collection.TotalDocuments)
	assert.Equal(t, stats.ChunksCreated, collection.TotalChunks)
	assert.False(t, collection.LastIndexedAt.IsZero())

	doc, err := store.GetDocument(ctx, collection.ID, "intro.md")
	require.NoError(t, err)
	assert.Equal(t, "Introduction", doc.Title)
	assert.Equal(t, chunker.StrategySentence, doc.Strategy)

	chunks, err := store.ListChunksByDocument(ctx, doc.ID)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)
	for _, chunk := range chunks {
		_, err := store.GetEmbedding(ctx, chunk.ID)
		assert.NoError(t, err, "every chunk should have an embedding")
	}
}

func TestIndexCollection_SkipsUnchanged(t *testing.T) {
	store := newTestStorage(t)
	idx := newTestIndexer(t, store)
	root := t.TempDir()

	writeDoc(t, root, "a.txt", "Stable content. It does not change.")

	_, err := idx.IndexCollection(context.Background(), root, nil)
	require.NoError(t, err)

	stats, err := idx.IndexCollection(context.Background(), root, nil)
	require.NoError(t, err)
	assert.Zero(t, stats.DocumentsIndexed)
	assert.Equal(t, 1, stats.DocumentsSkipped)
}

func TestIndexCollection_ForceReindexes(t *testing.T) {
	store := newTestStorage(t)
	idx := newTestIndexer(t, store)
	root := t.TempDir()

	writeDoc(t, root, "a.txt", "Stable content. It does not change.")

	_, err := idx.IndexCollection(context.Background(), root, nil)
	require.NoError(t, err)

	stats, err := idx.IndexCollection(context.Background(), root, &Config{Force: true})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.DocumentsIndexed)
	assert.Zero(t, stats.DocumentsSkipped)
}

func TestIndexCollection_ReindexesChangedDocument(t *testing.T) {
	store := newTestStorage(t)
	idx := newTestIndexer(t, store)
	root := t.TempDir()
	ctx := context.Background()

	writeDoc(t, root, "a.txt", "Original text. Two sentences here.")
	_, err := idx.IndexCollection(ctx, root, nil)
	require.NoError(t, err)

	collection, err := store.GetCollection(ctx, root)
	require.NoError(t, err)
	doc, err := store.GetDocument(ctx, collection.ID, "a.txt")
	require.NoError(t, err)
	oldHash := doc.ContentHash

	writeDoc(t, root, "a.txt", "Rewritten entirely. Different sentences now. Even a third one.")
	stats, err := idx.IndexCollection(ctx, root, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.DocumentsIndexed)

	doc, err = store.GetDocument(ctx, collection.ID, "a.txt")
	require.NoError(t, err)
	assert.NotEqual(t, oldHash, doc.ContentHash)

	chunks, err := store.ListChunksByDocument(ctx, doc.ID)
	require.NoError(t, err)
	for _, chunk := range chunks {
		assert.Contains(t, "Rewritten entirely. Different sentences now. Even a third one.", chunk.Content)
	}
}

func TestIndexCollection_NilEmbedder(t *testing.T) {
	store := newTestStorage(t)
	engine := chunker.New(nil)
	idx := New(store, engine, nil)
	root := t.TempDir()

	writeDoc(t, root, "a.txt", "Some text to index without embeddings.")

	stats, err := idx.IndexCollection(context.Background(), root, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.DocumentsIndexed)
	assert.Greater(t, stats.ChunksCreated, 0)
	assert.Zero(t, stats.EmbeddingsCreated)
}

func TestIndexCollection_ExtensionFilter(t *testing.T) {
	store := newTestStorage(t)
	idx := newTestIndexer(t, store)
	root := t.TempDir()

	writeDoc(t, root, "keep.md", "Indexed document.")
	writeDoc(t, root, "skip.log", "Not a document type we index.")
	writeDoc(t, root, ".hidden/secret.md", "Hidden directories are skipped.")

	stats, err := idx.IndexCollection(context.Background(), root, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.DocumentsIndexed)
}

func TestIndexCollection_UnknownStrategy(t *testing.T) {
	store := newTestStorage(t)
	idx := newTestIndexer(t, store)

	_, err := idx.IndexCollection(context.Background(), t.TempDir(), &Config{Strategy: "Paragraph"})
	assert.ErrorIs(t, err, types.ErrUnknownStrategy)
}

func TestIndexCollection_SemanticStrategy(t *testing.T) {
	store := newTestStorage(t)
	idx := newTestIndexer(t, store)
	root := t.TempDir()
	ctx := context.Background()

	writeDoc(t, root, "mixed.txt",
		"Cats purr softly. Dogs bark loudly. Stocks fell sharply today. Bonds rallied after the news.")

	stats, err := idx.IndexCollection(ctx, root, &Config{Strategy: chunker.StrategySemantic})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.DocumentsIndexed)
	require.Greater(t, stats.ChunksCreated, 0)

	collection, err := store.GetCollection(ctx, root)
	require.NoError(t, err)
	doc, err := store.GetDocument(ctx, collection.ID, "mixed.txt")
	require.NoError(t, err)

	chunks, err := store.ListChunksByDocument(ctx, doc.ID)
	require.NoError(t, err)
	for _, chunk := range chunks {
		assert.Equal(t, chunker.StrategySemantic, chunk.Strategy)
		assert.NotEmpty(t, chunk.SplitReason)
	}
}

func TestIndexCollection_LockedWhileRunning(t *testing.T) {
	store := newTestStorage(t)
	idx := newTestIndexer(t, store)

	require.True(t, idx.lock.TryAcquire())
	defer idx.lock.Release()

	_, err := idx.IndexCollection(context.Background(), t.TempDir(), nil)
	assert.ErrorIs(t, err, ErrIndexInProgress)
}

func TestIndexLock(t *testing.T) {
	var lock IndexLock
	assert.True(t, lock.TryAcquire())
	assert.False(t, lock.TryAcquire())
	lock.Release()
	assert.True(t, lock.TryAcquire())
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name string
		text string
		path string
		want string
	}{
		{"markdown heading", "# My Title\n\nBody.", "doc.md", "My Title"},
		{"heading below top", "intro line\n# Later Title\n", "doc.md", "Later Title"},
		{"no heading", "just text", "notes/readme.txt", "readme"},
		{"empty heading ignored", "# \ntext", "doc.md", "doc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractTitle(tt.text, tt.path))
		})
	}
}
