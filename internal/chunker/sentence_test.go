package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/textchunk-mcp/pkg/types"
)

func TestChunkSentence_PacksWholeSentences(t *testing.T) {
	text := "One two. Three four. Five six seven eight."

	chunks, err := ChunkSentence(text, 20, 0)
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	// "One two." (8) + " Three four." (12) = 20 fits exactly; the third
	// sentence is itself oversized and gets force-split.
	assert.Equal(t, "One two. Three four.", chunks[0].Text)
	assert.Equal(t, " Five six seven eigh", chunks[1].Text)
	assert.Equal(t, "t.", chunks[2].Text)
}

func TestChunkSentence_Contiguity(t *testing.T) {
	text := "Short one. A somewhat longer sentence here. Tiny! Another medium sentence. End?"

	chunks, err := ChunkSentence(text, 30, 0)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	assert.Equal(t, 0, chunks[0].OffsetStart)
	assert.Equal(t, len(text), chunks[len(chunks)-1].OffsetEnd)
	for i := 0; i+1 < len(chunks); i++ {
		assert.Equal(t, chunks[i].OffsetEnd, chunks[i+1].OffsetStart, "chunks %d and %d not contiguous", i, i+1)
	}
	for _, c := range chunks {
		assert.Equal(t, text[c.OffsetStart:c.OffsetEnd], c.Text)
		assert.LessOrEqual(t, c.ChunkSize, 30)
	}
}

func TestChunkSentence_SingleSentenceFits(t *testing.T) {
	chunks, err := ChunkSentence("Just one sentence.", 100, 0)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "Just one sentence.", chunks[0].Text)
}

// An all-one-sentence input with overlap == chunk_size exercises the
// clamped stride: windows advance by chunk_size, not by one.
func TestChunkSentence_OverlapEqualsChunkSize(t *testing.T) {
	text := strings.Repeat("a", 25)

	chunks, err := ChunkSentence(text, 10, 10)
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	starts := []int{chunks[0].OffsetStart, chunks[1].OffsetStart, chunks[2].OffsetStart}
	assert.Equal(t, []int{0, 10, 20}, starts)
	assert.Equal(t, 25, chunks[2].OffsetEnd)
}

func TestChunkSentence_ForceSplitWithOverlap(t *testing.T) {
	text := strings.Repeat("a", 30)

	chunks, err := ChunkSentence(text, 10, 5)
	require.NoError(t, err)
	require.Len(t, chunks, 5)

	wantStarts := []int{0, 5, 10, 15, 20}
	wantEnds := []int{10, 15, 20, 25, 30}
	for i, c := range chunks {
		assert.Equal(t, wantStarts[i], c.OffsetStart)
		assert.Equal(t, wantEnds[i], c.OffsetEnd)
		assert.Equal(t, i, c.Sequence)
		assert.Equal(t, 5, c.Total)
	}
}

func TestChunkSentence_OversizedSentenceBetweenPacked(t *testing.T) {
	// A pathological sentence in the middle is force-split while the
	// surrounding short sentences pack normally.
	long := strings.Repeat("x", 50)
	text := "Hi. " + long + " Bye."

	chunks, err := ChunkSentence(text, 20, 0)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	for i, c := range chunks {
		assert.Equal(t, i, c.Sequence)
		assert.Equal(t, len(chunks), c.Total)
		assert.LessOrEqual(t, c.ChunkSize, 20)
		assert.Equal(t, text[c.OffsetStart:c.OffsetEnd], c.Text)
	}
}

func TestChunkSentence_EmptyText(t *testing.T) {
	chunks, err := ChunkSentence("", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestChunkSentence_InvalidParameters(t *testing.T) {
	tests := []struct {
		name      string
		chunkSize int
		overlap   int
		mentions  string
	}{
		{"zero chunk size", 0, 0, "chunk_size"},
		{"negative overlap", 10, -2, "overlap"},
		{"overlap exceeds chunk size", 10, 11, "overlap"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ChunkSentence("text", tt.chunkSize, tt.overlap)
			require.Error(t, err)
			assert.ErrorIs(t, err, types.ErrInvalidParameter)
			assert.Contains(t, err.Error(), tt.mentions)
		})
	}
}

// Unlike ChunkFixed, overlap == chunk_size is legal here.
func TestChunkSentence_OverlapEqualsChunkSizeAccepted(t *testing.T) {
	_, err := ChunkSentence("Some text here.", 10, 10)
	assert.NoError(t, err)

	_, err = ChunkFixed("Some text here.", 10, 10)
	assert.Error(t, err)
}
