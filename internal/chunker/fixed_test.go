package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/textchunk-mcp/pkg/types"
)

func TestChunkNone_WholeInput(t *testing.T) {
	text := "The quick brown fox. Jumps over! The lazy dog?"

	chunks := ChunkNone(text)
	require.Len(t, chunks, 1)

	c := chunks[0]
	assert.Equal(t, text, c.Text)
	assert.Equal(t, 0, c.OffsetStart)
	assert.Equal(t, len(text), c.OffsetEnd)
	assert.Equal(t, len(text), c.ChunkSize)
	assert.Equal(t, 0, c.Sequence)
	assert.Equal(t, 1, c.Total)
	assert.Nil(t, c.Semantic)
}

func TestChunkNone_EmptyText(t *testing.T) {
	chunks := ChunkNone("")
	require.Len(t, chunks, 1)
	assert.Equal(t, 0, chunks[0].ChunkSize)
	assert.Equal(t, 0, chunks[0].OffsetEnd)
	assert.Equal(t, 1, chunks[0].Total)
}

func TestChunkFixed_WindowProperties(t *testing.T) {
	tests := []struct {
		name      string
		length    int
		chunkSize int
		overlap   int
	}{
		{"no overlap even split", 100, 10, 0},
		{"no overlap ragged tail", 105, 10, 0},
		{"overlap half", 30, 10, 5},
		{"overlap one", 25, 10, 9},
		{"window larger than text", 5, 100, 0},
		{"single byte windows", 7, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := strings.Repeat("a", tt.length)
			chunks, err := ChunkFixed(text, tt.chunkSize, tt.overlap)
			require.NoError(t, err)

			step := tt.chunkSize - tt.overlap
			if step < 1 {
				step = 1
			}
			wantCount := (tt.length + step - 1) / step
			require.Len(t, chunks, wantCount)

			assert.Equal(t, 0, chunks[0].OffsetStart)
			assert.Equal(t, tt.length, chunks[len(chunks)-1].OffsetEnd)

			for i, c := range chunks {
				assert.Equal(t, i*step, c.OffsetStart)
				assert.LessOrEqual(t, c.OffsetEnd, c.OffsetStart+tt.chunkSize)
				assert.Equal(t, text[c.OffsetStart:c.OffsetEnd], c.Text)
				assert.Equal(t, len(c.Text), c.ChunkSize)
				assert.Equal(t, i, c.Sequence)
				assert.Equal(t, wantCount, c.Total)
			}
		})
	}
}

func TestChunkFixed_OverlapContent(t *testing.T) {
	text := "abcdefghij"

	chunks, err := ChunkFixed(text, 4, 2)
	require.NoError(t, err)
	require.Len(t, chunks, 5)

	assert.Equal(t, "abcd", chunks[0].Text)
	assert.Equal(t, "cdef", chunks[1].Text)
	assert.Equal(t, "efgh", chunks[2].Text)
	assert.Equal(t, "ghij", chunks[3].Text)
	assert.Equal(t, "ij", chunks[4].Text)
}

func TestChunkFixed_EmptyText(t *testing.T) {
	chunks, err := ChunkFixed("", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestChunkFixed_InvalidParameters(t *testing.T) {
	tests := []struct {
		name      string
		chunkSize int
		overlap   int
		mentions  string
	}{
		{"zero chunk size", 0, 0, "chunk_size"},
		{"negative chunk size", -5, 0, "chunk_size"},
		{"negative overlap", 10, -1, "overlap"},
		{"overlap equals chunk size", 10, 10, "overlap"},
		{"overlap exceeds chunk size", 10, 15, "overlap"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ChunkFixed("some text", tt.chunkSize, tt.overlap)
			require.Error(t, err)
			assert.ErrorIs(t, err, types.ErrInvalidParameter)
			assert.Contains(t, err.Error(), tt.mentions)
		})
	}
}
