package chunker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/textchunk-mcp/pkg/types"
)

func TestChunkText_NilConfigUsesNone(t *testing.T) {
	engine := New(nil)

	chunks, err := engine.ChunkText(context.Background(), "hello world", nil)
	require.NoError(t, err)
	require.Len(t, chunks, 1)

	assert.Equal(t, "hello world", chunks[0].Text)
	assert.Equal(t, 0, chunks[0].OffsetStart)
	assert.Equal(t, 11, chunks[0].OffsetEnd)
	assert.Equal(t, 0, chunks[0].Sequence)
	assert.Equal(t, 1, chunks[0].Total)
}

func TestChunkText_EmptyStrategyDefaultsToNone(t *testing.T) {
	engine := New(nil)

	chunks, err := engine.ChunkText(context.Background(), "text", &Config{})
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "text", chunks[0].Text)
}

func TestChunkText_UnknownStrategy(t *testing.T) {
	engine := New(nil)

	_, err := engine.ChunkText(context.Background(), "text", &Config{Strategy: "Paragraph"})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrUnknownStrategy)
	assert.Contains(t, err.Error(), "Paragraph")
}

func TestChunkText_DefaultParameterInjection(t *testing.T) {
	engine := New(nil)
	text := make([]byte, 1000)
	for i := range text {
		text[i] = 'x'
	}

	// No parameters: Fixed should see chunk_size=512, overlap=0.
	chunks, err := engine.ChunkText(context.Background(), string(text), &Config{Strategy: StrategyFixed})
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, 512, chunks[0].ChunkSize)
	assert.Equal(t, 512, chunks[1].OffsetStart)
}

func TestChunkText_CallerParametersWin(t *testing.T) {
	engine := New(nil)

	chunks, err := engine.ChunkText(context.Background(), "aaaaaaaaaa", &Config{
		Strategy:   StrategyFixed,
		Parameters: map[string]any{"chunk_size": 4},
	})
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	assert.Equal(t, "aaaa", chunks[0].Text)
}

func TestChunkText_JSONNumericParameters(t *testing.T) {
	// Tool calls decode JSON numbers as float64; the dispatcher must
	// accept them for integer parameters.
	engine := New(nil)

	chunks, err := engine.ChunkText(context.Background(), "aaaaaaaaaa", &Config{
		Strategy:   StrategyFixed,
		Parameters: map[string]any{"chunk_size": float64(5), "overlap": float64(0)},
	})
	require.NoError(t, err)
	assert.Len(t, chunks, 2)
}

func TestChunkText_NonIntegerParameterRejected(t *testing.T) {
	engine := New(nil)

	_, err := engine.ChunkText(context.Background(), "text", &Config{
		Strategy:   StrategyFixed,
		Parameters: map[string]any{"chunk_size": 2.5},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInvalidParameter)
	assert.Contains(t, err.Error(), "chunk_size")
}

func TestChunkText_ValidationErrorPropagates(t *testing.T) {
	engine := New(nil)

	_, err := engine.ChunkText(context.Background(), "text", &Config{
		Strategy:   StrategySentence,
		Parameters: map[string]any{"chunk_size": -1},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInvalidParameter)
}

func TestStrategies_SortedAndComplete(t *testing.T) {
	assert.Equal(t, []string{StrategyFixed, StrategyNone, StrategySemantic, StrategySentence}, Strategies())
}

func TestChunkText_Idempotent(t *testing.T) {
	engine := New(nil)
	text := "First sentence. Second sentence! Third sentence? Fourth.\nFifth line here."

	configs := []*Config{
		nil,
		{Strategy: StrategyFixed, Parameters: map[string]any{"chunk_size": 20, "overlap": 5}},
		{Strategy: StrategySentence, Parameters: map[string]any{"chunk_size": 30}},
	}

	for _, cfg := range configs {
		first, err := engine.ChunkText(context.Background(), text, cfg)
		require.NoError(t, err)
		second, err := engine.ChunkText(context.Background(), text, cfg)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

// Cross-strategy invariant: sequence values are exactly 0..total-1 and
// total matches the chunk count.
func TestChunkText_SequenceInvariant(t *testing.T) {
	engine := New(nil)
	text := "Alpha beta gamma. Delta epsilon! Zeta eta theta? Iota kappa.\nLambda mu."

	tests := []struct {
		name   string
		config *Config
	}{
		{"none", nil},
		{"fixed", &Config{Strategy: StrategyFixed, Parameters: map[string]any{"chunk_size": 16, "overlap": 4}}},
		{"sentence", &Config{Strategy: StrategySentence, Parameters: map[string]any{"chunk_size": 24}}},
		{"semantic", &Config{Strategy: StrategySemantic, Parameters: map[string]any{"chunk_size": 40, "threshold_percentile": 50}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks, err := engine.ChunkText(context.Background(), text, tt.config)
			require.NoError(t, err)
			require.NotEmpty(t, chunks)

			for i, c := range chunks {
				assert.Equal(t, i, c.Sequence)
				assert.Equal(t, len(chunks), c.Total)
				assert.NoError(t, c.Validate())
			}
		})
	}
}
