package chunker

import (
	"context"
	"fmt"
	"sort"

	"github.com/dshills/textchunk-mcp/pkg/types"
)

// Strategy names recognized by the dispatcher.
const (
	StrategyNone     = "None"
	StrategyFixed    = "Fixed"
	StrategySentence = "Sentence"
	StrategySemantic = "Semantic"
)

// Default parameters injected by the dispatcher for any strategy other
// than None when the caller omits them.
const (
	DefaultChunkSize = 512
	DefaultOverlap   = 0
)

// Parameter keys accepted in a Config parameter bag.
const (
	ParamChunkSize           = "chunk_size"
	ParamOverlap             = "overlap"
	ParamWindowSize          = "window_size"
	ParamThresholdPercentile = "threshold_percentile"
	ParamModelName           = "model_name"
)

// Config selects a strategy and supplies its parameters. A Config is built
// fresh per call and never mutated by the engine.
type Config struct {
	Strategy   string         `json:"strategy"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// Embedder is the injected sentence-embedding capability used by the
// semantic strategy. Implementations return one vector per input text.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string, model string) ([][]float32, error)
}

// Engine dispatches chunking requests to registered strategies.
// An Engine is safe for concurrent use: all per-call state is local.
type Engine struct {
	embedder Embedder // used by Semantic; nil falls back to random vectors
}

// New creates a new Engine. The embedder may be nil, in which case the
// semantic strategy degrades to its random-vector fallback.
func New(embedder Embedder) *Engine {
	return &Engine{embedder: embedder}
}

// strategyFunc is the uniform signature every registered strategy satisfies.
// The parameter bag has already been merged with dispatcher defaults.
type strategyFunc func(e *Engine, ctx context.Context, text string, params map[string]any) ([]types.Chunk, error)

// registry is the closed strategy table. It is populated once at package
// init and read-only thereafter.
var registry = map[string]strategyFunc{
	StrategyNone: func(_ *Engine, _ context.Context, text string, _ map[string]any) ([]types.Chunk, error) {
		return ChunkNone(text), nil
	},
	StrategyFixed: func(_ *Engine, _ context.Context, text string, params map[string]any) ([]types.Chunk, error) {
		chunkSize, overlap, err := sizeOverlapParams(params)
		if err != nil {
			return nil, err
		}
		return ChunkFixed(text, chunkSize, overlap)
	},
	StrategySentence: func(_ *Engine, _ context.Context, text string, params map[string]any) ([]types.Chunk, error) {
		chunkSize, overlap, err := sizeOverlapParams(params)
		if err != nil {
			return nil, err
		}
		return ChunkSentence(text, chunkSize, overlap)
	},
	StrategySemantic: func(e *Engine, ctx context.Context, text string, params map[string]any) ([]types.Chunk, error) {
		opts, err := semanticParams(params)
		if err != nil {
			return nil, err
		}
		return e.ChunkSemantic(ctx, text, opts)
	},
}

// Strategies returns the registered strategy names in sorted order.
func Strategies() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ChunkText resolves the configured strategy, merges parameter defaults,
// and invokes the strategy against text. A nil config selects the None
// strategy. Unknown strategy names fail with types.ErrUnknownStrategy;
// parameter validation failures from the strategy propagate unchanged.
func (e *Engine) ChunkText(ctx context.Context, text string, config *Config) ([]types.Chunk, error) {
	name := StrategyNone
	var callerParams map[string]any
	if config != nil {
		if config.Strategy != "" {
			name = config.Strategy
		}
		callerParams = config.Parameters
	}

	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", types.ErrUnknownStrategy, name, Strategies())
	}

	// The None strategy takes no parameters. Everything else gets the
	// dispatcher defaults with caller values winning.
	params := map[string]any{}
	if name != StrategyNone {
		params[ParamChunkSize] = DefaultChunkSize
		params[ParamOverlap] = DefaultOverlap
		for k, v := range callerParams {
			params[k] = v
		}
	}

	return fn(e, ctx, text, params)
}

// finalizeSequence stamps Sequence and Total across a completed chunk list.
// Strategies call this once production order is final.
func finalizeSequence(chunks []types.Chunk) []types.Chunk {
	for i := range chunks {
		chunks[i].Sequence = i
		chunks[i].Total = len(chunks)
	}
	return chunks
}
