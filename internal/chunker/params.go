package chunker

import (
	"fmt"
	"math"

	"github.com/dshills/textchunk-mcp/pkg/types"
)

// Parameter bags arrive from JSON (tool calls) or from Go callers, so
// numeric values may be int, int64, or float64. These helpers normalize
// them and reject anything else with types.ErrInvalidParameter.

func intParam(params map[string]any, key string, def int) (int, error) {
	v, ok := params[key]
	if !ok || v == nil {
		return def, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("%w: %s must be an integer, got %v", types.ErrInvalidParameter, key, n)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("%w: %s must be an integer, got %T", types.ErrInvalidParameter, key, v)
	}
}

func floatParam(params map[string]any, key string, def float64) (float64, error) {
	v, ok := params[key]
	if !ok || v == nil {
		return def, nil
	}
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float64:
		return n, nil
	default:
		return 0, fmt.Errorf("%w: %s must be a number, got %T", types.ErrInvalidParameter, key, v)
	}
}

func stringParam(params map[string]any, key, def string) (string, error) {
	v, ok := params[key]
	if !ok || v == nil {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string, got %T", types.ErrInvalidParameter, key, v)
	}
	return s, nil
}

// sizeOverlapParams extracts the chunk_size/overlap pair shared by the
// Fixed and Sentence strategies. Range validation stays with the strategy
// because the two differ on what overlap values are legal.
func sizeOverlapParams(params map[string]any) (chunkSize, overlap int, err error) {
	chunkSize, err = intParam(params, ParamChunkSize, DefaultChunkSize)
	if err != nil {
		return 0, 0, err
	}
	overlap, err = intParam(params, ParamOverlap, DefaultOverlap)
	if err != nil {
		return 0, 0, err
	}
	return chunkSize, overlap, nil
}

// semanticParams extracts the semantic strategy's parameter set.
func semanticParams(params map[string]any) (SemanticOptions, error) {
	var opts SemanticOptions
	var err error

	if opts.ChunkSize, err = intParam(params, ParamChunkSize, DefaultSemanticChunkSize); err != nil {
		return opts, err
	}
	if opts.Overlap, err = intParam(params, ParamOverlap, DefaultOverlap); err != nil {
		return opts, err
	}
	if opts.WindowSize, err = intParam(params, ParamWindowSize, DefaultWindowSize); err != nil {
		return opts, err
	}
	if opts.ThresholdPercentile, err = floatParam(params, ParamThresholdPercentile, DefaultThresholdPercentile); err != nil {
		return opts, err
	}
	if opts.ModelName, err = stringParam(params, ParamModelName, ""); err != nil {
		return opts, err
	}
	return opts, nil
}
