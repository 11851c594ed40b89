package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/textchunk-mcp/internal/chunker"
	"github.com/dshills/textchunk-mcp/internal/indexer"
	"github.com/dshills/textchunk-mcp/internal/searcher"
	"github.com/dshills/textchunk-mcp/internal/storage"
	"github.com/dshills/textchunk-mcp/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams      = -32602 // Invalid method parameters
	ErrorCodeInternalError      = -32603 // Internal JSON-RPC error
	ErrorCodeNotIndexed         = -32001 // Collection not indexed
	ErrorCodeIndexingInProgress = -32002 // Another indexing operation is already running
	ErrorCodeEmptyQuery         = -32004 // Query parameter is empty
)

// handleChunkText handles the chunk_text tool invocation
func (s *Server) handleChunkText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	text, ok := args["text"].(string)
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "text parameter is required", map[string]interface{}{
			"param":  "text",
			"reason": "missing or not a string",
		})
	}

	config := &chunker.Config{
		Strategy: getStringDefault(args, "strategy", ""),
	}
	if params, ok := args["parameters"].(map[string]interface{}); ok {
		config.Parameters = params
	}

	chunks, err := s.engine.ChunkText(ctx, text, config)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrUnknownStrategy):
			return nil, newMCPError(ErrorCodeInvalidParams, "unknown strategy", map[string]interface{}{
				"param":   "strategy",
				"value":   config.Strategy,
				"allowed": chunker.Strategies(),
			})
		case errors.Is(err, types.ErrInvalidParameter):
			return nil, newMCPError(ErrorCodeInvalidParams, "invalid parameters", map[string]interface{}{
				"param":  "parameters",
				"reason": err.Error(),
			})
		default:
			return nil, newMCPError(ErrorCodeInternalError, "chunking failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	strategy := config.Strategy
	if strategy == "" {
		strategy = chunker.StrategyNone
	}

	response := map[string]interface{}{
		"strategy": strategy,
		"count":    len(chunks),
		"chunks":   chunks,
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleListStrategies handles the list_strategies tool invocation
func (s *Server) handleListStrategies(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	response := map[string]interface{}{
		"strategies": chunker.Strategies(),
		"defaults": map[string]interface{}{
			chunker.StrategyFixed: map[string]interface{}{
				"chunk_size": chunker.DefaultChunkSize,
				"overlap":    chunker.DefaultOverlap,
			},
			chunker.StrategySentence: map[string]interface{}{
				"chunk_size": chunker.DefaultChunkSize,
				"overlap":    chunker.DefaultOverlap,
			},
			chunker.StrategySemantic: map[string]interface{}{
				"chunk_size":           chunker.DefaultChunkSize,
				"overlap":              chunker.DefaultOverlap,
				"window_size":          chunker.DefaultWindowSize,
				"threshold_percentile": chunker.DefaultThresholdPercentile,
			},
		},
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleIndexDocuments handles the index_documents tool invocation
func (s *Server) handleIndexDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "path parameter is required", map[string]interface{}{
			"param":  "path",
			"reason": "missing or empty",
		})
	}

	if err := validatePath(path); err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid path", map[string]interface{}{
			"param":  "path",
			"reason": err.Error(),
		})
	}

	config := &indexer.Config{
		Strategy:  getStringDefault(args, "strategy", ""),
		ChunkSize: getIntDefault(args, "chunk_size", 0),
		Overlap:   getIntDefault(args, "overlap", 0),
		Force:     getBoolDefault(args, "force_reindex", false),
	}
	if exts, ok := args["extensions"].([]interface{}); ok {
		for _, e := range exts {
			if ext, ok := e.(string); ok && ext != "" {
				config.Extensions = append(config.Extensions, ext)
			}
		}
	}

	stats, err := s.indexer.IndexCollection(ctx, path, config)
	if err != nil {
		switch {
		case errors.Is(err, indexer.ErrIndexInProgress):
			return nil, newMCPError(ErrorCodeIndexingInProgress, "indexing already in progress", nil)
		case errors.Is(err, types.ErrUnknownStrategy):
			return nil, newMCPError(ErrorCodeInvalidParams, "unknown strategy", map[string]interface{}{
				"param":   "strategy",
				"value":   config.Strategy,
				"allowed": chunker.Strategies(),
			})
		default:
			return nil, newMCPError(ErrorCodeInternalError, "indexing failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	// Cached results may reference chunks that no longer exist
	s.searcher.InvalidateCache()

	response := map[string]interface{}{
		"indexed":            true,
		"documents_indexed":  stats.DocumentsIndexed,
		"documents_skipped":  stats.DocumentsSkipped,
		"documents_failed":   stats.DocumentsFailed,
		"chunks_created":     stats.ChunksCreated,
		"embeddings_created": stats.EmbeddingsCreated,
		"duration_ms":        stats.Duration.Milliseconds(),
	}

	if len(stats.ErrorMessages) > 0 {
		// Include first few errors
		errorCount := len(stats.ErrorMessages)
		if errorCount > 5 {
			response["errors"] = stats.ErrorMessages[:5]
			response["error_count"] = errorCount
		} else {
			response["errors"] = stats.ErrorMessages
		}
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleSearchChunks handles the search_chunks tool invocation
func (s *Server) handleSearchChunks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "path parameter is required", map[string]interface{}{
			"param":  "path",
			"reason": "missing or empty",
		})
	}

	query, ok := args["query"].(string)
	if !ok || query == "" {
		return nil, newMCPError(ErrorCodeEmptyQuery, "query parameter is required and cannot be empty", map[string]interface{}{
			"param":  "query",
			"reason": "missing or empty",
		})
	}

	limit := getIntDefault(args, "limit", 10)
	if limit < 1 || limit > 100 {
		return nil, newMCPError(ErrorCodeInvalidParams, "limit must be between 1 and 100", map[string]interface{}{
			"param": "limit",
			"value": limit,
		})
	}

	searchMode := getStringDefault(args, "search_mode", "hybrid")
	if searchMode != "hybrid" && searchMode != "vector" && searchMode != "keyword" {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid search_mode", map[string]interface{}{
			"param":   "search_mode",
			"value":   searchMode,
			"allowed": []string{"hybrid", "vector", "keyword"},
		})
	}

	collection, err := s.storage.GetCollection(ctx, path)
	if err == storage.ErrNotFound {
		return nil, newMCPError(ErrorCodeNotIndexed, "collection not indexed", map[string]interface{}{
			"path":   path,
			"reason": "use the index_documents tool first",
		})
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to load collection", map[string]interface{}{
			"error": err.Error(),
		})
	}

	req := searcher.SearchRequest{
		Query:        query,
		Limit:        limit,
		Mode:         searcher.SearchMode(searchMode),
		CollectionID: collection.ID,
		Filters:      parseSearchFilters(args),
		UseCache:     true,
	}

	resp, err := s.searcher.Search(ctx, req)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "search failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	results := make([]map[string]interface{}, 0, len(resp.Results))
	for _, r := range resp.Results {
		entry := map[string]interface{}{
			"chunk_id":        r.ChunkID,
			"rank":            r.Rank,
			"relevance_score": r.RelevanceScore,
			"content":         r.Content,
			"strategy":        r.Strategy,
		}
		if r.Document != nil {
			entry["document"] = map[string]interface{}{
				"path":         r.Document.Path,
				"title":        r.Document.Title,
				"offset_start": r.Document.OffsetStart,
				"offset_end":   r.Document.OffsetEnd,
			}
		}
		results = append(results, entry)
	}

	response := map[string]interface{}{
		"query":         query,
		"search_mode":   string(resp.SearchMode),
		"total_results": resp.TotalResults,
		"cache_hit":     resp.CacheHit,
		"duration_ms":   resp.Duration.Milliseconds(),
		"results":       results,
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetStatus handles the get_status tool invocation
func (s *Server) handleGetStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "path parameter is required", map[string]interface{}{
			"param":  "path",
			"reason": "missing or empty",
		})
	}

	collection, err := s.storage.GetCollection(ctx, path)
	if err == storage.ErrNotFound {
		response := map[string]interface{}{
			"indexed": false,
			"path":    path,
			"message": "Collection not indexed. Use the index_documents tool to index this directory.",
		}
		return mcp.NewToolResultText(formatJSON(response)), nil
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to get collection status", map[string]interface{}{
			"error": err.Error(),
		})
	}

	status, err := s.storage.GetStatus(ctx, collection.ID)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to get status", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"indexed": true,
		"collection": map[string]interface{}{
			"path":            collection.RootPath,
			"name":            collection.Name,
			"last_indexed_at": collection.LastIndexedAt.Format("2006-01-02T15:04:05Z07:00"),
		},
		"statistics": map[string]interface{}{
			"documents_count":  status.DocumentsCount,
			"chunks_count":     status.ChunksCount,
			"embeddings_count": status.EmbeddingsCount,
			"index_size_mb":    fmt.Sprintf("%.2f", status.IndexSizeMB),
		},
		"health": map[string]interface{}{
			"database_accessible":  status.Health.DatabaseAccessible,
			"embeddings_available": status.Health.EmbeddingsAvailable,
			"fts_index_built":      status.Health.FTSIndexBuilt,
		},
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// Helper functions

// parseSearchFilters extracts search filters from tool arguments
func parseSearchFilters(args map[string]interface{}) *storage.SearchFilters {
	raw, ok := args["filters"].(map[string]interface{})
	if !ok {
		return nil
	}

	filters := &storage.SearchFilters{}
	filters.PathPattern, _ = raw["path_pattern"].(string)
	if minRelevance, ok := raw["min_relevance"].(float64); ok {
		filters.MinRelevance = minRelevance
	}
	if strategies, ok := raw["strategies"].([]interface{}); ok {
		for _, s := range strategies {
			if name, ok := s.(string); ok && name != "" {
				filters.Strategies = append(filters.Strategies, name)
			}
		}
	}

	if filters.PathPattern == "" && filters.MinRelevance == 0 && len(filters.Strategies) == 0 {
		return nil
	}
	return filters
}

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// validatePath checks if a path exists and is a readable directory
func validatePath(path string) error {
	if path == "" {
		return ErrPathRequired
	}

	if !filepath.IsAbs(path) {
		return ErrPathNotAbsolute
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return ErrPathNotFound
	}
	if err != nil {
		return ErrPathNotReadable
	}

	if !info.IsDir() {
		return ErrNotDirectory
	}

	f, err := os.Open(path)
	if err != nil {
		return ErrPathNotReadable
	}
	_ = f.Close()

	return nil
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getBoolDefault extracts a boolean parameter with a default value
func getBoolDefault(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}

// Validation helpers

var (
	ErrPathRequired    = errors.New("path is required")
	ErrPathNotAbsolute = errors.New("path must be absolute")
	ErrPathNotFound    = errors.New("path does not exist")
	ErrPathNotReadable = errors.New("path is not readable")
	ErrNotDirectory    = errors.New("path is not a directory")
)
