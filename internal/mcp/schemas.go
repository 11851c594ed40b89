package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// chunkTextTool returns the tool definition for chunk_text
func chunkTextTool() mcp.Tool {
	return mcp.Tool{
		Name:        "chunk_text",
		Description: "Split text into chunks using a named chunking strategy",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "The text to chunk",
				},
				"strategy": map[string]interface{}{
					"type":        "string",
					"description": "Chunking strategy to apply",
					"enum":        []string{"None", "Fixed", "Sentence", "Semantic"},
					"default":     "None",
				},
				"parameters": map[string]interface{}{
					"type":        "object",
					"description": "Strategy parameters; unknown keys are ignored",
					"properties": map[string]interface{}{
						"chunk_size": map[string]interface{}{
							"type":        "integer",
							"description": "Maximum chunk size in bytes",
							"default":     512,
						},
						"overlap": map[string]interface{}{
							"type":        "integer",
							"description": "Overlap between consecutive chunks in bytes",
							"default":     0,
						},
						"window_size": map[string]interface{}{
							"type":        "integer",
							"description": "Sentences of context on each side when embedding (Semantic only)",
							"default":     1,
						},
						"threshold_percentile": map[string]interface{}{
							"type":        "number",
							"description": "Distance percentile above which a boundary is declared (Semantic only)",
							"default":     95,
						},
						"model_name": map[string]interface{}{
							"type":        "string",
							"description": "Embedding model override (Semantic only)",
						},
					},
				},
			},
			Required: []string{"text"},
		},
	}
}

// listStrategiesTool returns the tool definition for list_strategies
func listStrategiesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_strategies",
		Description: "List the available chunking strategies and their default parameters",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// indexDocumentsTool returns the tool definition for index_documents
func indexDocumentsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "index_documents",
		Description: "Index a directory of text documents to make them searchable",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the document directory",
				},
				"strategy": map[string]interface{}{
					"type":        "string",
					"description": "Chunking strategy used for every document",
					"enum":        []string{"None", "Fixed", "Sentence", "Semantic"},
					"default":     "Sentence",
				},
				"chunk_size": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum chunk size in bytes",
				},
				"overlap": map[string]interface{}{
					"type":        "integer",
					"description": "Overlap between consecutive chunks in bytes",
				},
				"force_reindex": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, re-index all documents ignoring content hashes",
					"default":     false,
				},
				"extensions": map[string]interface{}{
					"type":        "array",
					"description": "File extensions to index (default: .txt, .md, .markdown, .rst)",
					"items": map[string]interface{}{
						"type": "string",
					},
				},
			},
			Required: []string{"path"},
		},
	}
}

// searchChunksTool returns the tool definition for search_chunks
func searchChunksTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_chunks",
		Description: "Search an indexed document collection with natural language or keyword queries",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the indexed document directory",
				},
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query (natural language or keywords)",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return (1-100)",
					"default":     10,
					"minimum":     1,
					"maximum":     100,
				},
				"search_mode": map[string]interface{}{
					"type":        "string",
					"description": "Search strategy: hybrid (vector + keyword), vector (semantic only), or keyword (BM25 only)",
					"enum":        []string{"hybrid", "vector", "keyword"},
					"default":     "hybrid",
				},
				"filters": map[string]interface{}{
					"type":        "object",
					"description": "Optional filters to narrow search",
					"properties": map[string]interface{}{
						"path_pattern": map[string]interface{}{
							"type":        "string",
							"description": "Glob pattern for document paths (e.g., 'guides/*')",
						},
						"strategies": map[string]interface{}{
							"type":        "array",
							"description": "Only return chunks produced by these strategies",
							"items": map[string]interface{}{
								"type": "string",
								"enum": []string{"None", "Fixed", "Sentence", "Semantic"},
							},
						},
						"min_relevance": map[string]interface{}{
							"type":        "number",
							"description": "Minimum relevance score threshold (0.0-1.0)",
							"minimum":     0.0,
							"maximum":     1.0,
						},
					},
				},
			},
			Required: []string{"path", "query"},
		},
	}
}

// getStatusTool returns the tool definition for get_status
func getStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_status",
		Description: "Query indexing status and statistics for a document collection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the document directory",
				},
			},
			Required: []string{"path"},
		},
	}
}
