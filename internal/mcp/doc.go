// Package mcp implements the Model Context Protocol (MCP) server for the
// text chunking engine.
//
// The server exposes five tools to AI assistants:
//   - chunk_text: Split a text into chunks with a named strategy
//   - list_strategies: Enumerate strategies and their default parameters
//   - index_documents: Index a directory of documents for search
//   - search_chunks: Search an indexed collection (vector, keyword, hybrid)
//   - get_status: Check indexing status and statistics
//
// # Protocol Overview
//
// MCP is a JSON-RPC 2.0 protocol over stdio transport:
//
//	Client -> Server: {"method": "tools/call", "params": {...}}
//	Server -> Client: {"result": {...}}
//
// The server reads MCP messages from stdin and writes responses to stdout,
// so diagnostics must go to stderr.
//
// # Tool: chunk_text
//
// Chunk a text without touching the index:
//
//	Request:
//	{
//	  "name": "chunk_text",
//	  "arguments": {
//	    "text": "First sentence. Second sentence.",
//	    "strategy": "Sentence",
//	    "parameters": {"chunk_size": 512, "overlap": 0}
//	  }
//	}
//
//	Response:
//	{
//	  "strategy": "Sentence",
//	  "count": 1,
//	  "chunks": [
//	    {
//	      "text": "First sentence. Second sentence.",
//	      "offset_start": 0,
//	      "offset_end": 32,
//	      "chunk_size": 512,
//	      "sequence": 0,
//	      "total": 1
//	    }
//	  ]
//	}
//
// Semantic chunks additionally carry a semantic_info object with the
// sentence count and split reason.
//
// # Tool: index_documents
//
// Index every document under a directory:
//
//	{
//	  "name": "index_documents",
//	  "arguments": {
//	    "path": "/docs/manual",
//	    "strategy": "Semantic",
//	    "chunk_size": 1000
//	  }
//	}
//
// Indexing is incremental: unchanged documents (by content hash) are
// skipped unless force_reindex is set.
//
// # Tool: search_chunks
//
// Search an indexed collection:
//
//	{
//	  "name": "search_chunks",
//	  "arguments": {
//	    "path": "/docs/manual",
//	    "query": "how are retries configured",
//	    "search_mode": "hybrid",
//	    "limit": 10
//	  }
//	}
//
// Results include the chunk content, relevance score, producing strategy,
// and the owning document's path, title, and byte offsets.
//
// # Error Codes
//
// Tool failures use JSON-RPC error codes: -32602 for invalid parameters,
// -32603 for internal failures, plus server-specific codes for an
// unindexed collection (-32001), a concurrent indexing run (-32002), and
// an empty query (-32004).
package mcp
