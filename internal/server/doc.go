// Package server implements the MCP (Model Context Protocol) server for page
// margin detection and trimming.
//
// The server exposes the border detector in internal/imaging and the batch
// driver in internal/batch as MCP tools, so an MCP client can inspect a page,
// look at where the margin would be cut, and trim single pages or whole
// documents.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Page Information:
//   - page_load: Load a page and report dimensions, format and raster stride
//   - page_activity_profile: Per-row and per-column edge-activity profiles
//
// Margin Detection:
//   - page_detect_margins: Pixels removed from each edge, without cropping
//   - page_preview_margins: Page with the trimmed band shaded and outlined
//
// Trimming:
//   - page_cut_edges: Trim one page and return it as base64 PNG
//   - page_trim_directory: Trim every page of a directory or PDF to disk
//
// Detection arguments (threshold, margins, luminance mode, border) are
// optional on every tool. Omitted values fall back to the configuration the
// server was started with, which in turn defaults to config.Default.
//
// # Image Caching
//
// Pages loaded by path are cached in memory and reused across tool calls.
// page_trim_directory bypasses the cache and streams pages from disk.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	srv := server.New(cfg, version)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// Serve accepts any reader and writer, which is how the tests drive it.
package server
