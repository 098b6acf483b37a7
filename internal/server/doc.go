// Package server implements the MCP (Model Context Protocol) server for the
// pixel-art tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the pixel-art
// pipeline of package imaging through the MCP protocol, so MCP clients can
// turn image files into pixel art.
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
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Pixel Art:
//   - pixelate: Full pipeline, PNG or SVG output
//   - pixelate_preview: Fast PNG preview at reduced resolution
//   - color_modes: List modes, quantizers and pixel size limits
//
// # Limits
//
// Pixel sizes outside the configured range are rejected. Files are checked
// against the allowed extensions and the upload size limit before decoding.
// Unknown color modes are not an error; they are logged and treated as full
// color.
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images. Images are cached
// by path and reused across multiple tool calls, avoiding redundant disk I/O.
// The cache persists for the lifetime of the server process.
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
//	srv := server.New(config.Default(), nil)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
