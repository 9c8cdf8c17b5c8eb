// Package server implements the MCP (Model Context Protocol) server for blur
// detection.
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
//   - image_load: Load an image, report its planes and property names
//   - image_blur_detect: Blur score per plane
//   - image_blur_region: Blur score per plane of a rectangle
//   - image_blur_compare_regions: Which of two rectangles is sharper
//   - image_blur_map: Per-block edge widths of one plane
//   - image_blur_sweep: Scores after synthetic Gaussian blur
//
// Every blur tool accepts the detector parameters low, high, radius,
// block_pct, block_width and block_height, plus planes, mode and bit_depth.
// Omitted parameters keep their defaults.
//
// # Image Caching
//
// Images are cached by path and reused across tool calls for the lifetime
// of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// Requests are logged at debug level and tool failures at warn, on the
// logger passed to New.
package server
