// Package server exposes noise texture generation as MCP (Model Context
// Protocol) tools.
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
//   - noise_generate: Generate a texture and write it as PNG
//   - noise_inspect: Report metadata and channel statistics of a texture file
//   - noise_sample_color: Get the color at a pixel
//   - noise_tile_preview: Write a grid of repeated patches (PNG only)
//   - noise_dimensions: Get the width and height of a texture file
//   - noise_cache_clear: Drop every cached decoded texture
//
// noise_generate falls back to the server's config.Config for any argument
// that is omitted, so a bare call produces the default 200x200 patch at
// opacity 0.15.
//
// # Image Caching
//
// Decoded textures are cached by path for the lifetime of the process. Tools
// that write a file evict that path so later reads see the new pixels. Files
// rewritten by other programs need noise_cache_clear.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with code
// -32000 and the Go error string as data. Unknown methods get -32601 and
// malformed tools/call params get -32602.
package server
