// Package server implements the MCP (Model Context Protocol) server for urine
// test strip analysis.
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
// Classification:
//   - strip_classify: Result label, severity and display color
//   - strip_analyze: Full pipeline trace
//
// Pipeline stages:
//   - strip_locate: Strip bounding box
//   - strip_extract_pad: Pad crop as PNG
//   - strip_annotate: Photo with the strip outlined
//
// Calibration and history:
//   - strip_templates: Reference colors and their separation
//   - strip_history: Results recorded per requester
//   - image_load: Image metadata
//
// # Error Handling
//
// Tool errors are returned as JSON-RPC error responses:
//   - -32602: arguments could not be decoded
//   - -32001: the photo could not be analyzed; data carries the error kind
//     (NoStripDetected or NoTemplateMatch) and a retake message
//   - -32000: any other tool failure, data is the Go error string
//
// # Usage
//
//	srv, err := server.New(server.Options{Analyzer: analyzer})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
