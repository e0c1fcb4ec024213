// Package server implements the MCP (Model Context Protocol) server for the
// segmentation tools.
//
// This package provides a JSON-RPC 2.0 server that exposes colour
// classification, connected-component labelling and top-2 extraction through
// the MCP protocol.
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
// Image Information:
//   - image_load: Load image and get metadata
//   - image_sample_color: Colour at a pixel and its red/cyan classification
//
// Segmentation:
//   - segment_classify: Threshold a colour image into a subject mask
//   - segment_label: Label 8-connected components with bounding boxes, write the discovery report
//   - segment_rank_top2: Rank components, write the ranked report, save the top 2
//   - segment_run: Classify, label and rank/extract with configured defaults
//
// Omitted arguments fall back to the server's config.Config: thresholds,
// input path and artifact names. Numeric arguments may be JSON numbers or
// numeric strings.
//
// # Image Caching
//
// Images are cached by path and reused across tool calls. Outputs written by
// the segmentation tools are evicted from the cache, so a later tool that
// reads them sees the new file. segment_run clears the whole cache first.
//
// # Error Handling
//
// Tool errors are returned as JSON-RPC error responses whose code follows the
// error kind:
//   - -32602: invalid argument (bad threshold, unknown mode, malformed arguments)
//   - -32001: image not found
//   - -32002: fewer than two components for top-2 extraction
//   - -32000: any other tool failure
//
// The data field carries the Go error string.
//
// # Usage
//
//	srv := server.New(cfg)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
