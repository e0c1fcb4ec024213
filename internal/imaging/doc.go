// Package imaging is the file-facing side of the segmentation pipeline.
//
// It supplies the image source and image sink collaborators:
//
//   - ImageCache decodes and caches images by path and converts them into a
//     segment.PixelGrid (LoadPixels) or an *image.Gray (LoadGray).
//   - Sink writes grayscale masks to disk in the format implied by the file
//     extension and evicts the written path from the cache.
//
// It also carries the small helpers exposed as MCP tools: LoadImageInfo for
// metadata and SampleColor for threshold tuning.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y downward. In grid terms, row = Y and col = X.
//
// # Error Handling
//
// A missing file wraps segment.ErrNotFound. Decoding and encoding failures are
// returned wrapped with context.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Conversions allocate fresh grids and
// never modify cached images.
package imaging
