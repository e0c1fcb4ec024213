// Package segment implements pixel-grid segmentation: colour classification,
// connected-component labelling, size ranking and top-K extraction.
//
// The package is pure computation. It never touches the filesystem; image
// decoding, mask persistence and report files are handled by collaborators
// (see internal/imaging and internal/report).
//
// # Grids
//
// All grids are stored as one flat row-major buffer indexed by row*Width+col.
// Row 0 is the top of the image and column 0 the leftmost pixel.
//
// # Pipeline
//
//  1. Classify thresholds a PixelGrid into a Mask (red or cyan subject).
//  2. The mask is rendered with Mask.Gray, persisted, and re-read as a
//     grayscale image by the caller.
//  3. Label flood-fills the grayscale image (foreground if intensity > cutoff)
//     into a LabelGrid plus the discovery-order component list.
//  4. Rank orders components by size; TopK/Top2 pick the winners.
//  5. Extract rebuilds a Mask containing only the winning ids.
//
// # Determinism
//
// Component ids follow raster-scan discovery order, and Rank places
// equal-size components in descending id order. Both orderings are part of
// the output contract and are relied on by report files.
package segment
