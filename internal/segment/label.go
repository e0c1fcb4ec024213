package segment

import (
	"fmt"
	"image"
)

// neighborOffsets lists the 8-connected (row, col) steps, row offset major.
var neighborOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Label flood-fills the foreground of gray into a LabelGrid.
//
// A pixel is foreground iff its intensity is strictly greater than cutoff,
// which must lie in 0-255. Cells are scanned in raster order; each unlabelled
// foreground cell seeds a new component (ids from 1), which is grown with a
// FIFO queue over 8-connected neighbours. The returned component list is in
// discovery order, which is also ascending id order.
//
// The label buffer doubles as the visited set, so every cell is enqueued at
// most once. An all-background image yields zero components.
func Label(gray *image.Gray, cutoff int) (*Labeling, error) {
	if gray == nil {
		return nil, fmt.Errorf("%w: nil grayscale image", ErrInvalidArgument)
	}
	if cutoff < 0 || cutoff > 255 {
		return nil, fmt.Errorf("%w: cutoff %d outside 0-255", ErrInvalidArgument, cutoff)
	}

	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	level := uint8(cutoff)

	foreground := func(row, col int) bool {
		return gray.Pix[gray.PixOffset(b.Min.X+col, b.Min.Y+row)] > level
	}

	labels := make([]int, w*h)
	components := make([]Component, 0)
	queue := make([]int, 0, 64)
	next := 0

	for idx := range labels {
		if labels[idx] != 0 || !foreground(idx/w, idx%w) {
			continue
		}

		next++
		labels[idx] = next
		queue = append(queue[:0], idx)
		size := 1

		for head := 0; head < len(queue); head++ {
			cur := queue[head]
			row, col := cur/w, cur%w
			for _, off := range neighborOffsets {
				r, c := row+off[0], col+off[1]
				if r < 0 || r >= h || c < 0 || c >= w {
					continue
				}
				n := r*w + c
				if labels[n] == 0 && foreground(r, c) {
					labels[n] = next
					queue = append(queue, n)
					size++
				}
			}
		}

		components = append(components, Component{ID: next, Size: size})
	}

	return &Labeling{
		Grid:       LabelGrid{Width: w, Height: h, Labels: labels},
		Components: components,
	}, nil
}
