package segment

import (
	"fmt"
	"image"
	"math"
)

// PixelGrid is an immutable H×W grid of RGB samples.
//
// Samples are stored three per cell in Pix, row-major. MaxValue declares the
// native channel range: 1 for normalised [0,1] data, 255 for 8-bit data.
type PixelGrid struct {
	Width    int
	Height   int
	MaxValue float64
	Pix      []float64
}

// NewPixelGrid allocates a zeroed grid. maxValue must be 1 or 255.
func NewPixelGrid(width, height int, maxValue float64) (*PixelGrid, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: negative grid dimensions %dx%d", ErrInvalidArgument, width, height)
	}
	if maxValue != 1 && maxValue != 255 {
		return nil, fmt.Errorf("%w: channel maximum must be 1 or 255, got %v", ErrInvalidArgument, maxValue)
	}
	return &PixelGrid{
		Width:    width,
		Height:   height,
		MaxValue: maxValue,
		Pix:      make([]float64, width*height*3),
	}, nil
}

// Set stores the channels of the cell at (row, col).
func (g *PixelGrid) Set(row, col int, r, gr, b float64) {
	i := (row*g.Width + col) * 3
	g.Pix[i], g.Pix[i+1], g.Pix[i+2] = r, gr, b
}

// At returns the channels of the cell at (row, col) in the grid's native range.
func (g *PixelGrid) At(row, col int) (r, gr, b float64) {
	i := (row*g.Width + col) * 3
	return g.Pix[i], g.Pix[i+1], g.Pix[i+2]
}

// validate reports the first malformed sample in raster order.
func (g *PixelGrid) validate() error {
	if g.Width < 0 || g.Height < 0 {
		return fmt.Errorf("%w: negative grid dimensions %dx%d", ErrInvalidArgument, g.Width, g.Height)
	}
	if g.MaxValue != 1 && g.MaxValue != 255 {
		return fmt.Errorf("%w: channel maximum must be 1 or 255, got %v", ErrInvalidArgument, g.MaxValue)
	}
	if len(g.Pix) != g.Width*g.Height*3 {
		return fmt.Errorf("%w: pixel buffer holds %d samples, want %d", ErrInvalidArgument, len(g.Pix), g.Width*g.Height*3)
	}
	for i, v := range g.Pix {
		if math.IsNaN(v) || v < 0 || v > g.MaxValue {
			cell := i / 3
			return fmt.Errorf("%w: channel %d at (%d,%d) is %v, outside [0,%v]",
				ErrInvalidArgument, i%3, cell/g.Width, cell%g.Width, v, g.MaxValue)
		}
	}
	return nil
}

// Mask is an H×W grid of booleans; true marks a subject pixel.
type Mask struct {
	Width  int
	Height int
	Pix    []bool
}

// NewMask allocates an all-false mask.
func NewMask(width, height int) Mask {
	return Mask{Width: width, Height: height, Pix: make([]bool, width*height)}
}

// At reports whether the cell at (row, col) is a subject pixel.
func (m Mask) At(row, col int) bool {
	return m.Pix[row*m.Width+col]
}

// Count returns the number of subject pixels.
func (m Mask) Count() int {
	n := 0
	for _, v := range m.Pix {
		if v {
			n++
		}
	}
	return n
}

// Gray renders the mask as an 8-bit grayscale image: subject pixels at 255,
// everything else at 0. This is the form handed to the image sink.
func (m Mask) Gray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for row := 0; row < m.Height; row++ {
		line := img.Pix[row*img.Stride : row*img.Stride+m.Width]
		for col := range line {
			if m.Pix[row*m.Width+col] {
				line[col] = 0xFF
			}
		}
	}
	return img
}

// Component is one connected component: its id and its pixel count.
type Component struct {
	ID   int `json:"id"`
	Size int `json:"size"`
}

// LabelGrid is an H×W grid of component ids. 0 is background; positive ids are
// dense, starting at 1, in raster-scan discovery order.
type LabelGrid struct {
	Width  int
	Height int
	Labels []int
}

// At returns the label at (row, col).
func (g LabelGrid) At(row, col int) int {
	return g.Labels[row*g.Width+col]
}

// Max returns the largest id in the grid, 0 if there is none.
func (g LabelGrid) Max() int {
	max := 0
	for _, id := range g.Labels {
		if id > max {
			max = id
		}
	}
	return max
}

// Components derives the ascending-id component list by counting cells.
// The result has exactly Max() entries. Ids below 1 are background.
func (g LabelGrid) Components() []Component {
	max := g.Max()
	counts := make([]int, max+1)
	for _, id := range g.Labels {
		if id > 0 {
			counts[id]++
		}
	}
	comps := make([]Component, 0, max)
	for id := 1; id <= max; id++ {
		comps = append(comps, Component{ID: id, Size: counts[id]})
	}
	return comps
}

// Labeling pairs a frozen LabelGrid with its discovery log.
type Labeling struct {
	Grid       LabelGrid
	Components []Component
}

// Total returns the number of discovered components.
func (l *Labeling) Total() int {
	return len(l.Components)
}
