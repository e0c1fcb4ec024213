package segment

// Bounds is a bounding box in pixel coordinates. (X1, Y1) is the top-left
// pixel; X2 and Y2 are exclusive.
type Bounds struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Width is X2 - X1.
func (b Bounds) Width() int { return b.X2 - b.X1 }

// Height is Y2 - Y1.
func (b Bounds) Height() int { return b.Y2 - b.Y1 }

// Point is a pixel position; X is the column and Y the row.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Region locates a component in its grid.
type Region struct {
	Component
	Bounds Bounds `json:"bounds"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Center Point  `json:"center"` // midpoint of Bounds, rounded down
}

// Regions returns one Region per component id 1..grid.Max(), in id order.
// An id with no pixels keeps zero Bounds and size.
func Regions(grid LabelGrid) []Region {
	n := grid.Max()
	regions := make([]Region, n)
	for i := range regions {
		regions[i].ID = i + 1
	}

	for row := 0; row < grid.Height; row++ {
		for col := 0; col < grid.Width; col++ {
			id := grid.Labels[row*grid.Width+col]
			if id <= 0 {
				continue
			}
			r := &regions[id-1]
			if r.Size == 0 {
				r.Bounds = Bounds{X1: col, Y1: row, X2: col + 1, Y2: row + 1}
			} else {
				r.Bounds.X1 = min(r.Bounds.X1, col)
				r.Bounds.X2 = max(r.Bounds.X2, col+1)
				r.Bounds.Y2 = row + 1
			}
			r.Size++
		}
	}

	for i := range regions {
		b := regions[i].Bounds
		if regions[i].Size > 0 {
			regions[i].Width, regions[i].Height = b.Width(), b.Height()
			regions[i].Center = Point{X: (b.X1 + b.X2 - 1) / 2, Y: (b.Y1 + b.Y2 - 1) / 2}
		}
	}
	return regions
}
