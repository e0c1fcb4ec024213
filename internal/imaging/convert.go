package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/effect"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/segment-tools-mcp/internal/segment"
)

// ToPixelGrid converts img into an 8-bit (MaxValue 255) PixelGrid.
//
// Colours are un-premultiplied through go-colorful and rounded to 8 bits, so
// a pixel stored as (255,0,0) in an 8-bit file arrives as exactly 255, 0, 0.
// Fully transparent pixels read as black.
func ToPixelGrid(img image.Image) *segment.PixelGrid {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	grid := &segment.PixelGrid{
		Width:    width,
		Height:   height,
		MaxValue: 255,
		Pix:      make([]float64, width*height*3),
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c, _ := colorful.MakeColor(img.At(x+bounds.Min.X, y+bounds.Min.Y))
			r, g, b := c.Clamped().RGB255()
			grid.Set(y, x, float64(r), float64(g), float64(b))
		}
	}
	return grid
}

// ToGray returns img as an 8-bit grayscale image. *image.Gray is returned as
// is; other colour models go through bild's luminance conversion.
func ToGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}

	// bild writes the luminance to R, G and B alike; keep R.
	lum := effect.Grayscale(img)
	bounds := lum.Bounds()
	out := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			out.Pix[out.PixOffset(x, y)] = lum.Pix[lum.PixOffset(x, y)]
		}
	}
	return out
}
