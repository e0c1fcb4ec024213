package imaging

import (
	"fmt"
	"image"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/segment-tools-mcp/internal/segment"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorSample is the colour at one pixel together with how the classifier
// would treat it under a given pair of thresholds.
//
// It exists to help pick thresholds: sample a pixel that should be subject
// and check which comparisons it passes.
type ColorSample struct {
	X     int      `json:"x"`
	Y     int      `json:"y"`
	Hex   string   `json:"hex"` // "#RRGGBB"
	RGB   RGBColor `json:"rgb"`
	HSL   HSLColor `json:"hsl"`
	Upper float64  `json:"upper"`
	Lower float64  `json:"lower"`
	Red   bool     `json:"red"`  // subject in red mode
	Cyan  bool     `json:"cyan"` // subject in cyan mode
}

// SampleColor reads the pixel at (x, y) and classifies it in both modes.
//
// Coordinates are 0-based relative to the image's top-left corner. Points
// outside the image return segment.ErrInvalidArgument.
func SampleColor(img image.Image, x, y int, upper, lower float64) (*ColorSample, error) {
	bounds := img.Bounds()
	if x < 0 || x >= bounds.Dx() || y < 0 || y >= bounds.Dy() {
		return nil, fmt.Errorf("%w: coordinates (%d,%d) outside image bounds %dx%d",
			segment.ErrInvalidArgument, x, y, bounds.Dx(), bounds.Dy())
	}

	c, _ := colorful.MakeColor(img.At(x+bounds.Min.X, y+bounds.Min.Y))
	c = c.Clamped()
	r, g, b := c.RGB255()
	h, s, l := c.Hsl()
	if math.IsNaN(h) {
		h = 0
	}

	rf, gf, bf := float64(r), float64(g), float64(b)
	return &ColorSample{
		X:     x,
		Y:     y,
		Hex:   strings.ToUpper(c.Hex()),
		RGB:   RGBColor{R: r, G: g, B: b},
		HSL:   HSLColor{H: int(math.Round(h)) % 360, S: int(math.Round(s * 100)), L: int(math.Round(l * 100))},
		Upper: upper,
		Lower: lower,
		Red:   segment.ModeRed.Subject(rf, gf, bf, upper, lower),
		Cyan:  segment.ModeCyan.Subject(rf, gf, bf, upper, lower),
	}, nil
}
