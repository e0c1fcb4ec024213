package segment

import (
	"fmt"
	"math"
	"strings"

	"github.com/anthonynsimon/bild/parallel"
)

// Default thresholds, on a 0-255 channel scale.
const (
	DefaultUpper  = 100
	DefaultLower  = 50
	DefaultCutoff = 200
)

// Mode selects which colour counts as subject.
type Mode int

const (
	// ModeRed marks pixels with a strong red channel and weak green and blue.
	ModeRed Mode = iota
	// ModeCyan marks pixels with strong green and blue and a weak red channel.
	ModeCyan
)

func (m Mode) String() string {
	switch m {
	case ModeRed:
		return "red"
	case ModeCyan:
		return "cyan"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts "red" or "cyan" (any case) to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red":
		return ModeRed, nil
	case "cyan":
		return ModeCyan, nil
	default:
		return 0, fmt.Errorf("%w: unknown mode %q", ErrInvalidArgument, s)
	}
}

// Subject reports whether a pixel with 0-255 channels is a subject pixel
// under the given thresholds.
func (m Mode) Subject(r, g, b, upper, lower float64) bool {
	switch m {
	case ModeRed:
		return r > upper && g < lower && b < lower
	case ModeCyan:
		return r < lower && g > upper && b > upper
	default:
		return false
	}
}

// Classify thresholds grid into a subject mask of the same dimensions.
//
// upper and lower are on a 0-255 scale; channels are scaled to 0-255 before
// comparison whatever the grid's native range. A zero-area grid yields an
// empty mask. Non-finite thresholds, an unknown mode or a malformed grid
// return ErrInvalidArgument and no mask.
//
// Rows are classified in parallel; each row writes only its own cells so the
// result does not depend on scheduling.
func Classify(grid *PixelGrid, upper, lower float64, mode Mode) (Mask, error) {
	if grid == nil {
		return Mask{}, fmt.Errorf("%w: nil pixel grid", ErrInvalidArgument)
	}
	if math.IsNaN(upper) || math.IsInf(upper, 0) || math.IsNaN(lower) || math.IsInf(lower, 0) {
		return Mask{}, fmt.Errorf("%w: thresholds must be finite, got upper=%v lower=%v", ErrInvalidArgument, upper, lower)
	}
	if mode != ModeRed && mode != ModeCyan {
		return Mask{}, fmt.Errorf("%w: unknown mode %v", ErrInvalidArgument, mode)
	}
	if err := grid.validate(); err != nil {
		return Mask{}, err
	}

	w, h := grid.Width, grid.Height
	mask := NewMask(w, h)
	if w == 0 || h == 0 {
		return mask, nil
	}

	scale := 255 / grid.MaxValue
	parallel.Line(h, func(start, end int) {
		for row := start; row < end; row++ {
			for col := 0; col < w; col++ {
				i := row*w + col
				p := grid.Pix[i*3 : i*3+3]
				mask.Pix[i] = mode.Subject(p[0]*scale, p[1]*scale, p[2]*scale, upper, lower)
			}
		}
	})

	return mask, nil
}
