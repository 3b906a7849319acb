package noise

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// MaxDimension is the largest width or height Generate will allocate.
const MaxDimension = 16384

// Default generation parameters.
const (
	DefaultWidth   = 200
	DefaultHeight  = 200
	DefaultOpacity = 0.15
)

// ErrInvalidDimensions is returned when a requested width or height is not
// in [1, MaxDimension].
var ErrInvalidDimensions = errors.New("invalid dimensions")

// Params describes a single texture generation.
type Params struct {
	// Width is the texture width in pixels.
	Width int `json:"width"`

	// Height is the texture height in pixels.
	Height int `json:"height"`

	// Opacity is the maximum alpha fraction, nominally in [0.0, 1.0].
	// Values outside that range are accepted; the computed alpha is clamped.
	Opacity float64 `json:"opacity"`
}

// DefaultParams returns the parameters used when none are configured:
// a 200x200 patch at 0.15 opacity.
func DefaultParams() Params {
	return Params{Width: DefaultWidth, Height: DefaultHeight, Opacity: DefaultOpacity}
}

// Validate checks the dimensions. Opacity is never rejected.
func (p Params) Validate() error {
	if p.Width <= 0 || p.Height <= 0 || p.Width > MaxDimension || p.Height > MaxDimension {
		return fmt.Errorf("%w: %dx%d (each side must be 1..%d)", ErrInvalidDimensions, p.Width, p.Height, MaxDimension)
	}
	return nil
}

// OpacityInRange reports whether opacity lies in [0.0, 1.0].
func OpacityInRange(opacity float64) bool {
	return opacity >= 0 && opacity <= 1
}

// Generate allocates a texture of the requested size and fills every pixel
// with an independent gray value and opacity-scaled alpha.
//
// A nil src is replaced with NewSource(). Pixels are filled row by row, each
// consuming one IntN(256) draw followed by one Float64 draw.
func Generate(p Params, src Source) (*image.NRGBA, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		src = NewSource()
	}

	img := image.NewNRGBA(image.Rect(0, 0, p.Width, p.Height))
	scale := 255 * p.Opacity

	for y := 0; y < p.Height; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+p.Width*4]
		for x := 0; x < p.Width; x++ {
			gray := clampChannel(float64(src.IntN(256)))
			alpha := clampChannel(math.Floor(scale * src.Float64()))

			i := x * 4
			row[i+0] = gray
			row[i+1] = gray
			row[i+2] = gray
			row[i+3] = alpha
		}
	}

	return img, nil
}

// clampChannel converts v to an 8-bit channel value, saturating at 0 and 255.
// NaN maps to 0.
func clampChannel(v float64) uint8 {
	switch {
	case !(v > 0):
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}
