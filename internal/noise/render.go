package noise

import (
	"errors"
	"fmt"
	"os"

	"github.com/ironsheep/noise-texture/internal/imaging"
)

// ErrIOFailure is returned when a generated texture cannot be written.
var ErrIOFailure = errors.New("io failure")

// Result describes a texture written by Render.
type Result struct {
	Path          string  `json:"path"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	Opacity       float64 `json:"opacity"`
	FileSizeBytes int64   `json:"file_size_bytes"`
}

// Render generates a texture and writes it to path, overwriting any existing
// file. The format follows the path's extension.
//
// Dimension errors wrap ErrInvalidDimensions; encode and write errors wrap
// ErrIOFailure. Nothing is written when generation fails.
func Render(path string, p Params, src Source) (*Result, error) {
	img, err := Generate(p, src)
	if err != nil {
		return nil, err
	}

	if err := imaging.Save(img, path); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to stat %s: %w", ErrIOFailure, path, err)
	}

	return &Result{
		Path:          path,
		Width:         p.Width,
		Height:        p.Height,
		Opacity:       p.Opacity,
		FileSizeBytes: stat.Size(),
	}, nil
}
