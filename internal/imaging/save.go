package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// ErrWriteFailed wraps every failure to encode or write an image file.
var ErrWriteFailed = errors.New("write failed")

// Save encodes img and writes it to path, replacing any existing file.
//
// The encoding is chosen from the path's extension ("png", "jpg", "gif",
// "tif", "bmp"). PNG output uses best compression; texture patches are small
// and are usually shipped as static assets.
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteFailed, path, err)
	}
	return nil
}

// IsPNGPath reports whether path has an extension that selects the PNG encoder.
func IsPNGPath(path string) bool {
	f, err := imaging.FormatFromFilename(path)
	return err == nil && f == imaging.PNG
}

// SavePNG is Save for outputs that must keep their alpha channel. Paths
// without a .png extension are rejected before anything is written.
func SavePNG(img image.Image, path string) error {
	if !IsPNGPath(path) {
		return fmt.Errorf("%w: %s: output must be a .png file", ErrWriteFailed, path)
	}
	return Save(img, path)
}
