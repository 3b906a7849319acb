package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// MaxPreviewSide caps the width and height of a tiled preview.
const MaxPreviewSide = 16384

// TilePreview repeats img in a cols x rows grid so seams between copies of a
// texture patch can be inspected. The patch is copied without blending, so
// every tile holds the exact source pixels.
func TilePreview(img image.Image, cols, rows int) (*image.NRGBA, error) {
	if cols < 1 || rows < 1 {
		return nil, fmt.Errorf("invalid tile grid %dx%d: cols and rows must be >= 1", cols, rows)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("cannot tile empty image")
	}
	// Compare by division so a huge grid cannot overflow the product.
	if cols > MaxPreviewSide/w || rows > MaxPreviewSide/h {
		return nil, fmt.Errorf("tile grid %dx%d of %dx%d patches exceeds %d pixels per side",
			cols, rows, w, h, MaxPreviewSide)
	}

	dst := imaging.New(w*cols, h*rows, color.Transparent)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			dst = imaging.Paste(dst, img, image.Pt(c*w, r*h))
		}
	}
	return dst, nil
}
