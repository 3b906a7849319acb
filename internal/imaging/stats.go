package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/histogram"
	"github.com/disintegration/imaging"
)

// TextureStats summarizes the channel values of a noise texture.
type TextureStats struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	Pixels int `json:"pixels"`

	// Grayscale is true when every pixel has equal red, green and blue.
	Grayscale bool `json:"grayscale"`

	// NonGrayPixels counts pixels whose red, green and blue differ.
	NonGrayPixels int `json:"non_gray_pixels"`

	GrayMin  uint8   `json:"gray_min"`
	GrayMax  uint8   `json:"gray_max"`
	GrayMean float64 `json:"gray_mean"`

	// DistinctGrayLevels is the number of different red-channel values seen.
	DistinctGrayLevels int `json:"distinct_gray_levels"`

	AlphaMin  uint8   `json:"alpha_min"`
	AlphaMax  uint8   `json:"alpha_max"`
	AlphaMean float64 `json:"alpha_mean"`

	// TransparentPixels counts pixels with alpha 0.
	TransparentPixels int `json:"transparent_pixels"`
}

// AnalyzeTexture computes per-channel statistics over every pixel of img.
//
// Gray levels are read from the straight-alpha pixels. The alpha histogram
// comes from bild, which is exact for alpha even though it premultiplies the
// color channels.
func AnalyzeTexture(img image.Image) (*TextureStats, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("cannot analyze empty image")
	}

	src := imaging.Clone(img)
	w, h := bounds.Dx(), bounds.Dy()

	stats := &TextureStats{
		Width:  w,
		Height: h,
		Pixels: w * h,
	}

	var gray [256]int
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*4]
		for i := 0; i < len(row); i += 4 {
			r, g, b := row[i], row[i+1], row[i+2]
			if r != g || g != b {
				stats.NonGrayPixels++
			}
			gray[r]++
		}
	}
	stats.Grayscale = stats.NonGrayPixels == 0
	stats.GrayMin, stats.GrayMax, stats.GrayMean = binSummary(gray[:], stats.Pixels)
	for _, n := range gray {
		if n > 0 {
			stats.DistinctGrayLevels++
		}
	}

	hist := histogram.NewRGBAHistogram(img)
	stats.AlphaMin, stats.AlphaMax, stats.AlphaMean = binSummary(hist.A.Bins, stats.Pixels)
	stats.TransparentPixels = hist.A.Bins[0]

	return stats, nil
}

// binSummary returns the lowest and highest occupied bin and the mean bin
// index weighted by count.
func binSummary(bins []int, total int) (lo, hi uint8, mean float64) {
	first, last := -1, -1
	var sum int
	for v, n := range bins {
		if n == 0 {
			continue
		}
		if first < 0 {
			first = v
		}
		last = v
		sum += v * n
	}
	if first < 0 || total == 0 {
		return 0, 0, 0
	}
	return uint8(first), uint8(last), math.Round(float64(sum)/float64(total)*100) / 100
}

// Report combines file metadata with texture statistics.
type Report struct {
	Info  *ImageInfo    `json:"info"`
	Stats *TextureStats `json:"stats"`
}

// Inspect reads the file at path and reports its metadata and statistics.
func Inspect(cache *ImageCache, path string) (*Report, error) {
	info, err := LoadImageInfo(cache, path)
	if err != nil {
		return nil, err
	}
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	stats, err := AnalyzeTexture(img)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze %s: %w", path, err)
	}
	return &Report{Info: info, Stats: stats}, nil
}
