package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
)

// ImageCache keeps decoded images keyed by file path so repeated inspection
// of the same texture does not hit the disk again.
//
// A texture that is regenerated in place must be evicted, otherwise Load keeps
// returning the old pixels.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates an empty cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load returns the decoded image at path, reading it from disk on first use.
//
// The concrete type depends on the file; an RGBA8 PNG decodes to *image.NRGBA.
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, _, err := decodeFile(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Clear drops every cached image and returns how many were held.
func (c *ImageCache) Clear() int {
	c.mu.Lock()
	n := len(c.images)
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
	return n
}

// Evict drops the cached image for path, if any.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

func decodeFile(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return img, format, nil
}

// ImageInfo describes an image file on disk.
type ImageInfo struct {
	// Path is the file path the info was read from.
	Path string `json:"path"`

	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the decoder that recognized the file contents: "png",
	// "jpeg" or "gif".
	Format string `json:"format"`

	// ColorDepth is "8-bit" or "16-bit" per channel.
	ColorDepth string `json:"color_depth"`

	// HasAlpha reports whether the decoded image carries an alpha channel.
	HasAlpha bool `json:"has_alpha"`

	// Channels is 4 for images with alpha, 3 for color without alpha and 1
	// for grayscale.
	Channels int `json:"channels"`

	// FileSizeBytes is the size of the file on disk.
	FileSizeBytes int64 `json:"file_size_bytes"`

	// FileSize is FileSizeBytes formatted for humans, e.g. "38 kB".
	FileSize string `json:"file_size"`
}

// LoadImageInfo reads path from disk and reports its metadata.
//
// The file is always decoded fresh so the format reflects the actual
// contents; the decoded image replaces any cached copy.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, format, err := decodeFile(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	cache.mu.Lock()
	cache.images[path] = img
	cache.mu.Unlock()

	info := &ImageInfo{
		Path:          path,
		Width:         img.Bounds().Dx(),
		Height:        img.Bounds().Dy(),
		Format:        strings.ToLower(format),
		ColorDepth:    "8-bit",
		Channels:      3,
		FileSizeBytes: stat.Size(),
		FileSize:      humanize.Bytes(uint64(stat.Size())),
	}

	switch m := img.(type) {
	case *image.NRGBA:
		info.HasAlpha = true
	case *image.NRGBA64:
		info.HasAlpha = true
		info.ColorDepth = "16-bit"
	case *image.RGBA:
		// PNG truecolor without an alpha chunk decodes to RGBA.
		info.HasAlpha = !m.Opaque()
	case *image.RGBA64:
		info.HasAlpha = !m.Opaque()
		info.ColorDepth = "16-bit"
	case *image.Gray:
		info.Channels = 1
	case *image.Gray16:
		info.Channels = 1
		info.ColorDepth = "16-bit"
	case *image.Paletted:
		info.HasAlpha = hasTransparentEntry(m)
	}
	if info.HasAlpha {
		info.Channels = 4
	}

	return info, nil
}

func hasTransparentEntry(p *image.Paletted) bool {
	for _, c := range p.Palette {
		if _, _, _, a := c.RGBA(); a != 0xffff {
			return true
		}
	}
	return false
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions returns the size of the image at path.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &DimensionsResult{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
