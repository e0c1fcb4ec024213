package imaging

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/ironsheep/segment-tools-mcp/internal/segment"
)

// ImageCache provides thread-safe caching of decoded images keyed by path.
//
// It is the image source for the segmentation pipeline: LoadPixels and
// LoadGray decode (or reuse) an image and convert it into the form the
// classifier and labeler consume. Conversions are recomputed on every call;
// only the decoded image is cached.
//
// Anything that rewrites a cached path must call Evict, otherwise later loads
// return the stale image. Sink does this automatically.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load retrieves an image from the cache or decodes it from disk.
//
// Decoding goes through disintegration/imaging, so PNG, JPEG, GIF, TIFF and
// BMP are supported, plus WebP through golang.org/x/image. A path that does
// not exist returns an error wrapping segment.ErrNotFound.
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := imaging.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to open image %s: %w", path, segment.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// LoadPixels loads path and converts it to an 8-bit PixelGrid.
func (c *ImageCache) LoadPixels(path string) (*segment.PixelGrid, error) {
	img, err := c.Load(path)
	if err != nil {
		return nil, err
	}
	return ToPixelGrid(img), nil
}

// LoadGray loads path and converts it to an 8-bit grayscale image.
func (c *ImageCache) LoadGray(path string) (*image.Gray, error) {
	img, err := c.Load(path)
	if err != nil {
		return nil, err
	}
	return ToGray(img), nil
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	Format        string `json:"format"`      // from the file extension
	ColorModel    string `json:"color_model"` // "gray", "rgb", "paletted" or "ycbcr"
	HasAlpha      bool   `json:"has_alpha"`
	FileSizeBytes int64  `json:"file_size_bytes"`
}

// LoadImageInfo loads an image and returns its metadata.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	if f, err := imaging.FormatFromFilename(path); err == nil {
		format = strings.ToLower(f.String())
	} else if strings.EqualFold(filepath.Ext(path), ".webp") {
		format = "webp"
	}

	model := "rgb"
	hasAlpha := false
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		model = "gray"
	case *image.Paletted:
		model = "paletted"
	case *image.YCbCr:
		model = "ycbcr"
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64, *image.NYCbCrA:
		hasAlpha = true
	}

	bounds := img.Bounds()
	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		ColorModel:    model,
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
	}, nil
}
