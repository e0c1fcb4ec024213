package imaging

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// DefaultJPEGQuality is used when a Sink has no quality set.
const DefaultJPEGQuality = 95

// Sink persists grayscale masks to disk. The output format follows the file
// extension (png, jpg/jpeg, gif, tif/tiff, bmp).
//
// If Cache is set, every written path is evicted from it so that a later
// LoadGray re-reads the new file.
type Sink struct {
	JPEGQuality int
	Cache       *ImageCache
}

// SaveGray writes img to path, creating parent directories as needed.
func (s *Sink) SaveGray(path string, img *image.Gray) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	quality := s.JPEGQuality
	if quality == 0 {
		quality = DefaultJPEGQuality
	}

	if err := imaging.Save(img, path, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("failed to save image %s: %w", path, err)
	}

	if s.Cache != nil {
		s.Cache.Evict(path)
	}
	return nil
}
