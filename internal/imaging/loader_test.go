package imaging

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ironsheep/segment-tools-mcp/internal/segment"
)

// createTestImage writes a solid-colour PNG into t.TempDir and returns its path.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return writePNG(t, "solid.png", img)
}

func writePNG(t *testing.T, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestNewImageCache(t *testing.T) {
	cache := NewImageCache()
	if cache == nil {
		t.Fatal("NewImageCache returned nil")
	}
	if cache.images == nil {
		t.Fatal("NewImageCache did not initialize images map")
	}
}

func TestImageCache_Load(t *testing.T) {
	path := createTestImage(t, 8, 4, color.RGBA{255, 0, 0, 255})
	cache := NewImageCache()

	img, err := cache.Load(path)
	require.NoError(t, err)
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 4 {
		t.Errorf("bounds: got %v, want 8x4", img.Bounds())
	}

	again, err := cache.Load(path)
	require.NoError(t, err)
	if again != img {
		t.Error("second Load should return the cached image")
	}
}

func TestImageCache_LoadNotFound(t *testing.T) {
	cache := NewImageCache()

	_, err := cache.Load(filepath.Join(t.TempDir(), "missing.png"))
	if !errors.Is(err, segment.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if _, err := cache.LoadPixels("/nonexistent/map.png"); !errors.Is(err, segment.ErrNotFound) {
		t.Errorf("LoadPixels: expected ErrNotFound, got %v", err)
	}
	if _, err := cache.LoadGray("/nonexistent/map.png"); !errors.Is(err, segment.ErrNotFound) {
		t.Errorf("LoadGray: expected ErrNotFound, got %v", err)
	}
}

func TestImageCache_LoadInvalidImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-an-image.png")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0644))

	_, err := NewImageCache().Load(path)
	if err == nil {
		t.Fatal("expected decode error")
	}
	if errors.Is(err, segment.ErrNotFound) {
		t.Error("decode failure should not be reported as not found")
	}
}

func TestImageCache_EvictAndClear(t *testing.T) {
	path := createTestImage(t, 2, 2, color.White)
	cache := NewImageCache()

	_, err := cache.Load(path)
	require.NoError(t, err)

	cache.Evict(path)
	cache.mu.RLock()
	_, ok := cache.images[path]
	cache.mu.RUnlock()
	if ok {
		t.Error("Evict should remove the entry")
	}

	other := createTestImage(t, 3, 1, color.Black)
	_, err = cache.Load(path)
	require.NoError(t, err)
	_, err = cache.Load(other)
	require.NoError(t, err)
	cache.Clear()
	if len(cache.images) != 0 {
		t.Errorf("Clear left %d entries", len(cache.images))
	}
}

func TestImageCache_ConcurrentLoad(t *testing.T) {
	path := createTestImage(t, 16, 16, color.RGBA{0, 255, 255, 255})
	cache := NewImageCache()

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.LoadPixels(path); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent load failed: %v", err)
	}
}

func TestImageCache_LoadPixels(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.NRGBA{255, 0, 0, 255})
	img.Set(1, 0, color.NRGBA{0, 200, 210, 255})
	path := writePNG(t, "two.png", img)

	grid, err := NewImageCache().LoadPixels(path)
	require.NoError(t, err)

	if grid.Width != 2 || grid.Height != 1 || grid.MaxValue != 255 {
		t.Fatalf("grid: got %dx%d max %v", grid.Width, grid.Height, grid.MaxValue)
	}
	r, g, b := grid.At(0, 1)
	if r != 0 || g != 200 || b != 210 {
		t.Errorf("At(0,1): got (%v,%v,%v), want (0,200,210)", r, g, b)
	}
}

func TestLoadImageInfo(t *testing.T) {
	path := createTestImage(t, 30, 20, color.RGBA{1, 2, 3, 255})

	info, err := LoadImageInfo(NewImageCache(), path)
	require.NoError(t, err)

	if info.Width != 30 || info.Height != 20 {
		t.Errorf("dimensions: got %dx%d, want 30x20", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %q, want png", info.Format)
	}
	if info.FileSizeBytes <= 0 {
		t.Errorf("FileSizeBytes: got %d", info.FileSizeBytes)
	}
}

func TestLoadImageInfo_Gray(t *testing.T) {
	path := writePNG(t, "gray.png", image.NewGray(image.Rect(0, 0, 3, 3)))

	info, err := LoadImageInfo(NewImageCache(), path)
	require.NoError(t, err)
	if info.ColorModel != "gray" || info.HasAlpha {
		t.Errorf("got model %q alpha %v, want gray without alpha", info.ColorModel, info.HasAlpha)
	}
}
