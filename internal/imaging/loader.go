package imaging

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/ironsheep/pixel-art-mcp/internal/detection"
)

// ErrUnsupportedFile is returned when a file is rejected before decoding,
// because of its extension or its size.
var ErrUnsupportedFile = errors.New("unsupported file")

// DefaultExtensions lists the file extensions accepted by default.
var DefaultExtensions = []string{"png", "jpg", "jpeg", "gif", "bmp", "webp"}

// ImageCache provides thread-safe caching of decoded source images so that
// repeated pixelation calls on the same file skip disk I/O.
//
// Before a file is decoded it must pass two checks: its extension must be in
// the allowed list and its size must not exceed the byte limit.
//
// ImageCache is safe for concurrent use by multiple goroutines. Cached images
// are treated as read-only; the pixelation pipeline never modifies its input.
//
// # Memory Management
//
// Cached images remain in memory until explicitly removed via Evict() or Clear().
//
// # Example Usage
//
//	cache := imaging.NewImageCache(20<<20, imaging.DefaultExtensions)
//	img, err := cache.Load("/path/to/photo.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	art, err := imaging.Pixelate(img, imaging.Params{PixelSize: 16})
type ImageCache struct {
	mu         sync.RWMutex
	images     map[string]image.Image
	maxBytes   int64
	extensions map[string]bool
}

// NewImageCache creates an empty cache.
//
// Parameters:
//   - maxBytes: Largest file size accepted, in bytes. Zero or negative means
//     no limit.
//   - extensions: Accepted file extensions without the dot, case-insensitive.
//     An empty list accepts DefaultExtensions.
func NewImageCache(maxBytes int64, extensions []string) *ImageCache {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	allowed := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(strings.TrimPrefix(ext, "."))] = true
	}
	return &ImageCache{
		images:     make(map[string]image.Image),
		maxBytes:   maxBytes,
		extensions: allowed,
	}
}

// Load retrieves an image from the cache or loads it from disk if not cached.
//
// Returns:
//   - image.Image: The decoded image. The concrete type depends on the file
//     format (e.g., *image.NRGBA for PNG with alpha, *image.YCbCr for JPEG).
//   - error: Non-nil if the file is rejected, cannot be opened, or cannot be
//     decoded.
//
// # Errors
//
//   - ErrUnsupportedFile if the extension is not allowed or the file is too large
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the file is not a valid image
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	if err := c.check(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, err := imaging.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// check validates extension and file size without reading the file.
func (c *ImageCache) check(path string) error {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if !c.extensions[ext] {
		return fmt.Errorf("%w: extension %q not allowed", ErrUnsupportedFile, filepath.Ext(path))
	}
	if c.maxBytes <= 0 {
		return nil
	}
	stat, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}
	if stat.Size() > c.maxBytes {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrUnsupportedFile, stat.Size(), c.maxBytes)
	}
	return nil
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
//
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the detected image format: "png", "jpeg", "gif", "bmp",
	// "webp", or "unknown". Detection is based on file extension.
	Format string `json:"format"`

	// HasAlpha indicates whether the image carries translucent pixels, i.e.
	// whether keep_alpha has any effect on it.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`

	// BackgroundHex is the corner-sampled background color, as used by
	// background removal.
	BackgroundHex string `json:"background_hex,omitempty"`
}

// LoadImageInfo loads an image and returns metadata about it.
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
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	case ".bmp":
		format = "bmp"
	case ".webp":
		format = "webp"
	}

	info := &ImageInfo{
		Width:         img.Bounds().Dx(),
		Height:        img.Bounds().Dy(),
		Format:        format,
		HasAlpha:      hasAlphaChannel(img),
		FileSizeBytes: stat.Size(),
	}
	if bg, ok := detection.BackgroundColor(img); ok {
		info.BackgroundHex = HexString(bg)
	}
	return info, nil
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions returns the dimensions of an image without additional metadata.
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
