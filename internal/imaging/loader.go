package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"

	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// ImageCache provides thread-safe caching of decoded page images.
//
// Images are keyed by the exact path string passed to Load. Different paths
// to the same file (relative vs absolute) produce separate entries.
//
// # Memory Management
//
// Scanned pages are large. Cached images stay in memory until Evict or Clear
// is called, so long-running callers should evict pages they are done with.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]*cachedImage
}

type cachedImage struct {
	img    image.Image
	format string
}

// NewImageCache creates an empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]*cachedImage),
	}
}

// Load retrieves an image from the cache or decodes it from disk.
//
// Supported formats are PNG, JPEG, GIF, BMP, TIFF and WebP. Format detection
// uses the file contents, not the extension.
func (c *ImageCache) Load(path string) (image.Image, error) {
	ci, err := c.load(path)
	if err != nil {
		return nil, err
	}
	return ci.img, nil
}

func (c *ImageCache) load(path string) (*cachedImage, error) {
	c.mu.RLock()
	if ci, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return ci, nil
	}
	c.mu.RUnlock()

	img, format, err := DecodeFile(path)
	if err != nil {
		return nil, err
	}
	ci := &cachedImage{img: img, format: format}

	c.mu.Lock()
	c.images[path] = ci
	c.mu.Unlock()

	return ci, nil
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]*cachedImage)
	c.mu.Unlock()
}

// Evict removes one image from the cache. Unknown paths are ignored.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// DecodeFile opens and decodes a single image file, returning the registered
// format name ("png", "jpeg", ...).
func DecodeFile(path string) (image.Image, string, error) {
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

// PageInfo contains metadata about a page image on disk.
type PageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the decoder that recognized the file: "png", "jpeg", "gif",
	// "bmp", "tiff" or "webp".
	Format string `json:"format"`

	// Stride is the bytes per pixel the page is packed into for detection:
	// 3 for opaque pages, 4 for pages with transparency.
	Stride int `json:"stride"`

	// HasAlpha reports whether any pixel is not fully opaque.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the file on disk.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadPageInfo loads a page through the cache and describes it.
func LoadPageInfo(cache *ImageCache, path string) (*PageInfo, error) {
	ci, err := cache.load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	hasAlpha := true
	if o, ok := ci.img.(interface{ Opaque() bool }); ok {
		hasAlpha = !o.Opaque()
	}
	stride := StrideABGR
	if !hasAlpha {
		stride = StrideBGR
	}

	bounds := ci.img.Bounds()
	return &PageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        ci.format,
		Stride:        stride,
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
	}, nil
}
