package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ImageCache keeps decoded images keyed by file path so repeated blur
// requests on the same file skip the disk read and decode.
//
// Images are decoded with image.Decode and kept in their native type: a
// JPEG stays *image.YCbCr, which is what lets the native plane mode score
// Y, Cb and Cr separately.
//
// ImageCache is safe for concurrent use. Entries live until Evict or Clear.
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

// Load returns the cached image for path, decoding it from disk on first
// use. Supported formats are PNG, JPEG and GIF.
//
// The path string is the cache key; a relative and an absolute path to the
// same file are cached separately.
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Clear drops every cached image.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict drops the image cached under path, if any.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// ImageInfo describes a loaded image and the planes it would be scored on.
type ImageInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// Format is "png", "jpeg", "gif" or "unknown", from the file extension.
	Format string `json:"format"`

	// BitDepth is the sample storage depth: 8 or 16.
	BitDepth int `json:"bit_depth"`

	// Family is the native plane family: yuv, rgb or gray.
	Family Family `json:"family"`

	// Planes lists the native plane names in index order; these are the
	// indices accepted by the planes option.
	Planes []string `json:"planes"`

	// Properties lists the metadata keys the planes are reported under.
	Properties []string `json:"properties"`

	HasAlpha      bool  `json:"has_alpha"`
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads path through cache and describes it.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	set, err := ExtractPlanes(img, ModeNative, 0)
	if err != nil {
		return nil, err
	}

	info := &ImageInfo{
		Width:         set.Width,
		Height:        set.Height,
		Format:        formatFromExt(path),
		BitDepth:      set.BitDepth,
		Family:        set.Family,
		Planes:        set.Names(),
		FileSizeBytes: stat.Size(),
	}
	for _, p := range set.Planes {
		info.Properties = append(info.Properties, p.Property())
		if p.Name == "a" {
			info.HasAlpha = true
		}
	}
	return info, nil
}

func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	}
	return "unknown"
}
