package imaging

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// createInMemoryImage returns an RGBA image filled with c.
func createInMemoryImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// stepValue is the column profile of a one-sample step: 0, then 100 at
// column at, then 200.
func stepValue(x, at int) uint8 {
	switch {
	case x < at:
		return 0
	case x == at:
		return 100
	}
	return 200
}

// softValue is a wider falling transition centered on column at.
func softValue(x, at int) uint8 {
	switch {
	case x < at-1:
		return 200
	case x == at-1:
		return 175
	case x == at:
		return 100
	case x == at+1:
		return 25
	}
	return 0
}

// createStepImage returns an opaque gray-content RGBA image with one
// vertical step edge at column at.
func createStepImage(width, height, at int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := stepValue(x, at)
			img.SetRGBA(x, y, color.RGBA{v, v, v, 255})
		}
	}
	return img
}

// createSharpSoftImage has a sharp rising edge at column 20 and a soft
// falling edge at column 60.
func createSharpSoftImage(height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 80, height))
	for y := 0; y < height; y++ {
		for x := 0; x < 80; x++ {
			v := stepValue(x, 20)
			if x >= 40 {
				v = softValue(x, 60)
			}
			img.SetRGBA(x, y, color.RGBA{v, v, v, 255})
		}
	}
	return img
}

func writePNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "image.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return path
}

func writeJPEG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "image.jpg")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 95}); err != nil {
		t.Fatalf("failed to encode jpeg: %v", err)
	}
	return path
}
