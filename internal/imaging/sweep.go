package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	bildblur "github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/clone"
)

// MaxSweepSteps bounds the number of sigmas in one sweep.
const MaxSweepSteps = 16

// MaxSweepSigma is the largest accepted blur sigma. The blur kernel spans
// 2*sigma+1 pixels and its cost grows with sigma; at this size any edge the
// detector can measure (radius <= 100) has long been flattened.
const MaxSweepSigma = 64

// DefaultSweepSigmas is used when a sweep is requested without sigmas.
var DefaultSweepSigmas = []float64{0, 1, 2, 4}

// SweepStep is the blur report of the image after a Gaussian blur of
// Sigma (0 = the image as loaded).
type SweepStep struct {
	Sigma      float64            `json:"sigma"`
	Properties map[string]float64 `json:"properties"`
	Planes     []PlaneScore       `json:"planes"`
}

// SweepResult shows how the blur scores respond to increasing synthetic
// blur.
type SweepResult struct {
	Steps []SweepStep `json:"steps"`

	// Monotonic is true when every selected plane's score never decreased
	// from one step to the next.
	Monotonic bool `json:"monotonic"`
}

// BlurSweep blurs img with a Gaussian of each sigma and scores the result.
//
// Sigma 0 scores img itself, exactly as AnalyzeImage does. Blurred steps
// are converted back to the layout of img (YCbCr with the same
// subsampling, Gray, or RGBA), so plane indices mean the same thing at
// every step. The blur runs at 8 bits: in native mode images stored with
// 16-bit samples are rejected; score them with ModeLuma or ModeLightness.
func BlurSweep(img image.Image, sigmas []float64, opts Options) (*SweepResult, error) {
	if len(sigmas) == 0 {
		sigmas = DefaultSweepSigmas
	}
	if len(sigmas) > MaxSweepSteps {
		return nil, fmt.Errorf("too many sweep steps: %d (max %d)", len(sigmas), MaxSweepSteps)
	}
	for _, s := range sigmas {
		if math.IsNaN(s) || s < 0 || s > MaxSweepSigma {
			return nil, fmt.Errorf("sweep sigma must be between 0 and %d, got %g", MaxSweepSigma, s)
		}
	}
	if (opts.Mode == ModeNative || opts.Mode == "") && storageBits(img) == 16 {
		return nil, fmt.Errorf("%w: blur sweep works on 8-bit samples; use mode luma or lightness for 16-bit images", ErrIncompatibleFormat)
	}
	if _, err := prepare(img, opts); err != nil {
		return nil, err
	}

	base := clone.AsRGBA(img)
	opaque := base.Opaque()
	result := &SweepResult{Steps: make([]SweepStep, 0, len(sigmas)), Monotonic: true}

	for i, sigma := range sigmas {
		src := img
		if sigma > 0 {
			blurred := bildblur.Gaussian(base, sigma)
			if opaque {
				// Kernel rounding can nick alpha; keep the plane count stable.
				for a := 3; a < len(blurred.Pix); a += 4 {
					blurred.Pix[a] = 0xff
				}
			}
			src = toSourceLayout(img, blurred)
		}

		report, err := AnalyzeImage(src, opts)
		if err != nil {
			return nil, fmt.Errorf("sigma %g: %w", sigma, err)
		}
		result.Steps = append(result.Steps, SweepStep{
			Sigma:      sigma,
			Properties: report.Properties,
			Planes:     report.Planes,
		})

		if i > 0 {
			prev := result.Steps[i-1]
			for k, p := range report.Planes {
				if k < len(prev.Planes) && p.Score < prev.Planes[k].Score {
					result.Monotonic = false
				}
			}
		}
	}
	return result, nil
}

// storageBits returns 16 for image types holding 16-bit samples, else 8.
func storageBits(img image.Image) int {
	switch img.(type) {
	case *image.Gray16, *image.RGBA64, *image.NRGBA64:
		return 16
	}
	return 8
}

// toSourceLayout converts a blurred copy of src back to the sample layout
// src is split into planes from.
func toSourceLayout(src image.Image, blurred *image.RGBA) image.Image {
	switch m := src.(type) {
	case *image.YCbCr:
		return rgbaToYCbCr(blurred, m.SubsampleRatio)

	case *image.NYCbCrA:
		// Alpha is carried over unblurred.
		r := blurred.Rect
		out := &image.NYCbCrA{
			YCbCr:   *rgbaToYCbCr(blurred, m.SubsampleRatio),
			A:       make([]uint8, r.Dx()*r.Dy()),
			AStride: r.Dx(),
		}
		for y := 0; y < r.Dy(); y++ {
			copy(out.A[y*out.AStride:(y+1)*out.AStride], m.A[m.AOffset(m.Rect.Min.X, m.Rect.Min.Y+y):])
		}
		return out

	case *image.Gray:
		out := image.NewGray(blurred.Rect)
		draw.Draw(out, out.Rect, blurred, blurred.Rect.Min, draw.Src)
		return out
	}
	return blurred
}

// rgbaToYCbCr converts m to YCbCr with the given subsampling. Each chroma
// sample is the rounded mean of the pixels it covers.
func rgbaToYCbCr(m *image.RGBA, ratio image.YCbCrSubsampleRatio) *image.YCbCr {
	r := m.Rect
	out := image.NewYCbCr(r, ratio)

	cb := make([]int, len(out.Cb))
	cr := make([]int, len(out.Cr))
	n := make([]int, len(out.Cb))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			p := m.RGBAAt(x, y)
			yy, u, v := color.RGBToYCbCr(p.R, p.G, p.B)
			out.Y[out.YOffset(x, y)] = yy
			ci := out.COffset(x, y)
			cb[ci] += int(u)
			cr[ci] += int(v)
			n[ci]++
		}
	}
	for i, c := range n {
		if c == 0 {
			continue
		}
		out.Cb[i] = uint8((cb[i] + c/2) / c)
		out.Cr[i] = uint8((cr[i] + c/2) / c)
	}
	return out
}
