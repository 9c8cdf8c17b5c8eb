package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Region is a rectangle in image coordinates. (X1,Y1) is inclusive,
// (X2,Y2) is exclusive.
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Rect converts r to an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}

// validate checks that r is a non-empty region inside bounds.
func (r Region) validate(bounds image.Rectangle) error {
	if r.X1 >= r.X2 || r.Y1 >= r.Y2 {
		return fmt.Errorf("invalid region: x1 must be < x2, y1 must be < y2")
	}
	if r.X1 < bounds.Min.X || r.Y1 < bounds.Min.Y || r.X2 > bounds.Max.X || r.Y2 > bounds.Max.Y {
		return fmt.Errorf("region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			r.X1, r.Y1, r.X2, r.Y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	return nil
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// cropRegion returns the part of img inside r. Images that support
// SubImage keep their native type (so a YCbCr crop still yields Y/Cb/Cr
// planes); anything else is copied into NRGBA.
func cropRegion(img image.Image, r Region) (image.Image, error) {
	if err := r.validate(img.Bounds()); err != nil {
		return nil, err
	}
	if s, ok := img.(subImager); ok {
		return s.SubImage(r.Rect()), nil
	}
	return imaging.Crop(img, r.Rect()), nil
}

// RegionReport is a BlurReport restricted to one region.
type RegionReport struct {
	Region Region `json:"region"`
	*BlurReport
}

// AnalyzeRegion scores the selected planes of the part of img inside r.
func AnalyzeRegion(img image.Image, r Region, opts Options) (*RegionReport, error) {
	cropped, err := cropRegion(img, r)
	if err != nil {
		return nil, err
	}
	report, err := AnalyzeImage(cropped, opts)
	if err != nil {
		return nil, fmt.Errorf("region (%d,%d)-(%d,%d): %w", r.X1, r.Y1, r.X2, r.Y2, err)
	}
	return &RegionReport{Region: r, BlurReport: report}, nil
}

// Verdicts of CompareRegions.
const (
	SharperRegion1 = "region1"
	SharperRegion2 = "region2"
	SharperEqual   = "equal"
	SharperUnknown = "undetermined"
)

// RegionComparison reports which of two regions has narrower edges.
type RegionComparison struct {
	Region1 *RegionReport `json:"region1"`
	Region2 *RegionReport `json:"region2"`

	// Plane is the plane the verdict is based on: the first selected one.
	Plane string `json:"plane"`

	// Sharper is region1, region2, equal, or undetermined when either
	// region has no edge signal (score 0).
	Sharper string `json:"sharper"`

	// Difference is region2's score minus region1's.
	Difference float64 `json:"difference"`
}

// CompareRegions scores two regions of img with the same options and
// compares the first selected plane.
func CompareRegions(img image.Image, r1, r2 Region, opts Options) (*RegionComparison, error) {
	a, err := AnalyzeRegion(img, r1, opts)
	if err != nil {
		return nil, err
	}
	b, err := AnalyzeRegion(img, r2, opts)
	if err != nil {
		return nil, err
	}

	s1, s2 := a.Planes[0].Score, b.Planes[0].Score
	cmp := &RegionComparison{
		Region1:    a,
		Region2:    b,
		Plane:      a.Planes[0].Plane,
		Difference: s2 - s1,
	}
	switch {
	case s1 == 0 || s2 == 0:
		cmp.Sharper = SharperUnknown
	case s1 < s2:
		cmp.Sharper = SharperRegion1
	case s2 < s1:
		cmp.Sharper = SharperRegion2
	default:
		cmp.Sharper = SharperEqual
	}
	return cmp, nil
}
