package imaging

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/ironsheep/blur-detect-mcp/internal/blur"
)

func TestAnalyzeImage_StepEdge(t *testing.T) {
	img := createStepImage(40, 48, 20)

	report, err := AnalyzeImage(img, DefaultOptions())
	if err != nil {
		t.Fatalf("AnalyzeImage failed: %v", err)
	}
	if report.Width != 40 || report.Height != 48 {
		t.Errorf("size: got %dx%d, want 40x48", report.Width, report.Height)
	}
	if report.Family != FamilyRGB || report.BitDepth != 8 {
		t.Errorf("family/depth: got %s/%d, want rgb/8", report.Family, report.BitDepth)
	}
	if len(report.Planes) != 3 {
		t.Fatalf("got %d planes, want 3", len(report.Planes))
	}

	// The three channels carry the same content.
	first := report.Planes[0].Score
	if first <= 0 {
		t.Fatalf("score: got %v, want > 0", first)
	}
	for i, p := range report.Planes {
		if p.Index != i {
			t.Errorf("plane %s: Index %d, want %d", p.Plane, p.Index, i)
		}
		if p.Score != first {
			t.Errorf("plane %s: score %v, want %v", p.Plane, p.Score, first)
		}
		if report.Properties[p.Property] != p.Score {
			t.Errorf("property %s: got %v, want %v", p.Property, report.Properties[p.Property], p.Score)
		}
		if p.EdgePixels == 0 {
			t.Errorf("plane %s: no edge pixels", p.Plane)
		}
	}
}

func TestAnalyzeImage_Flat(t *testing.T) {
	report, err := AnalyzeImage(createInMemoryImage(32, 32, color.RGBA{90, 90, 90, 255}), DefaultOptions())
	if err != nil {
		t.Fatalf("AnalyzeImage failed: %v", err)
	}
	for name, score := range report.Properties {
		if score != 0 {
			t.Errorf("%s: got %v, want 0", name, score)
		}
	}
}

func TestAnalyzeImage_PlaneSelection(t *testing.T) {
	img := createStepImage(24, 24, 12)

	opts := DefaultOptions()
	opts.Planes = []int{2}
	report, err := AnalyzeImage(img, opts)
	if err != nil {
		t.Fatalf("AnalyzeImage failed: %v", err)
	}
	if len(report.Planes) != 1 || report.Planes[0].Plane != "b" || report.Planes[0].Index != 2 {
		t.Errorf("got planes %+v, want only b", report.Planes)
	}
	if _, ok := report.Properties["blurriness_b"]; !ok || len(report.Properties) != 1 {
		t.Errorf("properties: got %v", report.Properties)
	}
}

func TestAnalyzeImage_ConfigurationErrors(t *testing.T) {
	img := createStepImage(24, 24, 12)

	tests := []struct {
		name   string
		modify func(o *Options)
		target error
	}{
		{"low above high", func(o *Options) { o.Config.Low, o.Config.High = 0.5, 0.2 }, blur.ErrInvalidConfig},
		{"radius zero", func(o *Options) { o.Config.Radius = 0 }, blur.ErrInvalidConfig},
		{"block pct too big", func(o *Options) { o.Config.BlockPct = 101 }, blur.ErrInvalidConfig},
		{"block width zero", func(o *Options) { o.Config.BlockWidth = 0 }, blur.ErrInvalidConfig},
		{"bit depth mismatch", func(o *Options) { o.BitDepth = 12 }, ErrIncompatibleFormat},
		{"plane out of range", func(o *Options) { o.Planes = []int{3} }, nil},
		{"plane twice", func(o *Options) { o.Planes = []int{0, 0} }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			report, err := AnalyzeImage(img, opts)
			if err == nil {
				t.Fatalf("expected error, got report %+v", report)
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("got %v, want %v", err, tt.target)
			}
		})
	}
}

func TestAnalyzeImage_PlaneTooSmall(t *testing.T) {
	if _, err := AnalyzeImage(createInMemoryImage(4, 4, color.White), DefaultOptions()); !errors.Is(err, ErrIncompatibleFormat) {
		t.Errorf("4x4 image: got %v, want ErrIncompatibleFormat", err)
	}

	// 8x8 4:2:0 has 4x4 chroma; scoring only luma is fine.
	m := image.NewYCbCr(image.Rect(0, 0, 8, 8), image.YCbCrSubsampleRatio420)
	if _, err := AnalyzeImage(m, DefaultOptions()); !errors.Is(err, ErrIncompatibleFormat) {
		t.Errorf("all planes: got %v, want ErrIncompatibleFormat", err)
	}
	opts := DefaultOptions()
	opts.Planes = []int{0}
	if _, err := AnalyzeImage(m, opts); err != nil {
		t.Errorf("luma only: unexpected error %v", err)
	}
}

func TestAnalyzeImage_SixteenBitMatchesEightBit(t *testing.T) {
	img8 := createStepImage(40, 48, 20)
	img16 := image.NewRGBA64(img8.Rect)
	for y := 0; y < 48; y++ {
		for x := 0; x < 40; x++ {
			v := uint16(stepValue(x, 20)) << 8
			img16.SetRGBA64(x, y, color.RGBA64{v, v, v, 0xffff})
		}
	}

	opts := DefaultOptions()
	opts.Config.BlockWidth, opts.Config.BlockHeight = 8, 8

	m8, err := BlockMap(img8, 0, opts)
	if err != nil {
		t.Fatalf("8-bit: %v", err)
	}
	m16, err := BlockMap(img16, 0, opts)
	if err != nil {
		t.Fatalf("16-bit: %v", err)
	}
	if m8.Widths[2][2] != m16.Widths[2][2] {
		t.Errorf("interior block: 8-bit %v, 16-bit %v", m8.Widths[2][2], m16.Widths[2][2])
	}
}

func TestBlockMap(t *testing.T) {
	img := createStepImage(40, 48, 20)
	opts := DefaultOptions()
	opts.Config.BlockWidth, opts.Config.BlockHeight = 8, 8

	m, err := BlockMap(img, 1, opts)
	if err != nil {
		t.Fatalf("BlockMap failed: %v", err)
	}
	if m.Plane != "g" || m.Property != "blurriness_g" {
		t.Errorf("plane: got %s/%s", m.Plane, m.Property)
	}
	if m.Columns != 5 || m.Rows != 6 || m.BlockWidth != 8 || m.BlockHeight != 8 {
		t.Fatalf("grid: got %dx%d of %dx%d", m.Columns, m.Rows, m.BlockWidth, m.BlockHeight)
	}
	if len(m.Widths) != 6 || len(m.Widths[0]) != 5 {
		t.Fatalf("widths shape: %d rows", len(m.Widths))
	}

	// The edge runs through block column 2; a one-sample step smooths to
	// six pixels wide.
	for row := 1; row < 5; row++ {
		if got := m.Widths[row][2]; math.Abs(got-6) > 1e-9 {
			t.Errorf("block (2,%d): got %v, want 6", row, got)
		}
	}
	for row := range m.Widths {
		if m.Widths[row][0] != 0 {
			t.Errorf("block (0,%d): got %v, want 0", row, m.Widths[row][0])
		}
	}

	if m.Sharpest == nil || m.Blurriest == nil {
		t.Fatal("expected sharpest and blurriest blocks")
	}
	if m.Sharpest.Width > m.Blurriest.Width {
		t.Errorf("sharpest %v wider than blurriest %v", m.Sharpest.Width, m.Blurriest.Width)
	}
	if m.Sharpest.Column != 2 {
		t.Errorf("sharpest block column: got %d, want 2", m.Sharpest.Column)
	}
	r := m.Sharpest.Region
	if r.X1 != 16 || r.X2 != 24 || r.Y2-r.Y1 != 8 {
		t.Errorf("sharpest region: got %+v", r)
	}
}

func TestBlockMap_WholePlane(t *testing.T) {
	m, err := BlockMap(createStepImage(24, 20, 12), 0, DefaultOptions())
	if err != nil {
		t.Fatalf("BlockMap failed: %v", err)
	}
	if m.Columns != 1 || m.Rows != 1 || m.BlockWidth != 24 || m.BlockHeight != 20 {
		t.Errorf("grid: got %dx%d of %dx%d, want 1x1 of 24x20", m.Columns, m.Rows, m.BlockWidth, m.BlockHeight)
	}
	if m.Widths[0][0] != m.Score {
		t.Errorf("single block width %v, score %v", m.Widths[0][0], m.Score)
	}
}

func TestBlockMap_InvalidPlane(t *testing.T) {
	if _, err := BlockMap(createStepImage(24, 24, 12), 5, DefaultOptions()); err == nil {
		t.Error("expected error for plane index 5")
	}
}

// createChromaEdgeImage returns a 40x40 4:2:0 image with a vertical step
// edge in both Y (column 20) and Cb (chroma column 10).
func createChromaEdgeImage() *image.YCbCr {
	m := image.NewYCbCr(image.Rect(0, 0, 40, 40), image.YCbCrSubsampleRatio420)
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			m.Y[m.YOffset(x, y)] = stepValue(x, 20)
		}
	}
	for cy := 0; cy < 20; cy++ {
		for cx := 0; cx < 20; cx++ {
			m.Cb[cy*m.CStride+cx] = stepValue(cx, 10)
			m.Cr[cy*m.CStride+cx] = 128
		}
	}
	return m
}

func TestBlockMap_BlockLargerThanPlane(t *testing.T) {
	img := createChromaEdgeImage()
	opts := DefaultOptions()
	opts.Config.BlockWidth, opts.Config.BlockHeight = 32, 32

	// The 40x40 luma plane holds one 32x32 block; the 20x20 chroma plane
	// is smaller than a block and falls back to the whole plane.
	tests := []struct {
		plane      int
		blockWidth int
	}{
		{0, 32},
		{1, 20},
	}
	for _, tt := range tests {
		m, err := BlockMap(img, tt.plane, opts)
		if err != nil {
			t.Fatalf("plane %d: %v", tt.plane, err)
		}
		if m.Columns != 1 || m.Rows != 1 || m.BlockWidth != tt.blockWidth || m.BlockHeight != tt.blockWidth {
			t.Errorf("plane %d: got %dx%d blocks of %dx%d", tt.plane, m.Columns, m.Rows, m.BlockWidth, m.BlockHeight)
		}
		if m.Score <= 0 || m.Sharpest == nil {
			t.Errorf("plane %d: score %v, sharpest %v", tt.plane, m.Score, m.Sharpest)
		}
	}
}

func TestBlockMap_ChromaRegionInImagePixels(t *testing.T) {
	opts := DefaultOptions()
	opts.Config.BlockWidth, opts.Config.BlockHeight = 8, 8

	m, err := BlockMap(createChromaEdgeImage(), 1, opts)
	if err != nil {
		t.Fatalf("BlockMap failed: %v", err)
	}
	if m.Plane != "u" || m.Columns != 2 || m.Rows != 2 {
		t.Fatalf("got plane %s with %dx%d blocks", m.Plane, m.Columns, m.Rows)
	}
	if m.Sharpest == nil {
		t.Fatal("expected a sharpest block")
	}

	// Chroma block column 1 covers chroma samples 8..15, image pixels 16..31.
	r := m.Sharpest.Region
	if m.Sharpest.Column != 1 || r.X1 != 16 || r.X2 != 32 || r.Y2-r.Y1 != 16 {
		t.Errorf("sharpest: column %d, region %+v", m.Sharpest.Column, r)
	}
}

func TestBlockMap_RegionOffsetAndClip(t *testing.T) {
	base := createStepImage(48, 48, 28)
	sub := base.SubImage(image.Rect(8, 4, 48, 44))

	opts := DefaultOptions()
	opts.Config.BlockWidth, opts.Config.BlockHeight = 8, 8
	m, err := BlockMap(sub, 0, opts)
	if err != nil {
		t.Fatalf("BlockMap failed: %v", err)
	}
	if m.Sharpest == nil {
		t.Fatal("expected a sharpest block")
	}
	// The edge is at image column 28, block column 2 of the sub-image.
	r := m.Sharpest.Region
	if r.X1 != 24 || r.X2 != 32 {
		t.Errorf("region: got %+v, want x 24..32", r)
	}
	if err := r.validate(sub.Bounds()); err != nil {
		t.Errorf("region outside the image: %v", err)
	}
}
